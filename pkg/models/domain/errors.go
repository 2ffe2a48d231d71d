package domain

import "errors"

var (
	// ErrNoData reports that a computation received no usable rows. Callers
	// treat it as an outcome to present, not a failure.
	ErrNoData = errors.New("no data for the requested computation")

	// ErrEmptyJoin reports that two per-night aggregates share no nights.
	// Distinct from ErrNoData: both inputs had rows, the intersection is
	// empty.
	ErrEmptyJoin = errors.New("no overlapping nights between sources")
)
