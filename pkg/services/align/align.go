package align

import (
	"sort"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// Nights inner-joins two per-night aggregates on their night key. Only nights
// present on both sides survive, with each side's metrics carried through
// unmodified. The result is sorted by night.
//
// An empty input is ErrNoData; two non-empty inputs with no shared nights is
// ErrEmptyJoin, so callers can tell "nothing to compare" apart from "the
// sources never overlapped".
func Nights(a, b []domain.NightMetrics) ([]domain.NightComparison, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, domain.ErrNoData
	}

	byNight := make(map[domain.Date]domain.NightMetrics, len(b))
	for _, m := range b {
		byNight[m.Night] = m
	}

	out := make([]domain.NightComparison, 0)
	for _, m := range a {
		other, ok := byNight[m.Night]
		if !ok {
			continue
		}
		out = append(out, domain.NightComparison{Night: m.Night, A: m, B: other})
	}
	if len(out) == 0 {
		return nil, domain.ErrEmptyJoin
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Night.Before(out[j].Night) })
	return out, nil
}
