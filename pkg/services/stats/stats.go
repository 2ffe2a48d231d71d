package stats

import (
	"math"
	"sort"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// Describe computes descriptive statistics for one series. The standard
// deviation is the population form (divided by n).
func Describe(xs []float64) (domain.Summary, error) {
	if len(xs) == 0 {
		return domain.Summary{}, domain.ErrNoData
	}

	s := domain.Summary{Count: len(xs), Min: xs[0], Max: xs[0]}
	zeros := 0
	for _, x := range xs {
		s.Sum += x
		if x == 0 {
			zeros++
		}
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	n := float64(len(xs))
	s.Mean = s.Sum / n
	s.ZeroShare = float64(zeros) / n

	var sq float64
	for _, x := range xs {
		d := x - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / n)
	s.Median = median(xs)
	return s, nil
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// SignificanceMarker is the conventional star notation for p-values. It is a
// reporting convention only; no computation branches on it.
func SignificanceMarker(p float64) string {
	switch {
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	default:
		return ""
	}
}

// EffectSizeBand labels a rank-biserial effect size by magnitude.
func EffectSizeBand(effect float64) string {
	switch abs := math.Abs(effect); {
	case abs < 0.1:
		return "negligible"
	case abs < 0.3:
		return "small"
	case abs < 0.5:
		return "medium"
	default:
		return "large"
	}
}

// CorrelationBand labels a correlation coefficient by magnitude.
func CorrelationBand(r float64) string {
	switch abs := math.Abs(r); {
	case abs < 0.1:
		return "negligible"
	case abs < 0.3:
		return "weak"
	case abs < 0.5:
		return "moderate"
	case abs < 0.7:
		return "strong"
	default:
		return "very strong"
	}
}
