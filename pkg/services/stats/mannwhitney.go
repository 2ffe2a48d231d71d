package stats

import (
	"math"
	"sort"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// UTest is the outcome of a two-sided Mann-Whitney U test.
type UTest struct {
	U float64 // U statistic of the first sample
	P float64 // two-sided p-value, normal approximation
}

// MannWhitney compares two independent samples without any distributional
// assumption. Ties receive average ranks and the variance carries the usual
// tie correction; the p-value uses the normal approximation with a
// continuity correction of 0.5 toward the mean. When every observation is
// identical the variance is zero and P is 1.
func MannWhitney(a, b []float64) (UTest, error) {
	if len(a) == 0 || len(b) == 0 {
		return UTest{}, domain.ErrNoData
	}

	n1, n2 := float64(len(a)), float64(len(b))
	type obs struct {
		value float64
		first bool
	}
	all := make([]obs, 0, len(a)+len(b))
	for _, v := range a {
		all = append(all, obs{v, true})
	}
	for _, v := range b {
		all = append(all, obs{v, false})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].value < all[j].value })

	// Average ranks within each tie group; the group sizes feed the
	// variance correction below.
	n := len(all)
	ranks := make([]float64, n)
	var tieTerm float64
	for i := 0; i < n; {
		j := i
		for j < n && all[j].value == all[i].value {
			j++
		}
		avg := float64(i+j+1) / 2 // 1-based ranks i+1 .. j
		for k := i; k < j; k++ {
			ranks[k] = avg
		}
		t := float64(j - i)
		tieTerm += t*t*t - t
		i = j
	}

	var r1 float64
	for i, o := range all {
		if o.first {
			r1 += ranks[i]
		}
	}
	u1 := r1 - n1*(n1+1)/2

	mu := n1 * n2 / 2
	total := n1 + n2
	variance := n1 * n2 / 12 * ((total + 1) - tieTerm/(total*(total-1)))
	if variance <= 0 {
		return UTest{U: u1, P: 1}, nil
	}

	num := u1 - mu
	switch {
	case num > 0:
		num -= 0.5
	case num < 0:
		num += 0.5
	}
	z := num / math.Sqrt(variance)
	return UTest{U: u1, P: math.Erfc(math.Abs(z) / math.Sqrt2)}, nil
}

// RankBiserial converts a U statistic into the rank-biserial effect size,
// bounded in [-1, 1].
func RankBiserial(u, n1, n2 float64) float64 {
	if n1 <= 0 || n2 <= 0 {
		return 0
	}
	return 1 - 2*u/(n1*n2)
}
