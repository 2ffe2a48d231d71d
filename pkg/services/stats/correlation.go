package stats

import (
	"fmt"
	"math"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// Pearson computes the linear correlation of two equal-length series. A
// series with zero variance has no defined correlation and yields ErrNoData.
func Pearson(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, fmt.Errorf("series length mismatch: %d vs %d", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return 0, domain.ErrNoData
	}

	n := float64(len(xs))
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= n
	my /= n

	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, domain.ErrNoData
	}
	return sxy / math.Sqrt(sxx*syy), nil
}

// Correlation is a point-biserial correlation with its significance.
type Correlation struct {
	R float64
	P float64 // two-sided
	N int
}

// PointBiserial correlates a binary indicator with a continuous series; it is
// the Pearson correlation of the 0/1 indicator against the values. The
// p-value comes from Student's t with n-2 degrees of freedom. Fewer than
// three pairs, or zero variance on either side, yields ErrNoData.
func PointBiserial(indicator []bool, xs []float64) (Correlation, error) {
	if len(indicator) != len(xs) {
		return Correlation{}, fmt.Errorf("series length mismatch: %d vs %d", len(indicator), len(xs))
	}
	n := len(xs)
	if n < 3 {
		return Correlation{}, domain.ErrNoData
	}

	bin := make([]float64, n)
	for i, v := range indicator {
		if v {
			bin[i] = 1
		}
	}
	r, err := Pearson(bin, xs)
	if err != nil {
		return Correlation{}, err
	}

	p := 0.0 // |r| == 1 separates the groups perfectly
	if r*r < 1 {
		df := float64(n - 2)
		t := r * math.Sqrt(df/(1-r*r))
		p = studentTwoSidedP(t, df)
	}
	return Correlation{R: r, P: p, N: n}, nil
}

// studentTwoSidedP is the two-sided tail probability of Student's t with df
// degrees of freedom, via the regularized incomplete beta function.
func studentTwoSidedP(t, df float64) float64 {
	return regIncBeta(df/2, 0.5, df/(df+t*t))
}

// regIncBeta evaluates the regularized incomplete beta function I_x(a, b)
// with the continued fraction expansion, switching to the symmetric form
// past the convergence split.
func regIncBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	la, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	lab, _ := math.Lgamma(a + b)
	front := math.Exp(lab - la - lb + a*math.Log(x) + b*math.Log(1-x))
	if x < (a+1)/(a+b+2) {
		return front * betacf(a, b, x) / a
	}
	return 1 - front*betacf(b, a, 1-x)/b
}

func betacf(a, b, x float64) float64 {
	const (
		maxIter = 200
		eps     = 3e-14
		fpmin   = 1e-300
	)
	qab, qap, qam := a+b, a+1, a-1
	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < fpmin {
		d = fpmin
	}
	d = 1 / d
	h := d
	for m := 1; m <= maxIter; m++ {
		fm := float64(m)
		m2 := 2 * fm

		aa := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		h *= d * c

		aa = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < eps {
			break
		}
	}
	return h
}
