package stats

import (
	"testing"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	t.Run("computes population statistics", func(t *testing.T) {
		s, err := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})

		require.NoError(t, err)
		assert.Equal(t, 8, s.Count)
		assert.InDelta(t, 40, s.Sum, 1e-9)
		assert.InDelta(t, 5, s.Mean, 1e-9)
		assert.InDelta(t, 4.5, s.Median, 1e-9)
		assert.InDelta(t, 2, s.StdDev, 1e-9) // population form, not sample
		assert.InDelta(t, 2, s.Min, 1e-9)
		assert.InDelta(t, 9, s.Max, 1e-9)
		assert.InDelta(t, 0, s.ZeroShare, 1e-9)
	})

	t.Run("odd length median and zero share", func(t *testing.T) {
		s, err := Describe([]float64{0, 0, 3})

		require.NoError(t, err)
		assert.InDelta(t, 0, s.Median, 1e-9)
		assert.InDelta(t, 2.0/3.0, s.ZeroShare, 1e-9)
	})

	t.Run("empty input is a no-data outcome", func(t *testing.T) {
		_, err := Describe(nil)

		assert.ErrorIs(t, err, domain.ErrNoData)
	})
}

func TestMannWhitney(t *testing.T) {
	t.Run("fully separated groups", func(t *testing.T) {
		a := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		b := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

		res, err := MannWhitney(a, b)

		require.NoError(t, err)
		assert.InDelta(t, 0, res.U, 1e-9)
		assert.InEpsilon(t, 1.59e-5, res.P, 0.01)
		assert.Less(t, res.P, 0.05)
		assert.InDelta(t, 1.0, RankBiserial(res.U, 10, 10), 1e-9)
	})

	t.Run("identical distributions give p of one", func(t *testing.T) {
		res, err := MannWhitney([]float64{1, 2, 3}, []float64{1, 2, 3})

		require.NoError(t, err)
		assert.InDelta(t, 4.5, res.U, 1e-9) // average ranks across ties
		assert.InDelta(t, 1, res.P, 1e-9)
	})

	t.Run("zero variance gives p of one", func(t *testing.T) {
		res, err := MannWhitney([]float64{5, 5}, []float64{5, 5})

		require.NoError(t, err)
		assert.InDelta(t, 1, res.P, 1e-9)
	})

	t.Run("empty group is a no-data outcome", func(t *testing.T) {
		_, err := MannWhitney(nil, []float64{1})

		assert.ErrorIs(t, err, domain.ErrNoData)
	})
}

func TestRankBiserial_Bounds(t *testing.T) {
	assert.InDelta(t, 1, RankBiserial(0, 10, 10), 1e-9)
	assert.InDelta(t, -1, RankBiserial(100, 10, 10), 1e-9)
	assert.InDelta(t, 0, RankBiserial(50, 10, 10), 1e-9)
}

func TestPearson(t *testing.T) {
	t.Run("perfect positive", func(t *testing.T) {
		r, err := Pearson([]float64{1, 2, 3}, []float64{2, 4, 6})

		require.NoError(t, err)
		assert.InDelta(t, 1, r, 1e-9)
	})

	t.Run("perfect negative", func(t *testing.T) {
		r, err := Pearson([]float64{1, 2, 3}, []float64{6, 4, 2})

		require.NoError(t, err)
		assert.InDelta(t, -1, r, 1e-9)
	})

	t.Run("constant series has no correlation", func(t *testing.T) {
		_, err := Pearson([]float64{1, 1, 1}, []float64{2, 4, 6})

		assert.ErrorIs(t, err, domain.ErrNoData)
	})

	t.Run("length mismatch is an error", func(t *testing.T) {
		_, err := Pearson([]float64{1}, []float64{1, 2})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNoData)
	})
}

func TestPointBiserial(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		// r = 3/sqrt(11), t = 3 with 2 df, p = 1 - 3/sqrt(11)
		res, err := PointBiserial(
			[]bool{true, true, false, false},
			[]float64{3, 5, 1, 1},
		)

		require.NoError(t, err)
		assert.Equal(t, 4, res.N)
		assert.InDelta(t, 0.904534, res.R, 1e-6)
		assert.InDelta(t, 0.095466, res.P, 1e-6)
	})

	t.Run("perfect separation", func(t *testing.T) {
		res, err := PointBiserial(
			[]bool{false, false, false, true, true, true},
			[]float64{0, 0, 0, 1, 1, 1},
		)

		require.NoError(t, err)
		assert.InDelta(t, 1, res.R, 1e-9)
		assert.InDelta(t, 0, res.P, 1e-9)
	})

	t.Run("result stays within bounds", func(t *testing.T) {
		res, err := PointBiserial(
			[]bool{true, false, true, false, true},
			[]float64{4, 1, 3, 2, 8},
		)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.R, -1.0)
		assert.LessOrEqual(t, res.R, 1.0)
		assert.GreaterOrEqual(t, res.P, 0.0)
		assert.LessOrEqual(t, res.P, 1.0)
	})

	t.Run("fewer than three pairs is a no-data outcome", func(t *testing.T) {
		_, err := PointBiserial([]bool{true, false}, []float64{1, 2})

		assert.ErrorIs(t, err, domain.ErrNoData)
	})

	t.Run("constant indicator is a no-data outcome", func(t *testing.T) {
		_, err := PointBiserial([]bool{true, true, true}, []float64{1, 2, 3})

		assert.ErrorIs(t, err, domain.ErrNoData)
	})
}

func TestStudentTwoSidedP(t *testing.T) {
	assert.InDelta(t, 1, studentTwoSidedP(0, 10), 1e-9)
	assert.InDelta(t, 0.0734, studentTwoSidedP(2, 10), 1e-3)
	assert.InDelta(t, 0.0734, studentTwoSidedP(-2, 10), 1e-3)
}

func TestSignificanceMarker(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0.0005, "***"},
		{0.005, "**"},
		{0.03, "*"},
		{0.05, ""},
		{0.5, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SignificanceMarker(tt.p), "p=%v", tt.p)
	}
}

func TestBands(t *testing.T) {
	t.Run("effect size", func(t *testing.T) {
		assert.Equal(t, "negligible", EffectSizeBand(0.05))
		assert.Equal(t, "small", EffectSizeBand(0.1))
		assert.Equal(t, "small", EffectSizeBand(-0.2))
		assert.Equal(t, "medium", EffectSizeBand(0.3))
		assert.Equal(t, "large", EffectSizeBand(-0.9))
	})

	t.Run("correlation", func(t *testing.T) {
		assert.Equal(t, "negligible", CorrelationBand(0.01))
		assert.Equal(t, "weak", CorrelationBand(-0.15))
		assert.Equal(t, "moderate", CorrelationBand(0.4))
		assert.Equal(t, "strong", CorrelationBand(0.6))
		assert.Equal(t, "very strong", CorrelationBand(-0.8))
	})
}
