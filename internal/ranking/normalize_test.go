package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func TestNormalizeSumsToOne(t *testing.T) {
	inputs := [][]float64{
		{1, 2, 3, 4},
		{0.5, 0.5},
		{-2, 5, 1},
		{1e-9, 3e-9},
		{42},
	}

	for _, in := range inputs {
		out := Normalize(in)
		assert.Len(t, out, len(in))
		assert.InDelta(t, 1.0, floats.Sum(out), 1e-12)
	}
}

func TestNormalizeZeroSumIsUniform(t *testing.T) {
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, Normalize([]float64{0, 0, 0, 0}))
	assert.Equal(t, []float64{0.5, 0.5}, Normalize([]float64{-1, 1}))
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := []float64{2, 6}
	out := Normalize(in)
	assert.Equal(t, []float64{2, 6}, in)
	assert.Equal(t, []float64{0.25, 0.75}, out)
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, Normalize(nil))
}
