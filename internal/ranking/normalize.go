package ranking

import (
	"gonum.org/v1/gonum/floats"
)

// Normalize scales arr to sum to 1. A zero sum yields the uniform vector.
func Normalize(arr []float64) []float64 {
	result := make([]float64, len(arr))
	if len(arr) == 0 {
		return result
	}

	sum := floats.Sum(arr)
	if sum == 0 {
		for i := range result {
			result[i] = 1.0 / float64(len(result))
		}
		return result
	}

	copy(result, arr)
	floats.Scale(1.0/sum, result)

	return result
}
