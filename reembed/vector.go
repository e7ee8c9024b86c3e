package reembed

import "math"

// Normalize scales a vector to unit length, returning a new slice.
// The magnitude is accumulated in float64 to limit rounding error on
// high-dimensional embeddings. A zero vector comes back as a zero vector.
func Normalize(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}

	out := make([]float32, len(v))
	magnitude := math.Sqrt(sum)
	if magnitude == 0 {
		return out
	}

	inv := 1.0 / magnitude
	for i, val := range v {
		out[i] = float32(float64(val) * inv)
	}
	return out
}
