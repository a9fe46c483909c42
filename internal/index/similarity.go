package index

import "math"

// Similarity supplies the per-field length normalization factor recorded
// for scoring. Fields with OmitNorms set bypass it entirely.
type Similarity interface {
	ComputeNorm(fieldLength int) float32
}

// ClassicSimilarity is the default 1/sqrt(length) norm.
type ClassicSimilarity struct{}

func (ClassicSimilarity) ComputeNorm(fieldLength int) float32 {
	if fieldLength <= 0 {
		return 0
	}
	return float32(1.0 / math.Sqrt(float64(fieldLength)))
}
