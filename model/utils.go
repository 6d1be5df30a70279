package model

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// RandIntFromDist generates a random index given a discrete prob distribution.
func RandIntFromDist(dist []float64, r *rand.Rand) (int, error) {
	N := len(dist)
	if N == 0 {
		return -1, fmt.Errorf("prob distribution has len 0")
	}
	ran := r.Float64()
	cum := 0.0
	for i := 0; i < N; i++ {
		cum = cum + dist[i]
		if ran < cum {
			return i, nil
		}
	}
	if !scalar.EqualWithinAbs(cum, 1.0, 0.001) {
		return -1, fmt.Errorf("distribution doesn't sum to 1")
	}
	return N - 1, nil
}

// CheckDist returns ErrNotPositive unless dist is a probability distribution.
func CheckDist(dist []float64) error {

	if len(dist) == 0 {
		return ErrInsufficientData
	}
	for _, p := range dist {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return ErrNotPositive
		}
	}
	if !scalar.EqualWithinAbs(floats.Sum(dist), 1.0, 1e-6) {
		return ErrNotPositive
	}
	return nil
}
