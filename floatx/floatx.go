// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package floatx provides slice helpers for the densities and the HMM forward pass.
package floatx

import (
	"math"
)

type Error string

func (err Error) Error() string { return string(err) }

const (
	ErrIndexOutOfRange = Error("floatx: index out of range")
	ErrZeroLength      = Error("floatx: zero length in slice definition")
	ErrLength          = Error("floatx: length mismatch")
	ErrRagged          = Error("floatx: rows have different lengths")
)

var Log = func(r int, v float64) float64 { return math.Log(v) }
var Sq = func(r int, v float64) float64 { return v * v }
var Inv = func(r int, v float64) float64 { return 1.0 / v }

func SetValueFunc(f float64) ApplyFunc {
	return func(r int, v float64) float64 { return f }
}

type ApplyFunc func(n int, v float64) float64

// Apply function to 1D slice. If out slice is empty, the function is applied in place.
func Apply(fn ApplyFunc, in, out []float64) []float64 {

	n := len(in)
	if n == 0 {
		panic(ErrZeroLength)
	}
	if len(out) == 0 {
		out = in
	}
	for i := 0; i < n; i++ {
		out[i] = fn(i, in[i])
	}

	return out
}

func MakeFloat2D(n1, n2 int) [][]float64 {

	s := make([][]float64, n1)
	for i := 0; i < n1; i++ {
		s[i] = make([]float64, n2)
	}

	return s
}

// Check2D returns the dimensions of a rectangular 2D slice.
// Unlike Apply, it returns an error instead of panicking.
func Check2D(s [][]float64) (n1, n2 int, err error) {

	n1 = len(s)
	if n1 == 0 {
		return 0, 0, ErrZeroLength
	}
	n2 = len(s[0])
	if n2 == 0 {
		return 0, 0, ErrZeroLength
	}
	for _, row := range s[1:] {
		if len(row) != n2 {
			return 0, 0, ErrRagged
		}
	}
	return n1, n2, nil
}

// Segments splits the rows of s into consecutive segments of the given lengths.
// A nil lengths slice returns s as a single segment. The segments share
// memory with s.
func Segments(s [][]float64, lengths []int) ([][][]float64, error) {

	if lengths == nil {
		return [][][]float64{s}, nil
	}
	segs := make([][][]float64, 0, len(lengths))
	p := 0
	for _, n := range lengths {
		if n <= 0 {
			return nil, ErrZeroLength
		}
		if p+n > len(s) {
			return nil, ErrLength
		}
		segs = append(segs, s[p:p+n])
		p += n
	}
	if p != len(s) {
		return nil, ErrLength
	}
	return segs, nil
}

// ArgMax returns the index of the first maximum value in s.
// NaN values are never selected. Returns -1 if s is empty or only has NaNs.
func ArgMax(s []float64) int {

	idx := -1
	max := math.Inf(-1)
	for i, v := range s {
		if math.IsNaN(v) {
			continue
		}
		if idx == -1 || v > max {
			idx = i
			max = v
		}
	}
	return idx
}
