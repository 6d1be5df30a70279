// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"fmt"
	"math/rand"

	"github.com/akualab/signrec/model"
)

// Generator generates random observations using an hmm model.
// Not safe to use with multiple goroutines.
type Generator struct {
	hmm *Model
	r   *rand.Rand
}

// NewGenerator returns an hmm data generator.
func NewGenerator(hmm *Model, seed int64) (*Generator, error) {

	if err := hmm.Initialize(); err != nil {
		return nil, err
	}
	return &Generator{
		hmm: hmm,
		r:   rand.New(rand.NewSource(seed)),
	}, nil
}

// Next returns an observation sequence of length n and the state sequence
// that generated it.
func (gen *Generator) Next(n int) ([][]float64, []int, error) {

	if n <= 0 {
		return nil, nil, fmt.Errorf("sequence length must be positive, got [%d]", n)
	}
	h := gen.hmm
	r := gen.r
	data := make([][]float64, n)
	states := make([]int, n)

	s, err := model.RandIntFromDist(h.StartProb, r) // entry state
	if err != nil {
		return nil, nil, err
	}
	for t := 0; t < n; t++ {
		if t > 0 {
			s, err = model.RandIntFromDist(h.TransProb[s], r)
			if err != nil {
				return nil, nil, err
			}
		}
		states[t] = s
		data[t] = h.emitters[s].Sample(r)
	}
	return data, states, nil
}

// Seq returns n sequences of the given length as one item: the rows of all
// sequences concatenated and their lengths.
func (gen *Generator) Seq(n, length int) ([][]float64, []int, error) {

	var data [][]float64
	var lengths []int
	for i := 0; i < n; i++ {
		x, _, err := gen.Next(length)
		if err != nil {
			return nil, nil, err
		}
		data = append(data, x...)
		lengths = append(lengths, length)
	}
	return data, lengths, nil
}
