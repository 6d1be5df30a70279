// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model defines the interfaces the recognizer consumes: trained
// sequence models that score observations, and collections of test items.
package model

import (
	"context"
	"fmt"
)

const (
	// DefaultSeed provided for model implementation.
	DefaultSeed = 33
)

// Error is the type of the sentinel errors returned by model implementations.
type Error string

func (err Error) Error() string { return string(err) }

// Scoring failures. Implementations wrap these with context using %w.
const (
	ErrInsufficientData = Error("model: insufficient data")
	ErrSingular         = Error("model: covariance is not positive definite")
	ErrDimension        = Error("model: dimension mismatch")
	ErrLengths          = Error("model: lengths do not match observations")
	ErrNumerical        = Error("model: numerical error")
	ErrNotPositive      = Error("model: probabilities must be non-negative and sum to one")
)

// Scorer computes the log-likelihood of an observation sequence.
//
// The rows of obs are the frames of one item. lengths splits the rows into
// consecutive segments; the score is the sum of the segment scores. A nil
// lengths means a single segment with all the rows.
type Scorer interface {
	Score(ctx context.Context, obs [][]float64, lengths []int) (float64, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, obs [][]float64, lengths []int) (float64, error)

// Score calls f(ctx, obs, lengths).
func (f ScorerFunc) Score(ctx context.Context, obs [][]float64, lengths []int) (float64, error) {
	return f(ctx, obs, lengths)
}

// Collection provides indexed access to test items.
type Collection interface {

	// Number of items.
	NumItems() int

	// Returns the observations and segment lengths for item i, 0 <= i < NumItems().
	Item(i int) (obs [][]float64, lengths []int, err error)
}

// ModelSet maps labels to models. Iteration order is insertion order.
// Not safe to modify concurrently.
type ModelSet struct {
	labels []string
	models map[string]Scorer
}

// NewModelSet creates an empty model set.
func NewModelSet() *ModelSet {
	return &ModelSet{models: make(map[string]Scorer)}
}

// Add appends a model. Labels must be unique and non-empty.
func (ms *ModelSet) Add(label string, m Scorer) error {

	if len(label) == 0 {
		return fmt.Errorf("model set: empty label")
	}
	if m == nil {
		return fmt.Errorf("model set: nil model for label [%s]", label)
	}
	if _, ok := ms.models[label]; ok {
		return fmt.Errorf("model set: duplicate label [%s]", label)
	}
	ms.labels = append(ms.labels, label)
	ms.models[label] = m
	return nil
}

// Get returns the model for label.
func (ms *ModelSet) Get(label string) (Scorer, bool) {
	if ms == nil {
		return nil, false
	}
	m, ok := ms.models[label]
	return m, ok
}

// Labels returns a copy of the labels in iteration order.
func (ms *ModelSet) Labels() []string {
	if ms == nil {
		return nil
	}
	return append([]string(nil), ms.labels...)
}

// Len returns the number of models. A nil set has length zero.
func (ms *ModelSet) Len() int {
	if ms == nil {
		return 0
	}
	return len(ms.labels)
}

type quietKey struct{}

// WithQuiet returns a context that tells models whether to suppress
// numerical-stability warnings. The setting only lives as long as the
// returned context.
func WithQuiet(ctx context.Context, quiet bool) context.Context {
	return context.WithValue(ctx, quietKey{}, quiet)
}

// IsQuiet reports whether warnings are suppressed for ctx.
func IsQuiet(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	q, _ := ctx.Value(quietKey{}).(bool)
	return q
}
