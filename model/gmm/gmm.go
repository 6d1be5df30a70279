// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gmm provides a Gaussian mixture density used as the output
// distribution of HMM states.
package gmm

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/akualab/signrec/model"
	"github.com/akualab/signrec/model/gaussian"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

// Model is a mixture of Gaussian distributions.
type Model struct {
	ModelName  string            `json:"name,omitempty"`
	ModelDim   int               `json:"dim"`
	Weights    []float64         `json:"weights"`
	Components []*gaussian.Model `json:"components"`
	logWeights []float64
}

// Option type is used to pass options to NewModel().
type Option func(*Model)

// NewModel creates a new Gaussian mixture model. Components must be
// provided. Weights default to equal values.
func NewModel(dim int, options ...Option) (*Model, error) {

	gmm := &Model{
		ModelName: "GMM",
		ModelDim:  dim,
	}
	for _, option := range options {
		option(gmm)
	}
	if len(gmm.Weights) == 0 && len(gmm.Components) > 0 {
		n := len(gmm.Components)
		gmm.Weights = make([]float64, n)
		for i := range gmm.Weights {
			gmm.Weights[i] = 1.0 / float64(n)
		}
		glog.V(3).Infof("init weights with equal values: %.6f", gmm.Weights[0])
	}
	if err := gmm.Initialize(); err != nil {
		return nil, err
	}
	return gmm, nil
}

// Initialize validates the parameters and initializes the components.
// Must be called when the model is created by unmarshaling JSON.
func (gmm *Model) Initialize() error {

	nc := len(gmm.Components)
	if nc == 0 {
		return fmt.Errorf("gmm [%s]: no components: %w", gmm.ModelName, model.ErrInsufficientData)
	}
	if len(gmm.Weights) != nc {
		return fmt.Errorf("gmm [%s]: [%d] weights for [%d] components: %w",
			gmm.ModelName, len(gmm.Weights), nc, model.ErrDimension)
	}
	if err := model.CheckDist(gmm.Weights); err != nil {
		return fmt.Errorf("gmm [%s]: weights: %w", gmm.ModelName, err)
	}
	for i, c := range gmm.Components {
		if c == nil {
			return fmt.Errorf("gmm [%s]: component %d is null: %w", gmm.ModelName, i, model.ErrInsufficientData)
		}
		if len(c.ModelName) == 0 {
			c.ModelName = componentName(gmm.ModelName, i, nc)
		}
		if err := c.Initialize(); err != nil {
			return err
		}
		if gmm.ModelDim == 0 {
			gmm.ModelDim = c.Dim()
		}
		if c.Dim() != gmm.ModelDim {
			return fmt.Errorf("gmm [%s]: component %d has dim [%d], expected [%d]: %w",
				gmm.ModelName, i, c.Dim(), gmm.ModelDim, model.ErrDimension)
		}
	}
	gmm.logWeights = make([]float64, nc)
	for i, w := range gmm.Weights {
		gmm.logWeights[i] = math.Log(w)
	}
	return nil
}

// LogProb returns the log density of the mixture at x.
//
//   log p(x) = log sum_i exp(log w(i) + log p(x|c(i)))
func (gmm *Model) LogProb(x []float64) float64 {

	probs := make([]float64, len(gmm.Components))
	for i, c := range gmm.Components {
		probs[i] = gmm.logWeights[i] + c.LogProb(x)
	}
	return floats.LogSumExp(probs)
}

// Sample returns a random vector drawn from the mixture.
func (gmm *Model) Sample(r *rand.Rand) []float64 {

	comp, err := model.RandIntFromDist(gmm.Weights, r)
	if err != nil {
		glog.Fatalf("couldn't generate sample: %s", err)
	}
	return gmm.Components[comp].Sample(r)
}

// Dim is the dimensionality of the observation vector.
func (gmm *Model) Dim() int { return gmm.ModelDim }

// Name returns the name of the model.
func (gmm *Model) Name() string { return gmm.ModelName }

func componentName(name string, n, numComponents int) string {

	max := numComponents - 1
	switch {
	case max < 10:
		return fmt.Sprintf("%s-%d", name, n)
	case max < 100:
		return fmt.Sprintf("%s-%02d", name, n)
	default:
		return fmt.Sprintf("%s-%03d", name, n)
	}
}

// Name is an option to set the model name.
func Name(name string) Option {
	return func(gmm *Model) { gmm.ModelName = name }
}

// Components is an option to set the mixture components.
func Components(cs []*gaussian.Model) Option {
	return func(gmm *Model) { gmm.Components = cs }
}

// Weights is an option to set the mixture weights.
func Weights(w []float64) Option {
	return func(gmm *Model) { gmm.Weights = w }
}
