// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gaussian provides a multivariate Gaussian density used as the
// output distribution of HMM states.
package gaussian

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/akualab/signrec/floatx"
	"github.com/akualab/signrec/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Model is a multivariate Gaussian distribution.
// The covariance is either diagonal (StdDev) or full (Cov).
type Model struct {
	ModelName string      `json:"name,omitempty"`
	ModelDim  int         `json:"dim"`
	Mean      []float64   `json:"mean"`
	StdDev    []float64   `json:"sd,omitempty"`
	Cov       [][]float64 `json:"cov,omitempty"`

	varianceInv []float64
	chol        *mat.Cholesky
	lower       *mat.TriDense
	const1      float64 // -(N/2)log(2PI) Depends only on ModelDim.
	const2      float64 // const1 - (1/2)log|Σ| Also depends on the covariance.
	ready       bool
}

// Option type is used to pass options to NewModel().
type Option func(*Model)

// NewModel creates a new Gaussian model. Mean defaults to zero and
// the covariance to the identity matrix.
func NewModel(dim int, options ...Option) (*Model, error) {

	g := &Model{
		ModelName: "Gaussian",
		ModelDim:  dim,
	}
	for _, option := range options {
		option(g)
	}
	if err := g.Initialize(); err != nil {
		return nil, err
	}
	return g, nil
}

// Initialize validates the parameters and computes the values needed by LogProb.
// Must be called when the model is created by unmarshaling JSON.
func (g *Model) Initialize() error {

	if g.ModelDim == 0 {
		g.ModelDim = len(g.Mean)
	}
	if g.ModelDim <= 0 {
		return fmt.Errorf("gaussian [%s]: %w", g.ModelName, model.ErrInsufficientData)
	}
	if g.Mean == nil {
		g.Mean = make([]float64, g.ModelDim)
	}
	if len(g.Mean) != g.ModelDim {
		return fmt.Errorf("gaussian [%s]: mean has length [%d], expected [%d]: %w",
			g.ModelName, len(g.Mean), g.ModelDim, model.ErrDimension)
	}
	if g.StdDev != nil && g.Cov != nil {
		return fmt.Errorf("gaussian [%s]: provide only one of sd or cov", g.ModelName)
	}
	g.const1 = -float64(g.ModelDim) * math.Log(2.0*math.Pi) / 2.0

	var err error
	if g.Cov != nil {
		err = g.initFull()
	} else {
		err = g.initDiag()
	}
	if err != nil {
		return err
	}
	g.ready = true
	return nil
}

func (g *Model) initDiag() error {

	if g.StdDev == nil {
		g.StdDev = make([]float64, g.ModelDim)
		floatx.Apply(floatx.SetValueFunc(1), g.StdDev, nil)
	}
	if !floats.EqualLengths(g.Mean, g.StdDev) {
		return fmt.Errorf("gaussian [%s]: sd has length [%d], expected [%d]: %w",
			g.ModelName, len(g.StdDev), g.ModelDim, model.ErrDimension)
	}
	for i, sd := range g.StdDev {
		if !(sd > 0) || math.IsInf(sd, 0) {
			return fmt.Errorf("gaussian [%s]: sd[%d] = %g: %w", g.ModelName, i, sd, model.ErrSingular)
		}
	}
	variance := make([]float64, g.ModelDim)
	floatx.Apply(floatx.Sq, g.StdDev, variance)
	g.varianceInv = make([]float64, g.ModelDim)
	floatx.Apply(floatx.Inv, variance, g.varianceInv)

	floatx.Apply(floatx.Log, variance, variance)
	g.const2 = g.const1 - floats.Sum(variance)/2.0
	g.chol = nil
	g.lower = nil
	return nil
}

func (g *Model) initFull() error {

	n, m, err := floatx.Check2D(g.Cov)
	if err != nil || n != g.ModelDim || m != g.ModelDim {
		return fmt.Errorf("gaussian [%s]: covariance must be [%d x %d]: %w",
			g.ModelName, g.ModelDim, g.ModelDim, model.ErrDimension)
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if g.Cov[i][j] != g.Cov[j][i] {
				return fmt.Errorf("gaussian [%s]: covariance is not symmetric at (%d,%d): %w",
					g.ModelName, i, j, model.ErrSingular)
			}
			sym.SetSym(i, j, g.Cov[i][j])
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return fmt.Errorf("gaussian [%s]: %w", g.ModelName, model.ErrSingular)
	}
	g.chol = &chol
	g.lower = mat.NewTriDense(n, mat.Lower, nil)
	chol.LTo(g.lower)
	g.const2 = g.const1 - chol.LogDet()/2.0
	g.varianceInv = nil
	return nil
}

// LogProb returns the log density at x. The model must be initialized and
// len(x) must equal Dim().
func (g *Model) LogProb(x []float64) float64 {

	if g.chol != nil {
		diff := make([]float64, g.ModelDim)
		floats.SubTo(diff, x, g.Mean)
		dv := mat.NewVecDense(g.ModelDim, diff)
		var sol mat.VecDense
		if err := g.chol.SolveVecTo(&sol, dv); err != nil {
			return math.NaN()
		}
		return g.const2 - mat.Dot(dv, &sol)/2.0
	}

	var v float64
	for i, xi := range x {
		s := g.Mean[i] - xi
		v += s * s * g.varianceInv[i] / 2.0
	}
	return g.const2 - v
}

// Sample returns a random vector drawn from the distribution.
func (g *Model) Sample(r *rand.Rand) []float64 {

	z := make([]float64, g.ModelDim)
	for i := range z {
		z[i] = r.NormFloat64()
	}
	out := make([]float64, g.ModelDim)
	if g.lower != nil {
		var v mat.VecDense
		v.MulVec(g.lower, mat.NewVecDense(g.ModelDim, z))
		for i := range out {
			out[i] = v.AtVec(i) + g.Mean[i]
		}
		return out
	}
	for i := range out {
		out[i] = z[i]*g.StdDev[i] + g.Mean[i]
	}
	return out
}

// Ready reports whether Initialize succeeded.
func (g *Model) Ready() bool { return g.ready }

// Dim is the dimensionality of the observation vector.
func (g *Model) Dim() int { return g.ModelDim }

// Name returns the name of the model.
func (g *Model) Name() string { return g.ModelName }

// Name is an option to set the model name.
func Name(name string) Option {
	return func(g *Model) { g.ModelName = name }
}

// Mean is an option to set the mean vector.
func Mean(mean []float64) Option {
	return func(g *Model) { g.Mean = mean }
}

// StdDev is an option to set a diagonal covariance using standard deviations.
func StdDev(sd []float64) Option {
	return func(g *Model) { g.StdDev = sd }
}

// Cov is an option to set a full covariance matrix.
func Cov(cov [][]float64) Option {
	return func(g *Model) { g.Cov = cov }
}
