// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hmm provides hidden Markov models with Gaussian or Gaussian
mixture output distributions. It is designed for applications in temporal
pattern recognition: each model scores observation sequences with the
forward algorithm and implements model.Scorer.

Models are usually trained elsewhere and read from JSON.
*/
package hmm

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/akualab/signrec/floatx"
	"github.com/akualab/signrec/model"
	"github.com/akualab/signrec/model/gaussian"
	"github.com/akualab/signrec/model/gmm"
	"github.com/golang/glog"
)

// Emitter is the output distribution of a state.
type Emitter interface {
	LogProb(x []float64) float64
	Sample(r *rand.Rand) []float64
	Dim() int
}

// State holds the output distribution of an HMM state.
// Exactly one field must be set.
type State struct {
	Gaussian *gaussian.Model `json:"gaussian,omitempty"`
	GMM      *gmm.Model      `json:"gmm,omitempty"`
}

func (s *State) emitter() (Emitter, error) {

	switch {
	case s == nil:
		return nil, model.ErrInsufficientData
	case s.Gaussian != nil && s.GMM != nil:
		return nil, fmt.Errorf("state has both gaussian and gmm")
	case s.Gaussian != nil:
		if err := s.Gaussian.Initialize(); err != nil {
			return nil, err
		}
		return s.Gaussian, nil
	case s.GMM != nil:
		if err := s.GMM.Initialize(); err != nil {
			return nil, err
		}
		return s.GMM, nil
	}
	return nil, fmt.Errorf("state has no output distribution: %w", model.ErrInsufficientData)
}

// Model is a hidden Markov model.
//
// The model is initialized lazily the first time it is used. Initialization
// errors (for example a singular covariance matrix) are returned by every
// call to Score. After initialization the model is safe for concurrent use.
type Model struct {

	// Model name.
	ModelName string `json:"name"`

	// Initial state distribution. [nstates]
	// π(i) = P[q(0) = i]; 0<=i<N
	StartProb []float64 `json:"start_prob"`

	// State-transition probability distribution matrix. [nstates x nstates]
	// a(i,j) = P[q(t+1) = j | q(t) = i]; 0 <= i,j <= N-1
	TransProb [][]float64 `json:"trans_prob"`

	// Output distributions. [nstates]
	States []*State `json:"states"`

	once     sync.Once
	initErr  error
	logStart []float64
	logTrans [][]float64
	emitters []Emitter
	dim      int
}

// Option type is used to pass options to NewModel().
type Option func(*Model)

// NewModel creates a new HMM and initializes it.
func NewModel(options ...Option) (*Model, error) {

	m := &Model{
		ModelName: "HMM",
	}

	// Set options.
	for _, option := range options {
		option(m)
	}
	if err := m.Initialize(); err != nil {
		return nil, err
	}
	glog.V(2).Infof("new hmm [%s]. Num states = %d.", m.ModelName, m.NumStates())
	return m, nil
}

// Initialize validates the parameters and computes the log probabilities.
// It runs once; later calls return the first result.
func (m *Model) Initialize() error {
	m.once.Do(func() {
		m.initErr = m.initialize()
		if m.initErr != nil {
			m.initErr = fmt.Errorf("hmm [%s]: %w", m.ModelName, m.initErr)
		}
	})
	return m.initErr
}

func (m *Model) initialize() error {

	N := len(m.States)
	if N == 0 {
		return fmt.Errorf("no states: %w", model.ErrInsufficientData)
	}
	if len(m.StartProb) != N {
		return fmt.Errorf("start_prob has length [%d], expected [%d]: %w", len(m.StartProb), N, model.ErrDimension)
	}
	r, c, err := floatx.Check2D(m.TransProb)
	if err != nil || r != N || c != N {
		return fmt.Errorf("trans_prob must be [%d x %d]: %w", N, N, model.ErrDimension)
	}
	if err := model.CheckDist(m.StartProb); err != nil {
		return fmt.Errorf("start_prob: %w", err)
	}
	for i, row := range m.TransProb {
		if err := model.CheckDist(row); err != nil {
			return fmt.Errorf("trans_prob row %d: %w", i, err)
		}
	}

	m.emitters = make([]Emitter, N)
	for i, s := range m.States {
		e, err := s.emitter()
		if err != nil {
			return fmt.Errorf("state %d: %w", i, err)
		}
		if i == 0 {
			m.dim = e.Dim()
		}
		if e.Dim() != m.dim {
			return fmt.Errorf("state %d has dim [%d], expected [%d]: %w", i, e.Dim(), m.dim, model.ErrDimension)
		}
		m.emitters[i] = e
	}

	m.logStart = make([]float64, N)
	floatx.Apply(floatx.Log, m.StartProb, m.logStart)
	m.logTrans = floatx.MakeFloat2D(N, N)
	for i, row := range m.TransProb {
		floatx.Apply(floatx.Log, row, m.logTrans[i])
	}
	return nil
}

// Score returns the log-likelihood of the observations. The rows of obs are
// split into sequences using lengths and the sequence scores are added.
func (m *Model) Score(ctx context.Context, obs [][]float64, lengths []int) (float64, error) {

	if err := m.Initialize(); err != nil {
		return 0, err
	}
	if len(obs) == 0 {
		return 0, fmt.Errorf("hmm [%s]: no observations: %w", m.ModelName, model.ErrInsufficientData)
	}
	_, ne, err := floatx.Check2D(obs)
	if err != nil {
		return 0, fmt.Errorf("hmm [%s]: %v: %w", m.ModelName, err, model.ErrDimension)
	}
	if ne != m.dim {
		return 0, fmt.Errorf("hmm [%s]: observation has [%d] elements, expected [%d]: %w",
			m.ModelName, ne, m.dim, model.ErrDimension)
	}
	segs, err := floatx.Segments(obs, lengths)
	if err != nil {
		return 0, fmt.Errorf("hmm [%s]: %v: %w", m.ModelName, err, model.ErrLengths)
	}

	var logProb float64
	for _, seg := range segs {
		logProb += m.forward(seg)
	}
	if math.IsNaN(logProb) {
		return 0, fmt.Errorf("hmm [%s]: log-likelihood is NaN: %w", m.ModelName, model.ErrNumerical)
	}
	if math.IsInf(logProb, -1) && !model.IsQuiet(ctx) {
		glog.Warningf("hmm [%s]: log-likelihood underflow, observations are impossible under the model", m.ModelName)
	}
	return logProb, nil
}

// NumStates returns the number of states.
func (m *Model) NumStates() int { return len(m.States) }

// Dim is the dimensionality of the observation vector.
// Zero until the model is initialized.
func (m *Model) Dim() int { return m.dim }

// Name returns the name of the model.
func (m *Model) Name() string { return m.ModelName }

// Name is an option to set the model name.
func Name(name string) Option {
	return func(m *Model) { m.ModelName = name }
}

// StartProb is an option to set the initial state probabilities.
func StartProb(p []float64) Option {
	return func(m *Model) { m.StartProb = p }
}

// TransProb is an option to set the state transition probabilities.
func TransProb(p [][]float64) Option {
	return func(m *Model) { m.TransProb = p }
}

// Gaussians is an option to set one Gaussian output distribution per state.
func Gaussians(gs ...*gaussian.Model) Option {
	return func(m *Model) {
		m.States = make([]*State, len(gs))
		for i, g := range gs {
			m.States[i] = &State{Gaussian: g}
		}
	}
}

// GMMs is an option to set one Gaussian mixture output distribution per state.
func GMMs(gs ...*gmm.Model) Option {
	return func(m *Model) {
		m.States = make([]*State, len(gs))
		for i, g := range gs {
			m.States[i] = &State{GMM: g}
		}
	}
}
