// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"context"
	"errors"
	"flag"
	"math"
	"strings"
	"testing"

	"github.com/akualab/signrec"
	"github.com/akualab/signrec/model"
	gm "github.com/akualab/signrec/model/gaussian"
	"github.com/akualab/signrec/model/gmm"
)

func fatalIf(t *testing.T, err error) {
	if err != nil {
		t.Fatal(err)
	}
}

func makeGaussian(t *testing.T, name string, mean, sd float64) *gm.Model {
	g, err := gm.NewModel(1, gm.Name(name), gm.Mean([]float64{mean}), gm.StdDev([]float64{sd}))
	fatalIf(t, err)
	return g
}

// Two state model with Gaussians [1,1] and [4,2].
func makeHMM(t *testing.T) *Model {

	g1 := makeGaussian(t, "g1", 1, 1)
	g2 := makeGaussian(t, "g2", 4, 2)
	m, err := NewModel(
		Name("hmm0"),
		StartProb([]float64{0.8, 0.2}),
		TransProb([][]float64{{0.7, 0.3}, {0.4, 0.6}}),
		Gaussians(g1, g2),
	)
	fatalIf(t, err)
	return m
}

// bruteForce computes P(O|Φ) by enumerating every state path.
func bruteForce(m *Model, obs [][]float64) float64 {

	N := m.NumStates()
	T := len(obs)
	path := make([]int, T)
	var total float64
	var walk func(t int)
	walk = func(t int) {
		if t == T {
			p := m.StartProb[path[0]] * math.Exp(m.emitters[path[0]].LogProb(obs[0]))
			for k := 1; k < T; k++ {
				p *= m.TransProb[path[k-1]][path[k]] * math.Exp(m.emitters[path[k]].LogProb(obs[k]))
			}
			total += p
			return
		}
		for s := 0; s < N; s++ {
			path[t] = s
			walk(t + 1)
		}
	}
	walk(0)
	return math.Log(total)
}

// Tests

func TestSingleStateScore(t *testing.T) {

	g := makeGaussian(t, "g", 0, 1)
	m, err := NewModel(StartProb([]float64{1}), TransProb([][]float64{{1}}), Gaussians(g))
	fatalIf(t, err)

	// Equivalent to adding Gaussian log probs.
	obs := [][]float64{{0}, {1}}
	expected := 2*(-0.5*math.Log(2*math.Pi)) - 0.5
	v, err := m.Score(context.Background(), obs, nil)
	fatalIf(t, err)
	signrec.CompareFloats(t, expected, v, "single state score", 1e-9)
}

func TestForwardMatchesBruteForce(t *testing.T) {

	m := makeHMM(t)
	obs := [][]float64{{0.1}, {0.3}, {1.1}, {5.5}, {7.8}}
	expected := bruteForce(m, obs)

	v, err := m.Score(context.Background(), obs, nil)
	fatalIf(t, err)
	t.Logf("log prob: %f", v)
	signrec.CompareFloats(t, expected, v, "forward vs brute force", 1e-9)
}

func TestScoreLengths(t *testing.T) {

	m := makeHMM(t)
	ctx := context.Background()
	obs := [][]float64{{0.1}, {0.3}, {1.1}, {5.5}, {7.8}, {10.0}, {5.2}}

	whole, err := m.Score(ctx, obs, []int{7})
	fatalIf(t, err)
	noLengths, err := m.Score(ctx, obs, nil)
	fatalIf(t, err)
	signrec.CompareFloats(t, whole, noLengths, "nil lengths", 1e-12)

	split, err := m.Score(ctx, obs, []int{3, 4})
	fatalIf(t, err)
	a, err := m.Score(ctx, obs[:3], nil)
	fatalIf(t, err)
	b, err := m.Score(ctx, obs[3:], nil)
	fatalIf(t, err)
	signrec.CompareFloats(t, a+b, split, "segmented score", 1e-9)
}

func TestScoreErrors(t *testing.T) {

	m := makeHMM(t)
	ctx := context.Background()
	obs := [][]float64{{0.1}, {0.3}, {1.1}}

	cases := []struct {
		name     string
		obs      [][]float64
		lengths  []int
		expected error
	}{
		{"lengths too short", obs, []int{1, 1}, model.ErrLengths},
		{"lengths too long", obs, []int{2, 2}, model.ErrLengths},
		{"zero length", obs, []int{0, 3}, model.ErrLengths},
		{"wrong dim", [][]float64{{1, 2}}, nil, model.ErrDimension},
		{"ragged", [][]float64{{1}, {1, 2}}, nil, model.ErrDimension},
		{"no data", nil, nil, model.ErrInsufficientData},
	}
	for _, c := range cases {
		_, err := m.Score(ctx, c.obs, c.lengths)
		if !errors.Is(err, c.expected) {
			t.Errorf("%s: expected [%v], got [%v]", c.name, c.expected, err)
		}
	}
}

func TestScoreUnderflow(t *testing.T) {

	m := makeHMM(t)
	ctx := model.WithQuiet(context.Background(), true)
	v, err := m.Score(ctx, [][]float64{{1e200}}, nil)
	fatalIf(t, err)
	if !math.IsInf(v, -1) {
		t.Fatalf("expected -Inf, got %f", v)
	}
}

func TestInvalidParameters(t *testing.T) {

	g := makeGaussian(t, "g", 0, 1)
	cases := []struct {
		name     string
		opts     []Option
		expected error
	}{
		{"start prob sum", []Option{StartProb([]float64{0.5, 0.6}), TransProb([][]float64{{1, 0}, {0, 1}}), Gaussians(g, g)}, model.ErrNotPositive},
		{"trans prob row", []Option{StartProb([]float64{1, 0}), TransProb([][]float64{{1, 0}, {0.2, 0.2}}), Gaussians(g, g)}, model.ErrNotPositive},
		{"start prob len", []Option{StartProb([]float64{1}), TransProb([][]float64{{1, 0}, {0, 1}}), Gaussians(g, g)}, model.ErrDimension},
		{"trans prob shape", []Option{StartProb([]float64{1, 0}), TransProb([][]float64{{1}}), Gaussians(g, g)}, model.ErrDimension},
		{"no states", []Option{StartProb([]float64{1}), TransProb([][]float64{{1}})}, model.ErrInsufficientData},
	}
	for _, c := range cases {
		_, err := NewModel(c.opts...)
		if !errors.Is(err, c.expected) {
			t.Errorf("%s: expected [%v], got [%v]", c.name, c.expected, err)
		}
	}
}

const singularModel = `{"name":"BAD","start_prob":[1],"trans_prob":[[1]],"states":[{"gaussian":{"mean":[0,0],"cov":[[1,1],[1,1]]}}]}`

func TestSingularFailsAtScore(t *testing.T) {

	models, err := ReadModels(strings.NewReader(singularModel))
	fatalIf(t, err)
	m := models[0]
	for i := 0; i < 2; i++ {
		_, err = m.Score(context.Background(), [][]float64{{0, 0}}, nil)
		if !errors.Is(err, model.ErrSingular) {
			t.Fatalf("call %d: expected ErrSingular, got %v", i, err)
		}
	}
}

func TestGMMStates(t *testing.T) {

	g1 := makeGaussian(t, "a", 0, 1)
	g2 := makeGaussian(t, "b", 3, 1)
	mix, err := gmm.NewModel(1, gmm.Components([]*gm.Model{g1, g2}), gmm.Weights([]float64{0.5, 0.5}))
	fatalIf(t, err)
	m, err := NewModel(StartProb([]float64{1}), TransProb([][]float64{{1}}), GMMs(mix))
	fatalIf(t, err)

	obs := [][]float64{{0.5}, {2.5}}
	expected := mix.LogProb(obs[0]) + mix.LogProb(obs[1])
	v, err := m.Score(context.Background(), obs, nil)
	fatalIf(t, err)
	signrec.CompareFloats(t, expected, v, "gmm state score", 1e-9)
}

// NaN observations give a NaN alpha; Score reports it as a numerical error.
func TestScoreNaN(t *testing.T) {

	flag.Set("v", "2")
	defer flag.Set("v", "0")

	m := makeHMM(t)
	obs := [][]float64{{1}, {math.NaN()}, {2}}
	_, err := m.Score(context.Background(), obs, nil)
	if !errors.Is(err, model.ErrNumerical) {
		t.Fatalf("Expected: [%v], Got: [%v]", model.ErrNumerical, err)
	}
}
