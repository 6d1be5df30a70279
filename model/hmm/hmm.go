// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Forward algorithm.

 α Φ

*/

package hmm

import (
	"math"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

// forward returns log P(O | Φ) for a single sequence using log-domain alphas.
// Indices are: α(state) at time t; only two columns are kept.
//
// 1. Initialization: α(i,0) =  π(i) b(i,o(0)); 0<=i<N
// 2. Induction:      α(j,t+1) =  sum_{i=0}^{N-1}[α(i,t)a(i,j)] b(j,o(t+1)); 0<=t<T-1; 0<=j<N
// 3. Termination:    P(O|Φ) = sum_{i=0}^{N-1} α(i,T-1)
//
// Sums are computed with log-sum-exp so no scaling is needed.
func (m *Model) forward(observations [][]float64) float64 {

	// Num states.
	N := len(m.emitters)
	T := len(observations)

	if glog.V(3) {
		glog.Infof("hmm [%s] N: %d, T: %d", m.ModelName, N, T)
	}

	α := make([]float64, N)
	next := make([]float64, N)
	tmp := make([]float64, N)

	// 1. Initialization. Add in the log domain.
	for i := 0; i < N; i++ {
		α[i] = m.logStart[i] + m.emitters[i].LogProb(observations[0])
	}

	// 2. Induction.
	for t := 0; t < T-1; t++ {
		for j := 0; j < N; j++ {
			for i := 0; i < N; i++ {
				tmp[i] = α[i] + m.logTrans[i][j]
			}
			next[j] = floats.LogSumExp(tmp) + m.emitters[j].LogProb(observations[t+1])
			if glog.V(4) {
				glog.Infof("t: %4d | j: %2d | logAlpha: %5e", t, j, next[j])
			}
		}
		α, next = next, α
	}

	// 3. Termination.
	logProb := floats.LogSumExp(α)
	if math.IsNaN(logProb) {
		if glog.V(2) {
			glog.Infof("hmm [%s]: NaN alpha, T: %d", m.ModelName, T)
		}
	}
	return logProb
}
