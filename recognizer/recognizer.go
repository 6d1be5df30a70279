// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package recognizer classifies observation sequences by likelihood.

Each test item is scored against every model in a model set. The result
for an item is a ScoreMap with one entry per label and the guess is the
label with the highest score:

	scores, guesses, err := recognizer.Recognize(models, testSet)

A model that fails to score an item gets NoScore (negative infinity) for
that item; the failure is not returned. Ties are broken by model set
order: the first label with the maximum score wins.
*/
package recognizer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/akualab/signrec/model"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// ErrNoModels is returned when the model set is nil or empty.
var ErrNoModels = errors.New("recognizer: empty model set")

type config struct {
	workers int
	metrics *Metrics
	verbose bool
}

// Option type is used to pass options to Recognize().
type Option func(*config)

// Workers sets the number of goroutines used to score items.
// Values less than two score items sequentially. Output does not depend
// on the number of workers.
func Workers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithMetrics updates m while scoring.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// Verbose lets models emit numerical warnings. By default warnings are
// suppressed for the duration of the call.
func Verbose(flag bool) Option {
	return func(c *config) { c.verbose = flag }
}

// outcome is the result of one scoring call.
type outcome struct {
	score float64
	err   error
}

// NaN can't be compared so it counts as a failure.
func (o outcome) failed() bool {
	return o.err != nil || math.IsNaN(o.score)
}

func (o outcome) value() float64 {
	if o.failed() {
		return NoScore
	}
	return o.score
}

// Recognize scores every item of testSet against every model and returns
// one ScoreMap and one guess per item, in item order.
//
// Errors returned by a model are recorded as NoScore. Errors returned by
// testSet are returned to the caller.
func Recognize(models *model.ModelSet, testSet model.Collection, options ...Option) ([]*ScoreMap, []string, error) {

	c := &config{}
	for _, option := range options {
		option(c)
	}
	if models.Len() == 0 {
		return nil, nil, ErrNoModels
	}

	ctx := model.WithQuiet(context.Background(), !c.verbose)
	labels := models.Labels()
	n := testSet.NumItems()
	probabilities := make([]*ScoreMap, n)
	guesses := make([]string, n)

	score := func(i int) error {
		obs, lengths, err := testSet.Item(i)
		if err != nil {
			return fmt.Errorf("recognizer: item %d: %w", i, err)
		}
		sm := scoreItem(ctx, models, labels, obs, lengths, c.metrics)
		probabilities[i] = sm
		guesses[i], _ = sm.Best()
		if glog.V(3) {
			glog.Infof("item %d: guess [%s]", i, guesses[i])
		}
		return nil
	}

	if c.workers < 2 {
		for i := 0; i < n; i++ {
			if err := score(i); err != nil {
				return nil, nil, err
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(c.workers)
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error { return score(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	}
	glog.V(2).Infof("recognized %d items with %d models", n, len(labels))
	return probabilities, guesses, nil
}

func scoreItem(ctx context.Context, models *model.ModelSet, labels []string,
	obs [][]float64, lengths []int, metrics *Metrics) *ScoreMap {

	start := time.Now()
	sm := NewScoreMap(len(labels))
	for _, label := range labels {
		m, _ := models.Get(label)
		var o outcome
		o.score, o.err = m.Score(ctx, obs, lengths)
		sm.Set(label, o.value())
		if metrics != nil {
			metrics.Scores.Inc()
			if o.failed() {
				metrics.ScoreFailures.Inc()
			}
		}
	}
	if metrics != nil {
		metrics.Items.Inc()
		metrics.ItemSeconds.Observe(time.Since(start).Seconds())
	}
	return sm
}
