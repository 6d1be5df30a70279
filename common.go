// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package signrec recognizes words from observation sequences using one
// trained sequence model per word. See package recognizer for the scoring
// loop and package model for the interfaces it consumes.
package signrec

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/akualab/signrec/recognizer"
	"github.com/golang/glog"
)

// Result is the recognition result for one test item.
type Result struct {
	ID     string               `json:"id"`
	Ref    string               `json:"ref,omitempty"`
	Hyp    string               `json:"hyp"`
	Scores *recognizer.ScoreMap `json:"scores,omitempty"`
}

// NewResults zips recognizer output with item ids and reference labels.
// refs may be nil.
func NewResults(ids, refs []string, scores []*recognizer.ScoreMap, guesses []string) ([]Result, error) {

	if len(ids) != len(guesses) || len(scores) != len(guesses) {
		return nil, fmt.Errorf("results: [%d] ids, [%d] score maps and [%d] guesses", len(ids), len(scores), len(guesses))
	}
	if refs != nil && len(refs) != len(guesses) {
		return nil, fmt.Errorf("results: [%d] refs for [%d] guesses", len(refs), len(guesses))
	}
	results := make([]Result, len(guesses))
	for i := range guesses {
		results[i] = Result{ID: ids[i], Hyp: guesses[i], Scores: scores[i]}
		if refs != nil {
			results[i].Ref = refs[i]
		}
	}
	return results, nil
}

// WriteResults writes one JSON object per line.
func WriteResults(w io.Writer, results []Result) error {

	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// ReadResults reads a stream of JSON results separated by newlines.
func ReadResults(r io.Reader) ([]Result, error) {

	var results []Result
	reader := bufio.NewReader(r)
	for {
		b, eb := reader.ReadBytes('\n')
		if len(b) > 0 {
			result := Result{}
			if e := json.Unmarshal(b, &result); e != nil {
				return nil, fmt.Errorf("result #%d: %w", len(results), e)
			}
			results = append(results, result)
		}
		if eb == io.EOF {
			break
		}
		if eb != nil {
			return nil, eb
		}
	}
	return results, nil
}

// Fatal logs err and exits if err is not nil.
func Fatal(err error) {
	if err != nil {
		glog.Fatal(err)
	}
}
