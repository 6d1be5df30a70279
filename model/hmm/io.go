// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/akualab/signrec/model"
	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
)

// ReadModels reads a collection of HMMs. The data is a stream of JSON
// objects, one model per line. Models are not initialized; parameter
// errors are reported when the model is used.
func ReadModels(r io.Reader) ([]*Model, error) {

	var models []*Model
	dec := json.NewDecoder(r)
	for {
		m := new(Model)
		err := dec.Decode(m)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading hmm #%d: %w", len(models), err)
		}
		models = append(models, m)
	}
	return models, nil
}

// NewModelSet builds a model set keyed by model name, in slice order.
// All naming problems are reported together.
func NewModelSet(models []*Model) (*model.ModelSet, error) {

	var result error
	ms := model.NewModelSet()
	for i, m := range models {
		if m == nil {
			result = multierror.Append(result, fmt.Errorf("hmm #%d is null", i))
			continue
		}
		if err := ms.Add(m.ModelName, m); err != nil {
			result = multierror.Append(result, fmt.Errorf("hmm #%d: %w", i, err))
		}
	}
	if result != nil {
		return nil, result
	}
	return ms, nil
}

// ReadModelSet reads a collection of HMMs into a model set. See ReadModels().
func ReadModelSet(r io.Reader) (*model.ModelSet, error) {

	models, err := ReadModels(r)
	if err != nil {
		return nil, err
	}
	return NewModelSet(models)
}

// ReadModelSetFile reads a model set from a file. See ReadModelSet().
func ReadModelSetFile(fn string) (*model.ModelSet, error) {

	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	glog.Infof("reading models from file %s", fn)
	return ReadModelSet(f)
}

// ReadModelsFile reads a collection of HMMs from a file. See ReadModels().
func ReadModelsFile(fn string) ([]*Model, error) {

	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadModels(f)
}

// WriteModels writes a collection of HMMs, one JSON object per line.
func WriteModels(w io.Writer, models []*Model) error {

	enc := json.NewEncoder(w)
	for _, m := range models {
		glog.V(4).Infof("write hmm %+v", m)
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}

// WriteModelsFile writes a collection of HMMs to a file.
func WriteModelsFile(fn string, models []*Model) error {

	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return err
	}
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteModels(f, models); err != nil {
		return err
	}
	glog.Infof("wrote %d models to file %s", len(models), fn)
	return nil
}
