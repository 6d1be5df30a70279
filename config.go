// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package signrec

import (
	"fmt"
	"io/ioutil"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v2"
)

// Config holds the parameters of a recognition run.
// Command flags overwrite config file params.
type Config struct {
	ModelSet    string `yaml:"model_set" json:"model_set"`
	TestSet     string `yaml:"test_set" json:"test_set"`
	ResultsFile string `yaml:"results_file,omitempty" json:"results_file,omitempty"`
	Workers     int    `yaml:"workers,omitempty" json:"workers,omitempty"`
	Verbose     bool   `yaml:"verbose,omitempty" json:"verbose,omitempty"`

	Rand Rand `yaml:"rand,omitempty" json:"rand,omitempty"`
}

// Rand holds the parameters of the random data generator.
type Rand struct {
	Count  int   `yaml:"count,omitempty" json:"count,omitempty"`
	Seqs   int   `yaml:"seqs,omitempty" json:"seqs,omitempty"`
	Length int   `yaml:"length,omitempty" json:"length,omitempty"`
	Seed   int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// ReadConfig reads a YAML config file.
func ReadConfig(fn string) (*Config, error) {

	data, err := ioutil.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config file %s: %w", fn, err)
	}
	return config, nil
}

// Validate reports every invalid parameter.
func (c *Config) Validate() error {

	var result error
	if c.Workers < 0 {
		result = multierror.Append(result, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.Rand.Count < 0 {
		result = multierror.Append(result, fmt.Errorf("rand.count must be >= 0, got %d", c.Rand.Count))
	}
	if c.Rand.Seqs < 0 {
		result = multierror.Append(result, fmt.Errorf("rand.seqs must be >= 0, got %d", c.Rand.Seqs))
	}
	if c.Rand.Length < 0 {
		result = multierror.Append(result, fmt.Errorf("rand.length must be >= 0, got %d", c.Rand.Length))
	}
	return result
}
