// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"time"

	"github.com/akualab/signrec"
	"github.com/akualab/signrec/model"
	"github.com/akualab/signrec/model/hmm"
	"github.com/akualab/signrec/recognizer"
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
)

func doRecognize() {

	// Validate parameters. Command flags overwrite config file params.
	requiredStringParam("models", *recognizeModels, &config.ModelSet)
	requiredStringParam("test", *recognizeTest, &config.TestSet)
	stringParam(*recognizeResults, &config.ResultsFile)
	intParam(*recognizeWorkers, &config.Workers)
	if *recognizeVerbose {
		config.Verbose = true
	}
	signrec.Fatal(config.Validate())
	glog.Infof("configuration:\n%+v", config)

	reg := prometheus.NewRegistry()
	signrec.Fatal(runRecognize(config, reg))

	if len(*recognizeMetrics) > 0 {
		signrec.Fatal(prometheus.WriteToTextfile(*recognizeMetrics, reg))
		glog.Infof("wrote metrics to %s", *recognizeMetrics)
	}
}

// runRecognize scores the test set and writes the results. The results
// file is only created once recognition succeeds.
func runRecognize(cfg *signrec.Config, reg prometheus.Registerer) error {

	models, err := hmm.ReadModelSetFile(cfg.ModelSet)
	if err != nil {
		return err
	}
	testSet, err := model.ReadSeqCollectionFile(cfg.TestSet)
	if err != nil {
		return err
	}
	glog.Infof("scoring %d items with %d models", testSet.NumItems(), models.Len())

	metrics, err := recognizer.NewMetrics(reg)
	if err != nil {
		return err
	}

	start := time.Now()
	scores, guesses, err := recognizer.Recognize(models, testSet,
		recognizer.Workers(cfg.Workers),
		recognizer.Verbose(cfg.Verbose),
		recognizer.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}
	glog.Infof("recognized %d items in %v", len(guesses), time.Since(start))

	results, err := signrec.NewResults(testSet.IDs(), testSet.Labels(), scores, guesses)
	if err != nil {
		return err
	}

	if len(cfg.ResultsFile) == 0 {
		glog.Infof("no results file specified, writing to stdout")
		return signrec.WriteResults(os.Stdout, results)
	}
	checkDir(filepathDir(cfg.ResultsFile))
	f, err := os.Create(cfg.ResultsFile)
	if err != nil {
		return err
	}
	if err := signrec.WriteResults(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
