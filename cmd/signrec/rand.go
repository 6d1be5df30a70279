// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/akualab/signrec"
	"github.com/akualab/signrec/model"
	"github.com/akualab/signrec/model/hmm"
	"github.com/golang/glog"
)

const (
	defaultRandCount  = 10
	defaultRandSeqs   = 1
	defaultRandLength = 20
)

func doRand() {

	requiredStringParam("models", *randModels, &config.ModelSet)
	intParam(*randCount, &config.Rand.Count)
	intParam(*randSeqs, &config.Rand.Seqs)
	intParam(*randLength, &config.Rand.Length)
	if *randSeed != 0 {
		config.Rand.Seed = *randSeed
	}
	signrec.Fatal(config.Validate())
	if config.Rand.Count == 0 {
		config.Rand.Count = defaultRandCount
	}
	if config.Rand.Seqs == 0 {
		config.Rand.Seqs = defaultRandSeqs
	}
	if config.Rand.Length == 0 {
		config.Rand.Length = defaultRandLength
	}
	if config.Rand.Seed == 0 {
		config.Rand.Seed = model.DefaultSeed
	}

	models, err := hmm.ReadModelsFile(config.ModelSet)
	signrec.Fatal(err)

	var w io.Writer = os.Stdout
	if len(*randOut) > 0 {
		checkDir(filepathDir(*randOut))
		f, err := os.Create(*randOut)
		signrec.Fatal(err)
		defer f.Close()
		w = f
	}

	sc, err := generate(models, config.Rand)
	signrec.Fatal(err)
	signrec.Fatal(sc.Write(w))
	glog.Infof("generated %d items", sc.NumItems())
}

// generate samples items from each model, model by model.
func generate(models []*hmm.Model, p signrec.Rand) (*model.SeqCollection, error) {

	sc := model.NewSeqCollection()
	for k, m := range models {
		gen, err := hmm.NewGenerator(m, p.Seed+int64(k))
		if err != nil {
			return nil, err
		}
		for i := 0; i < p.Count; i++ {
			x, lengths, err := gen.Seq(p.Seqs, p.Length)
			if err != nil {
				return nil, err
			}
			sc.Seqs = append(sc.Seqs, model.Seq{
				ID:      fmt.Sprintf("%s-%d", m.Name(), i),
				Label:   m.Name(),
				Vectors: x,
				Lengths: lengths,
			})
		}
	}
	return sc, nil
}

func filepathDir(fn string) string {
	dir := filepath.Dir(fn)
	if dir == "." {
		return ""
	}
	return dir
}
