// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/akualab/signrec"
	"github.com/golang/glog"
)

func doReport() {

	f, err := os.Open(*reportResults)
	signrec.Fatal(err)
	defer f.Close()

	results, err := signrec.ReadResults(f)
	signrec.Fatal(err)
	rep := signrec.NewReport(results)
	if rep.N < len(results) {
		glog.Warningf("%d results have no reference label", len(results)-rep.N)
	}
	signrec.Fatal(rep.Write(os.Stdout))
}
