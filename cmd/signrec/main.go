// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command signrec recognizes words from observation sequences using a set
// of trained HMMs, one per word.
//
//   $ signrec recognize --models hmms.json --test test.json --results results.json
//   $ signrec report --results results.json
//   $ signrec rand --models hmms.json --count 10 --out test.json
package main

import (
	"errors"
	"flag"
	"os"
	osuser "os/user"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/akualab/signrec"
	"github.com/golang/glog"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	appName    = "signrec"
	appVersion = "0.1"
	timeLayout = time.RFC3339
)

var (
	props  *Properties
	logDir *string
	config *signrec.Config
)

var (
	app         = kingpin.New(appName, "Word recognizer: scores observation sequences against one HMM per word.")
	logToStderr = app.Flag("log-stderr", "Logs are written to standard error instead of files.").Default("true").Bool()
	vLevel      = app.Flag("log-level", "Enable V-leveled logging at the specified level.").Default("0").Short('v').String()
	configFile  = app.Flag("config", "Config file (yaml).").Short('c').String()

	recognize        = app.Command("recognize", "Score a test set and pick the best label for each item.")
	recognizeModels  = recognize.Flag("models", "Model set file (JSON lines).").Short('m').String()
	recognizeTest    = recognize.Flag("test", "Test set file (JSON lines).").Short('t').String()
	recognizeResults = recognize.Flag("results", "Results file. Writes to stdout if omitted.").Short('r').String()
	recognizeWorkers = recognize.Flag("workers", "Number of goroutines used to score items.").Default("-1").Int()
	recognizeVerbose = recognize.Flag("verbose", "Show numerical warnings from models.").Bool()
	recognizeMetrics = recognize.Flag("metrics-file", "Write metrics in the Prometheus text format to this file.").String()

	report        = app.Command("report", "Print the word error rate of a results file.")
	reportResults = report.Flag("results", "Results file.").Short('r').Required().ExistingFile()

	rand       = app.Command("rand", "Generate random test data using the models.")
	randModels = rand.Flag("models", "Model set file (JSON lines).").Short('m').String()
	randCount  = rand.Flag("count", "Number of items per model.").Default("-1").Int()
	randSeqs   = rand.Flag("seqs", "Number of sequences per item.").Default("-1").Int()
	randLength = rand.Flag("length", "Number of frames per sequence.").Default("-1").Int()
	randSeed   = rand.Flag("seed", "Seed for random number generator.").Default("0").Int64()
	randOut    = rand.Flag("out", "Output test set file. Writes to stdout if omitted.").Short('o').String()
)

// Properties of signrec.
type Properties struct {
	Workspace string `toml:"workspace_dir"`
	LogDir    string `toml:"log_dir"`
}

func init() {
	currDir, e1 := os.Getwd()
	signrec.Fatal(e1)
	propPath := currDir
	u, e2 := osuser.Current()
	if e2 == nil {
		propPath = filepath.Join(u.HomeDir, ".config", appName)
	}
	propPath = filepath.Join(propPath, "properties.toml")
	propEnvVar := os.Getenv("SIGNREC_PROPERTIES")
	if len(propEnvVar) > 0 {
		propPath = propEnvVar
	}

	// Read toml properties file from propPath.
	props = new(Properties)
	if _, e3 := toml.DecodeFile(propPath, props); e3 != nil && !errors.Is(e3, os.ErrNotExist) {
		signrec.Fatal(e3)
	}
	defaultLogDir := filepath.Join(currDir, "log")
	if len(props.LogDir) > 0 {
		defaultLogDir = props.LogDir
	}
	logDir = app.Flag("log", "Log output dir.").Default(defaultLogDir).String()
}

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	app.Version(appVersion)
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	initGlog()
	defer glog.Flush()
	printAppValues()
	checkDir(props.Workspace)
	initConfig()

	switch cmd {

	case recognize.FullCommand():
		glog.V(3).Info("start recognize command")
		doRecognize()

	case report.FullCommand():
		glog.V(3).Info("start report command")
		doReport()

	case rand.FullCommand():
		glog.V(3).Info("start rand command")
		doRand()

	default:
		app.Usage(os.Args[1:])
	}
}

// Reads the config file if provided. Otherwise starts from an empty config.
func initConfig() {

	config = new(signrec.Config)
	if len(*configFile) > 0 {
		var err error
		config, err = signrec.ReadConfig(*configFile)
		signrec.Fatal(err)
		glog.Infof("read configuration from %s", *configFile)
	}
}

// Flag value overwrites config value if the flag was set.
func stringParam(flag string, param *string) {
	if len(flag) > 0 {
		*param = flag
	}
}

// Like stringParam but fails if no value is available.
func requiredStringParam(name, flag string, param *string) {
	stringParam(flag, param)
	if len(*param) == 0 {
		glog.Fatalf("missing value for %s, use flag or config file", name)
	}
}

// Flag value overwrites config value if the flag is not negative.
func intParam(flag int, param *int) {
	if flag >= 0 {
		*param = flag
	}
}

// Creates dir if it doesn't exist.
func checkDir(path string) {

	if len(path) == 0 {
		return
	}
	e := os.MkdirAll(path, 0755)
	if e != nil {
		glog.Fatal(e)
	}
}

func initGlog() {

	checkDir(*logDir)
	if *logToStderr {
		flag.Set("alsologtostderr", "true")
	}
	flag.Set("v", *vLevel)
	flag.Set("log_dir", *logDir)
}

func printAppValues() {
	glog.Info("app properties: ", *props)
	glog.Info("app version: ", appVersion)
	glog.Info("app start time: ", time.Now().Format(timeLayout))
	glog.Info("app log to std err: ", *logToStderr)
	glog.Info("app log level: ", *vLevel)
	glog.Info("app log dir: ", *logDir)
}
