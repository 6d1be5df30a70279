package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akualab/signrec"
	"github.com/akualab/signrec/model/gaussian"
	"github.com/akualab/signrec/model/hmm"
	"github.com/akualab/signrec/recognizer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(t *testing.T, name string, mean float64) *hmm.Model {
	g1, err := gaussian.NewModel(1, gaussian.Name(name+"-0"), gaussian.Mean([]float64{mean}), gaussian.StdDev([]float64{1}))
	require.NoError(t, err)
	g2, err := gaussian.NewModel(1, gaussian.Name(name+"-1"), gaussian.Mean([]float64{mean + 1}), gaussian.StdDev([]float64{1}))
	require.NoError(t, err)
	m, err := hmm.NewModel(hmm.Name(name), hmm.StartProb([]float64{1, 0}),
		hmm.TransProb([][]float64{{0.8, 0.2}, {0, 1}}), hmm.Gaussians(g1, g2))
	require.NoError(t, err)
	return m
}

func TestParams(t *testing.T) {

	s := "from-config"
	stringParam("", &s)
	assert.Equal(t, "from-config", s)
	stringParam("from-flag", &s)
	assert.Equal(t, "from-flag", s)

	n := 3
	intParam(-1, &n)
	assert.Equal(t, 3, n)
	intParam(0, &n)
	assert.Equal(t, 0, n)
}

func TestGenerateAndRecognize(t *testing.T) {

	models := []*hmm.Model{word(t, "JOHN", 0), word(t, "MARY", 20)}
	sc, err := generate(models, signrec.Rand{Count: 3, Seqs: 2, Length: 5, Seed: 1})
	require.NoError(t, err)
	require.Equal(t, 6, sc.NumItems())
	assert.Equal(t, []string{"JOHN", "JOHN", "JOHN", "MARY", "MARY", "MARY"}, sc.Labels())
	assert.Equal(t, "MARY-2", sc.IDs()[5])
	assert.Len(t, sc.Seqs[0].Vectors, 10)
	assert.Equal(t, []int{5, 5}, sc.Seqs[0].Lengths)

	ms, err := hmm.NewModelSet(models)
	require.NoError(t, err)
	scores, guesses, err := recognizer.Recognize(ms, sc, recognizer.Workers(2))
	require.NoError(t, err)
	assert.Equal(t, sc.Labels(), guesses)

	results, err := signrec.NewResults(sc.IDs(), sc.Labels(), scores, guesses)
	require.NoError(t, err)
	rep := signrec.NewReport(results)
	assert.Equal(t, 6, rep.N)
	assert.Equal(t, 0, rep.Errors)
}

func TestFilepathDir(t *testing.T) {
	assert.Equal(t, "", filepathDir("results.json"))
	assert.Equal(t, "out", filepathDir("out/results.json"))
}

func TestRunRecognize(t *testing.T) {

	dir := t.TempDir()
	models := []*hmm.Model{word(t, "JOHN", 0), word(t, "MARY", 20)}
	modelsFile := filepath.Join(dir, "models.json")
	require.NoError(t, hmm.WriteModelsFile(modelsFile, models))

	sc, err := generate(models, signrec.Rand{Count: 2, Seqs: 1, Length: 8, Seed: 3})
	require.NoError(t, err)
	testFile := filepath.Join(dir, "test.json")
	f, err := os.Create(testFile)
	require.NoError(t, err)
	require.NoError(t, sc.Write(f))
	require.NoError(t, f.Close())

	cfg := &signrec.Config{
		ModelSet:    modelsFile,
		TestSet:     testFile,
		ResultsFile: filepath.Join(dir, "out", "results.json"),
	}
	require.NoError(t, runRecognize(cfg, prometheus.NewRegistry()))

	rf, err := os.Open(cfg.ResultsFile)
	require.NoError(t, err)
	defer rf.Close()
	results, err := signrec.ReadResults(rf)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, 0, signrec.NewReport(results).Errors)
}

func TestRunRecognizeBadModelsLeavesNoResults(t *testing.T) {

	dir := t.TempDir()
	cfg := &signrec.Config{
		ModelSet:    filepath.Join(dir, "missing.json"),
		TestSet:     filepath.Join(dir, "test.json"),
		ResultsFile: filepath.Join(dir, "results.json"),
	}
	require.Error(t, runRecognize(cfg, nil))
	_, err := os.Stat(cfg.ResultsFile)
	assert.True(t, os.IsNotExist(err))
}
