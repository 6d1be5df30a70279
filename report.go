package signrec

import (
	"fmt"
	"io"
)

// Report summarizes recognition errors against reference labels.
type Report struct {
	N      int
	Errors int
	Misses []Result
}

// WER is the word error rate, errors / N.
func (r Report) WER() float64 {
	if r.N == 0 {
		return 0
	}
	return float64(r.Errors) / float64(r.N)
}

// NewReport compares hypotheses with references. Results without a
// reference are skipped.
func NewReport(results []Result) Report {

	var rep Report
	for _, r := range results {
		if len(r.Ref) == 0 {
			continue
		}
		rep.N++
		if r.Hyp != r.Ref {
			rep.Errors++
			rep.Misses = append(rep.Misses, r)
		}
	}
	return rep
}

// Write prints the report. Misses are listed as "*hyp ref".
func (r Report) Write(w io.Writer) error {

	if _, err := fmt.Fprintf(w, "WER = %.4f\nTotal correct: %d out of %d\n", r.WER(), r.N-r.Errors, r.N); err != nil {
		return err
	}
	if len(r.Misses) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%-10s %-15s %-15s\n", "ID", "HYP", "REF"); err != nil {
		return err
	}
	for _, m := range r.Misses {
		if _, err := fmt.Fprintf(w, "%-10s *%-14s %-15s\n", m.ID, m.Hyp, m.Ref); err != nil {
			return err
		}
	}
	return nil
}
