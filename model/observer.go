package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
)

// Seq is a data format to represent a sequence of observation vectors.
// We use it to read json data.
type Seq struct {
	ID      string      `json:"id"`
	Label   string      `json:"label,omitempty"`
	Vectors [][]float64 `json:"vectors"`
	Lengths []int       `json:"lengths,omitempty"`
}

// SeqCollection implements the Collection interface using a slice of Seq values.
// The item index is the position in the slice.
type SeqCollection struct {
	Seqs []Seq
}

// NewSeqCollection creates a collection from sequences.
func NewSeqCollection(seqs ...Seq) *SeqCollection {
	return &SeqCollection{Seqs: seqs}
}

// NumItems implements the Collection interface.
func (sc *SeqCollection) NumItems() int { return len(sc.Seqs) }

// Item implements the Collection interface.
func (sc *SeqCollection) Item(i int) ([][]float64, []int, error) {
	if i < 0 || i >= len(sc.Seqs) {
		return nil, nil, fmt.Errorf("item index [%d] out of range [0, %d)", i, len(sc.Seqs))
	}
	s := sc.Seqs[i]
	return s.Vectors, s.Lengths, nil
}

// Labels returns the reference labels in item order.
func (sc *SeqCollection) Labels() []string {
	labels := make([]string, len(sc.Seqs))
	for i, s := range sc.Seqs {
		labels[i] = s.Label
	}
	return labels
}

// IDs returns the item ids in item order.
func (sc *SeqCollection) IDs() []string {
	ids := make([]string, len(sc.Seqs))
	for i, s := range sc.Seqs {
		ids[i] = s.ID
	}
	return ids
}

// ReadSeqCollection reads a stream of JSON-encoded Seq values.
// Each JSON object must be separated by a newline. Items are indexed in
// the order they are read. A Seq without an id gets its index as id.
//
// Example to create a collection from a file (error handling ignored for brevity).
//
//   r, _ := os.Open(fn)               // Open file.
//   sc, _ := ReadSeqCollection(r)     // Read all sequences.
//   x, lengths, _ := sc.Item(0)       // Access the first item.
func ReadSeqCollection(r io.Reader) (*SeqCollection, error) {

	sc := &SeqCollection{}
	dec := json.NewDecoder(r)
	for {
		var v Seq
		err := dec.Decode(&v)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading sequence #%d: %w", len(sc.Seqs), err)
		}
		if len(v.ID) == 0 {
			v.ID = fmt.Sprintf("%d", len(sc.Seqs))
		}
		sc.Seqs = append(sc.Seqs, v)
	}
	glog.V(2).Infof("read %d sequences", len(sc.Seqs))
	return sc, nil
}

// ReadSeqCollectionFile reads a collection from a file. See ReadSeqCollection().
func ReadSeqCollectionFile(fn string) (*SeqCollection, error) {

	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSeqCollection(f)
}

// Write writes the collection as a stream of JSON objects, one per line.
func (sc *SeqCollection) Write(w io.Writer) error {

	enc := json.NewEncoder(w)
	for _, s := range sc.Seqs {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}
