package recognizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/akualab/signrec/floatx"
)

// NoScore is the score recorded for a label whose model failed to score an item.
var NoScore = math.Inf(-1)

// ScoreMap maps labels to log-likelihoods for one item.
// Labels are enumerated in the order they were added, which is the order
// of the model set.
type ScoreMap struct {
	labels []string
	scores []float64
	index  map[string]int
}

// NewScoreMap returns an empty score map with room for n labels.
func NewScoreMap(n int) *ScoreMap {
	return &ScoreMap{
		labels: make([]string, 0, n),
		scores: make([]float64, 0, n),
		index:  make(map[string]int, n),
	}
}

// Set records the score for label. An existing label keeps its position.
func (sm *ScoreMap) Set(label string, score float64) {
	if i, ok := sm.index[label]; ok {
		sm.scores[i] = score
		return
	}
	sm.index[label] = len(sm.labels)
	sm.labels = append(sm.labels, label)
	sm.scores = append(sm.scores, score)
}

// Score returns the score for label.
func (sm *ScoreMap) Score(label string) (float64, bool) {
	i, ok := sm.index[label]
	if !ok {
		return 0, false
	}
	return sm.scores[i], true
}

// Labels returns a copy of the labels in order.
func (sm *ScoreMap) Labels() []string {
	return append([]string(nil), sm.labels...)
}

// Len returns the number of labels.
func (sm *ScoreMap) Len() int { return len(sm.labels) }

// Best returns the label with the highest score. When several labels share
// the maximum, the first one in order wins. If every label has NoScore,
// the first label is returned. Best returns "" for an empty map.
func (sm *ScoreMap) Best() (string, float64) {
	i := floatx.ArgMax(sm.scores)
	if i < 0 {
		return "", NoScore
	}
	return sm.labels[i], sm.scores[i]
}

// MarshalJSON encodes the map as a JSON object with keys in order.
// NoScore is encoded as null and positive infinity as the string "+Inf".
func (sm *ScoreMap) MarshalJSON() ([]byte, error) {

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range sm.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v := sm.scores[i]
		switch {
		case math.IsInf(v, -1):
			buf.WriteString("null")
			continue
		case math.IsInf(v, 1):
			buf.WriteString(`"+Inf"`)
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("label [%s]: %w", label, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the key order. A null value
// is decoded as NoScore and "+Inf" as positive infinity.
func (sm *ScoreMap) UnmarshalJSON(b []byte) error {

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("score map: expected object, got %v", tok)
	}
	m := NewScoreMap(0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("score map: expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("score map: label [%s]: %w", label, err)
		}
		v, err := decodeScore(raw)
		if err != nil {
			return fmt.Errorf("score map: label [%s]: %w", label, err)
		}
		m.Set(label, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*sm = *m
	return nil
}

func decodeScore(raw json.RawMessage) (float64, error) {

	if bytes.Equal(raw, []byte("null")) {
		return NoScore, nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, err
		}
		if str != "+Inf" {
			return 0, fmt.Errorf("invalid score %q", str)
		}
		return math.Inf(1), nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}
