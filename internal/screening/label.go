package screening

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Label is one of the three tracked conclusions.
type Label int

const (
	Diabetes Label = iota
	PreDiabetes
	Normal

	labelCount = 3
)

// Labels lists the conclusions in their fixed comparison order.
var Labels = [labelCount]Label{Diabetes, PreDiabetes, Normal}

var labelNames = [labelCount]string{"Diabetes", "Pre-diabetes", "Normal"}

func (l Label) String() string {
	if !l.valid() {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

func (l Label) valid() bool {
	return l >= 0 && l < labelCount
}

func (l Label) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, fmt.Errorf("unknown label %d", int(l))
	}
	return []byte(labelNames[l]), nil
}

func (l *Label) UnmarshalText(text []byte) error {
	for i, name := range labelNames {
		if string(text) == name {
			*l = Label(i)
			return nil
		}
	}
	return fmt.Errorf("unknown label %q", text)
}

// Scores holds the accumulated certainty per conclusion.
type Scores [labelCount]float64

// Get returns the certainty for l.
func (s Scores) Get(l Label) float64 {
	if !l.valid() {
		return 0
	}
	return s[l]
}

// Best returns the label with the highest certainty. Ties go to the label
// that comes first in Labels.
func (s Scores) Best() (Label, float64) {
	best := Labels[0]
	for _, l := range Labels[1:] {
		if s[l] > s[best] {
			best = l
		}
	}
	return best, s[best]
}

// MarshalJSON writes an object with keys in label order.
func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range Labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(l.String())
		val, err := json.Marshal(s[l])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Scores) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Scores
	for name, v := range raw {
		var l Label
		if err := l.UnmarshalText([]byte(name)); err != nil {
			return err
		}
		out[l] = v
	}
	*s = out
	return nil
}

// MarshalYAML writes a mapping with keys in label order.
func (s Scores) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, l := range Labels {
		var val yaml.Node
		if err := val.Encode(s[l]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: l.String()},
			&val,
		)
	}
	return node, nil
}

func (s *Scores) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]float64
	if err := value.Decode(&raw); err != nil {
		return err
	}
	var out Scores
	for name, v := range raw {
		var l Label
		if err := l.UnmarshalText([]byte(name)); err != nil {
			return err
		}
		out[l] = v
	}
	*s = out
	return nil
}
