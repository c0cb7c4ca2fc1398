package table

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is one row viewed through the table header.
type Record struct {
	columns []string
	values  []string
}

// Columns returns the header the record is bound to.
func (r Record) Columns() []string {
	return r.columns
}

// Values returns a copy of the record's fields in column order.
func (r Record) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Get returns the field under column name.
func (r Record) Get(name string) (string, bool) {
	for i, col := range r.columns {
		if col == name {
			return r.values[i], true
		}
	}
	return "", false
}

// MarshalJSON encodes the record as an object in header order with
// display-inferred scalars.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(Infer(r.values[i]))
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a mapping in header order.
func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, col := range r.columns {
		var val yaml.Node
		if err := val.Encode(Infer(r.values[i])); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
			&val,
		)
	}
	return node, nil
}

// Infer converts a field to the scalar it most likely denotes, for display:
// nil for an empty field, int64 or float64 for numbers, bool for true/false
// in any case, otherwise the string itself. NaN and infinities stay strings.
func Infer(s string) interface{} {
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) && !isHexFloat(s) {
		return v
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

func isHexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
