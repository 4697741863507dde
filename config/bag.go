package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

// Bag is an ordered behavior bag: arbitrary optional behavior keys mapped
// to their declared values. JSON and YAML object key order is preserved
// because resolved behavior records must keep the declaration order; a
// plain map would lose it.
type Bag []BagEntry

// BagEntry is one key/value pair of a behavior bag.
type BagEntry struct {
	Key   string
	Value any
}

// Get returns the value declared for key.
func (b Bag) Get(key string) (any, bool) {
	for _, e := range b {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Set replaces the value for key in place, or appends a new entry.
func (b *Bag) Set(key string, value any) {
	for i := range *b {
		if (*b)[i].Key == key {
			(*b)[i].Value = value
			return
		}
	}
	*b = append(*b, BagEntry{Key: key, Value: value})
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (b *Bag) UnmarshalJSON(data []byte) error {
	parsed := gjson.ParseBytes(data)
	if parsed.Type == gjson.Null {
		*b = nil
		return nil
	}
	if !parsed.IsObject() {
		return fmt.Errorf("behavior must be an object")
	}
	var entries Bag
	parsed.ForEach(func(key, value gjson.Result) bool {
		entries = append(entries, BagEntry{Key: key.String(), Value: value.Value()})
		return true
	})
	*b = entries
	return nil
}

// MarshalJSON writes the bag back as an object in declaration order.
func (b Bag) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping preserving key order.
func (b *Bag) UnmarshalYAML(data []byte) error {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return err
	}
	var entries Bag
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("behavior keys must be strings, got %T", item.Key)
		}
		entries = append(entries, BagEntry{Key: key, Value: item.Value})
	}
	*b = entries
	return nil
}

// MarshalYAML writes the bag as an ordered mapping.
func (b Bag) MarshalYAML() ([]byte, error) {
	ms := make(yaml.MapSlice, 0, len(b))
	for _, e := range b {
		ms = append(ms, yaml.MapItem{Key: e.Key, Value: e.Value})
	}
	return yaml.Marshal(ms)
}
