package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"sort"
)

// Tag is one key/value pair of a map feature.
type Tag struct {
	Key   string
	Value string
}

// Tags is the tag dictionary of a map feature.
//
// Entries keep the order in which they were first added: JSON object order when
// decoded, row order when built from the database. The order is deterministic
// for a given input but is not sorted; the name fallback scan depends on it.
// Setting an existing key replaces its value and keeps its position.
type Tags struct {
	entries []Tag
	index   map[string]int
}

// NewTags builds Tags from alternating key, value arguments.
// A trailing key without a value is ignored.
func NewTags(kv ...string) Tags {
	var t Tags
	for i := 0; i+1 < len(kv); i += 2 {
		t.Set(kv[i], kv[i+1])
	}
	return t
}

// TagsFromMap builds Tags from a plain map. Go maps carry no order, so keys are
// sorted to keep the result reproducible.
func TagsFromMap(m map[string]string) Tags {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var t Tags
	for _, k := range keys {
		t.Set(k, m[k])
	}
	return t
}

// Set adds or replaces the value for key.
func (t *Tags) Set(key, value string) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[key]; ok {
		t.entries[i].Value = value
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, Tag{Key: key, Value: value})
}

// Get returns the value for key and whether the key is present.
func (t Tags) Get(key string) (string, bool) {
	i, ok := t.index[key]
	if !ok {
		return "", false
	}
	return t.entries[i].Value, true
}

// Value returns the value for key, or "" if it is missing.
func (t Tags) Value(key string) string {
	v, _ := t.Get(key)
	return v
}

// Len returns the number of tags.
func (t Tags) Len() int {
	return len(t.entries)
}

// All iterates over the tags in order.
func (t Tags) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, e := range t.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Map returns a copy of the tags as a plain map.
func (t Tags) Map() map[string]string {
	m := make(map[string]string, len(t.entries))
	for _, e := range t.entries {
		m[e.Key] = e.Value
	}
	return m
}

// MarshalJSON writes the tags as a JSON object in tag order.
func (t Tags) MarshalJSON() ([]byte, error) {
	return marshalOrdered(t.All())
}

// UnmarshalJSON reads a JSON object keeping its key order. String values are
// taken verbatim, null values are dropped and any other value keeps its
// compact JSON text.
func (t *Tags) UnmarshalJSON(data []byte) error {
	*t = Tags{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode tags: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode tags: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode tags: unexpected key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode tag %q: %w", key, err)
		}
		value, present, err := rawToValue(raw)
		if err != nil {
			return fmt.Errorf("decode tag %q: %w", key, err)
		}
		if present {
			t.Set(key, value)
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}
	return nil
}

func rawToValue(raw json.RawMessage) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return "", false, nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", false, err
		}
		return buf.String(), true, nil
	}
}

func marshalOrdered(seq iter.Seq2[string, string]) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for k, v := range seq {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
