package entities

import "iter"

// Bundle keys written for every named feature.
const (
	KeyName     = "name"
	KeyNameEn   = "name_en"
	KeyNameDe   = "name_de"
	KeyLatin    = "name:latin"
	KeyNonLatin = "name:nonlatin"
	KeyNameInt  = "name_int"
)

// Names is the display name bundle derived from a feature's tags.
// It never holds an empty value: setting "" is a no-op.
type Names struct {
	keys   []string
	values map[string]string
}

// Set stores value under key unless value is empty. Replacing a key keeps
// its position.
func (n *Names) Set(key, value string) {
	if value == "" {
		return
	}
	if n.values == nil {
		n.values = make(map[string]string)
	}
	if _, ok := n.values[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.values[key] = value
}

// Get returns the value for key and whether it is present.
func (n Names) Get(key string) (string, bool) {
	v, ok := n.values[key]
	return v, ok
}

// Has reports whether key is present.
func (n Names) Has(key string) bool {
	_, ok := n.values[key]
	return ok
}

func (n Names) Len() int {
	return len(n.keys)
}

// Keys returns the keys in insertion order.
func (n Names) Keys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// All iterates over the bundle in insertion order.
func (n Names) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range n.keys {
			if !yield(k, n.values[k]) {
				return
			}
		}
	}
}

// Map returns a copy of the bundle as a plain map.
func (n Names) Map() map[string]string {
	m := make(map[string]string, len(n.keys))
	for _, k := range n.keys {
		m[k] = n.values[k]
	}
	return m
}

// MarshalJSON writes the bundle as a JSON object in insertion order.
func (n Names) MarshalJSON() ([]byte, error) {
	return marshalOrdered(n.All())
}

// UnmarshalJSON reads a JSON object, dropping empty values.
func (n *Names) UnmarshalJSON(data []byte) error {
	var t Tags
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = Names{}
	for k, v := range t.All() {
		n.Set(k, v)
	}
	return nil
}
