package hardware

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed map that iterates in insertion order.
// Downstream slot and channel naming depends on the order in which slots
// were defined, so the YAML form is a mapping whose key order is the
// insertion order, on both save and load.
//
// The zero value is an empty map ready for use.
type OrderedMap[V any] struct {
	keys []string
	m    map[string]V
}

// Item is one key/value entry of an OrderedMap.
type Item[V any] struct {
	Key   string
	Value V
}

// Set stores v under key, appending the key if it is new and keeping its
// original position if it is not.
func (o *OrderedMap[V]) Set(key string, v V) {
	if o.m == nil {
		o.m = make(map[string]V)
	}
	if _, ok := o.m[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.m[key] = v
}

// Get returns the value stored under key.
func (o *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := o.m[key]
	return v, ok
}

// Len returns the number of entries.
func (o *OrderedMap[V]) Len() int { return len(o.keys) }

// Keys returns the keys in insertion order.  The slice is shared with the
// map and must not be modified.
func (o *OrderedMap[V]) Keys() []string { return o.keys }

// Items returns the entries in insertion order.
func (o *OrderedMap[V]) Items() []Item[V] {
	items := make([]Item[V], len(o.keys))
	for i, k := range o.keys {
		items[i] = Item[V]{k, o.m[k]}
	}
	return items
}

// Merge appends every entry of src in src's order.
func (o *OrderedMap[V]) Merge(src *OrderedMap[V]) {
	for _, k := range src.keys {
		o.Set(k, src.m[k])
	}
}

// MarshalYAML encodes the map as a YAML mapping in insertion order.
func (o OrderedMap[V]) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range o.keys {
		kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		vn := &yaml.Node{}
		if err := vn.Encode(o.m[k]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, kn, vn)
	}
	return n, nil
}

// UnmarshalYAML decodes a YAML mapping, preserving its key order.
func (o *OrderedMap[V]) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("hardware: line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		var v V
		if err := n.Content[i+1].Decode(&v); err != nil {
			return err
		}
		o.Set(n.Content[i].Value, v)
	}
	return nil
}
