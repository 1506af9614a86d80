package schema

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/parser"
	"gopkg.in/yaml.v3"
)

type (
	// Definitions is the read-only view shared by every collection, regardless
	// of the definition type it holds.
	Definitions interface {
		Len() int
		Keys() []string
		Definition(key string) (parser.Definition, bool)
	}

	// Collection holds definitions of one kind keyed by name. Keys keep the
	// position of their first declaration; a later Put with the same key
	// replaces the value in place.
	Collection[T parser.Definition] struct {
		keys  []string
		items map[string]T
	}
)

// NewCollection returns an empty collection.
func NewCollection[T parser.Definition]() *Collection[T] {
	return &Collection[T]{items: make(map[string]T)}
}

// Put stores def under key, replacing any earlier definition.
func (c *Collection[T]) Put(key string, def T) {
	if _, ok := c.items[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.items[key] = def
}

// Get returns the definition stored under key.
func (c *Collection[T]) Get(key string) (T, bool) {
	def, ok := c.items[key]
	return def, ok
}

// Definition is Get without the concrete type.
func (c *Collection[T]) Definition(key string) (parser.Definition, bool) {
	def, ok := c.items[key]
	if !ok {
		return nil, false
	}
	return def, true
}

func (c *Collection[T]) Len() int {
	return len(c.keys)
}

// Keys returns the keys in declaration order.
func (c *Collection[T]) Keys() []string {
	return slices.Clone(c.keys)
}

// All returns the definitions in declaration order.
func (c *Collection[T]) All() []T {
	defs := make([]T, 0, len(c.keys))
	for _, key := range c.keys {
		defs = append(defs, c.items[key])
	}
	return defs
}

// MarshalJSON writes the collection as an object whose members follow
// declaration order.
func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	return marshalOrderedJSON(c)
}

// MarshalYAML writes the collection as a mapping whose entries follow
// declaration order.
func (c *Collection[T]) MarshalYAML() (any, error) {
	return orderedYAMLNode(c)
}

func marshalOrderedJSON(defs Definitions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range defs.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}

		def, _ := defs.Definition(key)
		if err := writeJSONMember(&buf, key, def); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeJSONMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return errors.Wrapf(err, "failed to encode key %s", key)
	}

	v, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", key)
	}

	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func orderedYAMLNode(defs Definitions) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range defs.Keys() {
		def, _ := defs.Definition(key)
		if err := appendYAMLEntry(node, key, def); err != nil {
			return nil, err
		}
	}

	return node, nil
}

func appendYAMLEntry(node *yaml.Node, key string, value any) error {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return errors.Wrapf(err, "failed to encode %s", key)
	}

	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&v,
	)
	return nil
}
