package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type kind int

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

func (k kind) String() string {
	return [...]string{"null", "boolean", "number", "string", "array", "object"}[k]
}

// node is a decoded JSON value that remembers where it started.
type node struct {
	kind   kind
	line   int
	str    string
	num    json.Number
	fields map[string]*node
	items  []*node
}

func (n *node) field(name string) (*node, bool) {
	if n == nil || n.kind != kindObject {
		return nil, false
	}
	v, ok := n.fields[name]
	return v, ok
}

// tree decodes data into nodes annotated with 1-indexed source lines.
type tree struct {
	data []byte
	dec  *json.Decoder
}

func parseTree(data []byte) (*node, error) {
	t := &tree{data: data, dec: json.NewDecoder(bytes.NewReader(data))}
	t.dec.UseNumber()
	return t.value()
}

func (t *tree) value() (*node, error) {
	start := t.skipSeparators(int(t.dec.InputOffset()))
	tok, err := t.dec.Token()
	if err != nil {
		return nil, err
	}
	n := &node{line: bytes.Count(t.data[:start], []byte{'\n'}) + 1}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			n.kind = kindObject
			n.fields = make(map[string]*node)
			for t.dec.More() {
				kt, err := t.dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", kt)
				}
				child, err := t.value()
				if err != nil {
					return nil, err
				}
				n.fields[key] = child
			}
		case '[':
			n.kind = kindArray
			for t.dec.More() {
				child, err := t.value()
				if err != nil {
					return nil, err
				}
				n.items = append(n.items, child)
			}
		}
		// closing delimiter
		if _, err := t.dec.Token(); err != nil {
			return nil, err
		}
	case string:
		n.kind = kindString
		n.str = v
	case json.Number:
		n.kind = kindNumber
		n.num = v
	case bool:
		n.kind = kindBool
	case nil:
		n.kind = kindNull
	}
	return n, nil
}

// skipSeparators advances past whitespace, commas and colons to the first
// byte of the next value.
func (t *tree) skipSeparators(off int) int {
	for off < len(t.data) {
		switch t.data[off] {
		case ' ', '\t', '\r', '\n', ',', ':':
			off++
		default:
			return off
		}
	}
	return off
}
