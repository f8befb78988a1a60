package mdast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TreeFormat names a serialization of a syntax tree.
type TreeFormat string

// Supported tree formats.
const (
	TreeJSON TreeFormat = "json"
	TreeYAML TreeFormat = "yaml"
)

// ErrUnknownTreeFormat is returned for a TreeFormat other than json or yaml.
var ErrUnknownTreeFormat = errors.New("unknown tree format")

// WireNode is the interchange form of a Node. Kinds are written by name so
// hosts with their own parsers can supply trees; unrecognized names decode
// to KindUnknown with the name preserved.
type WireNode struct {
	Kind     string     `json:"kind" yaml:"kind"`
	From     int        `json:"from" yaml:"from"`
	To       int        `json:"to" yaml:"to"`
	Info     string     `json:"info,omitempty" yaml:"info,omitempty"`
	Children []WireNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToWire converts a tree into its interchange form.
func ToWire(n *Node) WireNode {
	wire := WireNode{
		Kind: n.KindName(),
		From: n.From,
		To:   n.To,
		Info: n.Info,
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		wire.Children = append(wire.Children, ToWire(child))
	}
	return wire
}

// FromWire builds a tree from its interchange form. Ranges are copied
// verbatim; use Validate to check them.
func FromWire(wire WireNode) *Node {
	kind, ok := ParseKind(wire.Kind)
	node := NewNode(kind, wire.From, wire.To)
	node.Info = wire.Info
	if !ok {
		node.Name = wire.Kind
	}
	for _, child := range wire.Children {
		AppendChild(node, FromWire(child))
	}
	return node
}

// EncodeTree serializes the tree rooted at root.
func EncodeTree(root *Node, format TreeFormat) ([]byte, error) {
	if root == nil {
		return nil, errors.New("encode tree: nil root")
	}

	wire := ToWire(root)

	switch format {
	case TreeJSON:
		data, err := json.MarshalIndent(wire, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode tree: %w", err)
		}
		return append(data, '\n'), nil
	case TreeYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(wire); err != nil {
			return nil, fmt.Errorf("encode tree: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("encode tree: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTreeFormat, format)
	}
}

// DecodeTree parses a serialized tree.
func DecodeTree(data []byte, format TreeFormat) (*Node, error) {
	var wire WireNode

	switch format {
	case TreeJSON:
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("decode tree: %w", err)
		}
	case TreeYAML:
		if err := yaml.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("decode tree: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTreeFormat, format)
	}

	return FromWire(wire), nil
}
