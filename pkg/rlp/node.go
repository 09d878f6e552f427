// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package rlp

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Kind represents the type of an RLP value.
type Kind uint8

const (
	String Kind = iota // byte string, including single bytes below 0x80
	List
)

func (k Kind) String() string {
	switch k {
	case String:
		return "String"
	case List:
		return "List"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Node is one decoded RLP item. A String node carries its payload, a List node
// owns its children in encoding order.
type Node struct {
	kind     Kind
	bytes    []byte
	children []*Node
}

// NewString builds a string node. The payload is copied.
func NewString(b []byte) *Node {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Node{kind: String, bytes: cp}
}

// NewList builds a list node from the given children.
func NewList(children ...*Node) *Node {
	cs := make([]*Node, len(children))
	copy(cs, children)
	return &Node{kind: List, children: cs}
}

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) IsList() bool { return n.kind == List }

// Bytes returns the payload of a string node, nil for lists.
func (n *Node) Bytes() []byte {
	if n.kind != String {
		return nil
	}
	return n.bytes
}

// Len returns the number of children of a list node, 0 for strings.
func (n *Node) Len() int {
	return len(n.children)
}

// At returns the i-th child of a list node or nil when out of range.
func (n *Node) At(i int) *Node {
	if n.kind != List || i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns the children of a list node.
func (n *Node) Children() []*Node {
	return n.children
}

// Equal reports whether two trees have the same shape and payloads.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.kind != o.kind {
		return false
	}
	if n.kind == String {
		return string(n.bytes) == string(o.bytes)
	}
	if len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	var sb strings.Builder
	n.format(&sb)
	return sb.String()
}

func (n *Node) format(sb *strings.Builder) {
	if n.kind == String {
		sb.WriteString(hexutil.Encode(n.bytes))
		return
	}
	sb.WriteByte('[')
	for i, c := range n.children {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.format(sb)
	}
	sb.WriteByte(']')
}
