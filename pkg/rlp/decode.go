// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

// Package rlp decodes Recursive Length Prefix encoded bytes into a tree of
// string and list nodes.
//
// The decoder is lenient about canonical form: a size prefix with leading zero
// bytes, a long form used for a short payload, or a single byte below 0x80
// wrapped in a 0x81 prefix are all accepted as long as the declared lengths are
// consistent with the input. Only length accounting is enforced.
package rlp

import (
	"github.com/pkg/errors"
)

// MaxDepth bounds list nesting. A legacy receipt needs four levels.
const MaxDepth = 64

// Decode decodes b, which must hold exactly one RLP item.
func Decode(b []byte) (*Node, error) {
	return DecodeWithDepth(b, MaxDepth)
}

// DecodeWithDepth is Decode with a custom nesting bound.
func DecodeWithDepth(b []byte, maxDepth int) (*Node, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(ErrMalformed, "empty input")
	}
	d := decoder{buf: b, maxDepth: maxDepth}
	node, next, err := d.item(0, len(b), 0)
	if err != nil {
		return nil, err
	}
	if next != len(b) {
		return nil, errors.Wrapf(ErrMalformed, "%d trailing bytes after top-level item", len(b)-next)
	}
	return node, nil
}

type decoder struct {
	buf      []byte
	maxDepth int
}

// item decodes the item starting at pos, which must end at or before end.
// It returns the node and the position right after it.
func (d *decoder) item(pos, end, depth int) (*Node, int, error) {
	if pos >= end {
		return nil, 0, errors.Wrapf(ErrTruncated, "item at offset %d", pos)
	}
	prefix := d.buf[pos]

	switch {
	case prefix < 0x80:
		return NewString(d.buf[pos : pos+1]), pos + 1, nil

	case prefix < 0xb8:
		start, stop, err := d.span(pos, 1, uint64(prefix-0x80), end)
		if err != nil {
			return nil, 0, err
		}
		return NewString(d.buf[start:stop]), stop, nil

	case prefix < 0xc0:
		size, err := d.size(pos, int(prefix-0xb7), end)
		if err != nil {
			return nil, 0, err
		}
		start, stop, err := d.span(pos, 1+int(prefix-0xb7), size, end)
		if err != nil {
			return nil, 0, err
		}
		return NewString(d.buf[start:stop]), stop, nil

	case prefix < 0xf8:
		start, stop, err := d.span(pos, 1, uint64(prefix-0xc0), end)
		if err != nil {
			return nil, 0, err
		}
		return d.list(start, stop, depth)

	default:
		size, err := d.size(pos, int(prefix-0xf7), end)
		if err != nil {
			return nil, 0, err
		}
		start, stop, err := d.span(pos, 1+int(prefix-0xf7), size, end)
		if err != nil {
			return nil, 0, err
		}
		return d.list(start, stop, depth)
	}
}

// list decodes children until they consume exactly [start, stop).
func (d *decoder) list(start, stop, depth int) (*Node, int, error) {
	if depth+1 > d.maxDepth {
		return nil, 0, errors.Wrapf(ErrMalformed, "list at offset %d nests deeper than %d", start, d.maxDepth)
	}
	children := make([]*Node, 0)
	pos := start
	for pos < stop {
		child, next, err := d.item(pos, stop, depth+1)
		if err != nil {
			if errors.Is(err, ErrTruncated) && stop < len(d.buf) {
				// the child would fit the buffer but not the list span
				return nil, 0, errors.Wrapf(ErrMalformed, "list child at offset %d overruns list ending at %d", pos, stop)
			}
			return nil, 0, err
		}
		children = append(children, child)
		pos = next
	}
	return &Node{kind: List, children: children}, stop, nil
}

// size reads the big-endian length-of-length field following the prefix at pos.
func (d *decoder) size(pos, lenOfLen, end int) (uint64, error) {
	if pos+1+lenOfLen > end {
		return 0, errors.Wrapf(ErrTruncated, "size field of item at offset %d needs %d bytes, %d left", pos, lenOfLen, end-pos-1)
	}
	var size uint64
	for _, b := range d.buf[pos+1 : pos+1+lenOfLen] {
		size = size<<8 | uint64(b)
	}
	return size, nil
}

// span returns the payload bounds of an item at pos whose header is hdr bytes long.
func (d *decoder) span(pos, hdr int, size uint64, end int) (int, int, error) {
	start := pos + hdr
	if size > uint64(end-start) {
		return 0, 0, errors.Wrapf(ErrTruncated, "item at offset %d declares %d bytes, %d left", pos, size, end-start)
	}
	return start, start + int(size), nil
}
