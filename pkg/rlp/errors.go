// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package rlp

import "github.com/pkg/errors"

var (
	// ErrTruncated is returned when a declared length runs past the end of the input
	// or of the enclosing list.
	ErrTruncated = errors.New("rlp: declared length exceeds available input")
	// ErrMalformed is returned when length accounting is inconsistent: list children
	// that do not exactly fill their span, trailing bytes, or excessive nesting.
	ErrMalformed = errors.New("rlp: malformed input")
)

// IsDecodeError reports whether err came out of the decoder.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrTruncated) || errors.Is(err, ErrMalformed)
}
