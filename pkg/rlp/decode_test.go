// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package rlp

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethrlp "github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Decode(t *testing.T) {
	long := bytes.Repeat([]byte{0xaa}, 56)
	tests := []struct {
		name  string
		input []byte
		want  *Node
	}{
		{
			name:  "single byte",
			input: []byte{0x05},
			want:  NewString([]byte{0x05}),
		},
		{
			name:  "empty string",
			input: []byte{0x80},
			want:  NewString(nil),
		},
		{
			name:  "short string",
			input: []byte{0x83, 'd', 'o', 'g'},
			want:  NewString([]byte("dog")),
		},
		{
			name:  "long string",
			input: append([]byte{0xb8, 56}, long...),
			want:  NewString(long),
		},
		{
			name:  "empty list",
			input: []byte{0xc0},
			want:  NewList(),
		},
		{
			name:  "short list",
			input: []byte{0xc8, 0x83, 'c', 'a', 't', 0x83, 'd', 'o', 'g'},
			want:  NewList(NewString([]byte("cat")), NewString([]byte("dog"))),
		},
		{
			name:  "nested lists",
			input: []byte{0xc7, 0xc0, 0xc1, 0xc0, 0xc3, 0xc0, 0xc1, 0xc0},
			want:  NewList(NewList(), NewList(NewList()), NewList(NewList(), NewList(NewList()))),
		},
		{
			name:  "long list",
			input: append([]byte{0xf8, 58, 0xb8, 56}, long...),
			want:  NewList(NewString(long)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "Decode() = %v, want %v", got, tt.want)
		})
	}
}

func Test_DecodeLenient(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  *Node
	}{
		{
			name:  "single byte in short form",
			input: []byte{0x81, 0x05},
			want:  NewString([]byte{0x05}),
		},
		{
			name:  "short string in long form",
			input: []byte{0xb8, 0x02, 0x01, 0x02},
			want:  NewString([]byte{0x01, 0x02}),
		},
		{
			name:  "size with leading zero",
			input: []byte{0xb9, 0x00, 0x02, 0x01, 0x02},
			want:  NewString([]byte{0x01, 0x02}),
		},
		{
			name:  "short list in long form",
			input: []byte{0xf8, 0x02, 0x01, 0x02},
			want:  NewList(NewString([]byte{0x01}), NewString([]byte{0x02})),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "Decode() = %v, want %v", got, tt.want)
		})
	}
}

func Test_DecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{name: "empty input", input: nil, want: ErrMalformed},
		{name: "string past end", input: []byte{0x83, 'd', 'o'}, want: ErrTruncated},
		{name: "size field past end", input: []byte{0xb9, 0x01}, want: ErrTruncated},
		{name: "long string past end", input: []byte{0xb8, 0x38, 0x01}, want: ErrTruncated},
		{name: "list past end", input: []byte{0xc3, 0x01, 0x02}, want: ErrTruncated},
		{name: "long list size past end", input: []byte{0xfa, 0x01}, want: ErrTruncated},
		{name: "child overruns list", input: []byte{0xc2, 0x83, 0x01, 0x02, 0x03}, want: ErrMalformed},
		{name: "child overruns nested list", input: []byte{0xc5, 0xc2, 0x82, 0x01, 0x02, 0x03}, want: ErrMalformed},
		{name: "trailing bytes", input: []byte{0x01, 0x02}, want: ErrMalformed},
		{name: "trailing after list", input: []byte{0xc1, 0x01, 0x02}, want: ErrMalformed},
		{name: "huge declared size", input: []byte{0xbf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, want: ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.want), "Decode() error = %v, want %v", err, tt.want)
			assert.True(t, IsDecodeError(err))
		})
	}
}

func Test_DecodeDepth(t *testing.T) {
	// nested returns n lists, each holding the next one
	nested := func(n int) []byte {
		b := []byte{0xc0}
		for i := 1; i < n; i++ {
			enc, err := gethrlp.EncodeToBytes([]gethrlp.RawValue{b})
			require.NoError(t, err)
			b = enc
		}
		return b
	}

	_, err := DecodeWithDepth(nested(3), 3)
	require.NoError(t, err)

	_, err = DecodeWithDepth(nested(4), 3)
	assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)

	_, err = Decode(nested(MaxDepth))
	require.NoError(t, err)

	_, err = Decode(nested(MaxDepth + 1))
	assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
}

// toNode mirrors the values handed to the reference encoder.
func toNode(v interface{}) *Node {
	switch x := v.(type) {
	case []byte:
		return NewString(x)
	case []interface{}:
		children := make([]*Node, 0, len(x))
		for _, c := range x {
			children = append(children, toNode(c))
		}
		return NewList(children...)
	default:
		panic("unsupported value")
	}
}

func Test_DecodeRoundTrip(t *testing.T) {
	topic := common.HexToHash("0x93c33cb1e882a375a4c58c6710d9b70eb30df10ddf3ef6012efdc0f953f9c2d6")
	addr := common.HexToAddress("0x9260eb25524101e1b9cb4ce4991774cea28cec24")

	tests := []struct {
		name  string
		value []interface{}
	}{
		{
			name:  "flat",
			value: []interface{}{[]byte{}, []byte{0x00}, []byte{0x7f}, []byte{0x80}, []byte("hello")},
		},
		{
			name: "receipt shaped",
			value: []interface{}{
				[]byte{0x01},
				[]byte{0x58, 0x2a},
				make([]byte, 256),
				[]interface{}{
					[]interface{}{
						addr.Bytes(),
						[]interface{}{topic.Bytes()},
						bytes.Repeat([]byte{0x35}, 64),
					},
				},
			},
		},
		{
			name: "many logs",
			value: func() []interface{} {
				logs := make([]interface{}, 0, 40)
				for i := 0; i < 40; i++ {
					logs = append(logs, []interface{}{
						addr.Bytes(),
						[]interface{}{topic.Bytes(), common.BigToHash(common.Big1).Bytes()},
						bytes.Repeat([]byte{byte(i)}, i*7),
					})
				}
				return []interface{}{[]byte{}, []byte{0xff, 0xff, 0xff}, make([]byte, 256), logs}
			}(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := gethrlp.EncodeToBytes(tt.value)
			require.NoError(t, err)

			got, err := Decode(enc)
			require.NoError(t, err)
			want := toNode(tt.value)
			assert.True(t, want.Equal(got), "Decode() = %v, want %v", got, want)
		})
	}
}

func Test_DecodeTruncatedPrefixes(t *testing.T) {
	enc, err := gethrlp.EncodeToBytes([]interface{}{
		[]byte{0x01},
		bytes.Repeat([]byte{0x11}, 100),
		[]interface{}{[]byte("a"), []interface{}{[]byte("bc")}},
	})
	require.NoError(t, err)

	for i := 0; i < len(enc); i++ {
		node, err := Decode(enc[:i])
		assert.Nil(t, node, "prefix of length %d", i)
		assert.True(t, IsDecodeError(err), "prefix of length %d: %v", i, err)
	}
}

func Test_DecodeCopiesInput(t *testing.T) {
	input := []byte{0x83, 'd', 'o', 'g'}
	node, err := Decode(input)
	require.NoError(t, err)

	input[1] = 'f'
	assert.Equal(t, []byte("dog"), node.Bytes())
}

func Test_NodeAccessors(t *testing.T) {
	n := NewList(NewString([]byte{0x01}), NewList())
	assert.Equal(t, List, n.Kind())
	assert.True(t, n.IsList())
	assert.Equal(t, 2, n.Len())
	assert.Nil(t, n.Bytes())
	assert.Nil(t, n.At(2))
	assert.Nil(t, n.At(-1))
	assert.Equal(t, String, n.At(0).Kind())
	assert.Equal(t, []byte{0x01}, n.At(0).Bytes())
	assert.Equal(t, "[0x01, []]", n.String())
	assert.Equal(t, "String", String.String())
}
