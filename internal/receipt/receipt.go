// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package receipt

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mapprotocol/compass-verifier/internal/constant"
	"github.com/mapprotocol/compass-verifier/pkg/rlp"
	"github.com/pkg/errors"
)

// Receipt is the legacy four field receipt: status, cumulative gas, bloom and logs.
type Receipt struct {
	PostStateOrStatus []byte
	CumulativeGasUsed uint64
	Bloom             [constant.BloomLength]byte
	Logs              []*Log
}

// Log is one entry of Receipt.Logs.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// Decode decodes raw receipt bytes.
func Decode(raw []byte) (*Receipt, error) {
	node, err := rlp.Decode(raw)
	if err != nil {
		return nil, err
	}
	return FromNode(node)
}

// FromNode interprets a decoded tree as a receipt.
func FromNode(node *rlp.Node) (*Receipt, error) {
	if !node.IsList() || node.Len() != constant.ReceiptFields {
		return nil, errors.Wrapf(constant.ErrShapeMismatch, "receipt: want list of %d fields, got %s of %d",
			constant.ReceiptFields, node.Kind(), node.Len())
	}

	status, err := stringAt(node, 0, "receipt.status")
	if err != nil {
		return nil, err
	}
	// 0 or 1 byte status since byzantium, 32 byte state root before it
	if len(status) > 1 && len(status) != constant.HashLength {
		return nil, errors.Wrapf(constant.ErrShapeMismatch, "receipt.status: unexpected length %d", len(status))
	}

	gas, err := stringAt(node, 1, "receipt.cumulativeGasUsed")
	if err != nil {
		return nil, err
	}
	if len(gas) > 8 {
		return nil, errors.Wrapf(constant.ErrShapeMismatch, "receipt.cumulativeGasUsed: %d bytes overflows uint64", len(gas))
	}

	bloom, err := stringAt(node, 2, "receipt.logsBloom")
	if err != nil {
		return nil, err
	}
	if len(bloom) != constant.BloomLength {
		return nil, errors.Wrapf(constant.ErrShapeMismatch, "receipt.logsBloom: want %d bytes, got %d", constant.BloomLength, len(bloom))
	}

	logs := node.At(3)
	if !logs.IsList() {
		return nil, errors.Wrap(constant.ErrShapeMismatch, "receipt.logs: not a list")
	}

	r := &Receipt{
		PostStateOrStatus: status,
		CumulativeGasUsed: bigEndian(gas),
		Logs:              make([]*Log, 0, logs.Len()),
	}
	copy(r.Bloom[:], bloom)
	for i, child := range logs.Children() {
		lg, err := logFromNode(child)
		if err != nil {
			return nil, errors.WithMessagef(err, "receipt.logs[%d]", i)
		}
		r.Logs = append(r.Logs, lg)
	}
	return r, nil
}

func logFromNode(node *rlp.Node) (*Log, error) {
	if !node.IsList() || node.Len() != constant.LogFields {
		return nil, errors.Wrapf(constant.ErrShapeMismatch, "log: want list of %d fields, got %s of %d",
			constant.LogFields, node.Kind(), node.Len())
	}

	addr, err := stringAt(node, 0, "log.address")
	if err != nil {
		return nil, err
	}
	if len(addr) != constant.AddressLength {
		return nil, errors.Wrapf(constant.ErrShapeMismatch, "log.address: want %d bytes, got %d", constant.AddressLength, len(addr))
	}

	topics := node.At(1)
	if !topics.IsList() {
		return nil, errors.Wrap(constant.ErrShapeMismatch, "log.topics: not a list")
	}
	lg := &Log{
		Address: common.BytesToAddress(addr),
		Topics:  make([]common.Hash, 0, topics.Len()),
	}
	for i := range topics.Children() {
		topic, err := stringAt(topics, i, "log.topics")
		if err != nil {
			return nil, err
		}
		if len(topic) != constant.HashLength {
			return nil, errors.Wrapf(constant.ErrShapeMismatch, "log.topics[%d]: want %d bytes, got %d", i, constant.HashLength, len(topic))
		}
		lg.Topics = append(lg.Topics, common.BytesToHash(topic))
	}

	lg.Data, err = stringAt(node, 2, "log.data")
	if err != nil {
		return nil, err
	}
	return lg, nil
}

// FindLog returns the first log emitted by addr.
func (r *Receipt) FindLog(addr common.Address) (*Log, bool) {
	for _, lg := range r.Logs {
		if lg.Address == addr {
			return lg, true
		}
	}
	return nil, false
}

// Succeeded reports a post-byzantium status of 1.
func (r *Receipt) Succeeded() bool {
	return len(r.PostStateOrStatus) == 1 && r.PostStateOrStatus[0] == 1
}

// Topic returns topics[i].
func (l *Log) Topic(i int) (common.Hash, bool) {
	if i < 0 || i >= len(l.Topics) {
		return common.Hash{}, false
	}
	return l.Topics[i], true
}

// Word returns the i-th 32 byte word of Data.
func (l *Log) Word(i int) (common.Hash, bool) {
	start := i * constant.WordLength
	if i < 0 || start+constant.WordLength > len(l.Data) {
		return common.Hash{}, false
	}
	return common.BytesToHash(l.Data[start : start+constant.WordLength]), true
}

// Words returns the number of complete words in Data.
func (l *Log) Words() int {
	return len(l.Data) / constant.WordLength
}

func stringAt(node *rlp.Node, i int, field string) ([]byte, error) {
	child := node.At(i)
	if child == nil || child.IsList() {
		return nil, errors.Wrapf(constant.ErrShapeMismatch, "%s: not a byte string", field)
	}
	return child.Bytes(), nil
}

func bigEndian(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
