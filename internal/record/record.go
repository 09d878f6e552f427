// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

// Package record keeps the outcome of verification requests served over HTTP.
package record

import (
	"context"
	"encoding/binary"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("record not found")

type Record struct {
	Id          string   `json:"id"`
	Event       string   `json:"event"`
	Contract    string   `json:"contract_address"`
	ReceiptHash string   `json:"receipt_hash"`
	Commitments []string `json:"commitments"`
	Strict      bool     `json:"strict"`
	Verified    bool     `json:"verified"`
	Reason      string   `json:"reason"`
	Timestamp   int64    `json:"timestamp"`
}

type Store interface {
	Put(ctx context.Context, r *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Close() error
}

// Id derives the record id from the request, so the same request always maps to
// the same record.
func Id(event string, contract common.Address, raw []byte, commitments []common.Hash, strict bool) string {
	buf := make([]byte, 0, 64+len(raw)+len(commitments)*common.HashLength)
	buf = append(buf, []byte(strings.ToLower(event))...)
	buf = append(buf, 0)
	buf = append(buf, contract.Bytes()...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(raw)))
	buf = append(buf, raw...)
	for _, c := range commitments {
		buf = append(buf, c.Bytes()...)
	}
	if strict {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return crypto.Keccak256Hash(buf).Hex()
}

// New opens the store named by kind: "redis" with a url, "leveldb" with a path.
// An empty kind returns nil and no error.
func New(kind, target string) (Store, error) {
	switch strings.ToLower(kind) {
	case "":
		return nil, nil
	case "redis":
		s, err := NewRedisStore(target)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "leveldb":
		s, err := NewLevelStore(target)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.Errorf("unknown store type %q", kind)
	}
}
