// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package receipt

import (
	"bytes"
	"sync"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

var (
	receiptStatusFailedRLP     = []byte{}
	receiptStatusSuccessfulRLP = []byte{0x01}
)

// ReceiptRLP is the consensus encoding of a legacy receipt.
type ReceiptRLP struct {
	PostStateOrStatus []byte
	CumulativeGasUsed uint64
	Bloom             types.Bloom
	Logs              []*types.Log
}

var encodeBufferPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// Encode returns the legacy (untyped) RLP encoding of r. The envelope type byte of
// typed receipts is not written.
func Encode(r *types.Receipt) ([]byte, error) {
	if r == nil {
		return nil, errors.New("nil receipt")
	}
	nr := ReceiptRLP{
		PostStateOrStatus: statusEncoding(r),
		CumulativeGasUsed: r.CumulativeGasUsed,
		Bloom:             r.Bloom,
		Logs:              r.Logs,
	}
	if nr.Logs == nil {
		nr.Logs = []*types.Log{}
	}

	buf := encodeBufferPool.Get().(*bytes.Buffer)
	defer encodeBufferPool.Put(buf)
	buf.Reset()
	if err := rlp.Encode(buf, &nr); err != nil {
		return nil, errors.Wrap(err, "encode receipt failed")
	}
	ret := make([]byte, buf.Len())
	copy(ret, buf.Bytes())
	return ret, nil
}

func statusEncoding(r *types.Receipt) []byte {
	if len(r.PostState) != 0 {
		return r.PostState
	}
	if r.Status == types.ReceiptStatusFailed {
		return receiptStatusFailedRLP
	}
	return receiptStatusSuccessfulRLP
}
