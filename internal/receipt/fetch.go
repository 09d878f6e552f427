// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package receipt

import (
	"context"

	log "github.com/ChainSafe/log15"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// Fetcher is the part of ethclient.Client used to look up receipts.
type Fetcher interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Fetch dials endpoint and returns the legacy encoding of the receipt of txHash.
// Fetched receipts are only a convenience for building inputs; nothing about
// them is trusted by the verifier.
func Fetch(ctx context.Context, endpoint string, txHash common.Hash) ([]byte, error) {
	cli, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s failed", endpoint)
	}
	defer cli.Close()
	return FetchWith(ctx, cli, txHash)
}

// FetchWith is Fetch over an existing client.
func FetchWith(ctx context.Context, f Fetcher, txHash common.Hash) ([]byte, error) {
	r, err := f.TransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, errors.Wrapf(err, "get receipt of %s failed", txHash)
	}
	if r.Type != types.LegacyTxType {
		log.Warn("Receipt is typed, encoding legacy body only", "tx", txHash, "type", r.Type)
	}
	return Encode(r)
}
