// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mapprotocol/compass-verifier/config"
	"github.com/mapprotocol/compass-verifier/internal/receipt"
	"github.com/mapprotocol/compass-verifier/pkg/util"
	"github.com/urfave/cli/v2"
)

func handleEncodeCmd(ctx *cli.Context) error {
	txHash, err := util.ParseHash(ctx.String(config.TxFlag.Name))
	if err != nil {
		return err
	}
	raw, err := receipt.Fetch(ctx.Context, ctx.String(config.EndpointFlag.Name), txHash)
	if err != nil {
		return err
	}
	fmt.Println(hexutil.Encode(raw))
	return nil
}
