// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/ChainSafe/log15"
	"github.com/mapprotocol/compass-verifier/config"
	"github.com/mapprotocol/compass-verifier/internal/expose"
	"github.com/mapprotocol/compass-verifier/internal/stream"
	"github.com/mapprotocol/compass-verifier/internal/verifier"
	"github.com/mapprotocol/compass-verifier/pkg/util"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var errNotVerified = errors.New("receipt not verified")

// registry returns the builtin events plus those of --config when it is given.
func registry(ctx *cli.Context) (*verifier.Registry, *expose.Config, error) {
	if !ctx.IsSet(config.ConfigFileFlag.Name) {
		r, err := verifier.NewRegistry()
		return r, &expose.Config{}, err
	}
	cfg, err := expose.Local(ctx)
	if err != nil {
		return nil, nil, err
	}
	extra, err := cfg.Shapes()
	if err != nil {
		return nil, nil, err
	}
	r, err := verifier.NewRegistry(extra...)
	return r, cfg, err
}

func receiptInput(ctx *cli.Context) ([]byte, error) {
	text := ctx.String(config.ReceiptFlag.Name)
	if file := ctx.String(config.ReceiptFileFlag.Name); file != "" {
		if text != "" {
			return nil, fmt.Errorf("set only one of --%s and --%s", config.ReceiptFlag.Name, config.ReceiptFileFlag.Name)
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		return nil, fmt.Errorf("one of --%s and --%s is required", config.ReceiptFlag.Name, config.ReceiptFileFlag.Name)
	}
	return util.FromHexString(text)
}

func handleVerifyCmd(ctx *cli.Context) error {
	reg, cfg, err := registry(ctx)
	if err != nil {
		return err
	}
	shape, err := reg.Lookup(ctx.String(config.EventFlag.Name))
	if err != nil {
		return err
	}
	contract, err := util.ParseAddress(ctx.String(config.ContractFlag.Name))
	if err != nil {
		return err
	}
	raw, err := receiptInput(ctx)
	if err != nil {
		return err
	}
	commitments, err := util.ParseHashes(ctx.StringSlice(config.CommitmentFlag.Name))
	if err != nil {
		return err
	}

	var opts []verifier.Option
	if cfg.Strict || ctx.Bool(config.StrictFlag.Name) {
		opts = append(opts, verifier.WithStrictSignature())
	}
	v := verifier.New(shape, opts...)
	checkErr := v.Check(contract, raw, commitments...)
	if checkErr != nil {
		log.Debug("Check failed", "event", shape.Name, "err", checkErr)
	}

	out, err := json.MarshalIndent(stream.VerifyOfResponse{
		Verified: checkErr == nil,
		Reason:   verifier.Reason(checkErr),
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if checkErr != nil && !ctx.Bool(config.SimulateFlag.Name) {
		return errNotVerified
	}
	return nil
}

func handleEventsCmd(ctx *cli.Context) error {
	reg, _, err := registry(ctx)
	if err != nil {
		return err
	}
	for _, shape := range reg.Shapes() {
		fmt.Printf("%-20s %-6s %d %s\n", shape.Name, shape.Kind, shape.Commitments(), shape.Signature.Hex())
	}
	return nil
}
