// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"os"
	"strconv"

	log "github.com/ChainSafe/log15"
	"github.com/mapprotocol/compass-verifier/config"
	"github.com/urfave/cli/v2"
)

var app = cli.NewApp()

var cliFlags = []cli.Flag{
	config.ConfigFileFlag,
	config.VerbosityFlag,
}

var verifyFlags = []cli.Flag{
	config.EventFlag,
	config.ContractFlag,
	config.ReceiptFlag,
	config.ReceiptFileFlag,
	config.CommitmentFlag,
	config.StrictFlag,
	config.SimulateFlag,
}

var encodeFlags = []cli.Flag{
	config.EndpointFlag,
	config.TxFlag,
}

var exposeFlags = []cli.Flag{
	config.ExposePortFlag,
	config.StrictFlag,
}

var verifyCommand = cli.Command{
	Name:  "verify",
	Usage: "verify that a receipt carries an event with the given commitments",
	Description: "The verify command decodes a legacy RLP receipt and checks the first log emitted by the contract.\n" +
		"\tcompass-verifier verify --event confirmed --contract 0x0... --receipt 0xf9... --commitment 0x0...",
	Action: wrapHandler(handleVerifyCmd),
	Flags:  verifyFlags,
}

var eventsCommand = cli.Command{
	Name:        "events",
	Usage:       "list verifiable events",
	Description: "The events command prints the builtin events and those declared in the config file.",
	Action:      wrapHandler(handleEventsCmd),
}

var encodeCommand = cli.Command{
	Name:        "encode",
	Usage:       "fetch a receipt and print its legacy RLP encoding",
	Description: "The encode command fetches the receipt of --tx from --endpoint and prints the hex accepted by verify.",
	Action:      wrapHandler(handleEncodeCmd),
	Flags:       encodeFlags,
}

var exposeCommand = cli.Command{
	Name:        "expose",
	Usage:       "serve verification over http",
	Description: "The expose command serves POST /verify, GET /verify/:id and GET /events.",
	Action:      wrapHandler(handleExposeCmd),
	Flags:       exposeFlags,
}

var (
	Version = "1.0.0"
)

// init initializes CLI
func init() {
	app.Copyright = "Copyright 2021 MAP Protocol 2021 Authors"
	app.Name = "compass-verifier"
	app.Usage = "Compass receipt verifier"
	app.Authors = []*cli.Author{{Name: "MAP Protocol 2021"}}
	app.Version = Version
	app.EnableBashCompletion = true
	app.Commands = []*cli.Command{
		&verifyCommand,
		&eventsCommand,
		&encodeCommand,
		&exposeCommand,
	}

	app.Flags = append(app.Flags, cliFlags...)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// wrapHandler starts the logger before running hdl.
func wrapHandler(hdl func(*cli.Context) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if err := startLogger(ctx); err != nil {
			return err
		}
		return hdl(ctx)
	}
}

func startLogger(ctx *cli.Context) error {
	logger := log.Root()
	handler := logger.GetHandler()
	var lvl log.Lvl

	if lvlToInt, err := strconv.Atoi(ctx.String(config.VerbosityFlag.Name)); err == nil {
		lvl = log.Lvl(lvlToInt)
	} else if lvl, err = log.LvlFromString(ctx.String(config.VerbosityFlag.Name)); err != nil {
		return err
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, handler))

	return nil
}
