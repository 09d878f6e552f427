// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	log "github.com/ChainSafe/log15"
	"github.com/urfave/cli/v2"
)

var (
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "JSON configuration file",
	}

	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Supports levels crit (silent) to trce (trace)",
		Value: log.LvlInfo.String(),
	}

	StrictFlag = &cli.BoolFlag{
		Name:  "strict",
		Usage: "Require topics[0] of the matched log to equal the event signature",
	}
)

// Verify subcommand flags
var (
	EventFlag = &cli.StringFlag{
		Name:     "event",
		Usage:    "Event to verify: confirmed, initiatorcancelled, respondercancelled, tradeinitiated, traderesponded",
		Required: true,
	}

	ContractFlag = &cli.StringFlag{
		Name:     "contract",
		Usage:    "Address of the contract expected to emit the event",
		Required: true,
	}

	ReceiptFlag = &cli.StringFlag{
		Name:  "receipt",
		Usage: "Hex of the RLP encoded receipt",
	}

	ReceiptFileFlag = &cli.StringFlag{
		Name:  "receiptFile",
		Usage: "File holding the hex of the RLP encoded receipt",
	}

	CommitmentFlag = &cli.StringSliceFlag{
		Name:  "commitment",
		Usage: "32 byte commitment in hex, repeat for events carrying two",
	}

	SimulateFlag = &cli.BoolFlag{
		Name:  "simulate",
		Usage: "Run the check without reporting failures as an error exit",
	}
)

// Encode subcommand flags
var (
	EndpointFlag = &cli.StringFlag{
		Name:     "endpoint",
		Usage:    "Ethereum json-rpc endpoint",
		Required: true,
	}

	TxFlag = &cli.StringFlag{
		Name:     "tx",
		Usage:    "Transaction hash whose receipt is fetched",
		Required: true,
	}
)

var (
	ExposePortFlag = &cli.IntFlag{
		Name:  "exposePort",
		Usage: "Port to serve on",
		Value: 8002,
	}
)
