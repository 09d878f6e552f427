// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package constant

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

type EventSig string

func (es EventSig) GetTopic() common.Hash {
	return crypto.Keccak256Hash([]byte(es))
}

// Event names as accepted by the CLI and the HTTP API.
const (
	EventConfirmed          = "confirmed"
	EventInitiatorCancelled = "initiatorcancelled"
	EventResponderCancelled = "respondercancelled"
	EventTradeInitiated     = "tradeinitiated"
	EventTradeResponded     = "traderesponded"
)

// Signature topics (topics[0]) of the escrow events, as emitted on chain.
var (
	TopicOfConfirmed          = common.HexToHash("0x93c33cb1e882a375a4c58c6710d9b70eb30df10ddf3ef6012efdc0f953f9c2d6")
	TopicOfInitiatorCancelled = common.HexToHash("0x635a270dd697068ba0ae02f738aef351b1f56342c3c86257754abbf387dfd849")
	TopicOfResponderCancelled = common.HexToHash("0x7d4d0c8de2441cc4200cfef866a2c9d8ea40e8a1b9c6e705a2e269681a6b6c95")
	TopicOfTradeInitiated     = common.HexToHash("0xf7093a9babf9ca9c0781fa7e141629dc78270d74e7296a23afc8f4c55b4e3ba2")
	TopicOfTradeResponded     = common.HexToHash("0xbe5c902a6efea4a8fdfaeaa050a1f096b4dd7603a8251cfb81c7e266757c1c95")
)
