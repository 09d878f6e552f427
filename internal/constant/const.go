// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package constant

import (
	"time"

	"github.com/pkg/errors"
)

const (
	AddressLength = 20
	HashLength    = 32
	WordLength    = 32
	BloomLength   = 256

	ReceiptFields = 4 // status, cumulativeGasUsed, logsBloom, logs
	LogFields     = 3 // address, topics, data
)

const (
	HttpTimeOut = 10 * time.Second
	Agent       = "compass-verifier"
)

var (
	ErrShapeMismatch      = errors.New("receipt shape mismatch")
	ErrNoMatchingLog      = errors.New("no log emitted by contract")
	ErrEventMismatch      = errors.New("log signature does not match event")
	ErrCommitmentCount    = errors.New("wrong number of commitments for event")
	ErrCommitmentMismatch = errors.New("commitment mismatch")
	ErrUnknownEvent       = errors.New("unknown event")
)

var (
	AlarmInterval     = int64(300) // seconds between two identical alarms
	ReportQueueLength = 100
	ReportRetryLimit  = 3
	ReportRetryWait   = time.Second * 2
)
