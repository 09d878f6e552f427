// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

// Package verifier checks that a raw legacy receipt carries the log of an escrow
// event emitted by a given contract with the expected commitments.
//
// Verify only ever answers true or false. Check returns the reason behind a
// false answer for logging; both always agree.
package verifier

import (
	log "github.com/ChainSafe/log15"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mapprotocol/compass-verifier/internal/constant"
	"github.com/mapprotocol/compass-verifier/internal/receipt"
	"github.com/mapprotocol/compass-verifier/pkg/rlp"
	"github.com/pkg/errors"
)

type Verifier struct {
	shape  Shape
	strict bool
	log    log.Logger
}

type Option func(*Verifier)

// WithStrictSignature also requires topics[0] of the matched log to equal the
// event signature of the shape.
func WithStrictSignature() Option {
	return func(v *Verifier) {
		v.strict = true
	}
}

func WithLogger(l log.Logger) Option {
	return func(v *Verifier) {
		v.log = l
	}
}

func New(shape Shape, opts ...Option) *Verifier {
	v := &Verifier{shape: shape}
	for _, opt := range opts {
		opt(v)
	}
	if v.log == nil {
		v.log = log.Root().New("module", "verifier", "event", shape.Name)
	}
	return v
}

func Confirmed(opts ...Option) *Verifier          { return New(shapeOfConfirmed, opts...) }
func InitiatorCancelled(opts ...Option) *Verifier { return New(shapeOfInitiatorCancelled, opts...) }
func ResponderCancelled(opts ...Option) *Verifier { return New(shapeOfResponderCancelled, opts...) }
func TradeInitiated(opts ...Option) *Verifier     { return New(shapeOfTradeInitiated, opts...) }
func TradeResponded(opts ...Option) *Verifier     { return New(shapeOfTradeResponded, opts...) }

func (v *Verifier) Shape() Shape { return v.shape }

func (v *Verifier) Strict() bool { return v.strict }

// Verify reports whether raw holds a log of contract carrying exactly the given
// commitments. Malformed input is reported as false.
func (v *Verifier) Verify(contract common.Address, raw []byte, commitments ...common.Hash) bool {
	err := v.Check(contract, raw, commitments...)
	if err != nil {
		v.log.Debug("Verification failed", "contract", contract, "reason", Reason(err), "err", err)
		return false
	}
	return true
}

// Simulate is Verify. The read-only probe and the committing call of an on-chain
// verifier compute the same thing.
func (v *Verifier) Simulate(contract common.Address, raw []byte, commitments ...common.Hash) bool {
	return v.Verify(contract, raw, commitments...)
}

// Check is Verify returning why verification failed, nil when it passed.
func (v *Verifier) Check(contract common.Address, raw []byte, commitments ...common.Hash) (err error) {
	defer func() {
		// Verify must never panic
		if r := recover(); r != nil {
			err = errors.Wrapf(rlp.ErrMalformed, "panic during verification: %v", r)
		}
	}()

	if len(commitments) != v.shape.Commitments() {
		return errors.Wrapf(constant.ErrCommitmentCount, "%s wants %d, got %d", v.shape.Name, v.shape.Commitments(), len(commitments))
	}

	rcpt, err := receipt.Decode(raw)
	if err != nil {
		return err
	}

	lg, ok := rcpt.FindLog(contract)
	if !ok {
		return errors.Wrapf(constant.ErrNoMatchingLog, "%s in %d logs", contract, len(rcpt.Logs))
	}

	if v.strict {
		sig, ok := lg.Topic(0)
		if !ok || sig != v.shape.Signature {
			return errors.Wrapf(constant.ErrEventMismatch, "%s: topics[0] is not %s", v.shape.Name, v.shape.Signature)
		}
	}

	got, err := v.shape.extract(lg)
	if err != nil {
		return err
	}
	for i := range got {
		if got[i] != commitments[i] {
			return errors.Wrapf(constant.ErrCommitmentMismatch, "%s: commitment %d", v.shape.Name, i)
		}
	}
	return nil
}

// Reason names the kind of a Check error.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case rlp.IsDecodeError(err):
		return "decode"
	case errors.Is(err, constant.ErrShapeMismatch):
		return "shape"
	case errors.Is(err, constant.ErrNoMatchingLog):
		return "no_log"
	case errors.Is(err, constant.ErrEventMismatch):
		return "event"
	case errors.Is(err, constant.ErrCommitmentCount):
		return "count"
	case errors.Is(err, constant.ErrCommitmentMismatch):
		return "mismatch"
	default:
		return "unknown"
	}
}

// IsStructural reports whether err is about the receipt bytes rather than about
// the values being verified.
func IsStructural(err error) bool {
	return rlp.IsDecodeError(err) || errors.Is(err, constant.ErrShapeMismatch)
}
