package service

import (
	"context"
	"time"

	log "github.com/ChainSafe/log15"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mapprotocol/compass-verifier/internal/expose"
	"github.com/mapprotocol/compass-verifier/internal/record"
	"github.com/mapprotocol/compass-verifier/internal/report"
	"github.com/mapprotocol/compass-verifier/internal/stream"
	"github.com/mapprotocol/compass-verifier/internal/verifier"
	"github.com/mapprotocol/compass-verifier/pkg/util"
	"github.com/pkg/errors"
)

var ErrNoStore = errors.New("record store not configured")

type VerifySrv struct {
	cfg       *expose.Config
	registry  *verifier.Registry
	verifiers map[string]*verifier.Verifier // key: name, strict
	store     record.Store
	reporter  *report.Report
	log       log.Logger
}

// NewVerify builds the service. store and reporter may be nil.
func NewVerify(cfg *expose.Config, store record.Store, reporter *report.Report) (*VerifySrv, error) {
	extra, err := cfg.Shapes()
	if err != nil {
		return nil, err
	}
	registry, err := verifier.NewRegistry(extra...)
	if err != nil {
		return nil, err
	}
	s := &VerifySrv{
		cfg:       cfg,
		registry:  registry,
		verifiers: make(map[string]*verifier.Verifier),
		store:     store,
		reporter:  reporter,
		log:       log.Root().New("module", "expose"),
	}
	// read-only after construction
	for _, shape := range registry.Shapes() {
		s.verifiers[verifierKey(shape.Name, false)] = verifier.New(shape)
		s.verifiers[verifierKey(shape.Name, true)] = verifier.New(shape, verifier.WithStrictSignature())
	}
	return s, nil
}

func verifierKey(name string, strict bool) string {
	if strict {
		return name + "/strict"
	}
	return name
}

// Verify parses req and verifies it. Only unparsable input is an error; a
// receipt that fails verification is a normal response with Verified false.
func (s *VerifySrv) Verify(ctx context.Context, req *stream.VerifyOfRequest) (*stream.VerifyOfResponse, error) {
	shape, err := s.registry.Lookup(req.Event)
	if err != nil {
		return nil, err
	}
	contract, err := util.ParseAddress(req.ContractAddress)
	if err != nil {
		return nil, err
	}
	raw, err := util.FromHexString(req.Receipt)
	if err != nil {
		return nil, errors.Wrap(err, "receipt")
	}
	commitments, err := util.ParseHashes(req.Commitments)
	if err != nil {
		return nil, err
	}
	strict := s.cfg.Strict
	if req.Strict != nil {
		strict = *req.Strict
	}

	v := s.verifiers[verifierKey(shape.Name, strict)]
	checkErr := v.Check(contract, raw, commitments...)
	resp := &stream.VerifyOfResponse{
		Id:       record.Id(shape.Name, contract, raw, commitments, strict),
		Verified: checkErr == nil,
		Reason:   verifier.Reason(checkErr),
	}
	s.log.Info("Verify", "id", resp.Id, "event", shape.Name, "contract", contract, "verified", resp.Verified, "reason", resp.Reason)
	if verifier.IsStructural(checkErr) {
		s.log.Debug("Malformed receipt", "id", resp.Id, "err", checkErr)
		util.Alarm(ctx, "verifier received malformed receipt, reason: "+resp.Reason)
	}

	s.keep(ctx, &record.Record{
		Id:          resp.Id,
		Event:       shape.Name,
		Contract:    contract.Hex(),
		ReceiptHash: crypto.Keccak256Hash(raw).Hex(),
		Commitments: hexes(commitments),
		Strict:      strict,
		Verified:    resp.Verified,
		Reason:      resp.Reason,
		Timestamp:   time.Now().Unix(),
	})
	return resp, nil
}

func (s *VerifySrv) keep(ctx context.Context, r *record.Record) {
	if s.store != nil {
		if err := s.store.Put(ctx, r); err != nil {
			s.log.Warn("Store record failed", "id", r.Id, "err", err)
		}
	}
	if s.reporter != nil {
		s.reporter.Add(&report.Data{
			Id:       r.Id,
			Event:    r.Event,
			Contract: r.Contract,
			Verified: r.Verified,
			Reason:   r.Reason,
		})
	}
}

func (s *VerifySrv) Record(ctx context.Context, id string) (*record.Record, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.Get(ctx, id)
}

func (s *VerifySrv) Events() []*stream.EventOfResponse {
	shapes := s.registry.Shapes()
	ret := make([]*stream.EventOfResponse, 0, len(shapes))
	for _, shape := range shapes {
		ret = append(ret, &stream.EventOfResponse{
			Name:        shape.Name,
			Kind:        shape.Kind.String(),
			Commitments: shape.Commitments(),
			Signature:   shape.Signature.Hex(),
		})
	}
	return ret
}

func hexes(hs []common.Hash) []string {
	ret := make([]string, 0, len(hs))
	for _, h := range hs {
		ret = append(ret, h.Hex())
	}
	return ret
}
