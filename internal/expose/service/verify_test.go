package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mapprotocol/compass-verifier/internal/constant"
	"github.com/mapprotocol/compass-verifier/internal/expose"
	"github.com/mapprotocol/compass-verifier/internal/record"
	"github.com/mapprotocol/compass-verifier/internal/stream"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	Name            string   `json:"name"`
	Event           string   `json:"event"`
	ContractAddress string   `json:"contract_address"`
	Receipt         string   `json:"receipt"`
	Commitments     []string `json:"commitments"`
	Verified        bool     `json:"verified"`
}

func loadFixtures(t *testing.T) []fixture {
	data, err := os.ReadFile("../../verifier/testdata/fixtures.json")
	require.NoError(t, err)
	var ret []fixture
	require.NoError(t, json.Unmarshal(data, &ret))
	return ret
}

func (f fixture) request() *stream.VerifyOfRequest {
	return &stream.VerifyOfRequest{
		Event:           f.Event,
		ContractAddress: f.ContractAddress,
		Receipt:         f.Receipt,
		Commitments:     f.Commitments,
	}
}

func newSrv(t *testing.T, cfg *expose.Config) (*VerifySrv, record.Store) {
	store, err := record.NewLevelStore(filepath.Join(t.TempDir(), "records"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv, err := NewVerify(cfg, store, nil)
	require.NoError(t, err)
	return srv, store
}

func TestVerifyFixtures(t *testing.T) {
	srv, store := newSrv(t, &expose.Config{})
	ctx := context.Background()

	for _, f := range loadFixtures(t) {
		t.Run(f.Name, func(t *testing.T) {
			resp, err := srv.Verify(ctx, f.request())
			require.NoError(t, err)
			assert.Equal(t, f.Verified, resp.Verified)
			if f.Verified {
				assert.Equal(t, "ok", resp.Reason)
			} else {
				assert.Equal(t, "mismatch", resp.Reason)
			}

			got, err := store.Get(ctx, resp.Id)
			require.NoError(t, err)
			assert.Equal(t, resp.Verified, got.Verified)
			assert.Equal(t, resp.Reason, got.Reason)
			assert.Len(t, got.Commitments, len(f.Commitments))

			again, err := srv.Record(ctx, resp.Id)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestVerifyBadInput(t *testing.T) {
	srv, _ := newSrv(t, &expose.Config{})
	f := loadFixtures(t)[0]

	req := f.request()
	req.Event = "settled"
	_, err := srv.Verify(context.Background(), req)
	assert.True(t, errors.Is(err, constant.ErrUnknownEvent), "err = %v", err)

	req = f.request()
	req.ContractAddress = "0x1234"
	_, err = srv.Verify(context.Background(), req)
	assert.Error(t, err)

	req = f.request()
	req.Receipt = "0xzz"
	_, err = srv.Verify(context.Background(), req)
	assert.Error(t, err)

	req = f.request()
	req.Commitments = []string{"0x01"}
	_, err = srv.Verify(context.Background(), req)
	assert.Error(t, err)
}

func TestVerifyMalformedReceipt(t *testing.T) {
	srv, _ := newSrv(t, &expose.Config{})
	f := loadFixtures(t)[0]

	req := f.request()
	req.Receipt = f.Receipt[:len(f.Receipt)-10]
	resp, err := srv.Verify(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Verified)
	assert.Equal(t, "decode", resp.Reason)
}

func TestVerifyStrictOverride(t *testing.T) {
	srv, _ := newSrv(t, &expose.Config{Strict: true})
	f := loadFixtures(t)[0]
	require.True(t, f.Verified)

	strict, err := srv.Verify(context.Background(), f.request())
	require.NoError(t, err)
	assert.True(t, strict.Verified)

	off := false
	req := f.request()
	req.Strict = &off
	lenient, err := srv.Verify(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, lenient.Verified)
	assert.NotEqual(t, strict.Id, lenient.Id)
}

func TestRecordMissing(t *testing.T) {
	srv, _ := newSrv(t, &expose.Config{})
	_, err := srv.Record(context.Background(), "0xabc")
	assert.True(t, errors.Is(err, record.ErrNotFound))

	bare, err := NewVerify(&expose.Config{}, nil, nil)
	require.NoError(t, err)
	_, err = bare.Record(context.Background(), "0xabc")
	assert.Equal(t, ErrNoStore, err)
}

func TestEvents(t *testing.T) {
	srv, _ := newSrv(t, &expose.Config{Events: []expose.RawEventConfig{
		{Name: "settled", Kind: "data", Signature: "Settled(bytes32)"},
	}})

	events := srv.Events()
	require.Len(t, events, 6)
	byName := make(map[string]*stream.EventOfResponse)
	for _, ev := range events {
		byName[ev.Name] = ev
	}
	require.Contains(t, byName, "settled")
	assert.Equal(t, 1, byName["settled"].Commitments)
	assert.Equal(t, constant.EventSig("Settled(bytes32)").GetTopic().Hex(), byName["settled"].Signature)
	assert.Equal(t, 2, byName[constant.EventTradeInitiated].Commitments)
}
