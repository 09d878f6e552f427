package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	log "github.com/ChainSafe/log15"
	"github.com/mapprotocol/compass-verifier/internal/constant"
	"github.com/pkg/errors"
)

var (
	cli = http.Client{
		Timeout: constant.HttpTimeOut,
	}
)

func JsonPost(ctx context.Context, url string, data []byte) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.Debug("JsonPost", "url", url, "duration", time.Since(start))
	}()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", constant.Agent)

	resp, err := cli.Do(req)
	if err != nil {
		log.Error("JsonPost request error", "url", url, "error", err)
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("JsonPost io.ReadAll error", "url", url, "error", err)
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		return body, errors.Errorf("JsonPost %s: status %d", url, resp.StatusCode)
	}
	return body, nil
}
