package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/ChainSafe/log15"
	"github.com/mapprotocol/compass-verifier/internal/constant"
)

var (
	prefix, hooksUrl = "", ""
	m                = NewRWMap()
	alarmClient      = &http.Client{Timeout: constant.HttpTimeOut}
)

func Init(env, hooks string) {
	prefix = env
	hooksUrl = hooks
}

// Alarm posts msg to the configured webhook, at most once per AlarmInterval for
// the same message. It reports whether a request was sent.
func Alarm(ctx context.Context, msg string) bool {
	if hooksUrl == "" {
		log.Debug("hooks is empty, skip alarm", "msg", msg)
		return false
	}
	now := time.Now().Unix()
	v, ok := m.Get(msg)
	if ok && now-v < constant.AlarmInterval {
		return false
	}
	m.Prune(now - constant.AlarmInterval)
	m.Set(msg, now)

	body, err := json.Marshal(map[string]interface{}{
		"text": fmt.Sprintf("%s %s", prefix, msg),
	})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hooksUrl, io.NopCloser(bytes.NewReader(body)))
	if err != nil {
		log.Warn("build alarm request failed", "err", err)
		return false
	}
	req.Header.Set("Content-type", "application/json")
	req.Header.Set("User-Agent", constant.Agent)

	resp, err := alarmClient.Do(req)
	if err != nil {
		log.Warn("send alarm failed", "err", err)
		return false
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("read resp failed", "err", err)
		return true
	}
	log.Info("send alarm message", "resp", string(data))
	return true
}
