package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mapprotocol/compass-verifier/internal/expose"
	"github.com/mapprotocol/compass-verifier/internal/expose/service"
	"github.com/mapprotocol/compass-verifier/internal/record"
	"github.com/mapprotocol/compass-verifier/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, withStore bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	var store record.Store
	if withStore {
		s, err := record.NewLevelStore(filepath.Join(t.TempDir(), "records"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		store = s
	}
	srv, err := service.NewVerify(&expose.Config{}, store, nil)
	require.NoError(t, err)
	g := gin.New()
	New(srv).Register(g)
	return g
}

func firstFixture(t *testing.T) stream.VerifyOfRequest {
	data, err := os.ReadFile("../../verifier/testdata/fixtures.json")
	require.NoError(t, err)
	var fixtures []stream.VerifyOfRequest
	require.NoError(t, json.Unmarshal(data, &fixtures))
	require.NotEmpty(t, fixtures)
	return fixtures[0]
}

func do(g *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, stream.CommonResp) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	var resp stream.CommonResp
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestVerifyRoundTrip(t *testing.T) {
	g := newRouter(t, true)

	w, resp := do(g, http.MethodPost, "/verify", firstFixture(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusOK, resp.Code)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["verified"])
	assert.Equal(t, "ok", data["reason"])
	id := data["id"].(string)

	w, resp = do(g, http.MethodGet, "/verify/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := resp.Data.(map[string]interface{})
	assert.Equal(t, id, got["id"])
	assert.Equal(t, true, got["verified"])
}

func TestVerifyBadRequest(t *testing.T) {
	g := newRouter(t, false)

	w, _ := do(g, http.MethodPost, "/verify", map[string]string{"event": "confirmed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := firstFixture(t)
	req.Event = "settled"
	w, resp := do(g, http.MethodPost, "/verify", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Message, "settled")
}

func TestRecordNotFound(t *testing.T) {
	w, _ := do(newRouter(t, true), http.MethodGet, "/verify/0xabc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(newRouter(t, false), http.MethodGet, "/verify/0xabc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEvents(t *testing.T) {
	w, resp := do(newRouter(t, false), http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 5)
}
