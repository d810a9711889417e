package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cfgpkg "github.com/sifthq/minthook/internal/config"
	"github.com/sifthq/minthook/internal/runtime"
	pebblestore "github.com/sifthq/minthook/internal/storage/pebble"
	logpkg "github.com/sifthq/minthook/pkg/log"
)

func newTestServer(t *testing.T) (*Server, *runtime.Runtime) {
	t.Helper()
	rt, err := runtime.Open(runtime.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeAlways,
		Config:  cfgpkg.Default(),
	})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	logger, _ := logpkg.ApplyConfig(&logpkg.Config{Level: "error", Format: "text"})
	return New(rt, logger), rt
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/v1/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestWebhookMintAccepted(t *testing.T) {
	s, rt := newTestServer(t)
	body := `{"data":[{"accountData":[{"mint":"TokWeb"}]}]}`
	w := doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/mint", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "success" || resp["result"] != "accepted" {
		t.Fatalf("response: %v", resp)
	}
	if _, ok := resp["response_time_ms"]; !ok {
		t.Fatalf("missing response_time_ms: %v", resp)
	}
	if got := rt.QueueLen(); got != 1 {
		t.Fatalf("queue len: got %d, want 1", got)
	}
}

func TestWebhookEmptyBody(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/mint", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestWebhookInvalidJSON(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/mint", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestWebhookDoubleEncodedBody(t *testing.T) {
	s, rt := newTestServer(t)
	// The provider occasionally sends the JSON document as a JSON string.
	inner := `{"data":[{"accountData":[{"mint":"TokDbl"}]}]}`
	outer, _ := json.Marshal(inner)
	w := doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/mint", string(outer))
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", w.Code, w.Body.String())
	}
	if got := rt.QueueLen(); got != 1 {
		t.Fatalf("queue len: got %d, want 1", got)
	}
}

func TestWebhookArrayBodyWrapped(t *testing.T) {
	s, rt := newTestServer(t)
	body := `[{"accountData":[{"mint":"TokArr"}]}]`
	w := doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/mint", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if got := rt.QueueLen(); got != 1 {
		t.Fatalf("queue len: got %d, want 1", got)
	}
}

func TestWebhookDuplicateStill200(t *testing.T) {
	s, rt := newTestServer(t)
	body := `{"data":[{"accountData":[{"mint":"TokDup"}]}]}`
	for i := 0; i < 2; i++ {
		w := doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/mint", body)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status: %d", i, w.Code)
		}
	}
	if got := rt.QueueLen(); got != 1 {
		t.Fatalf("queue len: got %d, want 1", got)
	}
	var resp map[string]any
	w := doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/mint", body)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["result"] != "duplicate" {
		t.Fatalf("result: %v", resp)
	}
}

func TestWebhookPoolAndTx(t *testing.T) {
	s, rt := newTestServer(t)
	if w := doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/pool", `{"tokenA":"A","tokenB":"B"}`); w.Code != http.StatusOK {
		t.Fatalf("pool status: %d", w.Code)
	}
	if w := doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/tx", `{"mint":"TokTx"}`); w.Code != http.StatusOK {
		t.Fatalf("tx status: %d", w.Code)
	}
	if got := rt.QueueLen(); got != 2 {
		t.Fatalf("queue len: got %d, want 2", got)
	}
}

func TestWebhookMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/v1/webhooks/helius/mint", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	s, rt := newTestServer(t)
	rt.StartWorkers()

	w := doRequest(t, s, http.MethodGet, "/v1/webhooks/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["workers_running"] != true {
		t.Fatalf("workers_running: %v", resp)
	}
	if resp["worker_count"].(float64) != float64(cfgpkg.Default().Workers) {
		t.Fatalf("worker_count: %v", resp["worker_count"])
	}
}

func TestStatsHandler(t *testing.T) {
	s, _ := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/tx", `{"mint":"TokStats"}`)
	doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/tx", `{"mint":"TokStats"}`)

	w := doRequest(t, s, http.MethodGet, "/v1/webhooks/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["duplicates_prevented"].(float64) != 1 {
		t.Fatalf("duplicates_prevented: %v", resp)
	}
}

func TestRecentEventsHandler(t *testing.T) {
	s, _ := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/v1/webhooks/helius/tx", `{"mint":"TokRecent"}`)

	w := doRequest(t, s, http.MethodGet, "/v1/events/recent?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp struct {
		Events []map[string]any `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("events: got %d, want 1", len(resp.Events))
	}
}
