package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/webhooks/stats", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"total_processed": 7})
	})
	mux.HandleFunc("/v1/webhooks/status", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"queue_size": 0, "workers_running": true})
	})
	mux.HandleFunc("/v1/webhooks/helius/mint", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "success", "result": "accepted"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStatsCommand(t *testing.T) {
	srv := testServer(t)
	cmd := NewStatsCommand(func() string { return srv.URL })
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "total_processed") {
		t.Fatalf("output: %s", out.String())
	}
}

func TestStatusCommand(t *testing.T) {
	srv := testServer(t)
	cmd := NewStatusCommand(func() string { return srv.URL })
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "workers_running") {
		t.Fatalf("output: %s", out.String())
	}
}

func TestWebhookSubmitCommand(t *testing.T) {
	srv := testServer(t)
	root := NewRoot(func() string { return srv.URL })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"webhook", "submit", "--type", "mint", "--payload", `{"mint":"Tok"}`})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "accepted") {
		t.Fatalf("output: %s", out.String())
	}
}

func TestWebhookSubmitRejectsBadType(t *testing.T) {
	root := NewRoot(func() string { return "http://127.0.0.1:0" })
	root.SetArgs([]string{"webhook", "submit", "--type", "bogus", "--payload", `{}`})
	root.SetErr(&bytes.Buffer{})
	root.SetOut(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for invalid type")
	}
}
