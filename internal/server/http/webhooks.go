package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sifthq/minthook/internal/queue"
	logpkg "github.com/sifthq/minthook/pkg/log"
)

var errNotJSONObject = errors.New("body is not a JSON object or array")

// webhook returns the handler for one provider event type.
//
// Only transport-level problems (empty body, undecodable JSON) produce a 400.
// Anything after a successful parse answers 200 even on error: the provider
// treats non-2xx as a delivery failure and redelivers, which would multiply
// a payload we already know how to handle (or drop).
func (s *Server) webhook(eventType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		start := time.Now()
		body, err := io.ReadAll(r.Body)
		if err != nil || len(body) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"status": "error", "message": "empty body",
			})
			return
		}

		payload, err := decodeWebhookBody(body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"status": "error", "message": "invalid JSON",
			})
			return
		}

		disp, err := s.rt.Ingest().Submit(r.Context(), eventType, payload, queue.PriorityNormal)
		if err != nil {
			s.logger.Error("webhook submit failed",
				logpkg.Str("event_type", eventType), logpkg.Err(err))
			writeJSON(w, http.StatusOK, map[string]any{
				"status": "error", "message": "submission failed",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":           "success",
			"result":           string(disp),
			"response_time_ms": time.Since(start).Milliseconds(),
		})
	}
}

// decodeWebhookBody parses a provider delivery into a payload map.
//
// Helius sometimes double-encodes: the body is a JSON string whose content is
// the actual JSON document. A top-level array is wrapped as {"data": [...]} so
// the extraction rules see one shape.
func decodeWebhookBody(body []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	if s, ok := v.(string); ok {
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, err
		}
	}
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case []any:
		return map[string]any{"data": t}, nil
	default:
		return nil, errNotJSONObject
	}
}
