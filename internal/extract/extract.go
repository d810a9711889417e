package extract

import "errors"

// ErrMalformedPayload marks a payload that is structurally invalid, as
// opposed to one that simply carries no recognizable token fields.
var ErrMalformedPayload = errors.New("extract: malformed payload")

// Event types with dedicated extraction rules.
const (
	EventMint = "mint"
	EventPool = "pool"
	EventTx   = "tx"
)

// Tokens returns the analyzable token addresses for an event.
//
// Mint events collect candidate addresses from data[].accountData[].mint and
// from data[].tokenTransfers[] entries whose fromTokenAccount is empty (a
// fresh mint, not a transfer), deduplicate them, and keep only the first:
// mint events analyze exactly one token per task.
//
// Pool events extract tokenA and tokenB; tx events extract the top-level
// mint field. Unknown event types fall back to the top-level mint field.
func Tokens(eventType string, payload map[string]any) ([]string, error) {
	if payload == nil {
		return nil, ErrMalformedPayload
	}
	switch eventType {
	case EventMint:
		return mintTokens(payload)
	case EventPool:
		return poolTokens(payload), nil
	default:
		if tok := str(payload["mint"]); tok != "" {
			return []string{tok}, nil
		}
		return nil, nil
	}
}

// PrimaryToken returns the token used for deduplication at submission time,
// or "" when extraction finds nothing (including malformed payloads; dedup
// is simply skipped for those).
func PrimaryToken(eventType string, payload map[string]any) string {
	tokens, err := Tokens(eventType, payload)
	if err != nil || len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

func mintTokens(payload map[string]any) ([]string, error) {
	entries, err := dataEntries(payload)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var candidates []string
	add := func(tok string) {
		if tok == "" {
			return
		}
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		candidates = append(candidates, tok)
	}

	for _, entry := range entries {
		for _, acct := range objects(entry["accountData"]) {
			add(str(acct["mint"]))
		}
		for _, tr := range objects(entry["tokenTransfers"]) {
			// An empty fromTokenAccount marks a freshly minted token rather
			// than a transfer between holders.
			if from, ok := tr["fromTokenAccount"]; ok && str(from) == "" {
				add(str(tr["mint"]))
			}
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}
	// One token per mint task.
	return candidates[:1], nil
}

func poolTokens(payload map[string]any) []string {
	var out []string
	if tok := str(payload["tokenA"]); tok != "" {
		out = append(out, tok)
	}
	if tok := str(payload["tokenB"]); tok != "" && (len(out) == 0 || out[0] != tok) {
		out = append(out, tok)
	}
	return out
}

// dataEntries returns the objects to scan for token fields. A "data" field
// must be an array when present; without one, the payload itself is scanned.
func dataEntries(payload map[string]any) ([]map[string]any, error) {
	raw, ok := payload["data"]
	if !ok {
		return []map[string]any{payload}, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, ErrMalformedPayload
	}
	entries := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			entries = append(entries, m)
		}
	}
	return entries, nil
}

func objects(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
