package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	logpkg "github.com/sifthq/minthook/pkg/log"
)

// Result is the outcome of analyzing a single token.
type Result struct {
	SecurityCheckPassed bool `json:"security_check_passed"`
	StoredInDB          bool `json:"stored_in_db"`
}

// Analyzer triggers security analysis for one token address. source names
// the trigger origin, e.g. "webhook_mint".
type Analyzer interface {
	Analyze(ctx context.Context, tokenAddress, source string) (Result, error)
}

// HTTPAnalyzer calls the downstream analysis service over HTTP.
type HTTPAnalyzer struct {
	baseURL string
	client  *http.Client
}

// NewHTTP builds an HTTPAnalyzer against baseURL. The client carries no
// timeout of its own; wrap with Resilient to bound call duration.
func NewHTTP(baseURL string) *HTTPAnalyzer {
	return &HTTPAnalyzer{baseURL: baseURL, client: &http.Client{}}
}

type analyzeRequest struct {
	TokenAddress string `json:"token_address"`
	Source       string `json:"source"`
}

// Analyze POSTs the token to the analysis service and decodes its verdict.
func (a *HTTPAnalyzer) Analyze(ctx context.Context, tokenAddress, source string) (Result, error) {
	body, err := json.Marshal(analyzeRequest{TokenAddress: tokenAddress, Source: source})
	if err != nil {
		return Result{}, fmt.Errorf("analyzer: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("analyzer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("analyzer: call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("analyzer: unexpected status %d", resp.StatusCode)
	}
	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("analyzer: decode response: %w", err)
	}
	return out, nil
}

// Passthrough approves every token. Wired when no analyzer endpoint is
// configured so development setups keep working stats semantics.
type Passthrough struct {
	Logger logpkg.Logger
}

// Analyze reports the security check as passed without calling anything.
func (p Passthrough) Analyze(_ context.Context, tokenAddress, source string) (Result, error) {
	if p.Logger != nil {
		p.Logger.Debug("analysis disabled; passing token through",
			logpkg.Str("token", tokenAddress), logpkg.Str("source", source))
	}
	return Result{SecurityCheckPassed: true}, nil
}
