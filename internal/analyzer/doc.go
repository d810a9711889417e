// Package analyzer defines the security-analysis capability invoked by the
// worker pool, one call per extracted token.
//
// The concrete analysis service lives outside this process. HTTPAnalyzer is
// the production client for it; Resilient wraps any Analyzer with a per-call
// timeout and bounded retry; Passthrough approves everything and is wired
// when no analyzer endpoint is configured.
package analyzer
