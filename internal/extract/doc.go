// Package extract pulls analyzable token addresses out of webhook payloads.
//
// Extraction is best-effort by design: a payload whose shape is merely
// unrecognized yields zero tokens and no error, so the event still flows
// through the pipeline as a no-op. Only structurally invalid payloads (a nil
// document, or a "data" field that is not an array) report
// ErrMalformedPayload, which sends the task down the bounded-retry path.
package extract
