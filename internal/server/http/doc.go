// Package httpserver exposes the webhook ingestion API: provider endpoints
// under /v1/webhooks/helius/, the status and stats surfaces, and read access
// to the archived events and analyses.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: config.Default()})
//	s := httpserver.New(rt, logger)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":8080")
package httpserver
