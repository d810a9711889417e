// Package client provides the `minthook` command-line client.
//
// The CLI talks to the minthook HTTP API to inspect and exercise a running
// server from a terminal. It is primarily intended for developers and
// operators.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it is read
// from the MINTHOOK_HTTP environment variable (default
// http://127.0.0.1:8080).
//
// Usage
//
//	minthook stats
//	minthook status
//
//	# Replay a payload through the ingestion endpoint
//	minthook webhook submit --type mint \
//	    --payload '{"data":[{"accountData":[{"mint":"TokenMint111"}]}]}'
//	minthook webhook submit --type tx --file delivery.json
//
//	# Inspect the archive, newest first
//	minthook events recent --limit 20
//	minthook events analyses --limit 20
package client
