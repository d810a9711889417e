// Package archive keeps a durable, append-only record of accepted webhook
// events and analysis outcomes in Pebble.
//
// The archive is observability, not delivery state: the task queue stays in
// memory and nothing replays from here automatically. Records are keyed by
// time-ordered IDs so recent-first scans are a reverse iteration.
//
// # Keyspace
//
//	ev/{id} - accepted event record (JSON)
//	an/{id} - analysis outcome record (JSON)
package archive
