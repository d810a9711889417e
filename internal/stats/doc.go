// Package stats collects processing counters for the webhook pipeline.
//
// Counters are updated with atomic increments by the dedup cache, the ingest
// service, and the worker pool, and read as an immutable Snapshot by the
// status surface. Counters reset only on process restart.
package stats
