// Package dedup implements the windowed deduplication cache that sits in
// front of the task queue.
//
// A submission is fingerprinted by (token, event type, time bucket) and
// rejected when the same fingerprint was accepted within the configured
// window. Submissions without an extractable token are never deduplicated:
// occasional double-processing is preferred over silently dropping events
// that cannot be identified.
//
// The check-and-record sequence runs under a single mutex so that two
// concurrent submissions for the same fingerprint cannot both be accepted.
// Expired entries are evicted lazily on each check; there is no background
// timer.
package dedup
