// Package ingest accepts webhook events and decides, synchronously, whether
// each becomes a queued task.
//
// The submission pipeline runs filter -> token extraction -> deduplication ->
// enqueue. Rejections (filtered, duplicate) are counted but are not errors:
// webhook providers treat non-2xx responses as delivery failures and redeliver,
// so the caller must be able to acknowledge a rejected event.
package ingest
