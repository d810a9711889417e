// Package pebblestore provides a thin wrapper around Pebble with an fsync
// policy, batches, and copy-safe point reads. The archive is its only
// consumer; the task queue deliberately stays in memory.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{DataDir: "./data"})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	_ = db.Set([]byte("k"), []byte("v"))
//	v, _ := db.Get([]byte("k"))
package pebblestore
