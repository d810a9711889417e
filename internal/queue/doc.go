// Package queue provides the in-memory FIFO hand-off point between webhook
// submissions and the worker pool.
//
// The queue is unbounded: producers never block, at the documented cost of
// unbounded memory growth under sustained overload. Consumers block in Pop
// with a caller-supplied wait so that pool shutdown stays responsive without
// a per-item cancellation channel.
//
// FIFO ordering is preserved among pushes; a retried task re-enters at the
// tail and loses its original position.
package queue
