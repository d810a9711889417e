// Package runtime is the composition root: it opens storage and wires the
// dedup cache, task queue, stats, analyzer, sink, ingest service, and worker
// pool into one single-node instance.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: cfg})
//	defer rt.Close()
//	rt.StartWorkers()
//	_, _ = rt.Ingest().Submit(ctx, "mint", payload, queue.PriorityNormal)
package runtime
