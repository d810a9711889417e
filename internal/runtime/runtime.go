package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/sifthq/minthook/internal/analyzer"
	"github.com/sifthq/minthook/internal/archive"
	cfgpkg "github.com/sifthq/minthook/internal/config"
	"github.com/sifthq/minthook/internal/dedup"
	"github.com/sifthq/minthook/internal/queue"
	"github.com/sifthq/minthook/internal/services/ingest"
	"github.com/sifthq/minthook/internal/sink"
	"github.com/sifthq/minthook/internal/stats"
	pebblestore "github.com/sifthq/minthook/internal/storage/pebble"
	"github.com/sifthq/minthook/internal/worker"
	logpkg "github.com/sifthq/minthook/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir string
	Fsync   pebblestore.FsyncMode
	Config  cfgpkg.Config
	Logger  logpkg.Logger
}

// Runtime wires storage and the processing pipeline for a single-node
// instance.
type Runtime struct {
	db      *pebblestore.DB
	config  cfgpkg.Config
	logger  logpkg.Logger
	archive *archive.Archive
	queue   *queue.Queue
	stats   *stats.Collector
	dedup   *dedup.Cache
	sink    sink.Sink
	ingest  *ingest.Service
	pool    *worker.Pool
}

// Open initializes storage and wires the pipeline. The worker pool is built
// but not started; callers start it once the outer surfaces are up.
func Open(opts Options) (*Runtime, error) {
	if opts.Logger == nil {
		opts.Logger = logpkg.NewLogger()
	}
	cfg := opts.Config

	db, err := pebblestore.Open(pebblestore.Options{DataDir: opts.DataDir, Fsync: opts.Fsync})
	if err != nil {
		return nil, err
	}

	st := stats.NewCollector()
	arch := archive.New(db)
	q := queue.New()
	cache := dedup.NewCache(time.Duration(cfg.DedupWindowSec)*time.Second, st)

	filter, err := ingest.NewFilter(cfg.Filter)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var an analyzer.Analyzer
	if cfg.Analyzer.URL != "" {
		an = analyzer.NewResilient(analyzer.NewHTTP(cfg.Analyzer.URL), analyzer.ResilientConfig{
			Timeout:     time.Duration(cfg.Analyzer.TimeoutMs) * time.Millisecond,
			MaxAttempts: cfg.Analyzer.MaxAttempts,
			BaseDelay:   time.Duration(cfg.Analyzer.BaseDelayMs) * time.Millisecond,
		})
	} else {
		opts.Logger.Warn("no analyzer endpoint configured; using passthrough")
		an = analyzer.Passthrough{Logger: opts.Logger}
	}

	var snk sink.Sink = sink.Noop{}
	if cfg.Kafka.Enabled {
		k, err := sink.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, nil)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		snk = k
	}

	rt := &Runtime{
		db:      db,
		config:  cfg,
		logger:  opts.Logger,
		archive: arch,
		queue:   q,
		stats:   st,
		dedup:   cache,
		sink:    snk,
	}
	rt.ingest = ingest.New(ingest.Options{
		Queue:   q,
		Dedup:   cache,
		Stats:   st,
		Archive: arch,
		Filter:  filter,
		Logger:  opts.Logger,
	})
	rt.pool = worker.NewPool(worker.Options{
		Queue:      q,
		Analyzer:   an,
		Stats:      st,
		Archive:    arch,
		Sink:       snk,
		Logger:     opts.Logger,
		MaxRetries: cfg.MaxRetries,
		PopWait:    time.Duration(cfg.PopWaitMs) * time.Millisecond,
	})
	return rt, nil
}

// StartWorkers launches the configured number of queue consumers.
func (r *Runtime) StartWorkers() {
	n := r.config.Workers
	if n <= 0 {
		n = cfgpkg.Default().Workers
	}
	r.pool.Start(n)
}

// Close stops the workers and closes the sink and storage.
func (r *Runtime) Close() error {
	if r.pool != nil {
		r.pool.Stop()
	}
	var firstErr error
	if r.sink != nil {
		if err := r.sink.Close(); err != nil {
			firstErr = err
		}
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CheckHealth verifies storage is reachable.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Ingest returns the submission entrypoint.
func (r *Runtime) Ingest() *ingest.Service { return r.ingest }

// Workers returns the pool for lifecycle queries.
func (r *Runtime) Workers() *worker.Pool { return r.pool }

// Stats returns the pipeline counters.
func (r *Runtime) Stats() *stats.Collector { return r.stats }

// Archive returns the event and analysis archive.
func (r *Runtime) Archive() *archive.Archive { return r.archive }

// QueueLen reports the number of pending tasks.
func (r *Runtime) QueueLen() int { return r.queue.Len() }

// DedupLen reports the number of live dedup fingerprints.
func (r *Runtime) DedupLen() int { return r.dedup.Len() }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
