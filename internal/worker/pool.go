package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sifthq/minthook/internal/analyzer"
	"github.com/sifthq/minthook/internal/archive"
	"github.com/sifthq/minthook/internal/extract"
	"github.com/sifthq/minthook/internal/queue"
	"github.com/sifthq/minthook/internal/sink"
	"github.com/sifthq/minthook/internal/stats"
	logpkg "github.com/sifthq/minthook/pkg/log"
)

const (
	// DefaultPopWait bounds each Pop so consumers notice shutdown promptly.
	DefaultPopWait = time.Second

	// DefaultMaxRetries is the number of re-enqueues after the first failed
	// attempt, so a task is attempted at most DefaultMaxRetries+1 times.
	DefaultMaxRetries = 2
)

// Options configure a Pool. Queue, Analyzer, and Stats are required; Archive
// and Sink are optional and best-effort.
type Options struct {
	Queue    *queue.Queue
	Analyzer analyzer.Analyzer
	Stats    *stats.Collector
	Archive  *archive.Archive
	Sink     sink.Sink
	Logger   logpkg.Logger

	MaxRetries int
	PopWait    time.Duration
}

// Pool owns a set of consumer goroutines draining the task queue.
type Pool struct {
	queue    *queue.Queue
	analyzer analyzer.Analyzer
	stats    *stats.Collector
	archive  *archive.Archive
	sink     sink.Sink
	logger   logpkg.Logger

	maxRetries int
	popWait    time.Duration

	mu      sync.Mutex
	running bool
	workers int
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewPool builds a stopped Pool from opts, applying defaults for PopWait,
// MaxRetries, Sink, and Logger.
func NewPool(opts Options) *Pool {
	if opts.PopWait <= 0 {
		opts.PopWait = DefaultPopWait
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Sink == nil {
		opts.Sink = sink.Noop{}
	}
	if opts.Logger == nil {
		opts.Logger = logpkg.NewLogger()
	}
	return &Pool{
		queue:      opts.Queue,
		analyzer:   opts.Analyzer,
		stats:      opts.Stats,
		archive:    opts.Archive,
		sink:       opts.Sink,
		logger:     opts.Logger.With(logpkg.Component("worker")),
		maxRetries: opts.MaxRetries,
		popWait:    opts.PopWait,
	}
}

// Start launches n consumers. A second Start on a running pool is a no-op,
// whatever n it asks for.
func (p *Pool) Start(n int) {
	if n <= 0 {
		n = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.logger.Debug("start ignored; pool already running", logpkg.Int("workers", p.workers))
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.running = true
	p.workers = n
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("worker-%d", i)
		p.wg.Add(1)
		go p.run(ctx, name)
	}
	p.logger.Info("worker pool started", logpkg.Int("workers", n))
}

// Stop cancels the consumers and waits for them to exit. It never fails and
// is safe to call on a stopped pool.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	cancel()
	p.wg.Wait()

	p.mu.Lock()
	p.workers = 0
	p.mu.Unlock()
	p.logger.Info("worker pool stopped")
}

// Running reports whether the pool has active consumers.
func (p *Pool) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// WorkerCount returns the number of consumers started, 0 when stopped.
func (p *Pool) WorkerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.workers
}

func (p *Pool) run(ctx context.Context, name string) {
	defer p.wg.Done()
	logger := p.logger.With(logpkg.Str("worker", name))
	logger.Debug("consumer started")

	for {
		task, err := p.queue.Pop(ctx, p.popWait)
		if err == queue.ErrEmpty {
			continue
		}
		if err != nil {
			logger.Debug("consumer stopping", logpkg.Err(err))
			return
		}

		outcome := p.process(ctx, logger, task)
		switch outcome.Kind {
		case Retry:
			p.queue.Push(task)
		case Dropped:
			logger.Warn("task dropped after exhausting retries",
				logpkg.Str("task_id", task.ID.String()),
				logpkg.Str("event_type", task.EventType),
				logpkg.Int("attempts", outcome.Attempt+1))
		case Abandoned:
			logger.Debug("task abandoned during shutdown",
				logpkg.Str("task_id", task.ID.String()))
			return
		}
	}
}

// process runs one attempt. Analyzer failures are isolated per token; only a
// task-level failure (malformed payload) feeds the retry path.
func (p *Pool) process(ctx context.Context, logger logpkg.Logger, task *queue.Task) Outcome {
	tokens, err := extract.Tokens(task.EventType, task.Payload)
	if err != nil {
		return p.fail(logger, task, err)
	}

	for _, token := range tokens {
		p.stats.AnalysisTriggered()
		source := "webhook_" + task.EventType
		res, aerr := p.analyzer.Analyze(ctx, token, source)
		if ctx.Err() != nil {
			return Outcome{Kind: Abandoned, Attempt: task.RetryCount}
		}

		rec := archive.AnalysisRecord{
			Token:      token,
			Source:     source,
			Passed:     res.SecurityCheckPassed,
			StoredInDB: res.StoredInDB,
			AtMs:       time.Now().UnixMilli(),
		}
		switch {
		case aerr != nil:
			p.stats.AnalysisFailed()
			rec.Error = aerr.Error()
			logger.Warn("analysis failed",
				logpkg.Str("token", token),
				logpkg.Str("event_type", task.EventType),
				logpkg.Err(aerr))
		case res.SecurityCheckPassed:
			p.stats.AnalysisPassed()
		default:
			p.stats.AnalysisFailed()
		}

		if p.archive != nil {
			if _, err := p.archive.PutAnalysis(rec); err != nil {
				logger.Warn("archive analysis write failed", logpkg.Err(err))
			}
		}
		if err := p.sink.Emit(ctx, "analysis", rec); err != nil {
			logger.Warn("sink emit failed", logpkg.Err(err))
		}
	}

	p.stats.TaskProcessed()
	return Outcome{Kind: Success, Attempt: task.RetryCount}
}

// fail counts the failed attempt and decides between re-enqueue and drop.
func (p *Pool) fail(logger logpkg.Logger, task *queue.Task, err error) Outcome {
	p.stats.TaskFailed()
	if task.RetryCount < p.maxRetries {
		task.RetryCount++
		p.stats.TaskRetried()
		logger.Warn("task failed; retrying",
			logpkg.Str("task_id", task.ID.String()),
			logpkg.Str("event_type", task.EventType),
			logpkg.Int("retry", task.RetryCount),
			logpkg.Err(err))
		return Outcome{Kind: Retry, Attempt: task.RetryCount}
	}
	p.stats.TaskDropped()
	return Outcome{Kind: Dropped, Attempt: task.RetryCount}
}
