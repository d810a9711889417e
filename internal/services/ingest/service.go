package ingest

import (
	"context"
	"time"

	"github.com/sifthq/minthook/internal/archive"
	"github.com/sifthq/minthook/internal/dedup"
	"github.com/sifthq/minthook/internal/extract"
	"github.com/sifthq/minthook/internal/queue"
	"github.com/sifthq/minthook/internal/stats"
	"github.com/sifthq/minthook/pkg/id"
	logpkg "github.com/sifthq/minthook/pkg/log"
)

// Disposition reports what happened to a submission.
type Disposition string

const (
	// Accepted: the event was enqueued as a task.
	Accepted Disposition = "accepted"
	// Duplicate: an event for the same token and type was already accepted
	// within the dedup window.
	Duplicate Disposition = "duplicate"
	// Filtered: the configured filter expression rejected the event.
	Filtered Disposition = "filtered"
)

// Options configure a Service. Queue, Dedup, and Stats are required; Archive
// is optional and best-effort.
type Options struct {
	Queue   *queue.Queue
	Dedup   *dedup.Cache
	Stats   *stats.Collector
	Archive *archive.Archive
	Filter  Filter
	Logger  logpkg.Logger
}

// Service is the single entrypoint turning webhook events into queued tasks.
type Service struct {
	queue   *queue.Queue
	dedup   *dedup.Cache
	stats   *stats.Collector
	archive *archive.Archive
	filter  Filter
	logger  logpkg.Logger
	ids     *id.Generator
}

// New builds a Service from opts.
func New(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logpkg.NewLogger()
	}
	return &Service{
		queue:   opts.Queue,
		dedup:   opts.Dedup,
		stats:   opts.Stats,
		archive: opts.Archive,
		filter:  opts.Filter,
		logger:  opts.Logger.With(logpkg.Component("ingest")),
		ids:     id.NewGenerator(),
	}
}

// Submit runs the submission pipeline for one event and returns its
// disposition. Rejections are not errors; Submit only fails on internal
// problems, and currently always returns a nil error so webhook handlers can
// acknowledge every delivery.
//
// Malformed payloads are accepted: extraction yields no primary token, so
// deduplication is skipped and the task proceeds to the workers, where the
// structural error surfaces on the bounded-retry path.
func (s *Service) Submit(ctx context.Context, eventType string, payload map[string]any, priority queue.Priority) (Disposition, error) {
	if priority == "" {
		priority = queue.PriorityNormal
	}

	if !s.filter.Accept(eventType, payload) {
		s.stats.EventFiltered()
		s.logger.Debug("event filtered", logpkg.Str("event_type", eventType))
		return Filtered, nil
	}

	primary := extract.PrimaryToken(eventType, payload)
	if s.dedup.IsDuplicate(primary, eventType) {
		s.logger.Debug("duplicate suppressed",
			logpkg.Str("event_type", eventType),
			logpkg.Str("token", primary))
		return Duplicate, nil
	}

	task := &queue.Task{
		ID:           s.ids.Next(),
		EventType:    eventType,
		Payload:      payload,
		Priority:     priority,
		SubmittedAt:  time.Now(),
		PrimaryToken: primary,
	}
	s.queue.Push(task)

	if s.archive != nil {
		rec := archive.EventRecord{
			EventType:     eventType,
			PrimaryToken:  primary,
			Priority:      string(priority),
			SubmittedAtMs: task.SubmittedAt.UnixMilli(),
			Payload:       payload,
		}
		if _, err := s.archive.PutEvent(rec); err != nil {
			s.logger.Warn("archive event write failed", logpkg.Err(err))
		}
	}

	s.logger.Debug("task enqueued",
		logpkg.Str("task_id", task.ID.String()),
		logpkg.Str("event_type", eventType),
		logpkg.Str("token", primary),
		logpkg.Int("queue_len", s.queue.Len()))
	return Accepted, nil
}

// QueueLen exposes the pending task count for the status surface.
func (s *Service) QueueLen() int { return s.queue.Len() }
