package stats

import (
	"math"
	"sync/atomic"
)

// Collector holds monotonically increasing pipeline counters.
// The zero value is ready to use; all methods are safe for concurrent use.
type Collector struct {
	totalProcessed      atomic.Int64
	totalFailed         atomic.Int64
	duplicatesPrevented atomic.Int64
	eventsFiltered      atomic.Int64
	tasksRetried        atomic.Int64
	tasksDropped        atomic.Int64
	analysesTriggered   atomic.Int64
	analysesPassed      atomic.Int64
	analysesFailed      atomic.Int64
}

// NewCollector returns a fresh Collector.
func NewCollector() *Collector { return &Collector{} }

// TaskProcessed records a task that completed successfully.
func (c *Collector) TaskProcessed() { c.totalProcessed.Add(1) }

// TaskFailed records a failed processing attempt. It is incremented on every
// failed attempt, including ones that will be retried.
func (c *Collector) TaskFailed() { c.totalFailed.Add(1) }

// DuplicatePrevented records a submission dropped by the dedup cache.
func (c *Collector) DuplicatePrevented() { c.duplicatesPrevented.Add(1) }

// EventFiltered records a submission rejected by the ingest filter.
func (c *Collector) EventFiltered() { c.eventsFiltered.Add(1) }

// TaskRetried records a task re-enqueued after a failed attempt.
func (c *Collector) TaskRetried() { c.tasksRetried.Add(1) }

// TaskDropped records a task discarded after exhausting its retry budget.
func (c *Collector) TaskDropped() { c.tasksDropped.Add(1) }

// AnalysisTriggered records an analyzer call about to be made.
func (c *Collector) AnalysisTriggered() { c.analysesTriggered.Add(1) }

// AnalysisPassed records an analyzer result with the security check passed.
func (c *Collector) AnalysisPassed() { c.analysesPassed.Add(1) }

// AnalysisFailed records an analyzer result with the check failed, or an
// analyzer call that returned an error.
func (c *Collector) AnalysisFailed() { c.analysesFailed.Add(1) }

// Snapshot is a point-in-time, read-only view of the counters.
type Snapshot struct {
	TotalProcessed      int64   `json:"total_processed"`
	TotalFailed         int64   `json:"total_failed"`
	DuplicatesPrevented int64   `json:"duplicates_prevented"`
	EventsFiltered      int64   `json:"events_filtered"`
	TasksRetried        int64   `json:"tasks_retried"`
	TasksDropped        int64   `json:"tasks_dropped"`
	AnalysesTriggered   int64   `json:"security_analyses_triggered"`
	AnalysesPassed      int64   `json:"security_analyses_passed"`
	AnalysesFailed      int64   `json:"security_analyses_failed"`
	SuccessRate         float64 `json:"success_rate"`
	SecurityPassRate    float64 `json:"security_pass_rate"`
}

// Snapshot derives the success and pass rates from the current counters.
// SuccessRate is 0 when nothing has been processed yet.
func (c *Collector) Snapshot() Snapshot {
	s := Snapshot{
		TotalProcessed:      c.totalProcessed.Load(),
		TotalFailed:         c.totalFailed.Load(),
		DuplicatesPrevented: c.duplicatesPrevented.Load(),
		EventsFiltered:      c.eventsFiltered.Load(),
		TasksRetried:        c.tasksRetried.Load(),
		TasksDropped:        c.tasksDropped.Load(),
		AnalysesTriggered:   c.analysesTriggered.Load(),
		AnalysesPassed:      c.analysesPassed.Load(),
		AnalysesFailed:      c.analysesFailed.Load(),
	}
	if total := s.TotalProcessed + s.TotalFailed; total > 0 {
		s.SuccessRate = round2(float64(s.TotalProcessed) / float64(total) * 100)
	}
	den := s.AnalysesPassed + s.AnalysesFailed
	if den < 1 {
		den = 1
	}
	s.SecurityPassRate = round2(float64(s.AnalysesPassed) / float64(den) * 100)
	return s
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
