package queue

import (
	"time"

	"github.com/sifthq/minthook/pkg/id"
)

// Priority is carried on tasks for observability. The queue itself is not
// priority-ordered.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Task is one webhook event awaiting processing.
type Task struct {
	ID          id.ID
	EventType   string
	Payload     map[string]any
	Priority    Priority
	SubmittedAt time.Time

	// RetryCount is the number of times this task has been re-enqueued after
	// a failed attempt. It is the task's only mutable field.
	RetryCount int

	// PrimaryToken is the token extracted at submission time, used for
	// deduplication. Empty when extraction found nothing.
	PrimaryToken string
}
