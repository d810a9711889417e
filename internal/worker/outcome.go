package worker

// Kind classifies the result of one processing attempt.
type Kind int

const (
	// Success: the task completed and was counted processed.
	Success Kind = iota
	// Retry: the attempt failed and the task was re-enqueued.
	Retry
	// Dropped: the attempt failed with the retry budget exhausted.
	Dropped
	// Abandoned: shutdown arrived mid-task; the task is lost by design.
	Abandoned
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Retry:
		return "retry"
	case Dropped:
		return "dropped"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a processing attempt. Attempt carries the
// task's retry count after the attempt (0 for first-try successes).
type Outcome struct {
	Kind    Kind
	Attempt int
}
