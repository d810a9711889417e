// Package worker runs the pool of queue consumers that turn webhook tasks
// into security analyses.
//
// Each consumer pops with a short wait so shutdown stays responsive, invokes
// the analyzer once per extracted token, and records the attempt's outcome
// as a tagged value (Success, Retry, Dropped, Abandoned) so the retry policy
// is visible at the type level rather than buried in side effects.
//
// Failure isolation: one token's analyzer error never aborts its task, and a
// task-level error (malformed payload) is retried at most MaxRetries times
// before the task is dropped with no persistence. A task in flight when the
// pool stops is abandoned; the archive still holds its accepted event for
// manual replay.
package worker
