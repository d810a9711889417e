package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/sifthq/minthook/internal/dedup"
	"github.com/sifthq/minthook/internal/queue"
	"github.com/sifthq/minthook/internal/stats"
)

func newTestService(t *testing.T, filterExpr string) (*Service, *queue.Queue, *stats.Collector) {
	t.Helper()
	st := stats.NewCollector()
	q := queue.New()
	f, err := NewFilter(filterExpr)
	if err != nil {
		t.Fatalf("compile filter: %v", err)
	}
	svc := New(Options{
		Queue:  q,
		Dedup:  dedup.NewCache(300*time.Second, st),
		Stats:  st,
		Filter: f,
	})
	return svc, q, st
}

func mintPayload(token string) map[string]any {
	return map[string]any{
		"data": []any{
			map[string]any{"accountData": []any{map[string]any{"mint": token}}},
		},
	}
}

func TestSubmitEnqueues(t *testing.T) {
	svc, q, _ := newTestService(t, "")

	disp, err := svc.Submit(context.Background(), "mint", mintPayload("TokXYZ"), "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if disp != Accepted {
		t.Fatalf("disposition: got %s, want %s", disp, Accepted)
	}
	if got := q.Len(); got != 1 {
		t.Fatalf("queue len: got %d, want 1", got)
	}

	task, err := q.Pop(context.Background(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if task.EventType != "mint" || task.PrimaryToken != "TokXYZ" {
		t.Fatalf("task fields: %+v", task)
	}
	if task.Priority != queue.PriorityNormal {
		t.Fatalf("default priority: got %s", task.Priority)
	}
}

func TestSubmitDeduplicatesWithinWindow(t *testing.T) {
	svc, q, st := newTestService(t, "")
	ctx := context.Background()

	// Same token twice, moments apart, inside the 300s window.
	if disp, _ := svc.Submit(ctx, "mint", mintPayload("XYZ"), ""); disp != Accepted {
		t.Fatalf("first submission: got %s", disp)
	}
	time.Sleep(50 * time.Millisecond)
	if disp, _ := svc.Submit(ctx, "mint", mintPayload("XYZ"), ""); disp != Duplicate {
		t.Fatalf("second submission: got %s, want %s", disp, Duplicate)
	}

	if got := q.Len(); got != 1 {
		t.Fatalf("queue len after both: got %d, want 1", got)
	}
	if got := st.Snapshot().DuplicatesPrevented; got != 1 {
		t.Fatalf("duplicates_prevented: got %d, want 1", got)
	}
}

func TestSubmitDistinctTokensNotDeduplicated(t *testing.T) {
	svc, q, st := newTestService(t, "")
	ctx := context.Background()

	svc.Submit(ctx, "mint", mintPayload("TokA"), "")
	svc.Submit(ctx, "mint", mintPayload("TokB"), "")

	if got := q.Len(); got != 2 {
		t.Fatalf("queue len: got %d, want 2", got)
	}
	if got := st.Snapshot().DuplicatesPrevented; got != 0 {
		t.Fatalf("duplicates_prevented: got %d, want 0", got)
	}
}

func TestSubmitSameTokenDifferentEventType(t *testing.T) {
	svc, q, _ := newTestService(t, "")
	ctx := context.Background()

	svc.Submit(ctx, "mint", mintPayload("TokA"), "")
	svc.Submit(ctx, "tx", map[string]any{"mint": "TokA"}, "")

	// Event type participates in the fingerprint, so these do not collapse.
	if got := q.Len(); got != 2 {
		t.Fatalf("queue len: got %d, want 2", got)
	}
}

func TestSubmitSkipsDedupWhenNoToken(t *testing.T) {
	svc, q, st := newTestService(t, "")
	ctx := context.Background()

	// No recognizable token fields: extraction yields nothing, dedup is
	// skipped, and both submissions are enqueued.
	payload := map[string]any{"note": "no tokens here"}
	for i := 0; i < 2; i++ {
		if disp, _ := svc.Submit(ctx, "mint", payload, ""); disp != Accepted {
			t.Fatalf("submission %d: got %s", i, disp)
		}
	}
	if got := q.Len(); got != 2 {
		t.Fatalf("queue len: got %d, want 2", got)
	}
	if got := st.Snapshot().DuplicatesPrevented; got != 0 {
		t.Fatalf("duplicates_prevented: got %d, want 0", got)
	}
}

func TestSubmitMalformedPayloadStillEnqueued(t *testing.T) {
	svc, q, _ := newTestService(t, "")

	// "data" present but not an array. The structural error surfaces at
	// processing time, not at submission.
	disp, err := svc.Submit(context.Background(), "mint", map[string]any{"data": 42}, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if disp != Accepted {
		t.Fatalf("disposition: got %s", disp)
	}
	task, _ := q.Pop(context.Background(), 10*time.Millisecond)
	if task == nil || task.PrimaryToken != "" {
		t.Fatalf("task: %+v", task)
	}
}

func TestSubmitFilterRejects(t *testing.T) {
	svc, q, st := newTestService(t, `event_type == "pool"`)
	ctx := context.Background()

	if disp, _ := svc.Submit(ctx, "mint", mintPayload("TokA"), ""); disp != Filtered {
		t.Fatalf("mint: got %s, want %s", disp, Filtered)
	}
	if disp, _ := svc.Submit(ctx, "pool", map[string]any{"tokenA": "TokA"}, ""); disp != Accepted {
		t.Fatalf("pool: got %s, want %s", disp, Accepted)
	}

	if got := q.Len(); got != 1 {
		t.Fatalf("queue len: got %d, want 1", got)
	}
	if got := st.Snapshot().EventsFiltered; got != 1 {
		t.Fatalf("events_filtered: got %d, want 1", got)
	}
}

func TestFilterPayloadFields(t *testing.T) {
	f, err := NewFilter(`json.tokenA == "Keep"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !f.Accept("pool", map[string]any{"tokenA": "Keep"}) {
		t.Fatal("expected accept")
	}
	if f.Accept("pool", map[string]any{"tokenA": "Drop"}) {
		t.Fatal("expected reject")
	}
	// Missing field: evaluation errors reject the event.
	if f.Accept("pool", map[string]any{}) {
		t.Fatal("expected reject on missing field")
	}
}

func TestFilterInvalidExpression(t *testing.T) {
	if _, err := NewFilter(`event_type ==`); err == nil {
		t.Fatal("expected compile error")
	}
}
