package archive

import (
	"testing"

	pebblestore "github.com/sifthq/minthook/internal/storage/pebble"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db)
}

func TestPutAndRecentEvents(t *testing.T) {
	a := openTestArchive(t)
	for _, et := range []string{"mint", "pool", "tx"} {
		if _, err := a.PutEvent(EventRecord{EventType: et, SubmittedAtMs: 1}); err != nil {
			t.Fatalf("put %s: %v", et, err)
		}
	}

	recs, err := a.RecentEvents(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("recent count: got %d, want 3", len(recs))
	}
	// newest first
	if recs[0].EventType != "tx" || recs[2].EventType != "mint" {
		t.Fatalf("order: got %s..%s", recs[0].EventType, recs[2].EventType)
	}
	for _, r := range recs {
		if r.ID == "" {
			t.Fatalf("record missing id: %+v", r)
		}
	}
}

func TestRecentEventsLimit(t *testing.T) {
	a := openTestArchive(t)
	for i := 0; i < 5; i++ {
		if _, err := a.PutEvent(EventRecord{EventType: "mint"}); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	recs, err := a.RecentEvents(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("limit: got %d, want 2", len(recs))
	}
}

func TestPutAndRecentAnalyses(t *testing.T) {
	a := openTestArchive(t)
	if _, err := a.PutAnalysis(AnalysisRecord{Token: "TokA", Source: "webhook_mint", Passed: true}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := a.PutAnalysis(AnalysisRecord{Token: "TokB", Source: "webhook_mint", Error: "timeout"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	recs, err := a.RecentAnalyses(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("count: got %d", len(recs))
	}
	if recs[0].Token != "TokB" || recs[0].Error != "timeout" {
		t.Fatalf("newest first: got %+v", recs[0])
	}
}

func TestRecentEmpty(t *testing.T) {
	a := openTestArchive(t)
	recs, err := a.RecentEvents(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty, got %d", len(recs))
	}
}
