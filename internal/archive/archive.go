package archive

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/pebble"
	pebblestore "github.com/sifthq/minthook/internal/storage/pebble"
	"github.com/sifthq/minthook/pkg/id"
)

// Archive writes event and analysis records and serves recent-first reads.
type Archive struct {
	db  *pebblestore.DB
	ids *id.Generator
}

// New builds an Archive over db.
func New(db *pebblestore.DB) *Archive {
	return &Archive{db: db, ids: id.NewGenerator()}
}

// PutEvent stores rec under a fresh ID and returns it. rec.ID is overwritten.
func (a *Archive) PutEvent(rec EventRecord) (id.ID, error) {
	recordID := a.ids.Next()
	rec.ID = recordID.String()
	b, err := json.Marshal(rec)
	if err != nil {
		return recordID, fmt.Errorf("archive: marshal event: %w", err)
	}
	if err := a.db.Set(eventKey(recordID), b); err != nil {
		return recordID, fmt.Errorf("archive: write event: %w", err)
	}
	return recordID, nil
}

// PutAnalysis stores rec under a fresh ID and returns it. rec.ID is overwritten.
func (a *Archive) PutAnalysis(rec AnalysisRecord) (id.ID, error) {
	recordID := a.ids.Next()
	rec.ID = recordID.String()
	b, err := json.Marshal(rec)
	if err != nil {
		return recordID, fmt.Errorf("archive: marshal analysis: %w", err)
	}
	if err := a.db.Set(analysisKey(recordID), b); err != nil {
		return recordID, fmt.Errorf("archive: write analysis: %w", err)
	}
	return recordID, nil
}

// RecentEvents returns up to n events, newest first.
func (a *Archive) RecentEvents(n int) ([]EventRecord, error) {
	var out []EventRecord
	err := a.scanRecent(eventPrefix, n, func(val []byte) error {
		var rec EventRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// RecentAnalyses returns up to n analysis outcomes, newest first.
func (a *Archive) RecentAnalyses(n int) ([]AnalysisRecord, error) {
	var out []AnalysisRecord
	err := a.scanRecent(analysisPrefix, n, func(val []byte) error {
		var rec AnalysisRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

func (a *Archive) scanRecent(prefix []byte, n int, visit func(val []byte) error) error {
	if n <= 0 {
		return nil
	}
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return fmt.Errorf("archive: iterator: %w", err)
	}
	defer iter.Close()

	count := 0
	for ok := iter.Last(); ok && count < n; ok = iter.Prev() {
		if err := visit(iter.Value()); err != nil {
			return fmt.Errorf("archive: decode record: %w", err)
		}
		count++
	}
	return nil
}
