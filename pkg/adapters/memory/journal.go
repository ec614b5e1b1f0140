package memory

import (
	"context"
	"sync"

	"github.com/aretw0/calcgate/pkg/domain"
)

// DefaultJournalSize is the number of records kept when no size is given.
const DefaultJournalSize = 100

// Journal implements ports.Journal in memory as a bounded ring.
// Safe for concurrent use.
type Journal struct {
	mu      sync.RWMutex
	records []domain.Record
	next    int
	full    bool
}

// NewJournal creates a journal that keeps the last size records.
func NewJournal(size int) *Journal {
	if size <= 0 {
		size = DefaultJournalSize
	}
	return &Journal{
		records: make([]domain.Record, size),
	}
}

// Append stores a record, evicting the oldest one when full.
func (j *Journal) Append(ctx context.Context, rec domain.Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.records[j.next] = rec
	j.next = (j.next + 1) % len(j.records)
	if j.next == 0 {
		j.full = true
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]domain.Record, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	count := j.next
	if j.full {
		count = len(j.records)
	}
	if limit <= 0 || limit > count {
		limit = count
	}

	out := make([]domain.Record, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (j.next - i + len(j.records)) % len(j.records)
		out = append(out, j.records[idx])
	}
	return out, nil
}
