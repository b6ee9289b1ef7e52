package store

import (
	"sort"
	"time"

	"github.com/pfrederiksen/toto-draws/internal/draw"
)

// Store persists draw snapshots. Load returns an empty snapshot when no data
// has been saved yet.
type Store interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
	Close() error
}

// Clearer is implemented by backends that can drop every persisted draw.
type Clearer interface {
	Clear() error
}

// Snapshot is the full local record set, keyed by draw number.
type Snapshot struct {
	Draws     map[int]*draw.Record `json:"draws"`
	UpdatedAt string               `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Draws: make(map[int]*draw.Record),
	}
}

// Has reports whether a draw number is already recorded.
func (s *Snapshot) Has(drawNumber int) bool {
	_, ok := s.Draws[drawNumber]
	return ok
}

// Upsert records a draw, replacing any existing record with the same draw
// number. It reports whether the draw was new.
func (s *Snapshot) Upsert(rec *draw.Record) bool {
	if s.Draws == nil {
		s.Draws = make(map[int]*draw.Record)
	}
	_, existed := s.Draws[rec.DrawNumber]
	s.Draws[rec.DrawNumber] = rec
	return !existed
}

// Records returns every draw ordered by draw number ascending.
func (s *Snapshot) Records() []draw.Record {
	records := make([]draw.Record, 0, len(s.Draws))
	for _, rec := range s.Draws {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].DrawNumber < records[j].DrawNumber
	})
	return records
}

// Touch stamps the snapshot with the current UTC time.
func (s *Snapshot) Touch() {
	s.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}
