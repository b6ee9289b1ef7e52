package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/toto-draws/internal/draw"
)

func sampleRecord(drawNumber int) *draw.Record {
	rec := &draw.Record{
		DrawNumber:       drawNumber,
		DrawDate:         time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		WinningNumbers:   []int{3, 9, 14, 27, 33, 48},
		AdditionalNumber: 21,
		SourceLocator:    "sppl=RHJhd051bWJlcj00MDgy",
	}
	rec.SetGroup(2, draw.TierStat{Winners: 5, Prize: 100000})
	rec.SetGroup(7, draw.TierStat{Winners: 53371, Prize: 10})
	return rec
}

func TestSnapshotUpsert(t *testing.T) {
	s := NewSnapshot()

	if !s.Upsert(sampleRecord(4082)) {
		t.Error("first upsert should report new")
	}
	if s.Upsert(sampleRecord(4082)) {
		t.Error("second upsert of same draw should report existing")
	}
	if len(s.Draws) != 1 {
		t.Errorf("got %d draws, want 1", len(s.Draws))
	}

	replacement := sampleRecord(4082)
	replacement.AdditionalNumber = 7
	s.Upsert(replacement)
	if s.Draws[4082].AdditionalNumber != 7 {
		t.Error("upsert should replace the existing record")
	}
}

func TestSnapshotRecordsOrdered(t *testing.T) {
	s := NewSnapshot()
	for _, n := range []int{4083, 4081, 4082} {
		s.Upsert(sampleRecord(n))
	}

	records := s.Records()
	want := []int{4081, 4082, 4083}
	for i, n := range want {
		if records[i].DrawNumber != n {
			t.Errorf("records[%d].DrawNumber = %d, want %d", i, records[i].DrawNumber, n)
		}
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}
	defer s.Close()

	snapshot := NewSnapshot()
	snapshot.Upsert(sampleRecord(4082))
	snapshot.Upsert(sampleRecord(4081))
	if err := s.Save(snapshot); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Draws) != 2 {
		t.Fatalf("got %d draws, want 2", len(loaded.Draws))
	}

	rec := loaded.Draws[4082]
	if rec == nil {
		t.Fatal("draw 4082 missing after reload")
	}
	if rec.Group(2).Prize != 100000 || rec.Group(2).Winners != 5 {
		t.Errorf("Group 2 = %+v after reload", rec.Group(2))
	}
	if rec.SourceLocator != "sppl=RHJhd051bWJlcj00MDgy" {
		t.Errorf("SourceLocator = %q after reload", rec.SourceLocator)
	}
	if loaded.UpdatedAt == "" {
		t.Error("UpdatedAt should be stamped on save")
	}
}

func TestJSONStoreMissingFile(t *testing.T) {
	s, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}

	snapshot, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snapshot.Draws) != 0 {
		t.Errorf("got %d draws from empty store, want 0", len(snapshot.Draws))
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, snapshotFile), []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	snapshot, err := s.Load()
	if err != nil {
		t.Fatalf("Load of corrupt file should degrade, got error: %v", err)
	}
	if len(snapshot.Draws) != 0 {
		t.Errorf("got %d draws from corrupt store, want 0", len(snapshot.Draws))
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer s.Close()

	snapshot := NewSnapshot()
	rec := sampleRecord(4082)
	rec.EstimatedPrizePool = 6250000
	rec.RolloverAmount = 2375000
	snapshot.Upsert(rec)
	if err := s.Save(snapshot); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := loaded.Draws[4082]
	if got == nil {
		t.Fatal("draw 4082 missing after reload")
	}
	if !got.DrawDate.Equal(rec.DrawDate) {
		t.Errorf("DrawDate = %v, want %v", got.DrawDate, rec.DrawDate)
	}
	if len(got.WinningNumbers) != 6 || got.WinningNumbers[0] != 3 {
		t.Errorf("WinningNumbers = %v", got.WinningNumbers)
	}
	if got.EstimatedPrizePool != 6250000 {
		t.Errorf("EstimatedPrizePool = %v, want 6250000", got.EstimatedPrizePool)
	}
	if got.RolloverAmount != 2375000 {
		t.Errorf("RolloverAmount = %v, want 2375000", got.RolloverAmount)
	}
	if got.Group(7) != (draw.TierStat{Winners: 53371, Prize: 10}) {
		t.Errorf("Group 7 = %+v after reload", got.Group(7))
	}
}

func TestSQLiteStoreUpsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer s.Close()

	snapshot := NewSnapshot()
	snapshot.Upsert(sampleRecord(4082))
	if err := s.Save(snapshot); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	changed := sampleRecord(4082)
	changed.AdditionalNumber = 7
	snapshot.Upsert(changed)
	if err := s.Save(snapshot); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Draws) != 1 {
		t.Errorf("got %d draws, want 1 (last write wins)", len(loaded.Draws))
	}
	if loaded.Draws[4082].AdditionalNumber != 7 {
		t.Errorf("AdditionalNumber = %d, want 7", loaded.Draws[4082].AdditionalNumber)
	}
}
