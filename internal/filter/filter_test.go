package filter

import (
	"testing"
	"time"

	"github.com/pfrederiksen/toto-draws/internal/draw"
)

func makeDraw(drawNumber int, date time.Time, group1Winners int) draw.Record {
	rec := draw.Record{
		DrawNumber:       drawNumber,
		DrawDate:         date,
		WinningNumbers:   []int{3, 9, 14, 27, 33, 48},
		AdditionalNumber: 21,
	}
	rec.SetGroup(1, draw.TierStat{Winners: group1Winners, Prize: 0})
	return rec
}

func datePtr(t time.Time) *time.Time { return &t }

func TestFilterMatches(t *testing.T) {
	may12 := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	rec := makeDraw(4082, may12, 0)

	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"empty filter matches", NewFilter(), true},
		{"date from inclusive", &Filter{DateFrom: datePtr(may12)}, true},
		{"date from excludes earlier", &Filter{DateFrom: datePtr(may12.AddDate(0, 0, 1))}, false},
		{"date to inclusive", &Filter{DateTo: datePtr(may12)}, true},
		{"date to excludes later", &Filter{DateTo: datePtr(may12.AddDate(0, 0, -1))}, false},
		{"contains winning number", &Filter{Contains: 27}, true},
		{"contains additional number", &Filter{Contains: 21}, true},
		{"contains absent number", &Filter{Contains: 44}, false},
		{"rollover only matches no-winner draw", &Filter{RolloverOnly: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(&rec); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterRolloverExcludesWonDraw(t *testing.T) {
	rec := makeDraw(4082, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), 2)
	f := &Filter{RolloverOnly: true}
	if f.Matches(&rec) {
		t.Error("draw with group 1 winners should not match RolloverOnly")
	}
}

func TestFilterApply(t *testing.T) {
	records := []draw.Record{
		makeDraw(4080, time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC), 1),
		makeDraw(4081, time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC), 0),
		makeDraw(4082, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), 0),
	}

	f := &Filter{
		DateFrom:     datePtr(time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)),
		RolloverOnly: true,
	}
	got := f.Apply(records)
	if len(got) != 2 {
		t.Fatalf("got %d draws, want 2", len(got))
	}
	if got[0].DrawNumber != 4081 || got[1].DrawNumber != 4082 {
		t.Errorf("draw numbers = %d, %d; want 4081, 4082", got[0].DrawNumber, got[1].DrawNumber)
	}
}

func TestFilterApplyEmptyFilterReturnsAll(t *testing.T) {
	records := []draw.Record{
		makeDraw(4082, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), 0),
	}
	if got := NewFilter().Apply(records); len(got) != 1 {
		t.Errorf("got %d draws, want 1", len(got))
	}
}
