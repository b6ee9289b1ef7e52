package draw

import (
	"strings"
	"testing"
	"time"
)

func validRecord() *Record {
	r := &Record{
		DrawNumber:       4082,
		DrawDate:         time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		WinningNumbers:   []int{3, 9, 14, 27, 33, 48},
		AdditionalNumber: 21,
		SourceLocator:    "sppl=RHJhd051bWJlcj00MDgy",
	}
	r.SetGroup(1, TierStat{Winners: 0, Prize: 0})
	r.SetGroup(2, TierStat{Winners: 5, Prize: 100000})
	return r
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr string
	}{
		{
			name:   "valid record",
			mutate: func(r *Record) {},
		},
		{
			name:    "zero draw number",
			mutate:  func(r *Record) { r.DrawNumber = 0 },
			wantErr: "not positive",
		},
		{
			name:    "missing date",
			mutate:  func(r *Record) { r.DrawDate = time.Time{} },
			wantErr: "no draw date",
		},
		{
			name:    "too few winning numbers",
			mutate:  func(r *Record) { r.WinningNumbers = []int{3, 9, 14} },
			wantErr: "3 winning numbers",
		},
		{
			name:    "out of range winning number",
			mutate:  func(r *Record) { r.WinningNumbers[2] = 50 },
			wantErr: "out of range",
		},
		{
			name:    "duplicate winning number",
			mutate:  func(r *Record) { r.WinningNumbers[1] = 3 },
			wantErr: "duplicate winning number",
		},
		{
			name:    "additional number out of range",
			mutate:  func(r *Record) { r.AdditionalNumber = 0 },
			wantErr: "out of range",
		},
		{
			name:    "additional number repeats a winning number",
			mutate:  func(r *Record) { r.AdditionalNumber = 27 },
			wantErr: "also a winning number",
		},
		{
			name:    "negative winners",
			mutate:  func(r *Record) { r.SetGroup(4, TierStat{Winners: -1}) },
			wantErr: "negative winner count",
		},
		{
			name:    "negative prize",
			mutate:  func(r *Record) { r.SetGroup(7, TierStat{Prize: -10}) },
			wantErr: "negative prize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)
			err := rec.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGroupAccessors(t *testing.T) {
	rec := validRecord()
	if got := rec.Group(2); got.Winners != 5 || got.Prize != 100000 {
		t.Errorf("Group(2) = %+v, want {5 100000}", got)
	}
	if got := rec.Group(3); got.Winners != 0 || got.Prize != 0 {
		t.Errorf("Group(3) = %+v, want zero value", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Group(8) should panic")
		}
	}()
	rec.Group(8)
}

func TestFormatNumbers(t *testing.T) {
	rec := validRecord()
	want := "3, 9, 14, 27, 33, 48 + 21"
	if got := rec.FormatNumbers(); got != want {
		t.Errorf("FormatNumbers() = %q, want %q", got, want)
	}

	empty := &Record{}
	if got := empty.FormatNumbers(); got != "N/A" {
		t.Errorf("FormatNumbers() on empty record = %q, want N/A", got)
	}
}

func TestLocatorString(t *testing.T) {
	tests := []struct {
		name string
		loc  Locator
		want string
	}{
		{
			name: "with draw number",
			loc:  Locator{QueryString: "sppl=abc", DrawNumber: 4082},
			want: "draw 4082 (sppl=abc)",
		},
		{
			name: "date only",
			loc:  Locator{QueryString: "sppl=abc", DrawDate: time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)},
			want: "draw on 2025-05-12 (sppl=abc)",
		},
		{
			name: "bare token",
			loc:  Locator{QueryString: "sppl=abc"},
			want: "draw (sppl=abc)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
