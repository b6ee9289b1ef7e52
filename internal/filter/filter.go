// Package filter narrows a set of draw records for listing and analytics.
//
// Criteria compose with AND semantics:
//   - Date range (from/to, inclusive)
//   - A ball number the draw must contain (winning or additional)
//   - Rollover draws only (no group 1 winner)
//
// An empty filter matches every draw.
package filter

import (
	"time"

	"github.com/pfrederiksen/toto-draws/internal/draw"
)

// Filter represents draw filtering criteria.
type Filter struct {
	// Date range filtering, inclusive at both ends.
	DateFrom *time.Time
	DateTo   *time.Time

	// Contains keeps only draws whose winning or additional numbers include
	// this ball. Zero means no number filtering.
	Contains int

	// RolloverOnly keeps only draws with no group 1 winner.
	RolloverOnly bool
}

// NewFilter creates an empty filter that matches all draws.
func NewFilter() *Filter {
	return &Filter{}
}

// IsEmpty reports whether the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		f.Contains == 0 &&
		!f.RolloverOnly
}

// Matches reports whether a draw passes every active criterion.
func (f *Filter) Matches(rec *draw.Record) bool {
	if f.DateFrom != nil && rec.DrawDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && rec.DrawDate.After(*f.DateTo) {
		return false
	}

	if f.Contains != 0 && !containsNumber(rec, f.Contains) {
		return false
	}

	if f.RolloverOnly && rec.Group(1).Winners > 0 {
		return false
	}

	return true
}

// Apply returns the draws matching the filter, preserving input order.
func (f *Filter) Apply(records []draw.Record) []draw.Record {
	if f.IsEmpty() {
		return records
	}
	var matched []draw.Record
	for i := range records {
		if f.Matches(&records[i]) {
			matched = append(matched, records[i])
		}
	}
	return matched
}

func containsNumber(rec *draw.Record, n int) bool {
	if rec.AdditionalNumber == n {
		return true
	}
	for _, w := range rec.WinningNumbers {
		if w == n {
			return true
		}
	}
	return false
}
