package draw

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// NumGroups is the number of prize groups in a TOTO draw.
	NumGroups = 7

	// WinningCount is the number of winning numbers drawn (excluding the
	// additional number).
	WinningCount = 6

	// MinNumber and MaxNumber bound the valid ball range.
	MinNumber = 1
	MaxNumber = 49
)

// TierStat holds the winner count and per-winner prize for one prize group.
type TierStat struct {
	Winners int     `json:"winners"`
	Prize   float64 `json:"prize"`
}

// Record represents one TOTO draw result.
//
// DrawNumber is the primary identity: the persisted collection never holds
// two records with the same draw number, and later writes win on conflict.
// The Estimated* and Rollover fields are derived by the prize estimator and
// are recomputed rather than hand-edited.
type Record struct {
	DrawNumber       int       `json:"draw_number"`
	DrawDate         time.Time `json:"draw_date"`
	WinningNumbers   []int     `json:"winning_numbers"`
	AdditionalNumber int       `json:"additional_number"`

	// Groups holds groups 1 through 7 at indexes 0 through 6.
	Groups [NumGroups]TierStat `json:"groups"`

	EstimatedPrizePool  float64 `json:"estimated_prize_pool,omitempty"`
	ExpectedGroup1Prize float64 `json:"expected_group1_prize,omitempty"`
	EstimatedSales      float64 `json:"estimated_sales,omitempty"`
	RolloverAmount      float64 `json:"rollover_amount,omitempty"`

	// SourceLocator records the query string the draw was fetched with,
	// for idempotent re-fetches and debugging.
	SourceLocator string `json:"source_locator,omitempty"`
}

// Group returns the stats for group n (1-based). It panics on an
// out-of-range group, which indicates a programming error.
func (r *Record) Group(n int) TierStat {
	if n < 1 || n > NumGroups {
		panic(fmt.Sprintf("draw: group %d out of range", n))
	}
	return r.Groups[n-1]
}

// SetGroup sets the stats for group n (1-based).
func (r *Record) SetGroup(n int, stat TierStat) {
	if n < 1 || n > NumGroups {
		panic(fmt.Sprintf("draw: group %d out of range", n))
	}
	r.Groups[n-1] = stat
}

// Validate checks the structural invariants of a record: a positive draw
// number, a known draw date, exactly six distinct in-range winning numbers,
// an in-range additional number not among them, and non-negative group
// stats. Zero winners with a zero prize is a valid recorded state.
func (r *Record) Validate() error {
	if r.DrawNumber <= 0 {
		return fmt.Errorf("draw number %d is not positive", r.DrawNumber)
	}
	if r.DrawDate.IsZero() {
		return fmt.Errorf("draw %d has no draw date", r.DrawNumber)
	}
	if len(r.WinningNumbers) != WinningCount {
		return fmt.Errorf("draw %d has %d winning numbers, want %d", r.DrawNumber, len(r.WinningNumbers), WinningCount)
	}
	seen := make(map[int]bool, WinningCount)
	for _, n := range r.WinningNumbers {
		if n < MinNumber || n > MaxNumber {
			return fmt.Errorf("draw %d: winning number %d out of range [%d,%d]", r.DrawNumber, n, MinNumber, MaxNumber)
		}
		if seen[n] {
			return fmt.Errorf("draw %d: duplicate winning number %d", r.DrawNumber, n)
		}
		seen[n] = true
	}
	if r.AdditionalNumber < MinNumber || r.AdditionalNumber > MaxNumber {
		return fmt.Errorf("draw %d: additional number %d out of range [%d,%d]", r.DrawNumber, r.AdditionalNumber, MinNumber, MaxNumber)
	}
	if seen[r.AdditionalNumber] {
		return fmt.Errorf("draw %d: additional number %d is also a winning number", r.DrawNumber, r.AdditionalNumber)
	}
	for i, g := range r.Groups {
		if g.Winners < 0 {
			return fmt.Errorf("draw %d: group %d has negative winner count", r.DrawNumber, i+1)
		}
		if g.Prize < 0 {
			return fmt.Errorf("draw %d: group %d has negative prize", r.DrawNumber, i+1)
		}
	}
	return nil
}

// FormatNumbers renders the winning numbers for display,
// e.g. "3, 9, 14, 27, 33, 48 + 21".
func (r *Record) FormatNumbers() string {
	if len(r.WinningNumbers) == 0 {
		return "N/A"
	}
	parts := make([]string, len(r.WinningNumbers))
	for i, n := range r.WinningNumbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ") + fmt.Sprintf(" + %d", r.AdditionalNumber)
}

// Locator is a reference to a fetchable draw discovered on the archive page.
// DrawNumber is zero when the number could not be recovered from the entry;
// DrawDate is the zero time when no date was recovered.
type Locator struct {
	QueryString string
	DrawNumber  int
	DrawDate    time.Time
}

// String renders a locator for logs and error messages.
func (l Locator) String() string {
	switch {
	case l.DrawNumber > 0:
		return fmt.Sprintf("draw %d (%s)", l.DrawNumber, l.QueryString)
	case !l.DrawDate.IsZero():
		return fmt.Sprintf("draw on %s (%s)", l.DrawDate.Format("2006-01-02"), l.QueryString)
	default:
		return fmt.Sprintf("draw (%s)", l.QueryString)
	}
}
