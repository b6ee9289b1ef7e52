package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/toto-draws/internal/draw"
)

// ErrExtractionIncomplete reports that a required field (draw number, draw
// date, or the full set of winning numbers) could not be recovered from the
// page. The draw is dropped entirely; no partial record is produced.
var ErrExtractionIncomplete = errors.New("extraction incomplete")

var (
	extractDrawNoPattern = regexp.MustCompile(`(?i)Draw No\.?\s*(\d+)`)
	extractDatePattern   = regexp.MustCompile(`\d{1,2}\s+[A-Za-z]+\s+\d{4}`)

	winningLabelPattern    = regexp.MustCompile(`(?i)Winning Numbers`)
	additionalLabelPattern = regexp.MustCompile(`(?i)Additional Number`)

	groupPattern       = regexp.MustCompile(`(?i)Group\s*(\d)`)
	group1Pattern      = regexp.MustCompile(`(?i)Group\s*1\b`)
	prizePattern       = regexp.MustCompile(`\$\s*([\d,]+\.?\d*)`)
	winnersWordPattern = regexp.MustCompile(`(?i)([\d,]+)[^\d]*winners`)
)

// Extract parses one result page's markup into a draw record. Each required
// field is recovered through an ordered chain of heuristics; the first hit
// wins. Group stats default to zero when unrecoverable, which is a valid
// recorded state. A missing draw number, draw date, or incomplete winning
// number set returns ErrExtractionIncomplete (wrapped with the field).
func Extract(markup string, loc draw.Locator) (*draw.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable markup: %v", ErrExtractionIncomplete, err)
	}
	// Script bodies carry date-shaped noise (CDATA blocks, JSON).
	doc.Find("script, style").Remove()
	text := doc.Text()

	drawNumber, ok := findDrawNumber(text)
	if !ok {
		return nil, fmt.Errorf("%w: draw number not found", ErrExtractionIncomplete)
	}

	drawDate, ok := findDrawDate(text)
	if !ok {
		return nil, fmt.Errorf("%w: draw date not found", ErrExtractionIncomplete)
	}

	numbers, additional := findWinningNumbers(doc)
	if len(numbers) < draw.WinningCount {
		return nil, fmt.Errorf("%w: found %d of %d winning numbers", ErrExtractionIncomplete, len(numbers), draw.WinningCount)
	}

	rec := &draw.Record{
		DrawNumber:       drawNumber,
		DrawDate:         drawDate,
		WinningNumbers:   numbers,
		AdditionalNumber: additional,
		Groups:           findGroupStats(doc),
		SourceLocator:    loc.QueryString,
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionIncomplete, err)
	}
	return rec, nil
}

// findDrawNumber looks for a "Draw No" label in the page text.
func findDrawNumber(text string) (int, bool) {
	m := extractDrawNoPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// findDrawDate tries every day/month-name/year token on the page until one
// parses under a known layout.
func findDrawDate(text string) (time.Time, bool) {
	for _, token := range extractDatePattern.FindAllString(text, -1) {
		if t := draw.ParseDrawDate(token); !t.IsZero() {
			return t, true
		}
	}
	return time.Time{}, false
}

// findWinningNumbers recovers the six winning numbers and, when possible,
// the additional number. Strategies, in order: the table adjacent to the
// "Winning Numbers" label; any table holding exactly 6 or 7 in-range
// numeric cells; a sequential scan of text-bearing elements. When seven
// numbers surface the seventh is the additional number; with exactly six, a
// separate "Additional Number" table search is attempted.
func findWinningNumbers(doc *goquery.Document) ([]int, int) {
	additional := 0

	numbers := numbersFromCells(tableNearLabel(doc, winningLabelPattern))
	if len(numbers) < draw.WinningCount {
		numbers = numbersFromAnyTable(doc)
	}
	if len(numbers) < draw.WinningCount {
		numbers, additional = numbersFromTextElements(doc)
	}

	if len(numbers) > draw.WinningCount {
		if additional == 0 {
			additional = numbers[draw.WinningCount]
		}
		numbers = numbers[:draw.WinningCount]
	}
	if len(numbers) == draw.WinningCount && additional == 0 {
		additional = firstNumberIn(tableNearLabel(doc, additionalLabelPattern))
	}
	return numbers, additional
}

// tableNearLabel returns the first table whose text contains the label, or
// nil.
func tableNearLabel(doc *goquery.Document, label *regexp.Regexp) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if label.MatchString(t.Text()) {
			found = t
			return false
		}
		return true
	})
	return found
}

// numbersFromCells collects every in-range numeric cell value from a table
// selection. A nil selection yields nil.
func numbersFromCells(table *goquery.Selection) []int {
	if table == nil {
		return nil
	}
	var numbers []int
	table.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		if n, ok := inRangeNumber(cell.Text()); ok {
			numbers = append(numbers, n)
		}
	})
	return numbers
}

// numbersFromAnyTable scans every table for one containing exactly 6 or 7
// in-range numeric cells.
func numbersFromAnyTable(doc *goquery.Document) []int {
	var numbers []int
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		candidate := numbersFromCells(t)
		if len(candidate) == draw.WinningCount || len(candidate) == draw.WinningCount+1 {
			numbers = candidate
			return false
		}
		return true
	})
	return numbers
}

// numbersFromTextElements walks generic text-bearing elements in document
// order, collecting in-range numbers until six are found; the next in-range
// number encountered becomes the additional number.
func numbersFromTextElements(doc *goquery.Document) ([]int, int) {
	var numbers []int
	additional := 0
	doc.Find("div, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		n, ok := inRangeNumber(s.Text())
		if !ok {
			return true
		}
		if len(numbers) < draw.WinningCount {
			numbers = append(numbers, n)
			return true
		}
		additional = n
		return false
	})
	return numbers, additional
}

// firstNumberIn returns the first in-range numeric cell of a table, or 0.
func firstNumberIn(table *goquery.Selection) int {
	for _, n := range numbersFromCells(table) {
		return n
	}
	return 0
}

// inRangeNumber reports whether text is a bare integer within the ball
// range [1,49].
func inRangeNumber(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < draw.MinNumber || n > draw.MaxNumber {
		return 0, false
	}
	return n, true
}

// findGroupStats scans every table containing the literal "Group" for rows
// carrying a "Group N" label, reading a currency-formatted cell as the prize
// and a bare-integer cell as the winner count. When no table yields any
// prize at all, a direct positional read of the "Group 1" row is attempted.
func findGroupStats(doc *goquery.Document) [draw.NumGroups]draw.TierStat {
	var groups [draw.NumGroups]draw.TierStat

	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		if !strings.Contains(t.Text(), "Group") {
			return
		}
		t.Find("tr").Each(func(_ int, row *goquery.Selection) {
			m := groupPattern.FindStringSubmatch(row.Text())
			if m == nil {
				return
			}
			g, err := strconv.Atoi(m[1])
			if err != nil || g < 1 || g > draw.NumGroups {
				return
			}

			groups[g-1] = rowStats(row)
		})
	})

	if !anyPrizeRecovered(groups) {
		if stat, ok := group1RowStats(doc); ok {
			groups[0] = stat
		}
	}
	return groups
}

// rowStats reads one group row's cells positionally: a cell with a currency
// amount is the prize, a bare-integer cell (or a "1,234 winners" phrase) is
// the winner count.
func rowStats(row *goquery.Selection) draw.TierStat {
	var stat draw.TierStat
	row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		if m := prizePattern.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
				stat.Prize = v
			}
			return
		}
		if n, err := strconv.Atoi(strings.ReplaceAll(text, ",", "")); err == nil && n >= 0 {
			stat.Winners = n
			return
		}
		if m := winnersWordPattern.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
				stat.Winners = n
			}
		}
	})
	return stat
}

// group1RowStats finds the row containing the "Group 1" label anywhere in
// the document and reads its sibling cells.
func group1RowStats(doc *goquery.Document) (draw.TierStat, bool) {
	var stat draw.TierStat
	found := false
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if !group1Pattern.MatchString(row.Text()) {
			return true
		}
		stat = rowStats(row)
		found = true
		return false
	})
	return stat, found
}

func anyPrizeRecovered(groups [draw.NumGroups]draw.TierStat) bool {
	for _, g := range groups {
		if g.Prize > 0 {
			return true
		}
	}
	return false
}
