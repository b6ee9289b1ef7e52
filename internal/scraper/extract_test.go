package scraper

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/toto-draws/internal/draw"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return string(data)
}

func TestExtractSampleResults(t *testing.T) {
	markup := loadFixture(t, "results_sample.html")

	rec, err := Extract(markup, draw.Locator{QueryString: "sppl=RHJhd051bWJlcj00MDgy"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if rec.DrawNumber != 4082 {
		t.Errorf("DrawNumber = %d, want 4082", rec.DrawNumber)
	}
	wantDate := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	if !rec.DrawDate.Equal(wantDate) {
		t.Errorf("DrawDate = %v, want %v", rec.DrawDate, wantDate)
	}

	wantNumbers := []int{3, 9, 14, 27, 33, 48}
	if len(rec.WinningNumbers) != len(wantNumbers) {
		t.Fatalf("WinningNumbers = %v, want %v", rec.WinningNumbers, wantNumbers)
	}
	for i, n := range wantNumbers {
		if rec.WinningNumbers[i] != n {
			t.Errorf("WinningNumbers[%d] = %d, want %d", i, rec.WinningNumbers[i], n)
		}
	}
	if rec.AdditionalNumber != 21 {
		t.Errorf("AdditionalNumber = %d, want 21", rec.AdditionalNumber)
	}

	wantGroups := [draw.NumGroups]draw.TierStat{
		{Winners: 0, Prize: 0},
		{Winners: 5, Prize: 100000},
		{Winners: 110, Prize: 1618},
		{Winners: 231, Prize: 388},
		{Winners: 5325, Prize: 50},
		{Winners: 7988, Prize: 25},
		{Winners: 53371, Prize: 10},
	}
	for i, want := range wantGroups {
		if rec.Groups[i] != want {
			t.Errorf("Group %d = %+v, want %+v", i+1, rec.Groups[i], want)
		}
	}

	if rec.SourceLocator != "sppl=RHJhd051bWJlcj00MDgy" {
		t.Errorf("SourceLocator = %q, want query string", rec.SourceLocator)
	}

	if err := rec.Validate(); err != nil {
		t.Errorf("extracted record fails validation: %v", err)
	}
}

func TestExtractMissingDrawNumber(t *testing.T) {
	markup := loadFixture(t, "results_missing_drawno.html")

	rec, err := Extract(markup, draw.Locator{})
	if rec != nil {
		t.Errorf("Extract returned a partial record: %+v", rec)
	}
	if !errors.Is(err, ErrExtractionIncomplete) {
		t.Errorf("error = %v, want ErrExtractionIncomplete", err)
	}
}

func TestExtractLoosePage(t *testing.T) {
	// No tables at all: numbers must come from the sequential element scan.
	markup := loadFixture(t, "results_loose.html")

	rec, err := Extract(markup, draw.Locator{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if rec.DrawNumber != 4077 {
		t.Errorf("DrawNumber = %d, want 4077", rec.DrawNumber)
	}
	wantNumbers := []int{5, 12, 18, 23, 35, 41}
	for i, n := range wantNumbers {
		if rec.WinningNumbers[i] != n {
			t.Errorf("WinningNumbers[%d] = %d, want %d", i, rec.WinningNumbers[i], n)
		}
	}
	if rec.AdditionalNumber != 9 {
		t.Errorf("AdditionalNumber = %d, want 9", rec.AdditionalNumber)
	}

	// No group table anywhere: zero stats are a valid recorded state.
	for i, g := range rec.Groups {
		if g.Winners != 0 || g.Prize != 0 {
			t.Errorf("Group %d = %+v, want zero value", i+1, g)
		}
	}
}

func TestExtractRejectsImplausibleNumbers(t *testing.T) {
	markup := `<html><body>
		<div>Draw No. 4090</div>
		<div>Mon, 2 June 2025</div>
		<table><tr><th>Winning Numbers</th></tr>
		<tr><td>3</td><td>3</td><td>9</td><td>14</td><td>27</td><td>33</td></tr></table>
	</body></html>`

	_, err := Extract(markup, draw.Locator{})
	if !errors.Is(err, ErrExtractionIncomplete) {
		t.Errorf("error = %v, want ErrExtractionIncomplete", err)
	}
}

func TestExtractTooFewNumbers(t *testing.T) {
	markup := `<html><body>
		<div>Draw No. 4090</div>
		<div>Mon, 2 June 2025</div>
		<table><tr><th>Winning Numbers</th></tr>
		<tr><td>3</td><td>9</td><td>14</td></tr></table>
	</body></html>`

	_, err := Extract(markup, draw.Locator{})
	if !errors.Is(err, ErrExtractionIncomplete) {
		t.Errorf("error = %v, want ErrExtractionIncomplete", err)
	}
}

func docFromString(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parsing markup: %v", err)
	}
	return doc
}

func TestFindWinningNumbersSevenCellTable(t *testing.T) {
	// A table with seven in-range cells and no label: the seventh is the
	// additional number.
	doc := docFromString(t, `<html><body><table>
		<tr><td>1</td><td>2</td><td>3</td><td>4</td><td>5</td><td>6</td><td>7</td></tr>
	</table></body></html>`)

	numbers, additional := findWinningNumbers(doc)
	if len(numbers) != 6 {
		t.Fatalf("got %d numbers, want 6", len(numbers))
	}
	if additional != 7 {
		t.Errorf("additional = %d, want 7", additional)
	}
}

func TestFindGroupStatsWinnersPhrase(t *testing.T) {
	doc := docFromString(t, `<html><body><table>
		<tr><td>Group 2</td><td>$100,000</td><td>5 winners</td></tr>
	</table></body></html>`)

	groups := findGroupStats(doc)
	if groups[1].Winners != 5 || groups[1].Prize != 100000 {
		t.Errorf("Group 2 = %+v, want {5 100000}", groups[1])
	}
}

func TestGroup1RowStats(t *testing.T) {
	doc := docFromString(t, `<html><body><table>
		<tr><td>Group 1</td><td>$500,000</td><td>3</td></tr>
	</table></body></html>`)

	stat, ok := group1RowStats(doc)
	if !ok {
		t.Fatal("group1RowStats found nothing")
	}
	if stat.Winners != 3 || stat.Prize != 500000 {
		t.Errorf("stat = %+v, want {3 500000}", stat)
	}
}

func TestInRangeNumber(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"49", 49, true},
		{" 27 ", 27, true},
		{"0", 0, false},
		{"50", 0, false},
		{"-3", 0, false},
		{"3a", 0, false},
		{"", 0, false},
		{"Group 1", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := inRangeNumber(tt.text)
			if got != tt.want || ok != tt.ok {
				t.Errorf("inRangeNumber(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}
