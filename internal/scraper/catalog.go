package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/toto-draws/internal/draw"
	"github.com/pfrederiksen/toto-draws/internal/logger"
)

var (
	// Archive entries look like
	//   <option queryString='sppl=RHJhd051bWJlcj00MDgy' value='...'>Mon, 12 May 2025 (Draw No. 4082)</option>
	optionPairPattern = regexp.MustCompile(`queryString='([^']+)' value='([^']*)'`)

	// Last resort: bare query tokens of the observed shape, a 4-char key and
	// a 20-char value.
	bareTokenPattern = regexp.MustCompile(`queryString='(.{4}=.{20})' value='`)

	labelDatePattern = regexp.MustCompile(`\d{1,2}\s+[A-Za-z]+\s+\d{4}`)
	drawNoPattern    = regexp.MustCompile(`(?i)Draw\s*(?:No\.?)?:?\s*#?(\d+)`)
	idParamPattern   = regexp.MustCompile(`(?:^|[?&])id=(\d+)`)
)

// Catalog discovers the set of fetchable draws on the draw-archive page.
type Catalog struct {
	fetcher *Fetcher
	url     string
}

// NewCatalog creates a Catalog reading the default archive page.
func NewCatalog(fetcher *Fetcher) *Catalog {
	return &Catalog{
		fetcher: fetcher,
		url:     ArchiveURL,
	}
}

// ListDraws fetches the archive page and returns every locator it can
// recover. An unreachable page yields an empty slice, not an error: the
// caller must treat that as "no catalog data", never as "nothing missing".
// Individual entries that cannot be parsed are skipped.
func (c *Catalog) ListDraws() []draw.Locator {
	markup, err := c.fetcher.Fetch(c.url)
	if err != nil {
		logger.Warn("Draw archive unreachable", logger.Fields{
			"url":   c.url,
			"error": err.Error(),
		})
		return nil
	}
	return ParseDrawList(markup)
}

// ParseDrawList extracts draw locators from archive-page markup, degrading
// through three strategies: structural option elements, a raw attribute/label
// regex, and finally bare query tokens with no date or number attached.
func ParseDrawList(markup string) []draw.Locator {
	locators := drawListFromOptions(markup)
	if len(locators) == 0 {
		locators = drawListFromPattern(markup)
	}
	if len(locators) == 0 {
		locators = drawListFromTokens(markup)
	}
	return locators
}

// drawListFromOptions walks selection-list entries carrying a queryString
// attribute and parses each entry's visible label.
func drawListFromOptions(markup string) []draw.Locator {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var locators []draw.Locator
	doc.Find("select option").Each(func(_ int, s *goquery.Selection) {
		// Attribute names are lowercased by the HTML parser.
		qs, ok := s.Attr("querystring")
		if !ok || qs == "" {
			return
		}
		locators = append(locators, locatorFromLabel(qs, s.Text()))
	})
	return locators
}

// drawListFromPattern scans the raw markup for queryString/value pairs when
// no structural option elements were found.
func drawListFromPattern(markup string) []draw.Locator {
	var locators []draw.Locator
	for _, m := range optionPairPattern.FindAllStringSubmatch(markup, -1) {
		locators = append(locators, locatorFromLabel(m[1], m[2]))
	}
	return locators
}

// drawListFromTokens recovers bare query tokens; the resulting locators
// carry no draw number or date.
func drawListFromTokens(markup string) []draw.Locator {
	var locators []draw.Locator
	for _, m := range bareTokenPattern.FindAllStringSubmatch(markup, -1) {
		locators = append(locators, draw.Locator{QueryString: m[1]})
	}
	return locators
}

// locatorFromLabel builds a locator from a query string and the entry's
// visible label, recovering the draw date and number when present. A number
// missing from the label falls back to a literal id= query parameter.
func locatorFromLabel(qs, label string) draw.Locator {
	loc := draw.Locator{QueryString: qs}

	if m := labelDatePattern.FindString(label); m != "" {
		loc.DrawDate = draw.ParseDrawDate(m)
	}
	if m := drawNoPattern.FindStringSubmatch(label); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			loc.DrawNumber = n
		}
	}
	if loc.DrawNumber == 0 {
		if m := idParamPattern.FindStringSubmatch(qs); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				loc.DrawNumber = n
			}
		}
	}
	return loc
}
