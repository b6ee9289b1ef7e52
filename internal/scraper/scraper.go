package scraper

import (
	"fmt"

	"github.com/pfrederiksen/toto-draws/internal/draw"
	"github.com/pfrederiksen/toto-draws/internal/logger"
)

// Scraper ties the fetcher, catalog, and extractor together as the single
// draw source the reconciliation runner consumes.
type Scraper struct {
	fetcher    *Fetcher
	catalog    *Catalog
	resultsURL string
}

// New creates a Scraper against the Singapore Pools pages.
func New() *Scraper {
	fetcher := NewFetcher()
	return &Scraper{
		fetcher:    fetcher,
		catalog:    NewCatalog(fetcher),
		resultsURL: ResultsURL,
	}
}

// ListDraws returns every draw locator the archive page exposes. Empty when
// the archive is unreachable.
func (s *Scraper) ListDraws() []draw.Locator {
	return s.catalog.ListDraws()
}

// FetchDraw downloads and extracts the draw a locator points at.
func (s *Scraper) FetchDraw(loc draw.Locator) (*draw.Record, error) {
	if loc.QueryString == "" {
		return nil, fmt.Errorf("%s has no query token", loc)
	}

	url := s.resultsURL + "?" + loc.QueryString
	markup, err := s.fetcher.Fetch(url)
	if err != nil {
		return nil, err
	}

	rec, err := Extract(markup, loc)
	if err != nil {
		return nil, err
	}
	logger.Debug("Extracted draw", logger.Fields{
		"draw_number": rec.DrawNumber,
		"draw_date":   rec.DrawDate.Format("2006-01-02"),
		"locator":     loc.QueryString,
	})
	return rec, nil
}

// FetchLatest downloads the results page without a query string, which the
// site serves as the most recent draw.
func (s *Scraper) FetchLatest() (*draw.Record, error) {
	markup, err := s.fetcher.Fetch(s.resultsURL)
	if err != nil {
		return nil, err
	}
	return Extract(markup, draw.Locator{})
}
