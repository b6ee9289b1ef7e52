// Package scraper provides HTTP fetching and HTML parsing for Singapore
// Pools TOTO draw results.
//
// The package has three pieces: a Fetcher that downloads a page through an
// ordered list of transport strategies, a Catalog that discovers the set of
// fetchable draws on the draw-archive page, and an extractor that turns one
// result page's markup into a typed draw record. Extraction is best-effort
// heuristic parsing: each required field is tried through progressively
// looser strategies, and a page the heuristics cannot fully read is dropped
// with ErrExtractionIncomplete rather than partially recorded.
package scraper
