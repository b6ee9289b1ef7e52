package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

const (
	// ResultsURL is the TOTO results page; a draw's query string is appended
	// to fetch one specific draw.
	ResultsURL = "https://www.singaporepools.com.sg/en/product/sr/Pages/toto_results.aspx"

	// ArchiveURL is the draw-archive page listing every fetchable draw.
	ArchiveURL = "https://www.singaporepools.com.sg/DataFileArchive/Lottery/Output/toto_result_draw_list_en.html"

	// HomeURL is fetched first by the session-warming strategy to pick up
	// site cookies.
	HomeURL = "https://www.singaporepools.com.sg/en/Pages/Home.aspx"

	Timeout = 30 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// browserHeaders mimics a full browser request. The results site rejects
// some minimal header sets, so this is the second strategy's header set.
var browserHeaders = map[string]string{
	"User-Agent":                userAgent,
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Cache-Control":             "max-age=0",
	"Referer":                   HomeURL,
}

// FetchError reports that every transport strategy failed for a URL. It
// carries one reason per attempted strategy.
type FetchError struct {
	URL      string
	Attempts []string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: all strategies failed: %s", e.URL, strings.Join(e.Attempts, "; "))
}

// Fetcher downloads pages through an ordered list of transport strategies.
// It is fully synchronous and performs no retries beyond the strategy list.
type Fetcher struct {
	client    *http.Client
	homeURL   string
	warmDelay time.Duration
}

// NewFetcher creates a Fetcher with the default client and strategies.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
		homeURL:   HomeURL,
		warmDelay: 2 * time.Second,
	}
}

type fetchStrategy struct {
	name string
	fn   func(url string) (string, error)
}

func (f *Fetcher) strategies() []fetchStrategy {
	return []fetchStrategy{
		{"basic headers", f.basicHeaders},
		{"browser headers", f.fullHeaders},
		{"warmed session", f.warmedSession},
	}
}

// Fetch downloads url, trying each strategy in order and returning the first
// successful body (200 status, non-empty). If every strategy fails, the
// returned error is a *FetchError listing each per-strategy failure.
func (f *Fetcher) Fetch(url string) (string, error) {
	var attempts []string
	for _, s := range f.strategies() {
		body, err := s.fn(url)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", s.name, err))
			continue
		}
		return body, nil
	}
	return "", &FetchError{URL: url, Attempts: attempts}
}

// basicHeaders is the first strategy: a plain GET with only a browser
// User-Agent.
func (f *Fetcher) basicHeaders(url string) (string, error) {
	return get(f.client, url, map[string]string{"User-Agent": userAgent})
}

// fullHeaders retries with the complete browser header set.
func (f *Fetcher) fullHeaders(url string) (string, error) {
	return get(f.client, url, browserHeaders)
}

// warmedSession visits the site homepage first with a cookie jar, pauses
// briefly, then requests the target with the session cookies attached.
func (f *Fetcher) warmedSession(url string) (string, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return "", fmt.Errorf("creating cookie jar: %w", err)
	}
	client := &http.Client{
		Timeout: Timeout,
		Jar:     jar,
	}

	if _, err := get(client, f.homeURL, browserHeaders); err != nil {
		return "", fmt.Errorf("warming session on %s: %w", f.homeURL, err)
	}
	time.Sleep(f.warmDelay)

	return get(client, url, browserHeaders)
}

// get performs one GET and returns the body text. A non-200 status or an
// empty body is a failure.
func get(client *http.Client, url string, headers map[string]string) (string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", fmt.Errorf("empty response body")
	}
	return string(body), nil
}
