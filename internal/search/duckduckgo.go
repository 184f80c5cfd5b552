// Package search provides SearchProvider implementations.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/researchbot/researchbot/internal/core"
	"github.com/researchbot/researchbot/internal/registry"
)

func init() {
	registry.RegisterSearch("duckduckgo", func(maxResults int) (core.SearchProvider, error) {
		return NewDuckDuckGo(maxResults), nil
	})
}

// ddgRateLimit enforces a global floor of 1 query per second across all
// DuckDuckGo instances and goroutines.
var ddgRateLimit struct {
	mu   sync.Mutex
	last time.Time
}

// DuckDuckGo scrapes DuckDuckGo's HTML lite interface. Transient failures
// (network, 429, 5xx) surface as errors so the caller's retry policy applies.
type DuckDuckGo struct {
	client     *http.Client
	maxResults int
}

// NewDuckDuckGo creates a DuckDuckGo searcher returning up to maxResults hits.
func NewDuckDuckGo(maxResults int) *DuckDuckGo {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &DuckDuckGo{
		client:     &http.Client{Timeout: 15 * time.Second},
		maxResults: maxResults,
	}
}

// Search posts the query to the lite endpoint and parses the result page.
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]core.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}

	ddgRateLimit.mu.Lock()
	if wait := time.Until(ddgRateLimit.last.Add(time.Second)); wait > 0 {
		ddgRateLimit.mu.Unlock()
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		ddgRateLimit.mu.Lock()
	}
	ddgRateLimit.last = time.Now()
	ddgRateLimit.mu.Unlock()

	// The lite HTML version is more stable for scraping.
	endpoint := "https://lite.duckduckgo.com/lite/"
	formData := url.Values{}
	formData.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return d.parseResults(string(body)), nil
}

var (
	// <a ... class='result-link' href='URL'>TITLE</a>, either attribute order.
	reResultLink  = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	reResultLink2 = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>([^<]+)</a>`)
	reSnippet     = regexp.MustCompile(`<td[^>]*class=['"]result-snippet['"][^>]*>([^<]+(?:<[^>]+>[^<]*</[^>]+>)*[^<]*)</td>`)
	reAnyLink     = regexp.MustCompile(`<a[^>]+href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	reTag         = regexp.MustCompile(`<[^>]+>`)
)

// parseResults extracts up to maxResults hits from the lite result page.
func (d *DuckDuckGo) parseResults(html string) []core.SearchResult {
	var results []core.SearchResult

	matches := reResultLink.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		matches = reResultLink2.FindAllStringSubmatch(html, -1)
	}
	snippets := reSnippet.FindAllStringSubmatch(html, -1)

	for i, m := range matches {
		if len(m) < 3 {
			continue
		}
		urlStr := strings.TrimSpace(m[1])
		title := cleanHTML(m[2])
		if urlStr == "" || title == "" {
			continue
		}
		snippet := ""
		if i < len(snippets) && len(snippets[i]) > 1 {
			snippet = cleanHTML(snippets[i][1])
		}
		results = append(results, core.SearchResult{Title: title, URL: urlStr, Snippet: snippet})
		if len(results) >= d.maxResults {
			break
		}
	}

	if len(results) == 0 {
		results = d.fallbackParse(html)
	}
	return results
}

// fallbackParse scans for external links when the result-link markup changed.
func (d *DuckDuckGo) fallbackParse(html string) []core.SearchResult {
	var results []core.SearchResult
	seen := make(map[string]bool)

	for _, m := range reAnyLink.FindAllStringSubmatch(html, -1) {
		if len(m) < 3 {
			continue
		}
		urlStr := strings.TrimSpace(m[1])
		title := cleanHTML(m[2])

		if strings.Contains(urlStr, "duckduckgo.com") ||
			strings.HasPrefix(urlStr, "/") ||
			strings.HasPrefix(urlStr, "#") ||
			strings.HasPrefix(urlStr, "javascript:") {
			continue
		}
		if len(title) < 5 || seen[urlStr] {
			continue
		}
		seen[urlStr] = true
		results = append(results, core.SearchResult{Title: title, URL: urlStr})
		if len(results) >= d.maxResults {
			break
		}
	}
	return results
}

// cleanHTML strips tags and decodes common entities.
func cleanHTML(s string) string {
	s = reTag.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", "\"")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return strings.TrimSpace(s)
}
