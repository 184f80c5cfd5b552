// Package fetch retrieves web pages and reduces them to plain text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html"
)

const (
	fetchTimeout  = 15 * time.Second
	maxBodyBytes  = 1 << 20 // 1MB read cap before extraction
	cacheSize     = 128
	browserUA     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// HTTPFetcher downloads a URL and extracts its text content. Successfully
// fetched pages are cached so repeated fetches within a session don't re-hit
// the network.
type HTTPFetcher struct {
	client *http.Client
	cache  *lru.Cache[string, string]
}

// NewHTTP creates a fetcher with the standard timeout and page cache.
func NewHTTP() *HTTPFetcher {
	cache, _ := lru.New[string, string](cacheSize)
	return &HTTPFetcher{
		client: &http.Client{Timeout: fetchTimeout},
		cache:  cache,
	}
}

// Fetch downloads the URL and returns its plain-text content with scripts,
// styles, and page chrome (nav, header, footer, aside) removed.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", errors.New("fetch url is empty")
	}
	if text, ok := f.cache.Get(trimmed); ok {
		return text, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trimmed, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	text, err := ExtractText(string(body))
	if err != nil {
		return "", err
	}
	f.cache.Add(trimmed, text)
	return text, nil
}

// skipElements are stripped entirely before text extraction: non-content
// markup and page chrome.
var skipElements = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"footer": true,
	"header": true,
	"aside":  true,
}

// ExtractText parses HTML and returns the visible text, one trimmed line per
// text node, blank lines dropped.
func ExtractText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(t)
				b.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimRight(b.String(), "\n"), nil
}
