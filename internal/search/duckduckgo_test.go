package search

import (
	"context"
	"testing"
)

const sampleLitePage = `<html><body><table>
<tr><td><a rel="nofollow" class='result-link' href='https://go.dev/doc/'>Go Documentation</a></td></tr>
<tr><td class='result-snippet'>Official Go docs &amp; tutorials</td></tr>
<tr><td><a rel="nofollow" class='result-link' href='https://pkg.go.dev/'>Go Packages</a></td></tr>
<tr><td class='result-snippet'>Package index</td></tr>
<tr><td><a rel="nofollow" class='result-link' href='https://go.dev/blog/'>The Go Blog</a></td></tr>
<tr><td class='result-snippet'>News and articles</td></tr>
</table></body></html>`

func TestParseResults(t *testing.T) {
	d := NewDuckDuckGo(5)
	results := d.parseResults(sampleLitePage)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Title != "Go Documentation" || results[0].URL != "https://go.dev/doc/" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[0].Snippet != "Official Go docs & tutorials" {
		t.Errorf("expected decoded snippet, got %q", results[0].Snippet)
	}
}

func TestParseResultsRespectsMax(t *testing.T) {
	d := NewDuckDuckGo(2)
	results := d.parseResults(sampleLitePage)
	if len(results) != 2 {
		t.Fatalf("expected 2 results with max 2, got %d", len(results))
	}
}

func TestFallbackParse(t *testing.T) {
	page := `<html><body>
<a href="https://duckduckgo.com/about">About DuckDuckGo</a>
<a href="/settings">Settings</a>
<a href="https://example.com/article">An interesting article</a>
<a href="https://example.com/article">An interesting article</a>
</body></html>`

	d := NewDuckDuckGo(5)
	results := d.parseResults(page)
	if len(results) != 1 {
		t.Fatalf("expected 1 deduplicated external result, got %d", len(results))
	}
	if results[0].URL != "https://example.com/article" {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestCleanHTML(t *testing.T) {
	got := cleanHTML("  <b>Bold</b> &amp; plain &quot;text&quot;  ")
	if got != `Bold & plain "text"` {
		t.Errorf("unexpected cleaned text: %q", got)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	d := NewDuckDuckGo(5)
	if _, err := d.Search(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty query")
	}
}
