package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const samplePage = `<html>
<head><title>Sample</title><style>body { color: red }</style></head>
<body>
<header><h1>Site Header</h1></header>
<nav><a href="/">Home</a></nav>
<script>console.log("tracking")</script>
<main>
<p>First paragraph of content.</p>
<p>Second paragraph of content.</p>
</main>
<aside>Related links</aside>
<footer>Copyright Notice</footer>
</body>
</html>`

func TestExtractText(t *testing.T) {
	text, err := ExtractText(samplePage)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	for _, want := range []string{"First paragraph of content.", "Second paragraph of content.", "Sample"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected text to contain %q, got %q", want, text)
		}
	}
	for _, stripped := range []string{"console.log", "color: red", "Site Header", "Home", "Related links", "Copyright Notice"} {
		if strings.Contains(text, stripped) {
			t.Errorf("expected %q to be stripped, got %q", stripped, text)
		}
	}
}

func TestFetch(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("expected browser user agent, got %q", ua)
		}
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	f := NewHTTP()
	ctx := context.Background()

	text, err := f.Fetch(ctx, srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if !strings.Contains(text, "First paragraph of content.") {
		t.Errorf("unexpected text: %q", text)
	}

	// Second fetch of the same URL is served from the cache.
	if _, err := f.Fetch(ctx, srv.URL); err != nil {
		t.Fatalf("cached fetch failed: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected 1 upstream request, got %d", requests)
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTP()
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for HTTP 404")
	}
}

func TestFetchEmptyURL(t *testing.T) {
	f := NewHTTP()
	if _, err := f.Fetch(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty url")
	}
}
