package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/researchbot/researchbot/internal/core"
)

// Executor runs the four research tools and owns the session's note ledger.
// One Executor serves one research session; Reset clears the ledger so notes
// never leak across topics.
type Executor struct {
	Search core.SearchProvider
	Fetch  core.PageFetcher
	// MaxOutputRunes caps any serialized tool result fed back to the model
	// (0 = no cap).
	MaxOutputRunes int

	searchPolicy retryPolicy
	fetchPolicy  retryPolicy
	notes        []string
}

// NewExecutor creates an executor over the given collaborators.
func NewExecutor(search core.SearchProvider, fetch core.PageFetcher) *Executor {
	return &Executor{
		Search:       search,
		Fetch:        fetch,
		searchPolicy: searchRetry,
		fetchPolicy:  fetchRetry,
	}
}

// Definitions implements core.ToolExecutor.
func (e *Executor) Definitions() []core.ToolDefinition {
	return Definitions()
}

// Notes returns a snapshot of the ledger in append order.
func (e *Executor) Notes() []string {
	out := make([]string, len(e.notes))
	copy(out, e.notes)
	return out
}

// Reset clears the note ledger for a new session.
func (e *Executor) Reset() {
	e.notes = nil
}

// ErrJSON converts a failure into the structured payload the model sees.
func ErrJSON(err error) string {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(b)
}

// decodeArgs parses the argument payload from the model. Malformed text
// degrades to the zero value; missing arguments are each tool's problem.
func decodeArgs(argsJSON string, v interface{}) {
	if err := json.Unmarshal([]byte(argsJSON), v); err != nil {
		log.Printf("[TOOLS] Undecodable arguments, treating as empty: %v", err)
	}
}

// Execute runs the tool by name with the given JSON arguments and returns a
// JSON result. Tool failures never surface as an error: they come back as an
// {"error": ...} payload so the model can adapt.
func (e *Executor) Execute(ctx context.Context, name, argsJSON string) (string, error) {
	var result interface{}

	switch Name(name) {
	case WebSearch:
		var args struct {
			Query string `json:"query"`
		}
		decodeArgs(argsJSON, &args)
		result = e.webSearch(ctx, args.Query)

	case FetchWebpage:
		var args struct {
			URL string `json:"url"`
		}
		decodeArgs(argsJSON, &args)
		result = e.fetchWebpage(ctx, args.URL)

	case TakeNotes:
		var args struct {
			Note   string `json:"note"`
			Source string `json:"source"`
		}
		decodeArgs(argsJSON, &args)
		result = e.takeNotes(args.Note, args.Source)

	case CompileReport:
		var args struct {
			Title            string `json:"title"`
			Summary          string `json:"summary"`
			DetailedFindings string `json:"detailed_findings"`
			Conclusion       string `json:"conclusion"`
		}
		decodeArgs(argsJSON, &args)
		result = e.compileReport(args.Title, args.Summary, args.DetailedFindings, args.Conclusion)

	default:
		return ErrJSON(fmt.Errorf("unknown tool: %s", name)), nil
	}

	b, err := json.Marshal(result)
	if err != nil {
		return ErrJSON(err), nil
	}
	return TruncateToolOutput(string(b), e.MaxOutputRunes), nil
}

type searchSuccess struct {
	Success bool                `json:"success"`
	Query   string              `json:"query"`
	Results []core.SearchResult `json:"results"`
	Count   int                 `json:"count"`
}

type searchFailure struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Results []core.SearchResult `json:"results"`
}

func (e *Executor) webSearch(ctx context.Context, query string) interface{} {
	if strings.TrimSpace(query) == "" {
		return map[string]string{"error": "web_search: query is required"}
	}
	if e.Search == nil {
		return searchFailure{Error: "no search provider configured", Results: []core.SearchResult{}}
	}

	results, err := withRetry(ctx, e.searchPolicy, func() ([]core.SearchResult, error) {
		return e.Search.Search(ctx, query)
	})
	if err != nil {
		log.Printf("[SEARCH] %q failed after retries: %v", query, err)
		return searchFailure{Error: err.Error(), Results: []core.SearchResult{}}
	}
	if results == nil {
		results = []core.SearchResult{}
	}
	return searchSuccess{Success: true, Query: query, Results: results, Count: len(results)}
}

const (
	maxContentLines = 100
	maxContentChars = 4000
	truncationMark  = "... [truncated]"
)

type fetchSuccess struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Content string `json:"content"`
	Length  int    `json:"length"`
}

type fetchFailure struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Error   string `json:"error"`
}

func (e *Executor) fetchWebpage(ctx context.Context, url string) interface{} {
	if strings.TrimSpace(url) == "" {
		return map[string]string{"error": "fetch_webpage: url is required"}
	}
	if e.Fetch == nil {
		return fetchFailure{URL: url, Error: "no page fetcher configured"}
	}

	text, err := withRetry(ctx, e.fetchPolicy, func() (string, error) {
		return e.Fetch.Fetch(ctx, url)
	})
	if err != nil {
		log.Printf("[FETCH] %s failed after retries: %v", url, err)
		return fetchFailure{URL: url, Error: err.Error()}
	}

	content := TruncateContent(text)
	return fetchSuccess{Success: true, URL: url, Content: content, Length: len(content)}
}

// TruncateContent keeps the first maxContentLines non-empty lines, then caps
// at maxContentChars with an explicit truncation marker.
func TruncateContent(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
		if len(lines) >= maxContentLines {
			break
		}
	}
	content := strings.Join(lines, "\n")
	if len(content) > maxContentChars {
		content = content[:maxContentChars-len(truncationMark)] + truncationMark
	}
	return content
}

type notesResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	TotalNotes int    `json:"total_notes"`
}

func (e *Executor) takeNotes(note, source string) interface{} {
	if strings.TrimSpace(note) == "" {
		return map[string]string{"error": "take_notes: note is required"}
	}
	if source == "" {
		source = "Unknown"
	}
	e.notes = append(e.notes, fmt.Sprintf("[Source: %s] %s", source, note))
	return notesResult{Success: true, Message: "Note saved successfully", TotalNotes: len(e.notes)}
}

// ReportResult is the structured payload of a successful compile_report call.
// The agent loop reads it back to capture the session's final artifact.
type ReportResult struct {
	Success       bool   `json:"success"`
	Report        string `json:"report"`
	NotesIncluded int    `json:"notes_included"`
}

func (e *Executor) compileReport(title, summary, findings, conclusion string) interface{} {
	required := []struct{ field, value string }{
		{"title", title},
		{"summary", summary},
		{"detailed_findings", findings},
		{"conclusion", conclusion},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return map[string]string{"error": "compile_report: " + r.field + " is required"}
		}
	}
	report := RenderReport(title, summary, findings, conclusion, e.notes)
	return ReportResult{Success: true, Report: report, NotesIncluded: len(e.notes)}
}

var _ core.ToolExecutor = (*Executor)(nil)

// ParseReportResult decodes a compile_report tool result. The bool reports
// whether the payload carries a successfully compiled report.
func ParseReportResult(payload string) (ReportResult, bool) {
	var r ReportResult
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return ReportResult{}, false
	}
	if !r.Success || r.Report == "" {
		return ReportResult{}, false
	}
	return r, true
}
