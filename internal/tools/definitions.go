package tools

import (
	"github.com/researchbot/researchbot/internal/core"
)

// Name identifies one of the fixed research tools. Dispatch is closed over
// these four values; anything else is an unknown-tool error at the model
// boundary.
type Name string

const (
	WebSearch     Name = "web_search"
	FetchWebpage  Name = "fetch_webpage"
	TakeNotes     Name = "take_notes"
	CompileReport Name = "compile_report"
)

// Definitions returns the capability contract advertised to the model: the
// four tool schemas in stable order.
func Definitions() []core.ToolDefinition {
	return []core.ToolDefinition{
		{
			Type: "function",
			Function: core.FunctionSpec{
				Name:        string(WebSearch),
				Description: "Search the web for information on a given query. Returns a list of search results with titles, URLs, and snippets.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"query": map[string]string{"type": "string", "description": "The search query to look up"},
					},
					"required": []string{"query"},
				},
			},
		},
		{
			Type: "function",
			Function: core.FunctionSpec{
				Name:        string(FetchWebpage),
				Description: "Fetch and extract the main text content from a webpage URL.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"url": map[string]string{"type": "string", "description": "The URL of the webpage to fetch"},
					},
					"required": []string{"url"},
				},
			},
		},
		{
			Type: "function",
			Function: core.FunctionSpec{
				Name:        string(TakeNotes),
				Description: "Save important findings or notes during research. Use this to record key information you want to include in the final report.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"note":   map[string]string{"type": "string", "description": "The note or finding to save"},
						"source": map[string]string{"type": "string", "description": "The source URL or reference for this note"},
					},
					"required": []string{"note"},
				},
			},
		},
		{
			Type: "function",
			Function: core.FunctionSpec{
				Name:        string(CompileReport),
				Description: "Compile all gathered notes and findings into a final research report. Call this when you have gathered enough information to answer the research question.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"title":             map[string]string{"type": "string", "description": "Title for the research report"},
						"summary":           map[string]string{"type": "string", "description": "Executive summary of the findings"},
						"detailed_findings": map[string]string{"type": "string", "description": "Detailed findings and analysis"},
						"conclusion":        map[string]string{"type": "string", "description": "Conclusion and key takeaways"},
					},
					"required": []string{"title", "summary", "detailed_findings", "conclusion"},
				},
			},
		},
	}
}
