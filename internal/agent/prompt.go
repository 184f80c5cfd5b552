package agent

import (
	"fmt"
	"strings"
)

// systemPrompt is the fixed directive seeding every research session. It
// enumerates the four tools and the prescribed workflow.
const systemPrompt = `You are an expert research assistant agent. Your goal is to thoroughly research the given topic and compile a comprehensive report.

You have access to the following tools:
1. web_search: Search the web for information
2. fetch_webpage: Get detailed content from a specific URL
3. take_notes: Save important findings for the final report
4. compile_report: Create the final research report

Your workflow should be:
1. Analyze the research question to identify key aspects to investigate
2. Use web_search to find relevant sources
3. Use fetch_webpage to get detailed information from promising sources
4. Use take_notes to record important findings with their sources
5. When you have gathered sufficient information, use compile_report to create the final report

Guidelines:
- Be thorough but efficient - aim for quality over quantity
- Always cite sources when taking notes
- Cross-reference information from multiple sources when possible
- Focus on factual, verifiable information
- If search results are insufficient, try different search queries
- When you have enough information to answer the research question comprehensively, compile the report

IMPORTANT: You must decide what actions to take based on the current state of your research. Think step by step about what information you still need.`

// topicPrompt wraps the user's topic in the fixed instruction template.
func topicPrompt(topic string) string {
	return fmt.Sprintf("Please research the following topic and compile a comprehensive report:\n\n%s", topic)
}

// partialBanner opens every exhaustion-fallback report.
const partialBanner = "PARTIAL RESEARCH REPORT"

// noReportPlaceholder is returned when the model was unavailable before any
// state accumulated.
const noReportPlaceholder = "No report was generated."

// partialReport lists the session's accumulated notes under the fixed banner.
// Always non-empty: a placeholder line appears when no notes exist.
func partialReport(notes []string, maxIterations int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", partialBanner, strings.Repeat("=", len(partialBanner)))
	fmt.Fprintf(&b, "Research was terminated after %d iterations.\n\n", maxIterations)
	b.WriteString("Notes gathered:\n")
	if len(notes) == 0 {
		b.WriteString("No notes were saved.\n")
		return b.String()
	}
	for _, note := range notes {
		fmt.Fprintf(&b, "- %s\n", note)
	}
	return b.String()
}
