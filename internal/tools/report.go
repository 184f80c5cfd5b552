package tools

import (
	"fmt"
	"strings"
)

var (
	bannerWide   = strings.Repeat("=", 60)
	bannerNarrow = strings.Repeat("-", 40)
)

// RenderReport produces the fixed report layout: title banner, the four
// sections, then the numbered note ledger.
func RenderReport(title, summary, findings, conclusion string, notes []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\nRESEARCH REPORT: %s\n%s\n\n", bannerWide, title, bannerWide)
	fmt.Fprintf(&b, "EXECUTIVE SUMMARY\n%s\n%s\n\n", bannerNarrow, summary)
	fmt.Fprintf(&b, "DETAILED FINDINGS\n%s\n%s\n\n", bannerNarrow, findings)
	fmt.Fprintf(&b, "CONCLUSION\n%s\n%s\n\n", bannerNarrow, conclusion)
	fmt.Fprintf(&b, "RESEARCH NOTES\n%s\n", bannerNarrow)
	for i, note := range notes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, note)
	}
	fmt.Fprintf(&b, "\n%s\n", bannerWide)

	return b.String()
}
