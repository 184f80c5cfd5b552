package tools

import (
	"strings"
	"testing"
)

func TestTruncateToolOutputNoCap(t *testing.T) {
	s := strings.Repeat("a", 500)
	if got := TruncateToolOutput(s, 0); got != s {
		t.Error("maxRunes 0 must not truncate")
	}
}

func TestTruncateToolOutputUnderCap(t *testing.T) {
	s := strings.Repeat("a", 100)
	if got := TruncateToolOutput(s, 200); got != s {
		t.Error("output under the cap must pass through")
	}
}

func TestTruncateToolOutputOverCap(t *testing.T) {
	s := strings.Repeat("a", 1000)
	got := TruncateToolOutput(s, 200)
	if len([]rune(got)) > 200+len("\n...[output truncated, total 1000 runes]") {
		t.Errorf("truncated output too long: %d runes", len([]rune(got)))
	}
	if !strings.Contains(got, "output truncated, total 1000 runes") {
		t.Errorf("expected truncation suffix with total, got %q", got[len(got)-60:])
	}
	if !strings.HasPrefix(got, "aaa") {
		t.Error("truncation must preserve the start of the output")
	}
}
