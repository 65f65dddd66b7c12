package tui

import (
	"strings"
	"testing"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		runAnswered: 8,
		runCorrect:  6,
		allAnswered: 40,
		allCorrect:  30,
	}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Run 6/8", "75.0%", "All-time 40"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterNoAnswers(t *testing.T) {
	out := (&Model{}).renderFooter()
	if !containsAll(out, []string{"Run 0/0 · 0.0%", "All-time 0 · 0.0%"}) {
		t.Fatalf("unexpected empty footer: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
