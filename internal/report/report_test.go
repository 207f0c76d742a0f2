package report

import (
	"strings"
	"testing"

	"codeberg.org/snonux/abbrevkit/internal/features"
)

func TestRender_Empty(t *testing.T) {
	if got := Render(nil, [][]string{{"x"}}, nil); got != "" {
		t.Errorf("Expected empty output without headers, got %q", got)
	}
}

func TestRender_PadsShortRows(t *testing.T) {
	out := Render([]string{"a", "b"}, [][]string{{"only"}}, nil)
	if !strings.Contains(out, "only") {
		t.Errorf("Expected row content in output:\n%s", out)
	}
	if strings.Count(out, "\n") < 4 {
		t.Errorf("Expected a framed table, got:\n%s", out)
	}
}

func TestSummary(t *testing.T) {
	// go-pretty upper-cases header cells by default
	out := NewSummary("filter").
		Add("values", 10).
		Add("matching", 4).
		AddText("output", "output.xlsx").
		Render()

	for _, want := range []string{"FILTER", "values", "10", "matching", "4", "output.xlsx"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q:\n%s", want, out)
		}
	}
}

func TestFeatures(t *testing.T) {
	tokens := []string{"АБВ", "БА"}
	out := Features(tokens, features.ExtractAll(tokens))

	for _, want := range []string{"ABBREVIATION", "VOWEL_CONSONANT_RATIO", "АБВ", "БА", "0.500", "1.000", "Г", "С"} {
		if !strings.Contains(out, want) {
			t.Errorf("Feature table missing %q:\n%s", want, out)
		}
	}
}
