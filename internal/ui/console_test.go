package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/hpn/studyhub/internal/study"
)

func init() {
	color.NoColor = true
}

func TestPrintStartupInfo(t *testing.T) {
	tests := []struct {
		name     string
		info     StartupInfo
		contains []string
		excludes []string
	}{
		{
			name: "configured",
			info: StartupInfo{
				Backend:     "sdk",
				Credentials: []string{"Primary Key(AIza...abcd)"},
				Models:      []string{"gemini-2.5-flash", "gemini-2.0-flash"},
				MaxAttempts: 3,
			},
			contains: []string{"Backend: sdk", "Credentials: 1", "Models: 2", "Attempts: 3", "Primary Key(AIza...abcd)", "gemini-2.5-flash, gemini-2.0-flash"},
			excludes: []string{"[WARN]"},
		},
		{
			name:     "no credentials warns",
			info:     StartupInfo{Backend: "rest", Models: []string{"m"}, MaxAttempts: 1},
			contains: []string{"Credentials: 0", "[WARN]", "GEMINI_API_KEY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintStartupInfo(&buf, tt.info)
			out := buf.String()

			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(out, bad) {
					t.Errorf("output should not contain %q:\n%s", bad, out)
				}
			}
		})
	}
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer

	PrintSuccess(&buf, "quiz ready")
	PrintFallback(&buf, "glossary")
	PrintFailure(&buf, "AI Error: Prompt is empty.")
	PrintCacheStats(&buf, 3, 1, 2)
	PrintSection(&buf, "Summary", "  body text  ")
	PrintBanner(&buf)

	out := buf.String()
	for _, want := range []string{
		" OK  quiz ready",
		"[FALLBACK] glossary",
		" FAILED  AI Error: Prompt is empty.",
		"hits:3 misses:1 entries:2",
		"── Summary",
		"body text\n",
		Version,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderQuiz(t *testing.T) {
	out := RenderQuiz(study.Quiz{Questions: []study.QuizQuestion{
		{Question: "What is F?", Options: []string{"mass", "force"}, CorrectAnswer: 1, Explanation: "F stands for force"},
	}})

	for _, want := range []string{"QUESTION", "What is F?", "  A) mass", "* B) force", "F stands for force"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderQuiz() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFlashcardsAndGlossary(t *testing.T) {
	cards := RenderFlashcards(study.Flashcards{Cards: []study.Flashcard{{Front: "Force", Back: "push or pull"}}})
	if !strings.Contains(cards, "Force") || !strings.Contains(cards, "push or pull") {
		t.Errorf("RenderFlashcards() =\n%s", cards)
	}

	glossary := RenderGlossary([]study.GlossaryEntry{{Term: "Energy", Definition: "ability to do work"}})
	if !strings.Contains(glossary, "Energy") || !strings.Contains(glossary, "ability to do work") {
		t.Errorf("RenderGlossary() =\n%s", glossary)
	}
}

func TestRenderAnalysis(t *testing.T) {
	out := RenderAnalysis(study.Analyze("F = ma is shown in [1]."))

	for _, want := range []string{"Word count", "Reading ease", "F = ma is shown in [1].", "[1]", "scholar.google.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderAnalysis() missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(RenderAnalysis(study.Analysis{}), "LINK") {
		t.Error("empty analysis should not render a citation table")
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if got := renderTable(nil, [][]string{{"x"}}, nil); got != "" {
		t.Errorf("renderTable(nil) = %q, want empty", got)
	}
}
