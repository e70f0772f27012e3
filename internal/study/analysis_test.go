package study

import (
	"reflect"
	"testing"
)

func TestExtractFormulas(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "newline and comma terminate",
			text: "E = mc^2\nF = ma, which is Newton's law",
			want: []string{"E = mc^2", "F = ma"},
		},
		{
			name: "duplicates collapse",
			text: "x = 1, then again x = 1, and y=2",
			want: []string{"x = 1", "y=2"},
		},
		{
			name: "none",
			text: "No equations here.",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFormulas(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractFormulas() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractCitations(t *testing.T) {
	text := "As shown in [1] and [2], and later (Smith, 2020) confirmed [1]. See (Doe,2019)."
	want := []string{"(Doe,2019)", "(Smith, 2020)", "[1]", "[2]"}

	if got := ExtractCitations(text); !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractCitations() = %q, want %q", got, want)
	}
}

func TestCitationLinks(t *testing.T) {
	links := CitationLinks([]string{"(Smith, 2020)", "[1]"})

	want := []Citation{
		{Title: "(Smith, 2020)", Link: "https://scholar.google.com/scholar?q=%28Smith%2C+2020%29"},
		{Title: "[1]", Link: "https://scholar.google.com/scholar?q=%5B1%5D"},
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("CitationLinks() = %+v, want %+v", links, want)
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"the", 1},
		{"make", 1},
		{"table", 2},
		{"rhythm", 1},
		{"banana", 3},
		{"queue", 1},
		{"HELLO", 2},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := countSyllables(tt.word); got != tt.want {
				t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestRecommendedDuration(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "empty gets minimum",
			text: "   ",
			want: DurationEasy,
		},
		{
			name: "easy",
			text: "The cat sat on the mat. The dog ran.",
			want: DurationEasy,
		},
		{
			// 10 words, 1 sentence, 18 syllables: 206.835 - 10.15 - 152.28 = 44.4
			name: "medium",
			text: "Cat cat table table table table table table table table.",
			want: DurationMedium,
		},
		{
			name: "hard",
			text: "Phenomenological epistemological considerations notwithstanding, institutionalized bureaucratization fundamentally characterizes contemporary organizational infrastructures.",
			want: DurationHard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecommendedDuration(tt.text); got != tt.want {
				t.Errorf("RecommendedDuration() = %d, want %d (score %.2f)", got, tt.want, FleschReadingEase(tt.text))
			}
		})
	}
}

func TestFleschReadingEase(t *testing.T) {
	if got := FleschReadingEase(""); got != 0 {
		t.Errorf("FleschReadingEase(\"\") = %v, want 0", got)
	}
	if got := FleschReadingEase("Cat cat table table table table table table table table."); got < 44.3 || got > 44.5 {
		t.Errorf("FleschReadingEase(medium) = %v, want ~44.4", got)
	}
}

func TestAnalyze(t *testing.T) {
	a := Analyze(sampleDoc.Text)

	if a.WordCount != 18 {
		t.Errorf("WordCount = %d, want 18", a.WordCount)
	}
	if len(a.Formulas) != 2 {
		t.Errorf("Formulas = %q, want 2", a.Formulas)
	}
	if len(a.Citations) != 2 {
		t.Errorf("Citations = %+v, want 2", a.Citations)
	}
	if a.RecommendedDuration == 0 {
		t.Error("RecommendedDuration should be set")
	}

	empty := Analyze("")
	if empty.WordCount != 0 || empty.ReadingEase != 0 || empty.RecommendedDuration != DurationEasy {
		t.Errorf("Analyze(\"\") = %+v", empty)
	}
}
