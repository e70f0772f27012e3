package study

import (
	"context"
	"fmt"
	"strings"
)

// GlossaryEntry is a key term with a one-sentence definition.
type GlossaryEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Glossary is the result of Service.Glossary.
type Glossary struct {
	Entries  []GlossaryEntry `json:"entries"`
	Fallback bool            `json:"fallback,omitempty"`
}

var overloadedEntry = GlossaryEntry{
	Term:       "AI Overloaded",
	Definition: "The system could not generate definitions due to high traffic. Please try again.",
}

// Glossary extracts five key terms from the start of doc with definitions.
// An empty document yields an empty glossary; a failure yields the
// "AI Overloaded" entry with Fallback set.
func (s *Service) Glossary(ctx context.Context, doc Document) (Glossary, error) {
	if doc.Empty() {
		return Glossary{Entries: []GlossaryEntry{}}, nil
	}

	prompt := fmt.Sprintf(glossaryPrompt, clip(doc.Text, glossaryContextChars))
	raw, err := s.generate(ctx, "glossary", prompt, validateItems[GlossaryEntry])
	if err != nil {
		if ctx.Err() != nil {
			return Glossary{}, err
		}
		s.fallback("glossary", err)
		return Glossary{Entries: []GlossaryEntry{overloadedEntry}, Fallback: true}, nil
	}

	items, _ := decodeItems[GlossaryEntry](raw)
	entries := make([]GlossaryEntry, 0, len(items))
	for _, e := range items {
		e.Term = strings.TrimSpace(e.Term)
		if e.Term == "" {
			continue
		}
		e.Definition = strings.TrimSpace(e.Definition)
		entries = append(entries, e)
	}
	return Glossary{Entries: entries}, nil
}
