package study

import (
	"context"
	"fmt"
	"strings"
)

// Overview is what a freshly loaded document gets: a summary plus the
// deterministic analysis and a glossary.
type Overview struct {
	Name            string          `json:"filename"`
	Summary         string          `json:"summary"`
	SummaryFallback bool            `json:"summary_fallback,omitempty"`
	Analysis        Analysis        `json:"analysis"`
	Glossary        []GlossaryEntry `json:"glossary"`
}

// Overview summarizes doc and collects its analysis and glossary. When the
// summary cannot be generated it is replaced by a statistics digest.
func (s *Service) Overview(ctx context.Context, doc Document) (*Overview, error) {
	if doc.Empty() {
		return nil, ErrNoDocument
	}

	ov := &Overview{
		Name:     doc.Name,
		Analysis: Analyze(doc.Text),
	}

	glossary, err := s.Glossary(ctx, doc)
	if err != nil {
		return nil, err
	}
	ov.Glossary = glossary.Entries

	prompt := fmt.Sprintf(summaryPrompt, clip(doc.Text, s.contextChars))
	summary, err := s.generate(ctx, "summary", prompt, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		s.fallback("summary", err)
		ov.Summary = digest(doc.Name, ov)
		ov.SummaryFallback = true
		return ov, nil
	}

	ov.Summary = summary
	return ov, nil
}

// digest renders the fallback summary from document statistics.
func digest(name string, ov *Overview) string {
	if strings.TrimSpace(name) == "" {
		name = "document"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Document **%s** loaded successfully.\n\n", name)
	fmt.Fprintf(&b, "- **Word count:** %d\n", ov.Analysis.WordCount)
	fmt.Fprintf(&b, "- **Formulas found:** %d\n", len(ov.Analysis.Formulas))
	fmt.Fprintf(&b, "- **Citations found:** %d\n", len(ov.Analysis.Citations))
	fmt.Fprintf(&b, "- **Glossary terms:** %d\n\n", len(ov.Glossary))
	b.WriteString("You can now use **Chat**, **Quiz**, **Flashcards**, and other study tools.")
	return b.String()
}
