package study

import (
	"context"
	"fmt"
	"strings"
)

// Flashcard is a term or question on the front with its answer on the back.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Flashcards is the result of Service.Flashcards.
type Flashcards struct {
	Cards    []Flashcard `json:"cards"`
	Fallback bool        `json:"fallback,omitempty"`
}

var placeholderCard = Flashcard{
	Front: "Flashcard generation encountered an issue",
	Back:  "Please try again. Make sure GEMINI_API_KEY is set in the environment or .env file.",
}

// Flashcards generates up to ten flashcards from doc, falling back to a
// single placeholder card on failure.
func (s *Service) Flashcards(ctx context.Context, doc Document) (Flashcards, error) {
	if doc.Empty() {
		return Flashcards{}, ErrNoDocument
	}

	prompt := fmt.Sprintf(flashcardPrompt, clip(doc.Text, s.contextChars))
	raw, err := s.generate(ctx, "flashcards", prompt, validateCards)
	if err != nil {
		if ctx.Err() != nil {
			return Flashcards{}, err
		}
		s.fallback("flashcards", err)
		return Flashcards{Cards: []Flashcard{placeholderCard}, Fallback: true}, nil
	}

	cards, _ := decodeCards(raw)
	return Flashcards{Cards: cards}, nil
}

// decodeCards parses cards and drops ones with neither side filled in.
func decodeCards(raw string) ([]Flashcard, error) {
	items, err := decodeItems[Flashcard](raw)
	if err != nil {
		return nil, err
	}

	cards := items[:0]
	for _, c := range items {
		c.Front = strings.TrimSpace(c.Front)
		c.Back = strings.TrimSpace(c.Back)
		if c.Front == "" && c.Back == "" {
			continue
		}
		cards = append(cards, c)
	}
	if len(cards) == 0 {
		return nil, errNoItems
	}
	return cards, nil
}

func validateCards(raw string) error {
	_, err := decodeCards(raw)
	return err
}
