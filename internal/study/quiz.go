package study

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is the result of Service.Quiz.
type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
	Fallback  bool           `json:"fallback,omitempty"`
}

var placeholderQuestion = QuizQuestion{
	Question:      "Quiz generation encountered an issue. What is the main topic of your document?",
	Options:       []string{"Science", "History", "Mathematics", "General Knowledge"},
	CorrectAnswer: 3,
	Explanation:   "This is a placeholder question. Try generating again.",
}

// rawQuestion is what models actually return: correctAnswer may be an index,
// a numeric string or the answer text, and some models use "answer" instead.
type rawQuestion struct {
	Question      string          `json:"question"`
	Options       []string        `json:"options"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Answer        *string         `json:"answer"`
	Explanation   string          `json:"explanation"`
}

// normalize resolves the correct answer to an option index, defaulting to 0.
func (q rawQuestion) normalize() QuizQuestion {
	out := QuizQuestion{
		Question:    q.Question,
		Options:     q.Options,
		Explanation: q.Explanation,
	}
	if out.Options == nil {
		out.Options = []string{}
	}

	switch {
	case len(q.CorrectAnswer) > 0 && string(q.CorrectAnswer) != "null":
		out.CorrectAnswer = q.resolveCorrectAnswer()
	case q.Answer != nil:
		out.CorrectAnswer = indexOf(q.Options, *q.Answer)
	}

	if out.CorrectAnswer < 0 || (len(out.Options) > 0 && out.CorrectAnswer >= len(out.Options)) {
		out.CorrectAnswer = 0
	}
	return out
}

func (q rawQuestion) resolveCorrectAnswer() int {
	var n float64
	if err := json.Unmarshal(q.CorrectAnswer, &n); err == nil {
		return int(n)
	}

	var s string
	if err := json.Unmarshal(q.CorrectAnswer, &s); err == nil {
		if idx, ok := findOption(q.Options, s); ok {
			return idx
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}

// indexOf returns the position of answer in options, or 0 when absent.
func indexOf(options []string, answer string) int {
	idx, _ := findOption(options, answer)
	return idx
}

func findOption(options []string, answer string) (int, bool) {
	answer = strings.TrimSpace(answer)
	for i, opt := range options {
		if strings.TrimSpace(opt) == answer {
			return i, true
		}
	}
	return 0, false
}

// Quiz generates five multiple-choice questions from doc. A generation or
// parse failure yields a single placeholder question with Fallback set;
// only cancellation is returned as an error.
func (s *Service) Quiz(ctx context.Context, doc Document) (Quiz, error) {
	if doc.Empty() {
		return Quiz{}, ErrNoDocument
	}

	prompt := fmt.Sprintf(quizPrompt, clip(doc.Text, s.contextChars))
	raw, err := s.generate(ctx, "quiz", prompt, validateItems[rawQuestion])
	if err != nil {
		if ctx.Err() != nil {
			return Quiz{}, err
		}
		s.fallback("quiz", err)
		return Quiz{Questions: []QuizQuestion{placeholderQuestion}, Fallback: true}, nil
	}

	items, _ := decodeItems[rawQuestion](raw)
	questions := make([]QuizQuestion, 0, len(items))
	for _, item := range items {
		questions = append(questions, item.normalize())
	}
	return Quiz{Questions: questions}, nil
}
