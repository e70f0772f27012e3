package study

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// NoDocumentAnswer is the chat reply when nothing has been loaded.
const NoDocumentAnswer = "Please upload a document first."

var eli5Triggers = []string{"like i'm 5", "eli5", "explain it simply", "simplify this"}

// ChatMode describes how a chat answer was produced.
type ChatMode string

const (
	ChatNormal     ChatMode = "normal"
	ChatSupportive ChatMode = "supportive"
	ChatELI5       ChatMode = "eli5"
)

// ChatReply is a tutor answer.
type ChatReply struct {
	Answer string   `json:"answer"`
	Mode   ChatMode `json:"mode"`
}

// WantsELI5 reports whether the question asks for a child-level explanation.
func WantsELI5(question string) bool {
	q := strings.ToLower(question)
	for _, trigger := range eli5Triggers {
		if strings.Contains(q, trigger) {
			return true
		}
	}
	return false
}

// Chat answers a question about doc as a tutor. Frustrated questions get a
// supportive instruction; ELI5 requests are answered, then rewritten simply.
// Without a document it replies with NoDocumentAnswer and no error.
func (s *Service) Chat(ctx context.Context, doc Document, question string) (ChatReply, error) {
	if doc.Empty() {
		return ChatReply{Answer: NoDocumentAnswer, Mode: ChatNormal}, nil
	}

	mode := ChatNormal
	system := tutorPrompt
	if IsNegative(question) {
		mode = ChatSupportive
		system += "\n" + frustratedInstruction
	}

	prompt := fmt.Sprintf(chatPrompt, system, strings.TrimSpace(doc.Text), strings.TrimSpace(question))
	answer, err := s.generate(ctx, "chat", prompt, nil)
	if err != nil {
		return ChatReply{}, err
	}

	if !WantsELI5(question) {
		return ChatReply{Answer: answer, Mode: mode}, nil
	}

	s.logger.Debug("rewriting answer for eli5", slog.Int("answer_chars", len(answer)))
	simple, err := s.generate(ctx, "eli5", fmt.Sprintf(eli5Prompt, answer), nil)
	if err != nil {
		return ChatReply{}, err
	}
	return ChatReply{Answer: simple, Mode: ChatELI5}, nil
}
