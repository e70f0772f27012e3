package dispatch

import (
	"context"
	"strings"
)

// FailurePrefix marks text results that carry a failure instead of content.
const FailurePrefix = "AI Error"

const (
	noCredentialsText = FailurePrefix + ": No API keys configured."
	exhaustedText     = FailurePrefix + ": The system is overloaded or unavailable. Please try again later."
	emptyPromptText   = FailurePrefix + ": Prompt is empty."
	canceledText      = FailurePrefix + ": Request was canceled."
)

// Text is the single-channel form of Dispatch: it returns generated text, or
// a FailurePrefix-prefixed message when generation is unavailable.
func (d *Dispatcher) Text(ctx context.Context, prompt string) string {
	text, err := d.Dispatch(ctx, prompt)
	if err != nil {
		return FailureText(err)
	}
	return text
}

// FailureText renders a dispatch error as its sentinel-prefixed message.
func FailureText(err error) string {
	switch KindOf(err) {
	case KindNoCredentials:
		return noCredentialsText
	case KindEmptyPrompt:
		return emptyPromptText
	case KindCanceled:
		return canceledText
	default:
		return exhaustedText
	}
}

// IsFailureText reports whether s is a failure message produced by Text.
func IsFailureText(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), FailurePrefix)
}
