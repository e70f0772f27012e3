package dispatch

import (
	"errors"
	"fmt"
)

// Kind enumerates the failures a dispatch call can surface to its caller.
// Recoverable backend conditions (rate limits, unavailable models, invalid
// credentials) are absorbed by the loop and never appear here.
type Kind int

const (
	// KindNoCredentials means the credential pool is empty.
	KindNoCredentials Kind = iota + 1

	// KindEmptyPrompt means the caller supplied a blank prompt.
	KindEmptyPrompt

	// KindRetryBudgetExhausted means every attempt cycle failed.
	KindRetryBudgetExhausted

	// KindCanceled means the caller's context ended the call early.
	KindCanceled
)

// String returns the metric/log label of the kind.
func (k Kind) String() string {
	switch k {
	case KindNoCredentials:
		return "no_credentials"
	case KindEmptyPrompt:
		return "empty_prompt"
	case KindRetryBudgetExhausted:
		return "exhausted"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

var (
	// ErrNoCredentials is matched by errors.Is for KindNoCredentials.
	ErrNoCredentials = errors.New("no API keys configured")

	// ErrEmptyPrompt is matched by errors.Is for KindEmptyPrompt.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrRetryBudgetExhausted is matched by errors.Is for KindRetryBudgetExhausted.
	ErrRetryBudgetExhausted = errors.New("the system is overloaded or unavailable, please try again later")
)

// DispatchError is the failure result of a dispatch call.
type DispatchError struct {
	Kind Kind

	// Calls is the number of backend calls issued before giving up.
	Calls int

	// LastErr is the last backend error seen, if any. It is informational
	// and not part of the Unwrap chain.
	LastErr error

	err error
}

func newDispatchError(kind Kind, calls int, lastErr, cause error) *DispatchError {
	return &DispatchError{Kind: kind, Calls: calls, LastErr: lastErr, err: cause}
}

func (e *DispatchError) Error() string {
	if e.Kind == KindRetryBudgetExhausted && e.LastErr != nil {
		return fmt.Sprintf("dispatch %s after %d calls: %v (last error: %v)", e.Kind, e.Calls, e.err, e.LastErr)
	}
	return fmt.Sprintf("dispatch %s: %v", e.Kind, e.err)
}

// Unwrap returns the sentinel (or context error) describing the kind.
func (e *DispatchError) Unwrap() error {
	return e.err
}

// KindOf returns the Kind of err, or 0 if err is not a *DispatchError.
func KindOf(err error) Kind {
	var de *DispatchError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
