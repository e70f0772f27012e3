package domain

import (
	"errors"
	"fmt"
	"testing"
)

type statusErr struct {
	code int
	msg  string
}

func (e *statusErr) Error() string   { return e.msg }
func (e *statusErr) StatusCode() int { return e.code }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		signal   Signal
		expected OutcomeKind
	}{
		{"429 in message", Signal{Message: "gemini API error [429]: slow down"}, OutcomeRateLimited},
		{"resource exhausted", Signal{Message: "RESOURCE_EXHAUSTED"}, OutcomeRateLimited},
		{"quota", Signal{Message: "You exceeded your current quota"}, OutcomeRateLimited},
		{"404 in message", Signal{Message: "error 404"}, OutcomeNotFound},
		{"not found", Signal{Message: "models/gemini-9 is not found for API version v1beta"}, OutcomeNotFound},
		{"400 with api_key", Signal{Message: "400 INVALID_ARGUMENT: API_KEY_INVALID"}, OutcomeInvalidCredential},
		{"api key not valid", Signal{Message: "API key not valid. Please pass a valid API key."}, OutcomeInvalidCredential},
		{"400 without credential", Signal{Message: "400 malformed prompt"}, OutcomeUnknownFailure},
		{"unknown", Signal{Message: "connection reset by peer"}, OutcomeUnknownFailure},
		{"empty", Signal{}, OutcomeUnknownFailure},

		{"status 429", Signal{Status: 429, Message: "busy"}, OutcomeRateLimited},
		{"status 404", Signal{Status: 404, Message: "gone"}, OutcomeNotFound},
		{"status 401 with key message", Signal{Status: 401, Message: "API key expired"}, OutcomeInvalidCredential},
		{"status 403 without key message", Signal{Status: 403, Message: "permission denied"}, OutcomeUnknownFailure},
		{"status 500", Signal{Status: 500, Message: "internal"}, OutcomeUnknownFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.signal); got != tt.expected {
				t.Errorf("Classify(%+v) = %s, want %s", tt.signal, got, tt.expected)
			}
		})
	}
}

func TestSignalFromError(t *testing.T) {
	if sig := SignalFromError(nil); sig != (Signal{}) {
		t.Errorf("SignalFromError(nil) = %+v, want zero", sig)
	}

	plain := errors.New("quota exceeded")
	if sig := SignalFromError(plain); sig.Status != 0 || sig.Message != "quota exceeded" {
		t.Errorf("SignalFromError(plain) = %+v", sig)
	}

	wrapped := fmt.Errorf("generate: %w", &statusErr{code: 404, msg: "gone"})
	sig := SignalFromError(wrapped)
	if sig.Status != 404 {
		t.Errorf("Status = %d, want 404", sig.Status)
	}
	if sig.Message != "generate: gone" {
		t.Errorf("Message = %q, want %q", sig.Message, "generate: gone")
	}
}

func TestOutcomeKind_String(t *testing.T) {
	tests := map[OutcomeKind]string{
		OutcomeSuccess:           "success",
		OutcomeRateLimited:       "rate_limited",
		OutcomeNotFound:          "not_found",
		OutcomeInvalidCredential: "invalid_credential",
		OutcomeUnknownFailure:    "unknown_failure",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("String() = %s, want %s", got, want)
		}
	}
}

func TestOutcomeKind_AbandonsCredential(t *testing.T) {
	for _, k := range []OutcomeKind{OutcomeRateLimited, OutcomeNotFound, OutcomeUnknownFailure} {
		if k.AbandonsCredential() {
			t.Errorf("%s.AbandonsCredential() = true, want false", k)
		}
	}
	if !OutcomeInvalidCredential.AbandonsCredential() {
		t.Error("invalid_credential should abandon the credential")
	}
}
