// Package domain contains the core business entities and value objects.
package domain

import (
	"errors"
	"net/http"
	"strings"
)

// OutcomeKind classifies the result of one (credential, model) call.
type OutcomeKind int

const (
	// OutcomeSuccess means the call produced text.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeRateLimited means the model's quota is exhausted (HTTP 429).
	OutcomeRateLimited

	// OutcomeNotFound means the model is unavailable or offline (HTTP 404).
	OutcomeNotFound

	// OutcomeInvalidCredential means the backend rejected the credential.
	OutcomeInvalidCredential

	// OutcomeUnknownFailure is anything not recognised above.
	OutcomeUnknownFailure
)

// String returns the metric/log label of the outcome.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalidCredential:
		return "invalid_credential"
	default:
		return "unknown_failure"
	}
}

// AbandonsCredential reports whether the outcome ends the current credential
// for the rest of the attempt cycle.
func (k OutcomeKind) AbandonsCredential() bool {
	return k == OutcomeInvalidCredential
}

// Signal is the failure signal of one backend call: an optional HTTP-style
// status code and a free-form description.
type Signal struct {
	Status  int
	Message string
}

// StatusCoder is implemented by errors that carry the backend's HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// SignalFromError extracts a Signal from err. The status is taken from the
// first error in the chain implementing StatusCoder; the message is the full
// error text.
func SignalFromError(err error) Signal {
	if err == nil {
		return Signal{}
	}
	sig := Signal{Message: err.Error()}
	var sc StatusCoder
	if errors.As(err, &sc) {
		sig.Status = sc.StatusCode()
	}
	return sig
}

var (
	rateLimitMarkers = []string{"429", "exhausted", "quota", "rate limit", "too many requests"}
	notFoundMarkers  = []string{"404", "not found"}
	credentialMarks  = []string{"api_key", "api key"}
)

// Classify maps a failure signal to an OutcomeKind.
//
// A structured status wins when it is decisive; otherwise the message is
// matched against known substrings. Unrecognised failures are
// OutcomeUnknownFailure, never OutcomeInvalidCredential: a credential is only
// abandoned on a confirmed invalid-credential signal.
func Classify(sig Signal) OutcomeKind {
	msg := strings.ToLower(sig.Message)

	switch sig.Status {
	case http.StatusTooManyRequests:
		return OutcomeRateLimited
	case http.StatusNotFound:
		return OutcomeNotFound
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		if mentionsCredential(msg) {
			return OutcomeInvalidCredential
		}
	}

	switch {
	case containsAny(msg, rateLimitMarkers):
		return OutcomeRateLimited
	case containsAny(msg, notFoundMarkers):
		return OutcomeNotFound
	case strings.Contains(msg, "400") && mentionsCredential(msg):
		return OutcomeInvalidCredential
	case strings.Contains(msg, "api key not valid"):
		return OutcomeInvalidCredential
	default:
		return OutcomeUnknownFailure
	}
}

func mentionsCredential(msg string) bool {
	return containsAny(msg, credentialMarks)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
