// Package domain contains the core business entities and value objects.
package domain

import (
	"math/rand/v2"
	"strings"
)

// DefaultModels is the compiled-in roster of Gemini model variants.
// Each model has its own free-tier quota.
var DefaultModels = []string{
	"gemini-2.5-flash-lite", // 10 RPM
	"gemini-2.5-flash",      // 5 RPM
	"gemini-2.0-flash",
	"gemini-3.0-flash",
}

// ShuffleFunc permutes n elements in place by calling swap, with the same
// contract as rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// ModelRoster is the static list of candidate model identifiers.
// It carries no per-model state; Shuffled spreads concurrent dispatch calls
// across models instead of having them converge on the first entry.
type ModelRoster struct {
	models  []string
	shuffle ShuffleFunc
}

// RosterOption configures a ModelRoster.
type RosterOption func(*ModelRoster)

// WithShuffle overrides the permutation source (useful for tests).
func WithShuffle(fn ShuffleFunc) RosterOption {
	return func(r *ModelRoster) {
		if fn != nil {
			r.shuffle = fn
		}
	}
}

// NewModelRoster builds a roster from the given model identifiers.
// Blank and duplicate identifiers are dropped.
func NewModelRoster(models []string, opts ...RosterOption) *ModelRoster {
	r := &ModelRoster{
		models:  make([]string, 0, len(models)),
		shuffle: rand.Shuffle,
	}

	seen := make(map[string]struct{}, len(models))
	for _, m := range models {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, exists := seen[m]; exists {
			continue
		}
		seen[m] = struct{}{}
		r.models = append(r.models, m)
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Models returns the roster in its configured order.
func (r *ModelRoster) Models() []string {
	result := make([]string, len(r.models))
	copy(result, r.models)
	return result
}

// Shuffled returns a fresh uniformly random permutation of the roster.
// The roster itself is never reordered.
func (r *ModelRoster) Shuffled() []string {
	order := r.Models()
	r.shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// Len returns the number of models in the roster.
func (r *ModelRoster) Len() int {
	return len(r.models)
}
