// Package study turns a loaded document into study material (summaries,
// tutoring answers, quizzes, flashcards, glossaries, video scripts) on top of
// the generation dispatcher. Every generated tool has a fixed fallback so
// callers always get a renderable result.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hpn/studyhub/internal/cache"
)

const (
	// DefaultContextChars caps how much of a document goes into a prompt.
	DefaultContextChars = 5000

	// glossaryContextChars is the smaller window used for glossary extraction.
	glossaryContextChars = 4000
)

// ErrNoDocument is returned when a tool needs document text and none is loaded.
var ErrNoDocument = errors.New("no document loaded")

// Dispatcher produces generated text for a prompt.
// *dispatch.Dispatcher satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, prompt string) (string, error)
}

// Document is the text a study session works on.
type Document struct {
	Name string
	Text string
}

// Empty reports whether the document has no usable text.
func (d Document) Empty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// Service runs the study tools. It is safe for concurrent use.
type Service struct {
	dispatcher   Dispatcher
	cache        *cache.FlashCache
	logger       *slog.Logger
	contextChars int
}

// Option configures a Service.
type Option func(*Service)

// WithCache reuses successful generations for identical prompts.
func WithCache(c *cache.FlashCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithContextChars overrides DefaultContextChars.
func WithContextChars(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.contextChars = n
		}
	}
}

// NewService creates a study service on top of d.
func NewService(d Dispatcher, opts ...Option) *Service {
	s := &Service{
		dispatcher:   d,
		logger:       slog.Default(),
		contextChars: DefaultContextChars,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// generate dispatches prompt and returns the trimmed text. When accept is
// non-nil the text is only returned (and cached) if accept approves it.
func (s *Service) generate(ctx context.Context, tool, prompt string, accept func(string) error) (string, error) {
	key := cache.Key(tool, prompt)
	if text, ok := s.cache.Get(key); ok {
		s.logger.Debug("study cache hit",
			slog.String("tool", tool),
			slog.String("cache_key", key[:12]),
		)
		return text, nil
	}

	text, err := s.dispatcher.Dispatch(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", tool, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%s: empty response", tool)
	}
	if accept != nil {
		if err := accept(text); err != nil {
			return "", fmt.Errorf("%s: %w", tool, err)
		}
	}

	s.cache.Set(key, text)
	return text, nil
}

// fallback logs why a tool is returning its placeholder result.
func (s *Service) fallback(tool string, err error) {
	s.logger.Warn("study tool fell back",
		slog.String("tool", tool),
		slog.String("error", err.Error()),
	)
}

// clip returns at most n runes of s.
func clip(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
