package study

import (
	"context"
	"fmt"
	"math"
)

// narrationWPM is the speaking rate used to estimate narration length.
const narrationWPM = 150

// failedScript is the script text returned when generation fails.
const failedScript = "Video generation failed."

// VideoScript is a spoken teaching script with pacing hints.
type VideoScript struct {
	Script string `json:"script"`

	// Duration is the recommended video length in seconds, from the
	// source document's reading difficulty.
	Duration int `json:"duration"`

	// NarrationSeconds estimates how long the script takes to read aloud.
	NarrationSeconds float64 `json:"narration_seconds"`

	Fallback bool `json:"fallback,omitempty"`
}

// NarrationSeconds estimates spoken length at narrationWPM.
func NarrationSeconds(script string) float64 {
	words := WordCount(script)
	return math.Round(float64(words)/narrationWPM*60*100) / 100
}

// VideoScript writes a teaching script for doc.
func (s *Service) VideoScript(ctx context.Context, doc Document) (VideoScript, error) {
	if doc.Empty() {
		return VideoScript{}, ErrNoDocument
	}

	prompt := fmt.Sprintf(scriptPrompt, clip(doc.Text, s.contextChars))
	script, err := s.generate(ctx, "script", prompt, nil)
	if err != nil {
		if ctx.Err() != nil {
			return VideoScript{}, err
		}
		s.fallback("script", err)
		return VideoScript{Script: failedScript, Duration: DurationEasy, Fallback: true}, nil
	}

	return VideoScript{
		Script:           script,
		Duration:         RecommendedDuration(doc.Text),
		NarrationSeconds: NarrationSeconds(script),
	}, nil
}
