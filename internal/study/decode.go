package study

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNoItems = errors.New("no items in response")

// stripCodeFences removes markdown code fences models add despite instructions.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// decodeItems parses a JSON array of objects into []T. A single object is
// accepted as a one-element list.
func decodeItems[T any](raw string) ([]T, error) {
	clean := stripCodeFences(raw)

	var items []T
	switch {
	case strings.HasPrefix(clean, "["):
		if err := json.Unmarshal([]byte(clean), &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
	case strings.HasPrefix(clean, "{"):
		var item T
		if err := json.Unmarshal([]byte(clean), &item); err != nil {
			return nil, fmt.Errorf("decode object: %w", err)
		}
		items = []T{item}
	default:
		return nil, fmt.Errorf("response is not JSON: %.40q", clean)
	}

	if len(items) == 0 {
		return nil, errNoItems
	}
	return items, nil
}

// validateItems adapts decodeItems to the accept hook of Service.generate.
func validateItems[T any](raw string) error {
	_, err := decodeItems[T](raw)
	return err
}
