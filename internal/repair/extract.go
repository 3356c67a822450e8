// Package repair recovers schema-parseable JSON from malformed model
// completions. Each stage is a pure string-in/string-out transformation
// so failures can be diagnosed against the pre-stage input, and the
// stages only ever run in the fixed order Extract, NormalizeTags,
// FixPunctuation, CoerceArrays.
package repair

import (
	"encoding/json"
	"strings"
)

// Extract strips non-JSON wrapping (markdown fences, surrounding prose)
// from a raw completion and returns the best-effort JSON substring.
// Input that already parses is returned unchanged. Never fails; worst
// case the input comes back as-is.
func Extract(raw string) string {
	// Must be checked before any stripping: every later step is lossy.
	if json.Valid([]byte(raw)) {
		return raw
	}

	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))

	start, closer := rootStart(text)
	if start == -1 {
		return text
	}
	end := strings.LastIndex(text, closer)
	if end <= start {
		// Truncated output with no closer; keep the structure for the
		// downstream stages.
		return text[start:]
	}
	return text[start : end+1]
}

// rootStart finds the first opening brace or bracket and reports which
// closing token the root structure uses.
func rootStart(text string) (int, string) {
	obj := strings.Index(text, "{")
	arr := strings.Index(text, "[")

	switch {
	case obj == -1 && arr == -1:
		return -1, ""
	case obj == -1:
		return arr, "]"
	case arr == -1 || obj < arr:
		return obj, "}"
	default:
		return arr, "]"
	}
}
