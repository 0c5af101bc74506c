package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"resumix/internal/llm"
)

// ErrSanitize means the raw model response could not be turned into a
// structured map: wrong shape, no JSON object in the text, or a substring
// that would not parse. All of these trigger the same fallback.
var ErrSanitize = errors.New("could not sanitize model response")

var (
	// Unwraps ```json ... ``` / ``` ... ``` fences, keeping the inner content.
	fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

	// First { to the first subsequent } — a non-greedy scan, NOT a
	// bracket-depth counter. A response whose object contains a nested
	// object gets truncated at the inner } and then fails to parse, which
	// lands in the fallback path. Known limitation, kept deliberately: a
	// conservative fallback beats silently accepting a half-matched blob.
	jsonObjRe = regexp.MustCompile(`(?s)\{.*?\}`)
)

// Sanitize turns a loosely-typed raw response into a structured field map,
// or reports ErrSanitize when there is nothing usable in it.
func Sanitize(raw llm.RawResponse) (map[string]any, error) {
	switch raw.Kind {
	case llm.KindMap:
		// Already a JSON object — no recovery needed.
		return raw.Map, nil

	case llm.KindText:
		clean := strings.TrimSpace(fenceRe.ReplaceAllString(raw.Text, "$1"))

		span := jsonObjRe.FindString(clean)
		if span == "" {
			return nil, fmt.Errorf("%w: no JSON object found in text", ErrSanitize)
		}

		var structured map[string]any
		if err := json.Unmarshal([]byte(span), &structured); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSanitize, err)
		}
		return structured, nil

	default:
		return nil, fmt.Errorf("%w: response is neither an object nor text", ErrSanitize)
	}
}
