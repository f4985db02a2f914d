package synth

import (
	"strings"

	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// ExtractJSON parses the span from the first '{' to the last '}' of text.
// Models often wrap the object in prose or code fences; anything outside
// that span is ignored. The second result is false when no span exists or
// it does not parse.
func ExtractJSON(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return nil, false
	}

	value, err := uiplan.DecodeJSON([]byte(trimmed[start : end+1]))
	if err != nil {
		return nil, false
	}
	return value, true
}
