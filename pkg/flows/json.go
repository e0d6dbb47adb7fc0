package flows

import (
	"fmt"
	"regexp"
	"strings"
)

var fencedJSONRegex = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// extractJSON returns the completion starting at its first JSON object.
// Markdown code fences and leading prose are stripped; trailing text is left
// for the decoder to ignore.
func extractJSON(completion string) (string, error) {
	s := strings.TrimSpace(completion)
	if m := fencedJSONRegex.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	start := strings.Index(s, "{")
	if start < 0 {
		return "", fmt.Errorf("%w: no JSON object in completion", ErrMalformedOutput)
	}

	return s[start:], nil
}
