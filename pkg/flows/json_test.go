package flows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name       string
		completion string
		expected   string
		wantErr    bool
	}{
		{
			name:       "bare object",
			completion: `{"terms": []}`,
			expected:   `{"terms": []}`,
		},
		{
			name:       "surrounding whitespace",
			completion: "\n  {\"terms\": []}  \n",
			expected:   `{"terms": []}`,
		},
		{
			name:       "json fence",
			completion: "```json\n{\"terms\": []}\n```",
			expected:   `{"terms": []}`,
		},
		{
			name:       "plain fence with prose",
			completion: "Here you go:\n```\n{\"a\": 1}\n```\nHope that helps!",
			expected:   `{"a": 1}`,
		},
		{
			name:       "leading prose",
			completion: `The answer is {"a": 1} and nothing else.`,
			expected:   `{"a": 1} and nothing else.`,
		},
		{
			name:       "no object",
			completion: "I cannot answer that.",
			wantErr:    true,
		},
		{
			name:       "empty",
			completion: "",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.completion)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedOutput)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
