package llms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/slangscope/slangscope/config"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiLLM {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		LLM: config.LLM{
			Service:        "gemini",
			Model:          "gemini-2.0-flash",
			GeminiAPIKey:   "test-key",
			GeminiEndpoint: srv.URL + "/",
			MaxRetries:     1,
		},
	}
	llm, err := NewLLMClient(context.Background(), cfg)
	require.NoError(t, err)

	g, ok := llm.(*GeminiLLM)
	require.True(t, ok, "Expected GeminiLLM")
	return g
}

func TestGeminiLLM_Call(t *testing.T) {
	var got geminiRequest
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "{\"terms\":"}, {"text": " []}"}]},
				"finishReason": "STOP"
			}]
		}`))
	})

	result, err := g.Call(context.Background(), "find the slang", llms.WithMaxTokens(256))
	require.NoError(t, err)
	assert.Equal(t, `{"terms": []}`, result)

	require.Len(t, got.Contents, 1)
	assert.Equal(t, "find the slang", got.Contents[0].Parts[0].Text)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
	assert.Equal(t, 256, got.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, DefaultTemperature, got.GenerationConfig.Temperature)
}

func TestGeminiLLM_CallErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "api error",
			status:  http.StatusBadRequest,
			body:    `{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`,
			wantErr: "gemini returned INVALID_ARGUMENT",
		},
		{
			name:    "blocked prompt",
			status:  http.StatusOK,
			body:    `{"promptFeedback": {"blockReason": "SAFETY"}}`,
			wantErr: "gemini blocked the prompt: SAFETY",
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"candidates": []}`,
			wantErr: "gemini returned no candidates",
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    `<html>oops</html>`,
			wantErr: "unexpected gemini response (status 200)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGemini(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := g.Call(context.Background(), "no cap")
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)

			var llmErr *LLMError
			assert.True(t, errors.As(err, &llmErr))
		})
	}
}

func TestGeminiLLM_NotInitialized(t *testing.T) {
	g := &GeminiLLM{}
	_, err := g.Call(context.Background(), "no cap")
	assert.ErrorContains(t, err, InvalidLLMModelError)
}
