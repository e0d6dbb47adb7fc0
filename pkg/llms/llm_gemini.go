package llms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/pkg/models"
)

const GeminiAPIKeyNotSetError = "SLANGSCOPE_GEMINI_API_KEY is not set" //nolint:gosec
const DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"

var _ models.SlangLLM = &GeminiLLM{}

func NewGeminiLLM(ctx context.Context, cfg *config.Config) (*GeminiLLM, error) {
	llm := &GeminiLLM{}
	err := llm.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return llm, nil
}

// GeminiLLM calls the Gemini generateContent REST API and asks for JSON output.
type GeminiLLM struct {
	client   *http.Client
	endpoint string
	model    string
	apiKey   string
	timeout  time.Duration
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64  `json:"temperature"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	StopSequences    []string `json:"stopSequences,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (g *GeminiLLM) Init(_ context.Context, cfg *config.Config) error {
	if cfg.LLM.GeminiAPIKey == "" {
		return errors.New(GeminiAPIKeyNotSetError)
	}
	g.apiKey = cfg.LLM.GeminiAPIKey
	g.model = cfg.LLM.Model
	g.endpoint = strings.TrimRight(cfg.LLM.GeminiEndpoint, "/")
	if g.endpoint == "" {
		g.endpoint = DefaultGeminiEndpoint
	}
	g.timeout = callTimeout(cfg)
	g.client = NewRetryableHTTPClient(maxRetries(cfg), g.timeout)

	return nil
}

func (g *GeminiLLM) Call(ctx context.Context,
	prompt string,
	options ...llms.CallOption,
) (string, error) {
	if g.client == nil {
		return "", NewLLMError(InvalidLLMModelError, nil)
	}

	opts := llms.CallOptions{Temperature: DefaultTemperature}
	for _, opt := range options {
		opt(&opts)
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      opts.Temperature,
			MaxOutputTokens:  opts.MaxTokens,
			StopSequences:    opts.StopWords,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return "", NewLLMError("failed to encode gemini request", err)
	}

	thisCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent", g.endpoint, g.model)
	req, err := http.NewRequestWithContext(thisCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", NewLLMError("failed to create gemini request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", NewLLMError("gemini request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewLLMError("failed to read gemini response", err)
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", NewLLMError(
			fmt.Sprintf("unexpected gemini response (status %d)", resp.StatusCode),
			err,
		)
	}

	if result.Error != nil {
		return "", NewLLMError(
			fmt.Sprintf("gemini returned %s", result.Error.Status),
			errors.New(result.Error.Message),
		)
	}
	if resp.StatusCode != http.StatusOK {
		return "", NewLLMError(fmt.Sprintf("gemini returned status %d", resp.StatusCode), nil)
	}
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return "", NewLLMError("gemini blocked the prompt: "+result.PromptFeedback.BlockReason, nil)
	}
	if len(result.Candidates) == 0 {
		return "", NewLLMError("gemini returned no candidates", nil)
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return sb.String(), nil
}

// GetTokenCount returns 0 as token counting needs a separate API round trip.
func (g *GeminiLLM) GetTokenCount(_ string) (int, error) {
	return 0, nil
}
