package llms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptrace"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/internal"
	"github.com/slangscope/slangscope/pkg/models"
)

const DefaultTemperature = 0.0
const DefaultLLMTimeout = 60 * time.Second
const DefaultMaxRetries = 3
const InvalidLLMModelError = "llm model is not set or is invalid"

var log = internal.GetLogger()

func NewLLMClient(ctx context.Context, cfg *config.Config) (models.SlangLLM, error) {
	switch cfg.LLM.Service {
	case "openai", "":
		// Azure OpenAI model names can't be validated against a hard-coded list
		// as they are custom deployment names. Copy the deployment name down to
		// Model if one is configured.
		if cfg.LLM.AzureOpenAIEndpoint != "" {
			if cfg.LLM.AzureOpenAIModel.LLMDeployment != "" {
				cfg.LLM.Model = cfg.LLM.AzureOpenAIModel.LLMDeployment
			}
			if cfg.LLM.Model == "" {
				return nil, fmt.Errorf(
					"invalid llm deployment for %s, deployment name is required",
					cfg.LLM.Service,
				)
			}
			return NewOpenAILLM(ctx, cfg)
		}
		// if custom OpenAI Endpoint is set, do not validate model name
		if cfg.LLM.OpenAIEndpoint != "" {
			return NewOpenAILLM(ctx, cfg)
		}
		if _, ok := ValidOpenAILLMs[cfg.LLM.Model]; !ok {
			return nil, invalidModelError(cfg)
		}
		return NewOpenAILLM(ctx, cfg)
	case "anthropic":
		if _, ok := ValidAnthropicLLMs[cfg.LLM.Model]; !ok {
			return nil, invalidModelError(cfg)
		}
		return NewAnthropicLLM(ctx, cfg)
	case "gemini":
		if _, ok := ValidGeminiLLMs[cfg.LLM.Model]; !ok {
			return nil, invalidModelError(cfg)
		}
		return NewGeminiLLM(ctx, cfg)
	default:
		return nil, fmt.Errorf("invalid LLM service: %s", cfg.LLM.Service)
	}
}

func invalidModelError(cfg *config.Config) error {
	return fmt.Errorf("invalid llm model \"%s\" for %s", cfg.LLM.Model, cfg.LLM.Service)
}

type LLMError struct {
	message       string
	originalError error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm error: %s (original error: %v)", e.message, e.originalError)
}

func (e *LLMError) Unwrap() error {
	return e.originalError
}

func NewLLMError(message string, originalError error) *LLMError {
	return &LLMError{message: message, originalError: originalError}
}

var ValidOpenAILLMs = map[string]bool{
	"gpt-3.5-turbo":     true,
	"gpt-3.5-turbo-16k": true,
	"gpt-4":             true,
	"gpt-4-32k":         true,
	"gpt-4-turbo":       true,
	"gpt-4o":            true,
	"gpt-4o-mini":       true,
}

var ValidAnthropicLLMs = map[string]bool{
	"claude-instant-1": true,
	"claude-2":         true,
	"claude-2.1":       true,
}

var ValidGeminiLLMs = map[string]bool{
	"gemini-pro":       true,
	"gemini-1.5-flash": true,
	"gemini-1.5-pro":   true,
	"gemini-2.0-flash": true,
}

// callTimeout returns the configured per-call timeout or the default.
func callTimeout(cfg *config.Config) time.Duration {
	if cfg.LLM.Timeout > 0 {
		return time.Duration(cfg.LLM.Timeout) * time.Second
	}
	return DefaultLLMTimeout
}

func maxRetries(cfg *config.Config) int {
	if cfg.LLM.MaxRetries > 0 {
		return cfg.LLM.MaxRetries
	}
	return DefaultMaxRetries
}

// NewRetryableHTTPClient returns a new retryable HTTP client with the given retryMax and timeout.
// The retryable HTTP transport is wrapped in an OpenTelemetry transport.
func NewRetryableHTTPClient(retryMax int, timeout time.Duration) *http.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = retryMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.Logger = internal.NewLeveledLogrus(log)
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = retryPolicy

	return &http.Client{
		Transport: otelhttp.NewTransport(
			retryableHTTPClient.StandardClient().Transport,
			otelhttp.WithClientTrace(func(ctx context.Context) *httptrace.ClientTrace {
				return otelhttptrace.NewClientTrace(ctx)
			}),
		),
	}
}

// retryPolicy is a retryablehttp.CheckRetry function. It is used to determine
// whether a request should be retried or not.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	// do not retry on context.Canceled or context.DeadlineExceeded
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	// Do not retry 400 errors. Providers use them for invalid prompts and
	// context length overflows, which a retry won't fix.
	if resp != nil && resp.StatusCode == http.StatusBadRequest {
		return false, err
	}

	shouldRetry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	return shouldRetry, nil
}
