package llms

import (
	"context"
	"errors"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/pkg/models"
)

const AnthropicAPIKeyNotSetError = "SLANGSCOPE_ANTHROPIC_API_KEY is not set" //nolint:gosec

var _ models.SlangLLM = &AnthropicLLM{}

func NewAnthropicLLM(ctx context.Context, cfg *config.Config) (*AnthropicLLM, error) {
	llm := &AnthropicLLM{}
	err := llm.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return llm, nil
}

type AnthropicLLM struct {
	client  *anthropic.LLM
	timeout time.Duration
}

func (a *AnthropicLLM) Init(_ context.Context, cfg *config.Config) error {
	options, err := a.configureClient(cfg)
	if err != nil {
		return err
	}

	// Create a new client instance with options
	llm, err := anthropic.New(options...)
	if err != nil {
		return err
	}
	a.client = llm
	a.timeout = callTimeout(cfg)

	return nil
}

func (a *AnthropicLLM) Call(ctx context.Context,
	prompt string,
	options ...llms.CallOption,
) (string, error) {
	// If the LLM is not initialized, return an error
	if a.client == nil {
		return "", NewLLMError(InvalidLLMModelError, nil)
	}

	if len(options) == 0 {
		options = append(options, llms.WithTemperature(DefaultTemperature))
	}

	thisCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt = "Human: " + prompt + "\nAssistant:"

	completion, err := a.client.Call(thisCtx, prompt, options...)
	if err != nil {
		return "", NewLLMError("anthropic completion failed", err)
	}

	return completion, nil
}

// GetTokenCount returns the number of tokens in the text.
// Return 0 for now, since we don't have a token count function
func (a *AnthropicLLM) GetTokenCount(_ string) (int, error) {
	return 0, nil
}

func (a *AnthropicLLM) configureClient(cfg *config.Config) ([]anthropic.Option, error) {
	apiKey := cfg.LLM.AnthropicAPIKey
	if apiKey == "" {
		return nil, errors.New(AnthropicAPIKeyNotSetError)
	}

	options := make([]anthropic.Option, 0)
	options = append(
		options,
		anthropic.WithModel(cfg.LLM.Model),
		anthropic.WithToken(apiKey),
	)

	return options, nil
}
