package llms

import (
	"context"
	"errors"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/pkg/models"
)

const OpenAIAPIKeyNotSetError = "SLANGSCOPE_OPENAI_API_KEY is not set" //nolint:gosec

var _ models.SlangLLM = &OpenAILLM{}

func NewOpenAILLM(ctx context.Context, cfg *config.Config) (*OpenAILLM, error) {
	llm := &OpenAILLM{}
	err := llm.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return llm, nil
}

type OpenAILLM struct {
	llm     *openai.Chat
	tkm     *tiktoken.Tiktoken
	timeout time.Duration
}

func (o *OpenAILLM) Init(_ context.Context, cfg *config.Config) error {
	options, err := o.configureClient(cfg)
	if err != nil {
		return err
	}

	// Initialize the Tiktoken client
	encoding := "cl100k_base"
	tkm, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return err
	}
	o.tkm = tkm
	o.timeout = callTimeout(cfg)

	// Create a new client instance with options
	llm, err := openai.NewChat(options...)
	if err != nil {
		return err
	}
	o.llm = llm

	return nil
}

func (o *OpenAILLM) Call(ctx context.Context,
	prompt string,
	options ...llms.CallOption,
) (string, error) {
	// If the LLM is not initialized, return an error
	if o.llm == nil {
		return "", NewLLMError(InvalidLLMModelError, nil)
	}

	if len(options) == 0 {
		options = append(options, llms.WithTemperature(DefaultTemperature))
	}

	thisCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	messages := []schema.ChatMessage{schema.SystemChatMessage{Content: prompt}}

	completion, err := o.llm.Call(thisCtx, messages, options...)
	if err != nil {
		return "", NewLLMError("openai chat completion failed", err)
	}

	return completion.GetContent(), nil
}

// GetTokenCount returns the number of tokens in the text
func (o *OpenAILLM) GetTokenCount(text string) (int, error) {
	if o.tkm == nil {
		return 0, NewLLMError(InvalidLLMModelError, nil)
	}
	return len(o.tkm.Encode(text, nil, nil)), nil
}

func (o *OpenAILLM) configureClient(cfg *config.Config) ([]openai.Option, error) {
	apiKey := cfg.LLM.OpenAIAPIKey
	if apiKey == "" {
		return nil, errors.New(OpenAIAPIKeyNotSetError)
	}

	if cfg.LLM.AzureOpenAIEndpoint != "" && cfg.LLM.OpenAIEndpoint != "" {
		return nil, errors.New("only one of AzureOpenAIEndpoint or OpenAIEndpoint can be set")
	}

	httpClient := NewRetryableHTTPClient(maxRetries(cfg), callTimeout(cfg))

	options := []openai.Option{
		openai.WithHTTPClient(httpClient),
		openai.WithModel(cfg.LLM.Model),
		openai.WithToken(apiKey),
	}

	switch {
	case cfg.LLM.AzureOpenAIEndpoint != "":
		options = append(
			options,
			openai.WithAPIType(openai.APITypeAzure),
			openai.WithBaseURL(cfg.LLM.AzureOpenAIEndpoint),
		)
	case cfg.LLM.OpenAIEndpoint != "":
		options = append(options, openai.WithBaseURL(cfg.LLM.OpenAIEndpoint))
	}

	if cfg.LLM.OpenAIOrgID != "" {
		options = append(options, openai.WithOrganization(cfg.LLM.OpenAIOrgID))
	}

	return options, nil
}
