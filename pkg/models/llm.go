package models

import (
	"context"

	"github.com/tmc/langchaingo/llms"

	"github.com/slangscope/slangscope/config"
)

type SlangLLM interface {
	// Call runs a chat completion against the prompt and returns the model's text.
	Call(
		ctx context.Context,
		prompt string,
		options ...llms.CallOption,
	) (string, error)
	// GetTokenCount returns the number of tokens in the given text.
	// 0 means the model does not report token counts.
	GetTokenCount(text string) (int, error)
	// Init initializes the LLM
	Init(ctx context.Context, cfg *config.Config) error
}
