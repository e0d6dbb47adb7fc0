package testutils

import (
	"context"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/pkg/models"
)

var _ models.SlangLLM = &FakeLLM{}

// FakeLLM is a scripted models.SlangLLM. Responses are returned in order and
// the last one repeats. Handler, when set, takes precedence.
type FakeLLM struct {
	Responses   []string
	Err         error
	Handler     func(ctx context.Context, prompt string) (string, error)
	CountTokens bool

	mu          sync.Mutex
	prompts     []string
	tokenCounts int
}

func NewFakeLLM(responses ...string) *FakeLLM {
	return &FakeLLM{Responses: responses}
}

func (f *FakeLLM) Call(ctx context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	f.mu.Lock()
	n := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Handler != nil {
		return f.Handler(ctx, prompt)
	}
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	if n >= len(f.Responses) {
		n = len(f.Responses) - 1
	}
	return f.Responses[n], nil
}

// GetTokenCount counts whitespace separated words when CountTokens is set.
func (f *FakeLLM) GetTokenCount(text string) (int, error) {
	f.mu.Lock()
	f.tokenCounts++
	f.mu.Unlock()

	if !f.CountTokens {
		return 0, nil
	}
	return len(strings.Fields(text)), nil
}

func (f *FakeLLM) Init(_ context.Context, _ *config.Config) error {
	return nil
}

// Calls returns the number of times Call was invoked.
func (f *FakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// Prompts returns a copy of the prompts passed to Call.
func (f *FakeLLM) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// TokenCounts returns the number of times GetTokenCount was invoked.
func (f *FakeLLM) TokenCounts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenCounts
}
