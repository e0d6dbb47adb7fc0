package testutils

import (
	"github.com/slangscope/slangscope/config"
)

// NewTestConfig returns a config using in-memory stores and fast retries.
func NewTestConfig() *config.Config {
	return &config.Config{
		LLM: config.LLM{
			Service: "openai",
			Model:   "gpt-3.5-turbo",
			Timeout: 5,
		},
		Flows: config.FlowsConfig{
			MaxRetries:   2,
			RetryBackoff: 1,
			MaxTokens:    1024,
		},
		Analysis: config.AnalysisConfig{
			MaxInputChars:  10_000,
			MaxInputTokens: 3_000,
			Summarize:      true,
		},
		Store: config.StoreConfig{
			Type:       "memory",
			History:    true,
			MaxRecords: 100,
		},
		TermCache: config.TermCacheConfig{
			Type: "memory",
			TTL:  60,
		},
		Tasks: config.TasksConfig{
			Enabled:    true,
			Throttle:   100,
			MaxRetries: 0,
			Timeout:    5,
		},
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           8000,
			WebEnabled:     true,
			MaxRequestSize: 1 << 20,
			AllowedOrigins: []string{"chrome-extension://*"},
		},
		Log: config.LogConfig{Level: "debug"},
		Observability: config.ObservabilityConfig{
			ServiceName: "slangscope-test",
		},
	}
}
