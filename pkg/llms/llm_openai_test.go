package llms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slangscope/slangscope/config"
)

func TestOpenAILLM_ConfigureClient(t *testing.T) {
	o := &OpenAILLM{}

	tests := []struct {
		name     string
		llm      config.LLM
		expected int
		wantErr  string
	}{
		{
			name:     "api key only",
			llm:      config.LLM{OpenAIAPIKey: "test-key", Model: "gpt-3.5-turbo"},
			expected: 3,
		},
		{
			name: "azure endpoint",
			llm: config.LLM{
				OpenAIAPIKey:        "test-key",
				AzureOpenAIEndpoint: "https://azure.openai.com",
				Model:               "slang-deployment",
			},
			expected: 5,
		},
		{
			name: "custom endpoint",
			llm: config.LLM{
				OpenAIAPIKey:   "test-key",
				OpenAIEndpoint: "https://openai.example.com",
				Model:          "some-model",
			},
			expected: 4,
		},
		{
			name:     "org id",
			llm:      config.LLM{OpenAIAPIKey: "test-key", OpenAIOrgID: "org-id"},
			expected: 4,
		},
		{
			name:    "missing key",
			llm:     config.LLM{Model: "gpt-4"},
			wantErr: OpenAIAPIKeyNotSetError,
		},
		{
			name: "both endpoints",
			llm: config.LLM{
				OpenAIAPIKey:        "test-key",
				OpenAIEndpoint:      "https://openai.example.com",
				AzureOpenAIEndpoint: "https://azure.openai.com",
			},
			wantErr: "only one of AzureOpenAIEndpoint or OpenAIEndpoint can be set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options, err := o.configureClient(&config.Config{LLM: tt.llm})
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, options, tt.expected)
		})
	}
}

func TestOpenAILLM_NotInitialized(t *testing.T) {
	o := &OpenAILLM{}

	_, err := o.GetTokenCount("it really slaps")
	assert.ErrorContains(t, err, InvalidLLMModelError)
}
