package ai

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/ports"
)

// NewOpenAIProvider returns the OpenAI variant.
func NewOpenAIProvider() ports.Provider {
	return &langchainProvider{
		id: domain.ProviderOpenAI,
		build: func(apiKey, model string) (llms.Model, error) {
			return openai.New(openai.WithToken(apiKey), openai.WithModel(model))
		},
	}
}
