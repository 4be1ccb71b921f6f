package ai

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/ports"
)

// NewAnthropicProvider returns the Anthropic variant.
func NewAnthropicProvider() ports.Provider {
	return &langchainProvider{
		id: domain.ProviderAnthropic,
		build: func(apiKey, model string) (llms.Model, error) {
			return anthropic.New(anthropic.WithToken(apiKey), anthropic.WithModel(model))
		},
	}
}
