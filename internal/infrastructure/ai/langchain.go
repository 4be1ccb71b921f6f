package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/ports"
)

var errEmptyChoices = errors.New("response has no choices")

// modelBuilder creates a langchaingo model bound to one key and model name.
type modelBuilder func(apiKey, model string) (llms.Model, error)

// langchainProvider is shared by the variants served through langchaingo.
type langchainProvider struct {
	id    domain.Provider
	build modelBuilder
}

func (p *langchainProvider) ID() domain.Provider { return p.id }

func (p *langchainProvider) GenerateText(ctx context.Context, req ports.ProviderRequest) (string, error) {
	return p.generate(ctx, req.System, req)
}

// GenerateStructured asks for JSON mode and states the schema in the system message;
// conformance is checked by the gateway.
func (p *langchainProvider) GenerateStructured(ctx context.Context, req ports.ProviderRequest) (json.RawMessage, error) {
	system := req.System
	if req.Schema != nil {
		raw, err := json.Marshal(req.Schema)
		if err != nil {
			return nil, fmt.Errorf("encode schema: %w", err)
		}
		if system != "" {
			system += "\n\n"
		}
		system += "Respond with a single JSON object that conforms to this JSON Schema. Do not add prose.\n" + string(raw)
	}

	text, err := p.generate(ctx, system, req, llms.WithJSONMode())
	if err != nil {
		return nil, err
	}
	return json.RawMessage(text), nil
}

func (p *langchainProvider) generate(ctx context.Context, system string, req ports.ProviderRequest, extra ...llms.CallOption) (string, error) {
	llm, err := p.build(req.APIKey, req.Model)
	if err != nil {
		return "", err
	}

	messages := make([]llms.MessageContent, 0, 2)
	if system != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	opts := []llms.CallOption{llms.WithTemperature(float64(req.Options.Temperature))}
	if req.Options.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.Options.MaxTokens))
	}
	opts = append(opts, extra...)

	resp, err := llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errEmptyChoices
	}
	return resp.Choices[0].Content, nil
}

var _ ports.Provider = (*langchainProvider)(nil)
