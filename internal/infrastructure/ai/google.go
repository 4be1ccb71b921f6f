package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	genai "google.golang.org/genai"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/pkg/schema"
	"github.com/doeshing/recspec/internal/ports"
)

var errEmptyCandidates = errors.New("response has no candidates")

// GoogleProvider calls the Gemini API through the official genai client. Structured
// calls send the schema natively as ResponseSchema.
type GoogleProvider struct{}

// NewGoogleProvider returns the Google variant.
func NewGoogleProvider() *GoogleProvider {
	return &GoogleProvider{}
}

// ID implements ports.Provider.
func (*GoogleProvider) ID() domain.Provider { return domain.ProviderGoogle }

// GenerateText implements ports.Provider.
func (p *GoogleProvider) GenerateText(ctx context.Context, req ports.ProviderRequest) (string, error) {
	return p.generate(ctx, req, generationConfig(req))
}

// GenerateStructured implements ports.Provider.
func (p *GoogleProvider) GenerateStructured(ctx context.Context, req ports.ProviderRequest) (json.RawMessage, error) {
	cfg := generationConfig(req)
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = toGenaiSchema(req.Schema)

	text, err := p.generate(ctx, req, cfg)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(text), nil
}

func (p *GoogleProvider) generate(ctx context.Context, req ports.ProviderRequest, cfg *genai.GenerateContentConfig) (string, error) {
	// A client per call keeps the key out of any long-lived state.
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: req.APIKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return "", err
	}

	resp, err := cli.Models.GenerateContent(ctx, req.Model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: req.Prompt}}}},
		cfg,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errEmptyCandidates
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

func generationConfig(req ports.ProviderRequest) *genai.GenerateContentConfig {
	temperature := req.Options.Temperature
	cfg := &genai.GenerateContentConfig{Temperature: &temperature}
	if req.Options.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.Options.MaxTokens)
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	return cfg
}

var genaiTypes = map[schema.Type]genai.Type{
	schema.TypeObject:  genai.TypeObject,
	schema.TypeArray:   genai.TypeArray,
	schema.TypeString:  genai.TypeString,
	schema.TypeNumber:  genai.TypeNumber,
	schema.TypeInteger: genai.TypeInteger,
	schema.TypeBoolean: genai.TypeBoolean,
}

func toGenaiSchema(s *schema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiTypes[s.Type],
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

var _ ports.Provider = (*GoogleProvider)(nil)
