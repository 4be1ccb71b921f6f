package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	genai "google.golang.org/genai"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/pkg/schema"
	"github.com/doeshing/recspec/internal/ports"
)

type fakeModel struct {
	messages []llms.MessageContent
	options  llms.CallOptions
	reply    string
	err      error
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	for _, opt := range options {
		opt(&m.options)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func fakeLangchain(model *fakeModel, gotKey, gotModel *string) *langchainProvider {
	return &langchainProvider{
		id: domain.ProviderAnthropic,
		build: func(apiKey, name string) (llms.Model, error) {
			*gotKey, *gotModel = apiKey, name
			return model, nil
		},
	}
}

func TestLangchainProvider_GenerateText(t *testing.T) {
	model := &fakeModel{reply: "Feature: x"}
	var key, name string
	p := fakeLangchain(model, &key, &name)

	got, err := p.GenerateText(context.Background(), ports.ProviderRequest{
		Model: "claude-x", APIKey: "k", System: "be brief", Prompt: "describe",
		Options: domain.GenerationOptions{Temperature: 0.5, MaxTokens: 321},
	})
	require.NoError(t, err)
	assert.Equal(t, "Feature: x", got)
	assert.Equal(t, "k", key)
	assert.Equal(t, "claude-x", name)

	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
	assert.InDelta(t, 0.5, model.options.Temperature, 1e-6)
	assert.Equal(t, 321, model.options.MaxTokens)
	assert.False(t, model.options.JSONMode)
}

func TestLangchainProvider_GenerateStructured(t *testing.T) {
	model := &fakeModel{reply: `{"a":"b"}`}
	var key, name string
	p := fakeLangchain(model, &key, &name)

	s := schema.Object(map[string]*schema.Schema{"a": schema.String()}, "a")
	got, err := p.GenerateStructured(context.Background(), ports.ProviderRequest{Prompt: "p", Schema: s})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"b"}`, string(got))
	assert.True(t, model.options.JSONMode)

	require.Len(t, model.messages, 2)
	system, ok := model.messages[0].Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Contains(t, system.Text, `"required":["a"]`)
}

func TestLangchainProvider_Errors(t *testing.T) {
	var key, name string
	p := fakeLangchain(&fakeModel{err: errors.New("rate limited")}, &key, &name)
	_, err := p.GenerateText(context.Background(), ports.ProviderRequest{Prompt: "p"})
	require.EqualError(t, err, "rate limited")

	empty := &langchainProvider{id: domain.ProviderOpenAI, build: func(string, string) (llms.Model, error) {
		return &emptyModel{}, nil
	}}
	_, err = empty.GenerateText(context.Background(), ports.ProviderRequest{Prompt: "p"})
	require.ErrorIs(t, err, errEmptyChoices)
}

type emptyModel struct{ fakeModel }

func (*emptyModel) GenerateContent(context.Context, []llms.MessageContent, ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{}, nil
}

func TestToGenaiSchema(t *testing.T) {
	s := schema.Object(map[string]*schema.Schema{
		"kind":  schema.String("a", "b").Describe("the kind"),
		"count": schema.Integer(),
		"tags":  schema.Array(schema.String()),
	}, "kind")

	got := toGenaiSchema(s)
	assert.Equal(t, genai.TypeObject, got.Type)
	assert.Equal(t, []string{"kind"}, got.Required)
	assert.Equal(t, genai.TypeString, got.Properties["kind"].Type)
	assert.Equal(t, []string{"a", "b"}, got.Properties["kind"].Enum)
	assert.Equal(t, "the kind", got.Properties["kind"].Description)
	assert.Equal(t, genai.TypeInteger, got.Properties["count"].Type)
	assert.Equal(t, genai.TypeArray, got.Properties["tags"].Type)
	assert.Equal(t, genai.TypeString, got.Properties["tags"].Items.Type)

	assert.Nil(t, toGenaiSchema(nil))
}

func TestGenerationConfig(t *testing.T) {
	cfg := generationConfig(ports.ProviderRequest{System: "sys", Options: domain.GenerationOptions{Temperature: 0.2, MaxTokens: 50}})
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.2, *cfg.Temperature, 1e-6)
	assert.Equal(t, int32(50), cfg.MaxOutputTokens)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "sys", cfg.SystemInstruction.Parts[0].Text)

	bare := generationConfig(ports.ProviderRequest{})
	assert.Nil(t, bare.SystemInstruction)
	assert.Zero(t, bare.MaxOutputTokens)
}
