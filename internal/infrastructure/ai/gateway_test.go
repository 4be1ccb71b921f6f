package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/pkg/schema"
	"github.com/doeshing/recspec/internal/ports"
)

const secret = "sk-live-123456"

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubResolver struct {
	key   string
	err   error
	calls int
}

func (s *stubResolver) Resolve(context.Context, domain.Provider) (string, error) {
	s.calls++
	return s.key, s.err
}

type fakeProvider struct {
	id         domain.Provider
	text       string
	structured string
	err        error
	requests   []ports.ProviderRequest
}

func (f *fakeProvider) ID() domain.Provider { return f.id }

func (f *fakeProvider) GenerateText(_ context.Context, req ports.ProviderRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.text, f.err
}

func (f *fakeProvider) GenerateStructured(_ context.Context, req ports.ProviderRequest) (json.RawMessage, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.structured), nil
}

func configFor(p domain.Provider, model string) stubConfig {
	cfg := domain.DefaultConfig()
	cfg.LLM.Provider = p
	cfg.LLM.Model = model
	return stubConfig{cfg: cfg}
}

func TestGateway_GenerateText(t *testing.T) {
	provider := &fakeProvider{id: domain.ProviderAnthropic, text: "```gherkin\nFeature: x\n```"}
	gw := NewGateway(configFor(domain.ProviderAnthropic, ""), &stubResolver{key: secret}, NewFactory(provider), nil)

	got, err := gw.GenerateText(context.Background(), "prompt", "system", domain.GenerationOptions{Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "```gherkin\nFeature: x\n```", got)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, "prompt", req.Prompt)
	assert.Equal(t, "system", req.System)
	assert.Equal(t, secret, req.APIKey)
	assert.Equal(t, "claude-sonnet-4-20250514", req.Model, "falls back to the provider default model")
	assert.Equal(t, domain.DefaultMaxTokens, req.Options.MaxTokens)
	assert.InDelta(t, 0.3, req.Options.Temperature, 1e-6)
}

func TestGateway_ModelOverride(t *testing.T) {
	provider := &fakeProvider{id: domain.ProviderGoogle, text: "ok"}
	gw := NewGateway(configFor(domain.ProviderGoogle, "gemini-2.5-pro"), &stubResolver{key: secret}, NewFactory(provider), nil)

	_, err := gw.GenerateText(context.Background(), "p", "", domain.GenerationOptions{MaxTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", provider.requests[0].Model)
	assert.Equal(t, 100, provider.requests[0].Options.MaxTokens)
}

func TestGateway_UnsupportedProviderFailsBeforeCredential(t *testing.T) {
	resolver := &stubResolver{key: secret}
	provider := &fakeProvider{id: domain.ProviderGoogle}
	gw := NewGateway(configFor("mistral", ""), resolver, NewFactory(provider), nil)

	_, err := gw.GenerateText(context.Background(), "p", "", domain.GenerationOptions{})
	require.Error(t, err)
	assert.Equal(t, domain.CodeConfig, domain.CodeOf(err))
	assert.Zero(t, resolver.calls)
	assert.Empty(t, provider.requests)
}

func TestGateway_CredentialFailureIsConfigError(t *testing.T) {
	missing := domain.NewConfigError("no API key configured for google", nil)
	provider := &fakeProvider{id: domain.ProviderGoogle}
	gw := NewGateway(configFor(domain.ProviderGoogle, ""), &stubResolver{err: missing}, NewFactory(provider), nil)

	_, err := gw.GenerateStructured(context.Background(), "p", nil, domain.GenerationOptions{})
	require.ErrorIs(t, err, missing)
	assert.Empty(t, provider.requests)
}

func TestGateway_RemoteFailureIsRedactedGenerationError(t *testing.T) {
	remote := errors.New("401 Unauthorized: invalid key " + secret)
	provider := &fakeProvider{id: domain.ProviderOpenAI, err: remote}
	gw := NewGateway(configFor(domain.ProviderOpenAI, ""), &stubResolver{key: secret}, NewFactory(provider), nil)

	_, err := gw.GenerateText(context.Background(), "p", "", domain.GenerationOptions{})
	require.Error(t, err)

	var genErr *domain.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, domain.ProviderOpenAI, genErr.Provider)
	assert.NotContains(t, err.Error(), secret)
	assert.Contains(t, err.Error(), "401 Unauthorized")
	assert.ErrorIs(t, err, remote)
	assert.Len(t, provider.requests, 1, "no retry")
}

func TestGateway_EmptyTextIsGenerationError(t *testing.T) {
	provider := &fakeProvider{id: domain.ProviderGoogle, text: "  \n"}
	gw := NewGateway(configFor(domain.ProviderGoogle, ""), &stubResolver{key: secret}, NewFactory(provider), nil)

	_, err := gw.GenerateText(context.Background(), "p", "", domain.GenerationOptions{})
	require.Error(t, err)
	assert.Equal(t, domain.CodeGeneration, domain.CodeOf(err))
}

func TestGateway_GenerateStructured(t *testing.T) {
	s := schema.Object(map[string]*schema.Schema{
		"filename": schema.String(),
		"code":     schema.String(),
	}, "filename", "code")

	tests := []struct {
		name     string
		response string
		want     string
		wantErr  string
	}{
		{
			name:     "plain object",
			response: `{"filename":"a.ts","code":"x"}`,
			want:     `{"filename":"a.ts","code":"x"}`,
		},
		{
			name:     "fenced and slightly broken",
			response: "```json\n{\"filename\": \"a.ts\", \"code\": \"x\",}\n```",
			want:     `{"filename":"a.ts","code":"x"}`,
		},
		{
			name:     "schema violation",
			response: `{"filename":"a.ts"}`,
			wantErr:  "code: required",
		},
		{
			name:     "not JSON at all",
			response: "I cannot help with that.",
			wantErr:  "malformed structured response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{id: domain.ProviderGoogle, structured: tt.response}
			gw := NewGateway(configFor(domain.ProviderGoogle, ""), &stubResolver{key: secret}, NewFactory(provider), nil)

			got, err := gw.GenerateStructured(context.Background(), "p", s, domain.GenerationOptions{})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, domain.CodeGeneration, domain.CodeOf(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
			assert.Same(t, s, provider.requests[0].Schema)
		})
	}
}

func TestGateway_ConfigLoadFailure(t *testing.T) {
	loadErr := domain.NewConfigError("parse configuration", errors.New("bad json"))
	gw := NewGateway(stubConfig{err: loadErr}, &stubResolver{key: secret}, NewFactory(&fakeProvider{id: domain.ProviderGoogle}), nil)

	_, err := gw.GenerateText(context.Background(), "p", "", domain.GenerationOptions{})
	require.ErrorIs(t, err, loadErr)
}

func TestFactory(t *testing.T) {
	f := NewFactory()
	for _, id := range domain.SupportedProviders {
		p, err := f.ForProvider(id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID())
	}

	_, err := f.ForProvider("mistral")
	require.Error(t, err)
	assert.Equal(t, domain.CodeConfig, domain.CodeOf(err))
}
