package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configapp "github.com/doeshing/recspec/internal/application/config"
	"github.com/doeshing/recspec/internal/domain"
)

func TestPatchFromKeyPath(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  domain.ConfigPatch
	}{
		{
			name:  "language",
			key:   "language",
			value: "ja",
			want:  domain.ConfigPatch{Language: domain.Ptr(domain.LanguageJapanese)},
		},
		{
			name:  "provider",
			key:   "llm.provider",
			value: "anthropic",
			want:  domain.ConfigPatch{LLM: &domain.LLMPatch{Provider: domain.Ptr(domain.ProviderAnthropic)}},
		},
		{
			name:  "credential",
			key:   "llm.apiKeys.openai",
			value: "sk-test",
			want:  domain.ConfigPatch{LLM: &domain.LLMPatch{APIKeys: map[domain.Provider]string{domain.ProviderOpenAI: "sk-test"}}},
		},
		{
			name:  "credential removal",
			key:   "llm.apiKeys.openai",
			value: "",
			want:  domain.ConfigPatch{LLM: &domain.LLMPatch{APIKeys: map[domain.Provider]string{domain.ProviderOpenAI: ""}}},
		},
		{
			name:  "boolean is parsed as YAML",
			key:   "output.typescript",
			value: "false",
			want:  domain.ConfigPatch{Output: &domain.OutputPatch{TypeScript: domain.Ptr(false)}},
		},
		{
			name:  "nested boolean",
			key:   "generation.includeEdgeCases",
			value: "true",
			want:  domain.ConfigPatch{Generation: &domain.GenerationPatch{IncludeEdgeCases: domain.Ptr(true)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := configapp.PatchFromKeyPath(tt.key, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatchFromKeyPath_KeepsSecretsVerbatim(t *testing.T) {
	for _, secret := range []string{"0x1F", "true", "1e3", "null", "~", "012345"} {
		t.Run(secret, func(t *testing.T) {
			got, err := configapp.PatchFromKeyPath("llm.apiKeys.google", secret)
			require.NoError(t, err)
			require.NotNil(t, got.LLM)
			assert.Equal(t, map[domain.Provider]string{domain.ProviderGoogle: secret}, got.LLM.APIKeys)
		})
	}
}

func TestIsCredentialKey(t *testing.T) {
	assert.True(t, configapp.IsCredentialKey("llm.apiKeys"))
	assert.True(t, configapp.IsCredentialKey("llm.apiKeys.openai"))
	assert.False(t, configapp.IsCredentialKey("llm.apiKeysBackup"))
	assert.False(t, configapp.IsCredentialKey("llm.provider"))
}

func TestPatchFromKeyPath_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown top-level key", key: "theme", value: "dark"},
		{name: "unknown nested key", key: "llm.temperature", value: "0.2"},
		{name: "section replaced by scalar", key: "output", value: "ts"},
		{name: "bool field given text", key: "output.typescript", value: "maybe"},
		{name: "empty segment", key: "llm..provider", value: "google"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := configapp.PatchFromKeyPath(tt.key, tt.value)
			require.Error(t, err)
			assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
		})
	}
}

func TestTraverseNestedMap(t *testing.T) {
	m, err := configapp.ToMap(domain.DefaultConfig())
	require.NoError(t, err)

	v, ok := configapp.TraverseNestedMap(m, []string{"llm", "provider"})
	require.True(t, ok)
	assert.Equal(t, "google", v)

	v, ok = configapp.TraverseNestedMap(m, []string{"generation", "includeEdgeCases"})
	require.True(t, ok)
	assert.Equal(t, true, v)

	_, ok = configapp.TraverseNestedMap(m, []string{"llm", "provider", "deeper"})
	assert.False(t, ok)
}
