package config_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configapp "github.com/doeshing/recspec/internal/application/config"
	"github.com/doeshing/recspec/internal/domain"
)

func TestValidate(t *testing.T) {
	require.NoError(t, configapp.Validate(domain.DefaultConfig()))

	bad := domain.DefaultConfig()
	bad.LLM.Provider = "mistral"
	bad.Language = "fr"
	bad.Output.Framework = "cypress"
	bad.LLM.APIKeys = map[domain.Provider]string{"zeta": "z", "alpha": "a"}

	err := configapp.Validate(bad)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		`llm.provider: unsupported provider "mistral", expected one of google, anthropic, openai`,
		`llm.apiKeys: unknown provider "alpha"`,
		`llm.apiKeys: unknown provider "zeta"`,
		`language: unsupported language "fr"`,
		`output.framework: must be "playwright", got "cypress"`,
	}, verr.Violations)
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr []string
	}{
		{
			name: "full document",
			doc:  `{"llm":{"provider":"google","apiKeys":{"google":"k"}},"language":"ja","output":{"framework":"playwright","typescript":false},"generation":{"includeEdgeCases":false}}`,
		},
		{
			name: "minimal document",
			doc:  `{"llm":{"provider":"anthropic"}}`,
		},
		{
			name:    "missing provider",
			doc:     `{"llm":{}}`,
			wantErr: []string{"llm.provider: required"},
		},
		{
			name:    "wrong types",
			doc:     `{"llm":{"provider":"openai","apiKeys":{"openai":42}},"output":{"typescript":"yes"}}`,
			wantErr: []string{"llm.apiKeys.openai: expected string, got number", "output.typescript: expected boolean, got string"},
		},
		{
			name:    "unsupported provider",
			doc:     `{"llm":{"provider":"mistral"}}`,
			wantErr: []string{`llm.provider: invalid value "mistral"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc any
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &doc))

			err := configapp.ValidateDocument(doc)
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
