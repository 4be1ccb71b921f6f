package config

import (
	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/pkg/schema"
)

// Schema describes the persisted configuration document. Only llm.provider is required;
// every other field falls back to the defaults when absent.
func Schema() *schema.Schema {
	providers := make([]string, 0, len(domain.SupportedProviders))
	apiKeys := make(map[string]*schema.Schema, len(domain.SupportedProviders))
	for _, p := range domain.SupportedProviders {
		providers = append(providers, string(p))
		apiKeys[string(p)] = schema.String()
	}

	languages := make([]string, 0, len(domain.SupportedLanguages))
	for _, l := range domain.SupportedLanguages {
		languages = append(languages, string(l))
	}

	return schema.Object(map[string]*schema.Schema{
		"llm": schema.Object(map[string]*schema.Schema{
			"provider": schema.String(providers...),
			"model":    schema.String(),
			"apiKeys":  schema.Object(apiKeys),
		}, "provider"),
		"language": schema.String(languages...),
		"output": schema.Object(map[string]*schema.Schema{
			"framework":  schema.String(domain.FrameworkPlaywright),
			"typescript": schema.Boolean(),
		}),
		"generation": schema.Object(map[string]*schema.Schema{
			"includeEdgeCases": schema.Boolean(),
		}),
	}, "llm")
}
