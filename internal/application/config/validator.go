package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/doeshing/recspec/internal/domain"
)

const invalidConfiguration = "invalid configuration"

// Validate ensures config structure is consistent. Every problem is reported at once.
func Validate(cfg domain.Config) error {
	var violations []string

	if !cfg.LLM.Provider.IsSupported() {
		violations = append(violations, fmt.Sprintf("llm.provider: unsupported provider %q, expected one of %s",
			cfg.LLM.Provider, joinProviders()))
	}
	unknown := make([]string, 0)
	for p := range cfg.LLM.APIKeys {
		if !p.IsSupported() {
			unknown = append(unknown, string(p))
		}
	}
	sort.Strings(unknown)
	for _, p := range unknown {
		violations = append(violations, fmt.Sprintf("llm.apiKeys: unknown provider %q", p))
	}
	if !cfg.Language.IsSupported() {
		violations = append(violations, fmt.Sprintf("language: unsupported language %q", cfg.Language))
	}
	if cfg.Output.Framework != domain.FrameworkPlaywright {
		violations = append(violations, fmt.Sprintf("output.framework: must be %q, got %q",
			domain.FrameworkPlaywright, cfg.Output.Framework))
	}

	if len(violations) > 0 {
		return domain.NewValidationError(invalidConfiguration, violations)
	}
	return nil
}

// ValidateDocument checks a decoded JSON document against Schema.
func ValidateDocument(doc any) error {
	if violations := Schema().Validate(doc); len(violations) > 0 {
		return domain.NewValidationError(invalidConfiguration, violations)
	}
	return nil
}

func joinProviders() string {
	names := make([]string, 0, len(domain.SupportedProviders))
	for _, p := range domain.SupportedProviders {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
