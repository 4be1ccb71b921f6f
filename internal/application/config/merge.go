// Package config holds the pure configuration rules: validation, deep-merge of partial
// updates and key-path patches for the CLI.
package config

import "github.com/doeshing/recspec/internal/domain"

// Merge applies patch on top of base field by field. Nested sections merge recursively and
// the credential map merges key by key, so fields absent from patch keep their value.
// base is never mutated.
func Merge(base domain.Config, patch domain.ConfigPatch) domain.Config {
	out := base.Clone()
	if patch.LLM != nil {
		mergeLLM(&out, *patch.LLM)
	}
	if patch.Language != nil {
		out.Language = *patch.Language
	}
	if patch.Output != nil {
		out.Output = mergeOutput(out.Output, *patch.Output)
	}
	if patch.Generation != nil {
		out.Generation = mergeGeneration(out.Generation, *patch.Generation)
	}
	return out
}

// mergeLLM works on a clone, so credentials merge in place. An empty value removes that
// provider's key.
func mergeLLM(cfg *domain.Config, patch domain.LLMPatch) {
	if patch.Provider != nil {
		cfg.LLM.Provider = *patch.Provider
	}
	if patch.Model != nil {
		cfg.LLM.Model = *patch.Model
	}
	for p, key := range patch.APIKeys {
		cfg.SetAPIKey(p, key)
	}
}

func mergeOutput(base domain.OutputSettings, patch domain.OutputPatch) domain.OutputSettings {
	if patch.Framework != nil {
		base.Framework = *patch.Framework
	}
	if patch.TypeScript != nil {
		base.TypeScript = *patch.TypeScript
	}
	return base
}

func mergeGeneration(base domain.GenerationSettings, patch domain.GenerationPatch) domain.GenerationSettings {
	if patch.IncludeEdgeCases != nil {
		base.IncludeEdgeCases = *patch.IncludeEdgeCases
	}
	return base
}
