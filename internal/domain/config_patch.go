package domain

// ConfigPatch is a partial configuration update. Nil pointers and nil sections mean
// "leave unchanged". In APIKeys an empty string removes that provider's credential.
type ConfigPatch struct {
	LLM        *LLMPatch        `json:"llm,omitempty" yaml:"llm,omitempty"`
	Language   *Language        `json:"language,omitempty" yaml:"language,omitempty"`
	Output     *OutputPatch     `json:"output,omitempty" yaml:"output,omitempty"`
	Generation *GenerationPatch `json:"generation,omitempty" yaml:"generation,omitempty"`
}

// LLMPatch updates LLMSettings field by field.
type LLMPatch struct {
	Provider *Provider           `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model    *string             `json:"model,omitempty" yaml:"model,omitempty"`
	APIKeys  map[Provider]string `json:"apiKeys,omitempty" yaml:"apiKeys,omitempty"`
}

// OutputPatch updates OutputSettings.
type OutputPatch struct {
	Framework  *string `json:"framework,omitempty" yaml:"framework,omitempty"`
	TypeScript *bool   `json:"typescript,omitempty" yaml:"typescript,omitempty"`
}

// GenerationPatch updates GenerationSettings.
type GenerationPatch struct {
	IncludeEdgeCases *bool `json:"includeEdgeCases,omitempty" yaml:"includeEdgeCases,omitempty"`
}

// IsEmpty reports whether applying p would change nothing.
func (p ConfigPatch) IsEmpty() bool {
	return p.LLM == nil && p.Language == nil && p.Output == nil && p.Generation == nil
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
