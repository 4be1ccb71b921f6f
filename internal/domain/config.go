package domain

// Config mirrors .recspec/config.json (local scope) and ~/.recspec/config.json (global scope).
type Config struct {
	LLM        LLMSettings        `json:"llm" yaml:"llm"`
	Language   Language           `json:"language" yaml:"language"`
	Output     OutputSettings     `json:"output" yaml:"output"`
	Generation GenerationSettings `json:"generation" yaml:"generation"`
}

// LLMSettings selects the generation provider and holds its credentials.
type LLMSettings struct {
	Provider Provider            `json:"provider" yaml:"provider"`
	Model    string              `json:"model,omitempty" yaml:"model,omitempty"`
	APIKeys  map[Provider]string `json:"apiKeys,omitempty" yaml:"apiKeys,omitempty"`
}

// OutputSettings controls the generated test code.
type OutputSettings struct {
	Framework  string `json:"framework" yaml:"framework"`
	TypeScript bool   `json:"typescript" yaml:"typescript"`
}

// GenerationSettings toggles optional specification content.
type GenerationSettings struct {
	IncludeEdgeCases bool `json:"includeEdgeCases" yaml:"includeEdgeCases"`
}

// Provider identifies a generation provider.
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// SupportedProviders lists every provider in preference order. The first entry is the default.
var SupportedProviders = []Provider{ProviderGoogle, ProviderAnthropic, ProviderOpenAI}

// ProviderInfo holds the fixed per-provider facts.
type ProviderInfo struct {
	EnvVar       string
	DefaultModel string
	KeyURL       string
}

var providerInfo = map[Provider]ProviderInfo{
	ProviderGoogle: {
		EnvVar:       "GOOGLE_GENERATIVE_AI_API_KEY",
		DefaultModel: "gemini-2.5-flash",
		KeyURL:       "https://aistudio.google.com/app/apikey",
	},
	ProviderAnthropic: {
		EnvVar:       "ANTHROPIC_API_KEY",
		DefaultModel: "claude-sonnet-4-20250514",
		KeyURL:       "https://console.anthropic.com/settings/keys",
	},
	ProviderOpenAI: {
		EnvVar:       "OPENAI_API_KEY",
		DefaultModel: "gpt-4o",
		KeyURL:       "https://platform.openai.com/api-keys",
	},
}

// Info returns the fixed facts for p and whether p is supported.
func (p Provider) Info() (ProviderInfo, bool) {
	info, ok := providerInfo[p]
	return info, ok
}

// IsSupported reports whether p is one of SupportedProviders.
func (p Provider) IsSupported() bool {
	_, ok := providerInfo[p]
	return ok
}

// EnvVar returns the canonical environment variable holding p's credential.
func (p Provider) EnvVar() string {
	return providerInfo[p].EnvVar
}

// Language selects the natural language of generated specifications.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "ja"

	// DefaultLanguage is the primary language.
	DefaultLanguage = LanguageEnglish
)

// SupportedLanguages lists the primary language first.
var SupportedLanguages = []Language{LanguageEnglish, LanguageJapanese}

// IsSupported reports whether l is a known language.
func (l Language) IsSupported() bool {
	return l == LanguageEnglish || l == LanguageJapanese
}

// Scope names one of the two persistence locations.
type Scope string

const (
	ScopeLocal  Scope = "local"
	ScopeGlobal Scope = "global"
)

// IsValid reports whether s names a known scope.
func (s Scope) IsValid() bool {
	return s == ScopeLocal || s == ScopeGlobal
}

// FrameworkPlaywright is the only supported output framework.
const FrameworkPlaywright = "playwright"
