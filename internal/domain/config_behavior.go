package domain

// DefaultConfig is the configuration used when nothing has been persisted.
func DefaultConfig() Config {
	return Config{
		LLM: LLMSettings{
			Provider: SupportedProviders[0],
		},
		Language: DefaultLanguage,
		Output: OutputSettings{
			Framework:  FrameworkPlaywright,
			TypeScript: true,
		},
		Generation: GenerationSettings{
			IncludeEdgeCases: true,
		},
	}
}

// APIKey returns the persisted credential for p, if any.
func (c *Config) APIKey(p Provider) (string, bool) {
	if c.LLM.APIKeys == nil {
		return "", false
	}
	key, ok := c.LLM.APIKeys[p]
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// SetAPIKey stores key for p. An empty key removes the entry; an emptied map becomes nil.
func (c *Config) SetAPIKey(p Provider, key string) {
	if key == "" {
		delete(c.LLM.APIKeys, p)
		if len(c.LLM.APIKeys) == 0 {
			c.LLM.APIKeys = nil
		}
		return
	}
	if c.LLM.APIKeys == nil {
		c.LLM.APIKeys = make(map[Provider]string)
	}
	c.LLM.APIKeys[p] = key
}

// GetModel returns the configured model override or the provider default.
func (c *Config) GetModel() string {
	if c.LLM.Model != "" {
		return c.LLM.Model
	}
	info, _ := c.LLM.Provider.Info()
	return info.DefaultModel
}

// HasAnyAPIKey reports whether at least one credential is persisted.
func (c *Config) HasAnyAPIKey() bool {
	for _, key := range c.LLM.APIKeys {
		if key != "" {
			return true
		}
	}
	return false
}

// Clone returns a deep copy; the credential map is never shared.
func (c Config) Clone() Config {
	out := c
	if c.LLM.APIKeys != nil {
		out.LLM.APIKeys = make(map[Provider]string, len(c.LLM.APIKeys))
		for k, v := range c.LLM.APIKeys {
			out.LLM.APIKeys[k] = v
		}
	}
	return out
}

// Redacted returns a copy safe to print: every credential is masked.
func (c Config) Redacted() Config {
	out := c.Clone()
	for k, v := range out.LLM.APIKeys {
		out.LLM.APIKeys[k] = MaskSecret(v)
	}
	return out
}

// MaskSecret hides a secret entirely; only its presence is visible.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
