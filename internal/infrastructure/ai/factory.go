package ai

import (
	"fmt"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/ports"
)

// Factory is the closed registry of provider variants.
type Factory struct {
	providers map[domain.Provider]ports.Provider
}

// NewFactory registers every supported provider. Passing providers replaces the
// defaults, which is how tests swap in fakes.
func NewFactory(providers ...ports.Provider) *Factory {
	if len(providers) == 0 {
		providers = []ports.Provider{NewGoogleProvider(), NewAnthropicProvider(), NewOpenAIProvider()}
	}
	f := &Factory{providers: make(map[domain.Provider]ports.Provider, len(providers))}
	for _, p := range providers {
		f.providers[p.ID()] = p
	}
	return f
}

// ForProvider implements ports.ProviderFactory.
func (f *Factory) ForProvider(id domain.Provider) (ports.Provider, error) {
	p, ok := f.providers[id]
	if !ok || !id.IsSupported() {
		return nil, domain.NewConfigError(fmt.Sprintf("unsupported provider %q", id), nil)
	}
	return p, nil
}

var _ ports.ProviderFactory = (*Factory)(nil)
