// Package credential resolves the API key for a provider: environment first, then
// the persisted configuration.
package credential

import (
	"context"
	"fmt"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/ports"
)

// Source tells where a credential was found.
type Source string

const (
	SourceEnvironment Source = "environment"
	SourceConfig      Source = "config"
	SourceNone        Source = "none"
)

// ConfigLoader is the slice of the config store the resolver needs.
type ConfigLoader interface {
	Load(ctx context.Context) (domain.Config, error)
}

// Promoter exports a config-only credential into the process environment.
type Promoter func(provider domain.Provider, secret string) error

// Resolver implements ports.CredentialResolver.
type Resolver struct {
	env     ports.Environment
	store   ConfigLoader
	promote Promoter
	logger  ports.Logger
}

// NewResolver wires the resolver. promote may be nil when no promotion is wanted.
func NewResolver(env ports.Environment, store ConfigLoader, promote Promoter, logger ports.Logger) *Resolver {
	return &Resolver{env: env, store: store, promote: promote, logger: logger}
}

// Lookup applies the precedence rule to an already loaded configuration.
func Lookup(env ports.Environment, cfg domain.Config, provider domain.Provider) (string, Source) {
	if env != nil {
		if v, ok := env.Lookup(provider.EnvVar()); ok {
			return v, SourceEnvironment
		}
	}
	if v, ok := cfg.APIKey(provider); ok {
		return v, SourceConfig
	}
	return "", SourceNone
}

// Resolve returns provider's credential. A credential found only in the configuration is
// promoted into the environment before returning.
func (r *Resolver) Resolve(ctx context.Context, provider domain.Provider) (string, error) {
	if !provider.IsSupported() {
		return "", domain.NewConfigError(fmt.Sprintf("unsupported provider %q", provider), nil)
	}

	if v, ok := r.env.Lookup(provider.EnvVar()); ok {
		return v, nil
	}

	cfg, err := r.store.Load(ctx)
	if err != nil {
		return "", err
	}

	secret, source := Lookup(nil, cfg, provider)
	if source == SourceNone {
		return "", MissingCredentialError(provider)
	}

	if r.promote != nil {
		if err := r.promote(provider, secret); err != nil {
			return "", err
		}
		r.debug("credential promoted to environment", map[string]interface{}{
			"provider": provider,
			"env_var":  provider.EnvVar(),
		})
	}
	return secret, nil
}

// Source reports where Resolve would find provider's credential without revealing it
// and without promoting anything.
func (r *Resolver) Source(ctx context.Context, provider domain.Provider) (Source, error) {
	if !provider.IsSupported() {
		return SourceNone, domain.NewConfigError(fmt.Sprintf("unsupported provider %q", provider), nil)
	}
	if _, ok := r.env.Lookup(provider.EnvVar()); ok {
		return SourceEnvironment, nil
	}
	cfg, err := r.store.Load(ctx)
	if err != nil {
		return SourceNone, err
	}
	_, source := Lookup(nil, cfg, provider)
	return source, nil
}

// MissingCredentialError lists both remediation paths and where to obtain a key.
func MissingCredentialError(provider domain.Provider) *domain.ConfigError {
	info, _ := provider.Info()
	msg := fmt.Sprintf("no API key configured for %s. Set %s in your environment or run `%s` to store one. Get a key at %s",
		provider, info.EnvVar, domain.SetupCommand, info.KeyURL)
	return domain.NewConfigError(msg, nil)
}

func (r *Resolver) debug(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, fields)
	}
}

var _ ports.CredentialResolver = (*Resolver)(nil)
