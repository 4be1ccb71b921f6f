package doctor

import (
	"context"
	"fmt"

	"github.com/doeshing/recspec/internal/application/credential"
	"github.com/doeshing/recspec/internal/domain"
)

// ConfigInspector exposes where configuration comes from and what it contains.
type ConfigInspector interface {
	ResolveActivePath() (path string, ok bool, err error)
	Load(ctx context.Context) (domain.Config, error)
}

// CredentialInspector reports where a credential would come from.
type CredentialInspector interface {
	Source(ctx context.Context, provider domain.Provider) (credential.Source, error)
}

// Service runs environment diagnostics.
type Service struct {
	Config      ConfigInspector
	Credentials CredentialInspector
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	path, found, err := s.Config.ResolveActivePath()
	switch {
	case err != nil:
		checks = append(checks, fail("Config file", err.Error()))
	case found:
		checks = append(checks, ok("Config file", path))
	default:
		checks = append(checks, warn("Config file", fmt.Sprintf("none found, using defaults (run `%s`)", domain.SetupCommand)))
	}

	cfg, err := s.Config.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config valid", err.Error()))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config valid", fmt.Sprintf("language %s, %s output", cfg.Language, outputKind(cfg))))

	provider := cfg.LLM.Provider
	if !provider.IsSupported() {
		checks = append(checks, fail("Provider", fmt.Sprintf("unsupported provider %q", provider)))
		return domain.HealthReport{Checks: checks}, nil
	}
	checks = append(checks, ok("Provider", fmt.Sprintf("%s (model %s)", provider, cfg.GetModel())))
	checks = append(checks, s.credentialCheck(ctx, cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) credentialCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	provider := cfg.LLM.Provider
	if s.Credentials == nil {
		return warn("API key", "credential resolver not initialized")
	}
	source, err := s.Credentials.Source(ctx, provider)
	if err != nil {
		return fail("API key", err.Error())
	}
	switch source {
	case credential.SourceEnvironment:
		return ok("API key", fmt.Sprintf("found in %s", provider.EnvVar()))
	case credential.SourceConfig:
		return ok("API key", "found in configuration")
	default:
		details := credential.MissingCredentialError(provider).Error()
		if cfg.HasAnyAPIKey() {
			details += "; keys are stored for other providers, switch with `recspec config set llm.provider <name>`"
		}
		return fail("API key", details)
	}
}

func outputKind(cfg domain.Config) string {
	if cfg.Output.TypeScript {
		return "TypeScript"
	}
	return "JavaScript"
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
