// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The core (normalizer, prompt builders, pipeline) depends
// only on these abstractions; file access, environment access, logging and the remote
// generation services are supplied by adapters at the composition root.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Provider, ConfigStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"encoding/json"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/pkg/schema"
)

// ConfigStore loads and persists layered configuration.
// Implementations resolve .recspec/config.json before ~/.recspec/config.json.
type ConfigStore interface {
	Load(context.Context) (domain.Config, error)
	Save(ctx context.Context, cfg domain.Config, scope domain.Scope) error
	Update(ctx context.Context, patch domain.ConfigPatch, scope domain.Scope) (domain.Config, error)
}

// CredentialResolver returns the active credential for a provider.
type CredentialResolver interface {
	Resolve(ctx context.Context, provider domain.Provider) (string, error)
}

// Environment is the process environment as seen by the core.
type Environment interface {
	Lookup(key string) (string, bool)
}

// FileSystem is the file collaborator used by the config store and the pipeline.
// Every method fails with *domain.FilesystemError.
type FileSystem interface {
	ReadTextFile(path string) (string, error)
	WriteTextFile(path, text string, perm uint32) error
	FileExists(path string) (bool, error)
	MkdirAll(path string, perm uint32) error
}

// ProviderRequest is one outbound generation call.
// APIKey is passed by value for the duration of the call only.
type ProviderRequest struct {
	Model   string
	APIKey  string
	System  string
	Prompt  string
	Schema  *schema.Schema
	Options domain.GenerationOptions
}

// Provider is one generation backend (Google, Anthropic, OpenAI).
// Each variant implements both text and structured generation.
type Provider interface {
	ID() domain.Provider
	GenerateText(ctx context.Context, req ProviderRequest) (string, error)
	GenerateStructured(ctx context.Context, req ProviderRequest) (json.RawMessage, error)
}

// ProviderFactory builds the provider variant for an identifier.
type ProviderFactory interface {
	ForProvider(domain.Provider) (Provider, error)
}

// Generator is the provider-agnostic gateway used by the pipeline.
type Generator interface {
	GenerateText(ctx context.Context, prompt, system string, opts domain.GenerationOptions) (string, error)
	GenerateStructured(ctx context.Context, prompt string, s *schema.Schema, opts domain.GenerationOptions) (json.RawMessage, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
