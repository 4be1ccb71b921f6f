// Package ai is the provider-agnostic generation gateway and its provider variants.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/pkg/extract"
	"github.com/doeshing/recspec/internal/pkg/schema"
	"github.com/doeshing/recspec/internal/ports"
)

// ConfigLoader supplies the provider selection.
type ConfigLoader interface {
	Load(ctx context.Context) (domain.Config, error)
}

// Gateway implements ports.Generator. It resolves the provider and credential per call
// and never retries.
type Gateway struct {
	config  ConfigLoader
	creds   ports.CredentialResolver
	factory ports.ProviderFactory
	logger  ports.Logger
}

// NewGateway wires the gateway.
func NewGateway(config ConfigLoader, creds ports.CredentialResolver, factory ports.ProviderFactory, logger ports.Logger) *Gateway {
	return &Gateway{config: config, creds: creds, factory: factory, logger: logger}
}

type call struct {
	provider ports.Provider
	req      ports.ProviderRequest
}

// prepare selects the provider first so an unsupported one fails before the credential
// lookup and before any network activity.
func (g *Gateway) prepare(ctx context.Context, prompt, system string, opts domain.GenerationOptions) (call, error) {
	cfg, err := g.config.Load(ctx)
	if err != nil {
		return call{}, err
	}

	provider, err := g.factory.ForProvider(cfg.LLM.Provider)
	if err != nil {
		return call{}, err
	}

	key, err := g.creds.Resolve(ctx, cfg.LLM.Provider)
	if err != nil {
		return call{}, err
	}

	if opts.MaxTokens <= 0 {
		opts.MaxTokens = domain.DefaultMaxTokens
	}

	return call{
		provider: provider,
		req: ports.ProviderRequest{
			Model:   cfg.GetModel(),
			APIKey:  key,
			System:  system,
			Prompt:  prompt,
			Options: opts,
		},
	}, nil
}

// GenerateText implements ports.Generator.
func (g *Gateway) GenerateText(ctx context.Context, prompt, system string, opts domain.GenerationOptions) (string, error) {
	c, err := g.prepare(ctx, prompt, system, opts)
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := c.provider.GenerateText(ctx, c.req)
	if err != nil {
		return "", g.fail(c, "text generation failed", err, start)
	}
	if strings.TrimSpace(text) == "" {
		return "", g.fail(c, "empty response", errors.New("provider returned no text"), start)
	}

	g.done(c, "text", start)
	return text, nil
}

// GenerateStructured implements ports.Generator. The provider output is extracted,
// repaired when needed and validated against s.
func (g *Gateway) GenerateStructured(ctx context.Context, prompt string, s *schema.Schema, opts domain.GenerationOptions) (json.RawMessage, error) {
	c, err := g.prepare(ctx, prompt, "", opts)
	if err != nil {
		return nil, err
	}
	c.req.Schema = s

	start := time.Now()
	raw, err := c.provider.GenerateStructured(ctx, c.req)
	if err != nil {
		return nil, g.fail(c, "structured generation failed", err, start)
	}

	obj, err := extract.JSON(string(raw))
	if err != nil {
		return nil, g.fail(c, "malformed structured response", err, start)
	}

	if s != nil {
		var doc any
		if err := json.Unmarshal(obj, &doc); err != nil {
			return nil, g.fail(c, "malformed structured response", err, start)
		}
		if violations := s.Validate(doc); len(violations) > 0 {
			return nil, g.fail(c, "response does not match schema",
				domain.NewValidationError("structured response", violations), start)
		}
	}

	g.done(c, "structured", start)
	return obj, nil
}

func (g *Gateway) fail(c call, msg string, cause error, start time.Time) error {
	id := c.provider.ID()
	cause = domain.RedactError(cause, c.req.APIKey)
	if g.logger != nil {
		g.logger.Error("generation failed", cause, map[string]interface{}{
			"provider": id,
			"model":    c.req.Model,
			"duration": time.Since(start).String(),
		})
	}
	return domain.NewGenerationError(id, msg, cause)
}

func (g *Gateway) done(c call, kind string, start time.Time) {
	if g.logger == nil {
		return
	}
	g.logger.Debug("generation complete", map[string]interface{}{
		"provider": c.provider.ID(),
		"model":    c.req.Model,
		"kind":     kind,
		"duration": time.Since(start).String(),
	})
}

var _ ports.Generator = (*Gateway)(nil)
