// Package pipeline sequences one generation stage per invocation: read input, build the
// prompt, call the generator, extract the payload and persist the artifact.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/doeshing/recspec/internal/application/prompt"
	"github.com/doeshing/recspec/internal/application/recording"
	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/pkg/extract"
	"github.com/doeshing/recspec/internal/ports"
)

const gherkinTag = "gherkin"

// ConfigLoader supplies the defaults for request fields left empty.
type ConfigLoader interface {
	Load(ctx context.Context) (domain.Config, error)
}

// Service orchestrates the spec, code and suggest stages end-to-end.
type Service struct {
	Config    ConfigLoader
	Generator ports.Generator
	Files     ports.FileSystem
	Logger    ports.Logger
}

// SpecRequest generates a specification from a recording file.
type SpecRequest struct {
	RecordingPath string
	// OutputPath is optional; the specification is only returned when empty.
	OutputPath       string
	Language         domain.Language
	IncludeEdgeCases *bool
}

// SpecResult is the outcome of GenerateSpec.
type SpecResult struct {
	Spec       string
	Recording  domain.NormalizedRecording
	OutputPath string
}

// CodeRequest generates Playwright files from a specification file.
type CodeRequest struct {
	SpecPath   string
	OutputDir  string
	TypeScript *bool
}

// CodeResult is the outcome of GenerateCode.
type CodeResult struct {
	Bundle domain.CodeBundle
	Paths  []string
}

// SuggestRequest asks for an improved specification.
type SuggestRequest struct {
	SpecPath   string
	OutputPath string
	Language   domain.Language
	FocusArea  domain.FocusArea
}

// SuggestResult is the outcome of Suggest.
type SuggestResult struct {
	Spec       string
	OutputPath string
}

func (s *Service) ready() error {
	if s.Config == nil || s.Generator == nil || s.Files == nil || s.Logger == nil {
		return errors.New("pipeline.Service dependencies not satisfied")
	}
	return nil
}

// GenerateSpec runs normalize, prompt, generate and extract for one recording.
func (s *Service) GenerateSpec(ctx context.Context, req SpecRequest) (SpecResult, error) {
	if err := s.ready(); err != nil {
		return SpecResult{}, err
	}

	cfg, err := s.Config.Load(ctx)
	if err != nil {
		return SpecResult{}, err
	}

	raw, err := s.Files.ReadTextFile(req.RecordingPath)
	if err != nil {
		return SpecResult{}, err
	}
	rec, err := recording.NormalizeJSON([]byte(raw))
	if err != nil {
		return SpecResult{}, err
	}

	opts := prompt.SpecOptions{
		Language:         pickLanguage(req.Language, cfg.Language),
		IncludeEdgeCases: pickBool(req.IncludeEdgeCases, cfg.Generation.IncludeEdgeCases),
	}
	text, err := prompt.BuildSpecPrompt(rec, opts)
	if err != nil {
		return SpecResult{}, err
	}

	s.Logger.Info("generating specification", map[string]interface{}{
		"recording":  req.RecordingPath,
		"steps":      rec.Metadata.StepCount,
		"language":   opts.Language,
		"edge_cases": opts.IncludeEdgeCases,
	})

	response, err := s.Generator.GenerateText(ctx, text, prompt.SystemPreamble(domain.StageSpec), domain.GenerationOptions{
		Temperature: domain.DefaultSpecTemperature,
		MaxTokens:   domain.DefaultMaxTokens,
	})
	if err != nil {
		return SpecResult{}, err
	}

	result := SpecResult{Spec: extract.FencedBlock(response, gherkinTag), Recording: rec}
	if req.OutputPath != "" {
		if err := s.writeFile(req.OutputPath, result.Spec+"\n"); err != nil {
			return SpecResult{}, err
		}
		result.OutputPath = req.OutputPath
	}
	return result, nil
}

// GenerateCode turns a specification into the three Playwright artifacts.
func (s *Service) GenerateCode(ctx context.Context, req CodeRequest) (CodeResult, error) {
	if err := s.ready(); err != nil {
		return CodeResult{}, err
	}

	cfg, err := s.Config.Load(ctx)
	if err != nil {
		return CodeResult{}, err
	}

	spec, err := s.readSpec(req.SpecPath)
	if err != nil {
		return CodeResult{}, err
	}

	typescript := pickBool(req.TypeScript, cfg.Output.TypeScript)
	text, err := prompt.BuildCodePrompt(spec, prompt.CodeOptions{TypeScript: typescript})
	if err != nil {
		return CodeResult{}, err
	}

	s.Logger.Info("generating test code", map[string]interface{}{
		"spec":       req.SpecPath,
		"typescript": typescript,
	})

	raw, err := s.Generator.GenerateStructured(ctx, text, prompt.CodeBundleSchema(), domain.GenerationOptions{
		Temperature: domain.DefaultCodeTemperature,
		MaxTokens:   domain.DefaultCodeMaxTokens,
	})
	if err != nil {
		return CodeResult{}, err
	}

	var bundle domain.CodeBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return CodeResult{}, fmt.Errorf("decode code bundle: %w", err)
	}
	bundle = sanitizeBundle(bundle, typescript)

	outDir := req.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := s.Files.MkdirAll(outDir, domain.OutputDirPermissions); err != nil {
		return CodeResult{}, err
	}

	result := CodeResult{Bundle: bundle}
	for _, file := range bundle.Files() {
		path := filepath.Join(outDir, file.Filename)
		if err := s.writeFile(path, file.Code); err != nil {
			return CodeResult{}, err
		}
		result.Paths = append(result.Paths, path)
	}
	return result, nil
}

// Suggest asks for an improved version of an existing specification.
func (s *Service) Suggest(ctx context.Context, req SuggestRequest) (SuggestResult, error) {
	if err := s.ready(); err != nil {
		return SuggestResult{}, err
	}

	cfg, err := s.Config.Load(ctx)
	if err != nil {
		return SuggestResult{}, err
	}

	spec, err := s.readSpec(req.SpecPath)
	if err != nil {
		return SuggestResult{}, err
	}

	area := req.FocusArea
	if area == "" {
		area = domain.FocusAll
	}
	text, err := prompt.BuildSuggestPrompt(spec, prompt.SuggestOptions{
		Language:  pickLanguage(req.Language, cfg.Language),
		FocusArea: area,
	})
	if err != nil {
		return SuggestResult{}, err
	}

	s.Logger.Info("requesting suggestions", map[string]interface{}{
		"spec":  req.SpecPath,
		"focus": area,
	})

	response, err := s.Generator.GenerateText(ctx, text, prompt.SystemPreamble(domain.StageSuggest), domain.GenerationOptions{
		Temperature: domain.DefaultSpecTemperature,
		MaxTokens:   domain.DefaultMaxTokens,
	})
	if err != nil {
		return SuggestResult{}, err
	}

	result := SuggestResult{Spec: extract.FencedBlock(response, gherkinTag)}
	if req.OutputPath != "" {
		if err := s.writeFile(req.OutputPath, result.Spec+"\n"); err != nil {
			return SuggestResult{}, err
		}
		result.OutputPath = req.OutputPath
	}
	return result, nil
}

func (s *Service) readSpec(path string) (string, error) {
	spec, err := s.Files.ReadTextFile(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(spec) == "" {
		return "", domain.NewValidationError("invalid specification", []string{path + ": file is empty"})
	}
	return spec, nil
}

func (s *Service) writeFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := s.Files.MkdirAll(dir, domain.OutputDirPermissions); err != nil {
			return err
		}
	}
	if err := s.Files.WriteTextFile(path, text, domain.OutputFilePermissions); err != nil {
		return err
	}
	s.Logger.Debug("artifact written", map[string]interface{}{"path": path})
	return nil
}

func pickLanguage(requested, configured domain.Language) domain.Language {
	if requested != "" {
		return requested
	}
	return configured
}

func pickBool(requested *bool, configured bool) bool {
	if requested != nil {
		return *requested
	}
	return configured
}
