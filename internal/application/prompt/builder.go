// Package prompt renders the instructions sent to the generation provider for each
// pipeline stage. Builders are pure: the same input always yields the same prompt.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/doeshing/recspec/assets"
	"github.com/doeshing/recspec/internal/domain"
)

var templates = template.Must(template.New("prompts").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(assets.Prompts, "prompts/*.tmpl"))

// SpecOptions configures the specification stage.
type SpecOptions struct {
	Language         domain.Language
	IncludeEdgeCases bool
}

// CodeOptions configures the code stage.
type CodeOptions struct {
	TypeScript bool
}

// SuggestOptions configures the suggestion stage.
type SuggestOptions struct {
	Language  domain.Language
	FocusArea domain.FocusArea
}

type specData struct {
	Title            string
	StartURL         string
	Steps            []string
	IncludeEdgeCases bool
}

type codeData struct {
	Spec       string
	Language   string
	Extension  string
	TypeScript bool
}

type suggestData struct {
	Spec  string
	Focus string
}

// BuildSpecPrompt asks for a Gherkin specification of rec.
func BuildSpecPrompt(rec domain.NormalizedRecording, opts SpecOptions) (string, error) {
	lang, err := language(opts.Language)
	if err != nil {
		return "", err
	}

	steps := make([]string, 0, len(rec.Steps))
	for _, step := range rec.Steps {
		steps = append(steps, step.Description)
	}

	return render(fmt.Sprintf("spec.%s.tmpl", lang), specData{
		Title:            rec.Title,
		StartURL:         rec.Metadata.URL,
		Steps:            steps,
		IncludeEdgeCases: opts.IncludeEdgeCases,
	})
}

// BuildCodePrompt asks for the three Playwright artifacts as a structured object.
func BuildCodePrompt(spec string, opts CodeOptions) (string, error) {
	data := codeData{
		Spec:       strings.TrimSpace(spec),
		Language:   "JavaScript",
		Extension:  ".js",
		TypeScript: opts.TypeScript,
	}
	if opts.TypeScript {
		data.Language = "TypeScript"
		data.Extension = ".ts"
	}
	return render("code.tmpl", data)
}

// BuildSuggestPrompt asks for an improved version of spec.
func BuildSuggestPrompt(spec string, opts SuggestOptions) (string, error) {
	lang, err := language(opts.Language)
	if err != nil {
		return "", err
	}
	focus, err := focusInstructions(lang, opts.FocusArea)
	if err != nil {
		return "", err
	}
	return render(fmt.Sprintf("suggest.%s.tmpl", lang), suggestData{
		Spec:  strings.TrimSpace(spec),
		Focus: focus,
	})
}

func language(l domain.Language) (domain.Language, error) {
	if l == "" {
		return domain.DefaultLanguage, nil
	}
	if !l.IsSupported() {
		return "", domain.NewValidationError("invalid prompt options",
			[]string{fmt.Sprintf("language: unsupported language %q", l)})
	}
	return l, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}
