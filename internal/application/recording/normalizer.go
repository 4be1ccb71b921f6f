// Package recording turns raw browser recorder exports into the normalized action model.
//
// Normalization is pure: no I/O, no clock, no randomness. The same input always yields
// the same NormalizedRecording.
package recording

import (
	"encoding/json"
	"fmt"

	"github.com/doeshing/recspec/internal/domain"
)

const invalidRecording = "invalid recording"

// Normalize validates raw against the recording schema and projects it into a
// NormalizedRecording. raw may be JSON bytes, a decoded JSON value or a domain.RawRecording.
func Normalize(raw any) (domain.NormalizedRecording, error) {
	switch v := raw.(type) {
	case []byte:
		return NormalizeJSON(v)
	case json.RawMessage:
		return NormalizeJSON(v)
	case domain.RawRecording:
		if v.Steps == nil {
			v.Steps = []domain.RawStep{}
		}
		raw = v
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return domain.NormalizedRecording{}, domain.NewValidationError(invalidRecording,
			[]string{fmt.Sprintf("(root): cannot be encoded as JSON: %v", err)})
	}
	return NormalizeJSON(data)
}

// NormalizeJSON is Normalize for an encoded recording document.
func NormalizeJSON(data []byte) (domain.NormalizedRecording, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.NormalizedRecording{}, domain.NewValidationError(invalidRecording,
			[]string{fmt.Sprintf("(root): not valid JSON: %v", err)})
	}

	if aliasStepKinds(doc) {
		encoded, err := json.Marshal(doc)
		if err != nil {
			return domain.NormalizedRecording{}, domain.NewValidationError(invalidRecording,
				[]string{fmt.Sprintf("(root): %v", err)})
		}
		data = encoded
	}

	if violations := RecordingSchema().Validate(doc); len(violations) > 0 {
		return domain.NormalizedRecording{}, domain.NewValidationError(invalidRecording, violations)
	}

	var rec domain.RawRecording
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.NormalizedRecording{}, domain.NewValidationError(invalidRecording,
			[]string{fmt.Sprintf("(root): %v", err)})
	}

	return Project(rec), nil
}

// aliasStepKinds accepts "kind" as the step discriminator when "type" is absent.
// It reports whether doc was changed.
func aliasStepKinds(doc any) bool {
	root, ok := doc.(map[string]any)
	if !ok {
		return false
	}
	steps, ok := root["steps"].([]any)
	if !ok {
		return false
	}

	changed := false
	for _, s := range steps {
		step, ok := s.(map[string]any)
		if !ok {
			continue
		}
		if _, hasType := step["type"]; hasType {
			continue
		}
		if kind, hasKind := step["kind"]; hasKind {
			step["type"] = kind
			delete(step, "kind")
			changed = true
		}
	}
	return changed
}

// Project maps an already validated recording to the normalized model, dropping steps
// that carry no behavioral intent and preserving the order of the rest.
func Project(rec domain.RawRecording) domain.NormalizedRecording {
	steps := make([]domain.NormalizedAction, 0, len(rec.Steps))
	for _, step := range rec.Steps {
		if action, ok := projectStep(step); ok {
			steps = append(steps, action)
		}
	}

	return domain.NormalizedRecording{
		Title: rec.Title,
		Steps: steps,
		Metadata: domain.RecordingMetadata{
			URL:       startURL(rec.Steps),
			StepCount: len(steps),
		},
	}
}

func projectStep(step domain.RawStep) (domain.NormalizedAction, bool) {
	switch step.Type {
	case domain.StepNavigate:
		return domain.NormalizedAction{
			Kind:        domain.ActionNavigate,
			URL:         step.URL,
			Description: fmt.Sprintf("Navigate to page %s", step.URL),
		}, true

	case domain.StepClick:
		selector := primarySelector(step.Selectors)
		return domain.NormalizedAction{
			Kind:        domain.ActionClick,
			Selector:    selector,
			Description: withSelector("Click element", selector),
		}, true

	case domain.StepChange:
		selector := primarySelector(step.Selectors)
		desc := fmt.Sprintf("Enter %q", step.Value)
		if selector != "" {
			desc = fmt.Sprintf("Enter %q into %s", step.Value, selector)
		}
		return domain.NormalizedAction{
			Kind:        domain.ActionChange,
			Selector:    selector,
			Value:       step.Value,
			Description: desc,
		}, true

	case domain.StepKeyDown:
		return domain.NormalizedAction{
			Kind:        domain.ActionKeyDown,
			Value:       step.Key,
			Description: fmt.Sprintf("Press key %s", step.Key),
		}, true

	case domain.StepScroll:
		return domain.NormalizedAction{
			Kind:        domain.ActionScroll,
			Description: "Scroll the page",
		}, true

	case domain.StepWaitForElement:
		selector := primarySelector(step.Selectors)
		return domain.NormalizedAction{
			Kind:        domain.ActionWait,
			Selector:    selector,
			Description: withSelector("Wait for element", selector),
		}, true

	case domain.StepWaitForExpression:
		desc := "Wait for condition"
		if step.Expression != "" {
			desc = fmt.Sprintf("Wait for expression %s", step.Expression)
		}
		return domain.NormalizedAction{
			Kind:        domain.ActionWait,
			Selector:    primarySelector(step.Selectors),
			Description: desc,
		}, true

	// setViewport, hover, doubleClick and keyUp carry no behavioral intent.
	default:
		return domain.NormalizedAction{}, false
	}
}

// primarySelector is the last (most specific) entry of the first selector chain.
// Later chains are ignored even when the first one is empty.
func primarySelector(chains [][]string) string {
	if len(chains) == 0 || len(chains[0]) == 0 {
		return ""
	}
	first := chains[0]
	return first[len(first)-1]
}

func withSelector(phrase, selector string) string {
	if selector == "" {
		return phrase
	}
	return phrase + " " + selector
}

func startURL(steps []domain.RawStep) string {
	for _, step := range steps {
		if step.Type == domain.StepNavigate {
			return step.URL
		}
	}
	return domain.UnknownStartURL
}
