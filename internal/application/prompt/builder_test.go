package prompt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/recspec/internal/application/prompt"
	"github.com/doeshing/recspec/internal/domain"
)

func sampleRecording() domain.NormalizedRecording {
	return domain.NormalizedRecording{
		Title: "Checkout",
		Steps: []domain.NormalizedAction{
			{Kind: domain.ActionNavigate, URL: "https://shop.test", Description: "Navigate to page https://shop.test"},
			{Kind: domain.ActionClick, Selector: "#buy", Description: "Click element #buy"},
			{Kind: domain.ActionChange, Selector: "#qty", Value: "2", Description: `Enter "2" into #qty`},
		},
		Metadata: domain.RecordingMetadata{URL: "https://shop.test", StepCount: 3},
	}
}

func TestBuildSpecPrompt(t *testing.T) {
	got, err := prompt.BuildSpecPrompt(sampleRecording(), prompt.SpecOptions{Language: domain.LanguageEnglish})
	require.NoError(t, err)

	assert.Contains(t, got, "Recording title: Checkout")
	assert.Contains(t, got, "Start URL: https://shop.test")
	assert.Contains(t, got, "1. Navigate to page https://shop.test\n2. Click element #buy\n3. Enter \"2\" into #qty\n")
	assert.Contains(t, got, "```gherkin")
}

func TestBuildSpecPrompt_EdgeCases(t *testing.T) {
	rec := sampleRecording()

	with, err := prompt.BuildSpecPrompt(rec, prompt.SpecOptions{Language: domain.LanguageEnglish, IncludeEdgeCases: true})
	require.NoError(t, err)
	without, err := prompt.BuildSpecPrompt(rec, prompt.SpecOptions{Language: domain.LanguageEnglish, IncludeEdgeCases: false})
	require.NoError(t, err)

	assert.Contains(t, with, "2-3 additional scenarios")
	assert.NotContains(t, without, "edge case")
	assert.NotContains(t, without, "2-3")
	assert.Equal(t, strings.Count(with, "\n")-1, strings.Count(without, "\n"))

	ja, err := prompt.BuildSpecPrompt(rec, prompt.SpecOptions{Language: domain.LanguageJapanese, IncludeEdgeCases: false})
	require.NoError(t, err)
	assert.NotContains(t, ja, "エッジケース")
}

func TestBuildSpecPrompt_Languages(t *testing.T) {
	ja, err := prompt.BuildSpecPrompt(sampleRecording(), prompt.SpecOptions{Language: domain.LanguageJapanese})
	require.NoError(t, err)
	assert.Contains(t, ja, "記録タイトル: Checkout")
	assert.Contains(t, ja, "1. Navigate to page https://shop.test")

	def, err := prompt.BuildSpecPrompt(sampleRecording(), prompt.SpecOptions{})
	require.NoError(t, err)
	assert.Contains(t, def, "Recording title: Checkout")

	_, err = prompt.BuildSpecPrompt(sampleRecording(), prompt.SpecOptions{Language: "fr"})
	require.Error(t, err)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}

func TestBuildSpecPrompt_EmptyRecording(t *testing.T) {
	got, err := prompt.BuildSpecPrompt(domain.NormalizedRecording{
		Title:    "Nothing",
		Steps:    []domain.NormalizedAction{},
		Metadata: domain.RecordingMetadata{URL: domain.UnknownStartURL},
	}, prompt.SpecOptions{})
	require.NoError(t, err)
	assert.Contains(t, got, "Start URL: unknown")
	assert.Contains(t, got, "(no actions were recorded)")
}

func TestBuildSpecPrompt_IsDeterministic(t *testing.T) {
	opts := prompt.SpecOptions{Language: domain.LanguageEnglish, IncludeEdgeCases: true}
	first, err := prompt.BuildSpecPrompt(sampleRecording(), opts)
	require.NoError(t, err)
	second, err := prompt.BuildSpecPrompt(sampleRecording(), opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildCodePrompt(t *testing.T) {
	spec := "Feature: Checkout\n  Scenario: buy\n    When the user buys"

	ts, err := prompt.BuildCodePrompt(spec, prompt.CodeOptions{TypeScript: true})
	require.NoError(t, err)
	assert.Contains(t, ts, "in TypeScript")
	assert.Contains(t, ts, ".ts extension")
	assert.Contains(t, ts, spec)
	for _, role := range []string{"pageObject", "testSpec", "testData"} {
		assert.Contains(t, ts, role)
	}

	js, err := prompt.BuildCodePrompt(spec, prompt.CodeOptions{TypeScript: false})
	require.NoError(t, err)
	assert.Contains(t, js, "in JavaScript")
	assert.Contains(t, js, ".js extension")
	assert.NotContains(t, js, "TypeScript")
}

func TestBuildSuggestPrompt(t *testing.T) {
	spec := "Feature: Login"

	tests := []struct {
		area    domain.FocusArea
		want    []string
		notWant []string
	}{
		{
			area:    domain.FocusClarity,
			want:    []string{"unambiguous"},
			notWant: []string{"preconditions", "Background"},
		},
		{
			area:    domain.FocusCompleteness,
			want:    []string{"preconditions"},
			notWant: []string{"unambiguous", "Background"},
		},
		{
			area:    domain.FocusBestPractices,
			want:    []string{"Background"},
			notWant: []string{"unambiguous", "alternative paths"},
		},
		{
			area: domain.FocusAll,
			want: []string{"unambiguous", "preconditions", "Background"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.area), func(t *testing.T) {
			got, err := prompt.BuildSuggestPrompt(spec, prompt.SuggestOptions{Language: domain.LanguageEnglish, FocusArea: tt.area})
			require.NoError(t, err)
			assert.Contains(t, got, spec)
			assert.Contains(t, got, "single ```gherkin fenced code block")
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, got, w)
			}
		})
	}
}

func TestBuildSuggestPrompt_Rejects(t *testing.T) {
	_, err := prompt.BuildSuggestPrompt("Feature: x", prompt.SuggestOptions{FocusArea: "style"})
	require.Error(t, err)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	_, err = prompt.BuildSuggestPrompt("Feature: x", prompt.SuggestOptions{Language: "de", FocusArea: domain.FocusAll})
	require.Error(t, err)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}

func TestBuildSuggestPrompt_Japanese(t *testing.T) {
	got, err := prompt.BuildSuggestPrompt("Feature: x", prompt.SuggestOptions{Language: domain.LanguageJapanese, FocusArea: domain.FocusClarity})
	require.NoError(t, err)
	assert.Contains(t, got, "曖昧さなく")
	assert.Contains(t, got, "```gherkin")
}

func TestSystemPreamble(t *testing.T) {
	for _, stage := range []domain.Stage{domain.StageSpec, domain.StageCode, domain.StageSuggest} {
		assert.NotEmpty(t, prompt.SystemPreamble(stage), string(stage))
	}
}

func TestCodeBundleSchema(t *testing.T) {
	s := prompt.CodeBundleSchema()

	var good any
	require.NoError(t, json.Unmarshal([]byte(`{
		"pageObject": {"filename": "checkout.page.ts", "code": "export class CheckoutPage {}"},
		"testSpec":   {"filename": "checkout.spec.ts", "code": "test('x', () => {})"},
		"testData":   {"filename": "checkout.data.ts", "code": "export const data = {}"}
	}`), &good))
	assert.Empty(t, s.Validate(good))

	var bad any
	require.NoError(t, json.Unmarshal([]byte(`{"pageObject": {"filename": "a.ts"}, "testSpec": {}}`), &bad))
	assert.Equal(t, []string{
		"testData: required",
		"pageObject.code: required",
		"testSpec.filename: required",
		"testSpec.code: required",
	}, s.Validate(bad))
}
