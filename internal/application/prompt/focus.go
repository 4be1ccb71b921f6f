package prompt

import (
	"fmt"
	"strings"

	"github.com/doeshing/recspec/internal/domain"
)

var focusByLanguage = map[domain.Language]map[domain.FocusArea][]string{
	domain.LanguageEnglish: {
		domain.FocusClarity: {
			"Make every step unambiguous and written from the user's point of view.",
			"Replace technical selectors and implementation details with business language.",
		},
		domain.FocusCompleteness: {
			"Add missing preconditions (Given) and observable outcomes (Then).",
			"Cover alternative paths and error cases the current scenarios skip.",
		},
		domain.FocusBestPractices: {
			"Follow Gherkin conventions: one behavior per scenario, declarative steps, consistent tense.",
			"Use Background for shared preconditions and Scenario Outline with Examples for data variations.",
		},
	},
	domain.LanguageJapanese: {
		domain.FocusClarity: {
			"各ステップをユーザー視点で曖昧さなく記述してください。",
			"技術的なセレクタや実装の詳細を業務上の言葉に置き換えてください。",
		},
		domain.FocusCompleteness: {
			"不足している前提条件 (Given) と観測可能な結果 (Then) を追加してください。",
			"現在のシナリオが扱っていない代替パスやエラーケースを追加してください。",
		},
		domain.FocusBestPractices: {
			"Gherkin の慣習に従ってください: 1 シナリオ 1 振る舞い、宣言的なステップ、一貫した時制。",
			"共通の前提条件には Background を、データの違いには Scenario Outline と Examples を使ってください。",
		},
	},
}

var focusOrder = []domain.FocusArea{domain.FocusClarity, domain.FocusCompleteness, domain.FocusBestPractices}

// focusInstructions renders the fixed per-area instructions as a bullet list.
// FocusAll combines every area in a fixed order.
func focusInstructions(lang domain.Language, area domain.FocusArea) (string, error) {
	if area == "" {
		area = domain.FocusAll
	}
	if !area.IsSupported() {
		return "", domain.NewValidationError("invalid prompt options",
			[]string{fmt.Sprintf("focusArea: unsupported focus area %q", area)})
	}

	areas := []domain.FocusArea{area}
	if area == domain.FocusAll {
		areas = focusOrder
	}

	var lines []string
	for _, a := range areas {
		for _, instruction := range focusByLanguage[lang][a] {
			lines = append(lines, "- "+instruction)
		}
	}
	return strings.Join(lines, "\n"), nil
}
