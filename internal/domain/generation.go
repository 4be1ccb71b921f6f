package domain

// GenerationOptions carries per-call sampling limits.
type GenerationOptions struct {
	Temperature float32
	MaxTokens   int
}

// Stage names a generation step of the pipeline.
type Stage string

const (
	StageSpec    Stage = "spec"
	StageCode    Stage = "code"
	StageSuggest Stage = "suggest"
)

// FocusArea selects which improvements the suggestion stage asks for.
type FocusArea string

const (
	FocusClarity       FocusArea = "clarity"
	FocusCompleteness  FocusArea = "completeness"
	FocusBestPractices FocusArea = "best-practices"
	FocusAll           FocusArea = "all"
)

// FocusAreas lists every accepted FocusArea.
var FocusAreas = []FocusArea{FocusClarity, FocusCompleteness, FocusBestPractices, FocusAll}

// IsSupported reports whether f is a known focus area.
func (f FocusArea) IsSupported() bool {
	for _, area := range FocusAreas {
		if area == f {
			return true
		}
	}
	return false
}

// FileRole names one of the three generated test artifacts.
type FileRole string

const (
	RolePageObject FileRole = "pageObject"
	RoleTestSpec   FileRole = "testSpec"
	RoleTestData   FileRole = "testData"
)

// GeneratedFile is one filename and code pair produced by the code stage.
type GeneratedFile struct {
	Filename string `json:"filename"`
	Code     string `json:"code"`
}

// CodeBundle is the structured object returned by the code stage.
type CodeBundle struct {
	PageObject GeneratedFile `json:"pageObject"`
	TestSpec   GeneratedFile `json:"testSpec"`
	TestData   GeneratedFile `json:"testData"`
}

// Files returns the bundle's artifacts in a fixed order.
func (b CodeBundle) Files() []GeneratedFile {
	return []GeneratedFile{b.PageObject, b.TestSpec, b.TestData}
}
