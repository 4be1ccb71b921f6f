package domain

// StepType enumerates the raw recorder event kinds. The set is closed; anything else fails
// validation.
type StepType string

const (
	StepNavigate          StepType = "navigate"
	StepClick             StepType = "click"
	StepChange            StepType = "change"
	StepKeyDown           StepType = "keyDown"
	StepKeyUp             StepType = "keyUp"
	StepScroll            StepType = "scroll"
	StepDoubleClick       StepType = "doubleClick"
	StepHover             StepType = "hover"
	StepSetViewport       StepType = "setViewport"
	StepWaitForElement    StepType = "waitForElement"
	StepWaitForExpression StepType = "waitForExpression"
)

// StepTypes lists every accepted StepType.
var StepTypes = []StepType{
	StepNavigate, StepClick, StepChange, StepKeyDown, StepKeyUp, StepScroll,
	StepDoubleClick, StepHover, StepSetViewport, StepWaitForElement, StepWaitForExpression,
}

// RawStep is one recorded browser event as exported by the recorder.
type RawStep struct {
	Type      StepType   `json:"type"`
	URL       string     `json:"url,omitempty"`
	Selectors [][]string `json:"selectors,omitempty"`
	Value     string     `json:"value,omitempty"`
	Key       string     `json:"key,omitempty"`

	Expression string `json:"expression,omitempty"`
	Timeout    *int   `json:"timeout,omitempty"`

	OffsetX *float64 `json:"offsetX,omitempty"`
	OffsetY *float64 `json:"offsetY,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	DeltaX  *float64 `json:"deltaX,omitempty"`
	DeltaY  *float64 `json:"deltaY,omitempty"`

	Width             *int     `json:"width,omitempty"`
	Height            *int     `json:"height,omitempty"`
	DeviceScaleFactor *float64 `json:"deviceScaleFactor,omitempty"`
	IsMobile          *bool    `json:"isMobile,omitempty"`
	HasTouch          *bool    `json:"hasTouch,omitempty"`
	IsLandscape       *bool    `json:"isLandscape,omitempty"`
}

// RawRecording is a full recorder export. Steps are in temporal order.
type RawRecording struct {
	Title   string    `json:"title"`
	Steps   []RawStep `json:"steps"`
	Timeout *int      `json:"timeout,omitempty"`
}

// ActionKind enumerates normalized action kinds.
type ActionKind string

const (
	ActionNavigate ActionKind = "navigate"
	ActionClick    ActionKind = "click"
	ActionType     ActionKind = "type"
	ActionChange   ActionKind = "change"
	ActionKeyDown  ActionKind = "keyDown"
	ActionScroll   ActionKind = "scroll"
	ActionWait     ActionKind = "wait"
)

// NormalizedAction is the intent-bearing reduction of one RawStep.
type NormalizedAction struct {
	Kind        ActionKind `json:"type"`
	Selector    string     `json:"selector,omitempty"`
	Value       string     `json:"value,omitempty"`
	URL         string     `json:"url,omitempty"`
	Description string     `json:"description"`
}

// UnknownStartURL is reported when a recording has no navigate step.
const UnknownStartURL = "unknown"

// RecordingMetadata summarises a normalized recording.
type RecordingMetadata struct {
	URL       string `json:"url"`
	StepCount int    `json:"stepCount"`
}

// NormalizedRecording is the provider-agnostic action model fed to prompt builders.
type NormalizedRecording struct {
	Title    string             `json:"title"`
	Steps    []NormalizedAction `json:"steps"`
	Metadata RecordingMetadata  `json:"metadata"`
}
