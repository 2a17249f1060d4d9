package model

import "time"

// SceneKind identifies the content category of a scene. Kinds mirror the
// change types produced by the code analyzer that feeds this engine; they are
// purely descriptive and drive no pipeline behavior beyond picking a renderer.
type SceneKind string

// Known scene kinds.
const (
	KindStateManagement    SceneKind = "state_management"
	KindSideEffects        SceneKind = "side_effects"
	KindEventHandling      SceneKind = "event_handling"
	KindStyling            SceneKind = "styling"
	KindComponentStructure SceneKind = "component_structure"
	KindGeneralCoding      SceneKind = "general_coding"
)

// Valid reports whether k is one of the known scene kinds.
func (k SceneKind) Valid() bool {
	switch k {
	case KindStateManagement, KindSideEffects, KindEventHandling,
		KindStyling, KindComponentStructure, KindGeneralCoding:
		return true
	}
	return false
}

// AffectedElements returns the UI concepts touched by this kind of change.
// Scenes draw these as badges; the lists come straight from the analyzer's
// element map.
func (k SceneKind) AffectedElements() []string {
	switch k {
	case KindStateManagement:
		return []string{"component-tree", "data-flow", "render-cycle", "state-updates"}
	case KindSideEffects:
		return []string{"lifecycle", "api-calls", "subscriptions", "cleanup"}
	case KindEventHandling:
		return []string{"user-interaction", "state-updates", "ui-changes", "event-flow"}
	case KindStyling:
		return []string{"visual-layout", "css-rendering", "responsive-design", "style-cascade"}
	case KindComponentStructure:
		return []string{"component-hierarchy", "props-flow", "composition-pattern"}
	default:
		return []string{"code-structure", "javascript-execution", "logic-flow"}
	}
}

// AccentHex returns the accent color used when rendering scenes of this kind.
func (k SceneKind) AccentHex() string {
	switch k {
	case KindStateManagement:
		return "#7dc4e4"
	case KindSideEffects:
		return "#f5a97f"
	case KindEventHandling:
		return "#a6da95"
	case KindStyling:
		return "#c6a0f6"
	case KindComponentStructure:
		return "#eed49f"
	default:
		return "#cad3f5"
	}
}

// ContentParams carries the plain content parameters a scene variant is
// constructed from. All fields are optional; variants substitute sensible
// placeholders for missing content.
type ContentParams struct {
	Title          string   `yaml:"title" json:"title"`
	CodeLines      []string `yaml:"code_lines" json:"codeLines"`
	HighlightLines []int    `yaml:"highlight_lines" json:"highlightLines"`
	Explanation    string   `yaml:"explanation" json:"explanation"`
}

// SceneDescriptor is the caller-supplied description of one timed segment.
type SceneDescriptor struct {
	Kind       SceneKind     `yaml:"kind" json:"kind"`
	DurationMs int           `yaml:"duration_ms" json:"durationMs"`
	Params     ContentParams `yaml:"params" json:"params"`
}

// Duration returns the scene length as a time.Duration.
func (d SceneDescriptor) Duration() time.Duration {
	return time.Duration(d.DurationMs) * time.Millisecond
}

// ContentType is the logical type of a generated artifact.
type ContentType string

// Artifact content types. Static images are produced only by the fallback path.
const (
	ContentTypeVideo       ContentType = "video"
	ContentTypeStaticImage ContentType = "static-image"
)

// Artifact is the final output of a generation session. Ownership transfers
// to the caller on return; the pipeline keeps no reference.
type Artifact struct {
	ID           string      `json:"id"`
	Reference    string      `json:"reference"`
	ThumbnailRef string      `json:"thumbnailRef,omitempty"`
	ContentType  ContentType `json:"contentType"`
	CreatedAt    time.Time   `json:"createdAt"`
}
