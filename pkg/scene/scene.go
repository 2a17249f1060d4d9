package scene

import (
	"fmt"
	"time"

	"github.com/CrusoO/CodeSensei/pkg/model"

	"github.com/fogleman/gg"
)

// Scene is one timed segment of a timeline. Render must be a pure function
// of its progress argument: calling it twice with the same value draws the
// same frame, and it never blocks or touches shared state.
type Scene interface {
	// Kind returns the content category of the scene.
	Kind() model.SceneKind
	// Duration returns the scene length. Always positive.
	Duration() time.Duration
	// Render draws the frame for the given normalized progress in [0, 1]
	// onto the drawing context. Values outside the range are clamped.
	Render(dc *gg.Context, progress float64)
}

// Build constructs a scene from its descriptor. The kind selects the
// renderer variant; unknown kinds and non-positive durations are rejected.
func Build(desc model.SceneDescriptor) (Scene, error) {
	if !desc.Kind.Valid() {
		return nil, fmt.Errorf("unknown scene kind %q", desc.Kind)
	}
	if desc.DurationMs <= 0 {
		return nil, fmt.Errorf("scene duration must be positive, got %dms", desc.DurationMs)
	}

	base := baseScene{
		kind:     desc.Kind,
		duration: desc.Duration(),
		params:   desc.Params,
	}

	switch desc.Kind {
	case model.KindStateManagement, model.KindSideEffects:
		return &highlightScene{baseScene: base}, nil
	case model.KindEventHandling:
		return &rippleScene{baseScene: base}, nil
	case model.KindStyling:
		return &sweepScene{baseScene: base}, nil
	default:
		// component_structure and general_coding use the typing renderer.
		return &typingScene{baseScene: base}, nil
	}
}

// BuildAll constructs scenes for an ordered descriptor list.
func BuildAll(descs []model.SceneDescriptor) ([]Scene, error) {
	scenes := make([]Scene, 0, len(descs))
	for i, d := range descs {
		s, err := Build(d)
		if err != nil {
			return nil, fmt.Errorf("scene %d: %w", i, err)
		}
		scenes = append(scenes, s)
	}
	return scenes, nil
}

type baseScene struct {
	kind     model.SceneKind
	duration time.Duration
	params   model.ContentParams
}

func (b *baseScene) Kind() model.SceneKind   { return b.kind }
func (b *baseScene) Duration() time.Duration { return b.duration }

func (b *baseScene) title() string {
	if b.params.Title != "" {
		return b.params.Title
	}
	return "Code Walkthrough"
}

func (b *baseScene) codeLines() []string {
	if len(b.params.CodeLines) > 0 {
		return b.params.CodeLines
	}
	return []string{
		"function update(state, action) {",
		"  switch (action.type) {",
		"    case 'increment':",
		"      return { count: state.count + 1 };",
		"    default:",
		"      return state;",
		"  }",
		"}",
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// easeInOut is a smoothstep curve for motion that should settle gently.
func easeInOut(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}
