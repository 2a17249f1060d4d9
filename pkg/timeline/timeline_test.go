package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/CrusoO/CodeSensei/pkg/model"
	"github.com/CrusoO/CodeSensei/pkg/scene"

	"github.com/fogleman/gg"
)

type stubScene struct {
	duration time.Duration
}

func (s *stubScene) Kind() model.SceneKind       { return model.KindGeneralCoding }
func (s *stubScene) Duration() time.Duration     { return s.duration }
func (s *stubScene) Render(*gg.Context, float64) {}

func stubs(ms ...int) []scene.Scene {
	out := make([]scene.Scene, len(ms))
	for i, m := range ms {
		out[i] = &stubScene{duration: time.Duration(m) * time.Millisecond}
	}
	return out
}

func TestNew_Empty(t *testing.T) {
	if _, err := New(nil); err != ErrEmpty {
		t.Errorf("New(nil) error = %v, want ErrEmpty", err)
	}
}

func TestResolve(t *testing.T) {
	tl, err := New(stubs(2000, 4000, 2000))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if tl.Total() != 8*time.Second {
		t.Errorf("Total() = %v, want 8s", tl.Total())
	}
	if tl.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tl.Len())
	}

	cases := []struct {
		elapsed  time.Duration
		index    int
		progress float64
	}{
		{0, 0, 0},
		{1000 * time.Millisecond, 0, 0.5},
		{2000 * time.Millisecond, 1, 0}, // boundary belongs to the later scene
		{3000 * time.Millisecond, 1, 0.25},
		{5999 * time.Millisecond, 1, 0.99975},
		{6000 * time.Millisecond, 2, 0},
		{8000 * time.Millisecond, 2, 1.0}, // pinned at the end
		{9500 * time.Millisecond, 2, 1.0},
	}

	for _, c := range cases {
		cue := tl.Resolve(c.elapsed)
		if cue.Index != c.index {
			t.Errorf("Resolve(%v).Index = %d, want %d", c.elapsed, cue.Index, c.index)
		}
		if math.Abs(cue.Progress-c.progress) > 1e-9 {
			t.Errorf("Resolve(%v).Progress = %v, want %v", c.elapsed, cue.Progress, c.progress)
		}
	}
}

func TestResolve_Negative(t *testing.T) {
	tl, err := New(stubs(1000))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	cue := tl.Resolve(-50 * time.Millisecond)
	if cue.Index != 0 || cue.Progress != 0 {
		t.Errorf("negative elapsed should clamp to start, got index %d progress %v", cue.Index, cue.Progress)
	}
}

func TestFromDescriptors(t *testing.T) {
	tl, err := FromDescriptors([]model.SceneDescriptor{
		{Kind: model.KindStyling, DurationMs: 500},
		{Kind: model.KindSideEffects, DurationMs: 1500},
	})
	if err != nil {
		t.Fatalf("FromDescriptors failed: %v", err)
	}
	if tl.Total() != 2*time.Second {
		t.Errorf("Total() = %v, want 2s", tl.Total())
	}

	if _, err := FromDescriptors(nil); err == nil {
		t.Error("FromDescriptors(nil) should fail")
	}
}
