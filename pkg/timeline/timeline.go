package timeline

import (
	"errors"
	"time"

	"github.com/CrusoO/CodeSensei/pkg/model"
	"github.com/CrusoO/CodeSensei/pkg/scene"
)

// ErrEmpty is returned when a timeline is constructed without scenes.
var ErrEmpty = errors.New("timeline requires at least one scene")

// Timeline is an ordered sequence of scenes mapped onto a single time axis.
// Scene i occupies the half-open interval [offset, offset+duration), so a
// boundary instant belongs to the later scene.
type Timeline struct {
	scenes  []scene.Scene
	offsets []time.Duration
	total   time.Duration
}

// New builds a timeline from scenes in playback order.
func New(scenes []scene.Scene) (*Timeline, error) {
	if len(scenes) == 0 {
		return nil, ErrEmpty
	}

	tl := &Timeline{
		scenes:  scenes,
		offsets: make([]time.Duration, len(scenes)),
	}
	for i, s := range scenes {
		tl.offsets[i] = tl.total
		tl.total += s.Duration()
	}
	return tl, nil
}

// FromDescriptors builds the scenes and the timeline in one step.
func FromDescriptors(descs []model.SceneDescriptor) (*Timeline, error) {
	scenes, err := scene.BuildAll(descs)
	if err != nil {
		return nil, err
	}
	return New(scenes)
}

// Cue is the resolved position for one instant: which scene is active and
// how far through it the instant falls.
type Cue struct {
	Scene    scene.Scene
	Index    int
	Progress float64
}

// Resolve maps an elapsed time to its cue. Times at or past the total pin to
// the last scene at progress 1.0 so a late tick still draws the final frame.
func (t *Timeline) Resolve(elapsed time.Duration) Cue {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= t.total {
		last := len(t.scenes) - 1
		return Cue{Scene: t.scenes[last], Index: last, Progress: 1.0}
	}

	for i := len(t.scenes) - 1; i >= 0; i-- {
		if elapsed >= t.offsets[i] {
			local := elapsed - t.offsets[i]
			return Cue{
				Scene:    t.scenes[i],
				Index:    i,
				Progress: float64(local) / float64(t.scenes[i].Duration()),
			}
		}
	}

	// Unreachable: offsets[0] is always zero.
	return Cue{Scene: t.scenes[0], Index: 0}
}

// Total returns the summed duration of all scenes.
func (t *Timeline) Total() time.Duration {
	return t.total
}

// Len returns the number of scenes.
func (t *Timeline) Len() int {
	return len(t.scenes)
}
