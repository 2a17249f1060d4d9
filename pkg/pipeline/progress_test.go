package pipeline

import "testing"

func TestProgressSink_Monotonic(t *testing.T) {
	var got []int
	sink := newProgressSink(func(p int) { got = append(got, p) })

	sink.Report(10)
	sink.Report(5)  // dropped
	sink.Report(10) // dropped
	sink.Report(42)
	sink.Report(150) // clamped
	sink.Finish()    // already at 100

	want := []int{10, 42, 100}
	if len(got) != len(want) {
		t.Fatalf("reports = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("report %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestProgressSink_NilCallback(t *testing.T) {
	sink := newProgressSink(nil)
	sink.Report(50)
	sink.Finish()
}

func TestState_Terminal(t *testing.T) {
	terminal := []State{StateCompleted, StateFailed, StateCancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	active := []State{StateIdle, StateInitializing, StateRecording, StateFinalizing}
	for _, s := range active {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
