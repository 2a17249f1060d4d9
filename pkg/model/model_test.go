package model

import (
	"testing"
	"time"
)

func TestSceneKind_Valid(t *testing.T) {
	valid := []SceneKind{
		KindStateManagement, KindSideEffects, KindEventHandling,
		KindStyling, KindComponentStructure, KindGeneralCoding,
	}
	for _, k := range valid {
		if !k.Valid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if SceneKind("refactoring").Valid() {
		t.Error("unknown kind should be invalid")
	}
}

func TestSceneKind_Metadata(t *testing.T) {
	for _, k := range []SceneKind{
		KindStateManagement, KindSideEffects, KindEventHandling,
		KindStyling, KindComponentStructure, KindGeneralCoding,
	} {
		if len(k.AffectedElements()) == 0 {
			t.Errorf("%s has no affected elements", k)
		}
		if k.AccentHex() == "" {
			t.Errorf("%s has no accent color", k)
		}
	}
}

func TestSceneDescriptor_Duration(t *testing.T) {
	d := SceneDescriptor{Kind: KindStyling, DurationMs: 2500}
	if d.Duration() != 2500*time.Millisecond {
		t.Errorf("Duration() = %v, want 2.5s", d.Duration())
	}
}
