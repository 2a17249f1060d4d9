package surface

import (
	"bytes"
	"testing"

	"github.com/fogleman/gg"
)

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		wantOK bool
	}{
		{"valid", 1280, 720, true},
		{"zero width", 0, 720, false},
		{"negative height", 640, -1, false},
		{"odd width", 641, 480, false},
		{"odd height", 640, 481, false},
	}

	for _, c := range cases {
		s, err := New(c.w, c.h)
		if c.wantOK && err != nil {
			t.Errorf("%s: New(%d, %d) failed: %v", c.name, c.w, c.h, err)
		}
		if !c.wantOK && err == nil {
			t.Errorf("%s: New(%d, %d) should fail", c.name, c.w, c.h)
		}
		if c.wantOK && s != nil {
			w, h := s.Size()
			if w != c.w || h != c.h {
				t.Errorf("%s: Size() = %dx%d, want %dx%d", c.name, w, h, c.w, c.h)
			}
		}
	}
}

func TestSnapshotRGBA_Detached(t *testing.T) {
	s, err := New(64, 64)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s.Draw(func(dc *gg.Context) {
		dc.SetRGB(1, 0, 0)
		dc.Clear()
	})

	snap := s.SnapshotRGBA()
	r0, _, _, _ := snap.At(10, 10).RGBA()
	if r0 == 0 {
		t.Fatal("snapshot should contain the red fill")
	}

	// Mutating the surface afterwards must not affect the snapshot.
	s.Draw(func(dc *gg.Context) {
		dc.SetRGB(0, 0, 0)
		dc.Clear()
	})

	r1, _, _, _ := snap.At(10, 10).RGBA()
	if r1 != r0 {
		t.Error("snapshot changed after subsequent draw")
	}
}

func TestEncodePNG(t *testing.T) {
	s, err := New(32, 32)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("EncodePNG wrote no data")
	}
}
