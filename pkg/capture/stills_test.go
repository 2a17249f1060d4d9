package capture

import (
	"image/png"
	"os"
	"testing"

	"github.com/CrusoO/CodeSensei/pkg/model"
	"github.com/CrusoO/CodeSensei/pkg/surface"
)

func TestSaveStill(t *testing.T) {
	surf, err := surface.New(64, 36)
	if err != nil {
		t.Fatalf("surface.New failed: %v", err)
	}

	dir := t.TempDir()
	art, err := SaveStill(surf, dir)
	if err != nil {
		t.Fatalf("SaveStill failed: %v", err)
	}

	if art.ContentType != model.ContentTypeStaticImage {
		t.Errorf("ContentType = %s, want static-image", art.ContentType)
	}
	if art.ID == "" {
		t.Error("artifact ID is empty")
	}

	f, err := os.Open(art.Reference)
	if err != nil {
		t.Fatalf("still file missing: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("still is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 36 {
		t.Errorf("still size = %v, want 64x36", img.Bounds())
	}
}

func TestSaveThumbnail(t *testing.T) {
	surf, err := surface.New(640, 360)
	if err != nil {
		t.Fatalf("surface.New failed: %v", err)
	}

	dir := t.TempDir()
	path, err := SaveThumbnail(surf, dir, "abc123")
	if err != nil {
		t.Fatalf("SaveThumbnail failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("thumbnail file missing: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("thumbnail is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != ThumbnailWidth {
		t.Errorf("thumbnail width = %d, want %d", img.Bounds().Dx(), ThumbnailWidth)
	}
	if img.Bounds().Dy() != 180 {
		t.Errorf("thumbnail height = %d, want 180", img.Bounds().Dy())
	}
}
