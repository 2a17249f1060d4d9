package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/CrusoO/CodeSensei/pkg/model"
	"github.com/CrusoO/CodeSensei/pkg/surface"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

// ThumbnailWidth is the pixel width of generated thumbnails. Height follows
// the source aspect ratio.
const ThumbnailWidth = 320

// SaveStill writes the current surface contents as a PNG artifact.
func SaveStill(surf *surface.Surface, outputDir string) (*model.Artifact, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(outputDir, "walkthrough-"+id+".png")

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create still file: %w", err)
	}
	defer f.Close()

	if err := surf.EncodePNG(f); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to encode still: %w", err)
	}

	return &model.Artifact{
		ID:          id,
		Reference:   path,
		ContentType: model.ContentTypeStaticImage,
		CreatedAt:   time.Now(),
	}, nil
}

// SaveThumbnail scales the current surface down to thumbnail size and writes
// it as a PNG next to the artifact it previews.
func SaveThumbnail(surf *surface.Surface, outputDir, artifactID string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	src := surf.SnapshotRGBA()
	w, h := surf.Size()
	thumbH := h * ThumbnailWidth / w
	if thumbH < 1 {
		thumbH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, ThumbnailWidth, thumbH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	path := filepath.Join(outputDir, "thumb-"+artifactID+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, dst); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return path, nil
}
