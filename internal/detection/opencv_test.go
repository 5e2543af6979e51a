//go:build gocv

package detection

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/wallgrid-mcp/internal/imaging"
)

func TestOpenCVBackend_EdgeMap(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 30; x < 60; x++ {
			img.SetGray(x, y, color.Gray{255})
		}
	}

	edges, err := OpenCVBackend{}.EdgeMap(img, 250, 255)
	if err != nil {
		t.Fatalf("EdgeMap failed: %v", err)
	}
	if edges.Bounds().Dx() != 60 || edges.Bounds().Dy() != 60 {
		t.Errorf("dimensions: got %v", edges.Bounds())
	}
	if imaging.CountEdgePixels(edges) == 0 {
		t.Error("expected edges along the step")
	}
}

func TestOpenCVBackend_HoughLines(t *testing.T) {
	edges := createEdgeRaster(400, 300)
	drawHorizontal(edges, 120, 0, 400)

	segs, err := OpenCVBackend{}.houghLines(edges, defaultParams(400))
	if err != nil {
		t.Fatalf("houghLines failed: %v", err)
	}
	found := false
	for _, s := range segs {
		if s.Y1 == 120 && s.Y2 == 120 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a horizontal segment at y=120, got %v", segs)
	}
}

func TestOpenCVBackend_HoughLinesSubImage(t *testing.T) {
	edges := createEdgeRaster(400, 300)
	drawHorizontal(edges, 220, 0, 400)
	region := edges.SubImage(image.Rect(0, 200, 400, 300)).(*image.Gray)

	segs, err := OpenCVBackend{}.houghLines(region, defaultParams(400))
	if err != nil {
		t.Fatalf("houghLines failed: %v", err)
	}
	for _, s := range segs {
		if s.Y1 != 20 || s.Y2 != 20 {
			t.Errorf("expected region-local y=20, got %v", s)
		}
	}
	if len(segs) == 0 {
		t.Error("expected a segment in the sub-image")
	}
}

func TestOpenCVBackend_EmptyRegion(t *testing.T) {
	edges := createEdgeRaster(10, 10)
	region := edges.SubImage(image.Rect(5, 5, 5, 5)).(*image.Gray)

	segs, err := OpenCVBackend{}.houghLines(region, defaultParams(10))
	if err != nil || segs != nil {
		t.Errorf("empty region: got %v, %v", segs, err)
	}
}
