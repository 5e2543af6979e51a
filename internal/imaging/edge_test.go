package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestEncodeEdgeMap(t *testing.T) {
	// Black rectangle on white background
	img := createEdgeTestImage(100, 100)

	result, err := EncodeEdgeMap(EdgeMap(img, 50, 150))
	if err != nil {
		t.Fatalf("EncodeEdgeMap failed: %v", err)
	}

	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}

	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	if result.EdgePixels == 0 {
		t.Error("expected edge pixels around the rectangle")
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}

	edgeImg, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	if edgeImg.Bounds().Dx() != 100 || edgeImg.Bounds().Dy() != 100 {
		t.Errorf("decoded image dimensions: got %dx%d, want 100x100",
			edgeImg.Bounds().Dx(), edgeImg.Bounds().Dy())
	}
}

func TestEdgeMap_UniformImage(t *testing.T) {
	img := createInMemoryImage(50, 50, color.RGBA{128, 128, 128, 255})

	edges := EdgeMap(img, 50, 150)
	if n := CountEdgePixels(edges); n != 0 {
		t.Errorf("uniform image should have no edges, got %d", n)
	}
}

func TestEdgeMap_IsBinary(t *testing.T) {
	edges := EdgeMap(createEdgeTestImage(60, 60), 10, 50)

	b := edges.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if v := edges.GrayAt(x, y).Y; v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 or 255", x, y, v)
			}
		}
	}
}

func TestEdgeMap_TileBorderAtPipelineThresholds(t *testing.T) {
	// Hard black/white boundary at x=50 survives the 250/255 defaults
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	edges := EdgeMap(img, 250, 255)

	for _, y := range []int{10, 50, 90} {
		found := false
		for x := 47; x <= 52; x++ {
			if edges.GrayAt(x, y).Y == 255 {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("row %d: vertical edge near x=50 not detected", y)
		}
	}

	// Nothing far from the boundary
	for _, x := range []int{10, 90} {
		if edges.GrayAt(x, 50).Y != 0 {
			t.Errorf("unexpected edge at x=%d", x)
		}
	}
}

func TestEdgeMap_OffsetBounds(t *testing.T) {
	base := createEdgeTestImage(100, 100)
	sub := base.(*image.RGBA).SubImage(image.Rect(20, 20, 80, 80))

	edges := EdgeMap(sub, 50, 150)
	if edges.Bounds() != image.Rect(0, 0, 60, 60) {
		t.Errorf("bounds: got %v, want (0,0)-(60,60)", edges.Bounds())
	}
}

func TestEdgeMap_SmallImage(t *testing.T) {
	// Very small image (edge cases for convolution)
	img := createInMemoryImage(5, 5, color.RGBA{128, 128, 128, 255})

	edges := EdgeMap(img, 50, 150)
	if edges.Bounds().Dx() != 5 || edges.Bounds().Dy() != 5 {
		t.Errorf("dimensions: got %v, want 5x5", edges.Bounds())
	}
}

func TestGrayscale(t *testing.T) {
	img := createInMemoryImage(4, 4, color.RGBA{255, 255, 255, 255})

	g := Grayscale(img)
	if g.Bounds().Dx() != 4 || g.Bounds().Dy() != 4 {
		t.Errorf("dimensions: got %v", g.Bounds())
	}
	if v := g.GrayAt(g.Bounds().Min.X, g.Bounds().Min.Y).Y; v < 250 {
		t.Errorf("white pixel: got %d, want ~255", v)
	}
}

func TestGrayscale_Luminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 13, 21))
	img.Set(10, 20, color.RGBA{255, 0, 0, 255})
	img.Set(11, 20, color.RGBA{0, 255, 0, 255})
	img.Set(12, 20, color.RGBA{0, 0, 0, 255})

	g := Grayscale(img)
	if g.Bounds() != image.Rect(0, 0, 3, 1) {
		t.Fatalf("bounds: got %v, want (0,0)-(3,1)", g.Bounds())
	}

	red, green, black := g.GrayAt(0, 0).Y, g.GrayAt(1, 0).Y, g.GrayAt(2, 0).Y
	if black != 0 {
		t.Errorf("black pixel: got %d, want 0", black)
	}
	if red == 0 || red == 255 || green == 0 || green == 255 {
		t.Errorf("primaries should map to mid-gray luminance, got red %d green %d", red, green)
	}
	if green <= red {
		t.Errorf("green (%d) should be brighter than red (%d)", green, red)
	}
}

func TestGaussianBlur(t *testing.T) {
	// Create a simple test image as float array
	width, height := 10, 10
	img := make([][]float64, height)
	for y := 0; y < height; y++ {
		img[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			img[y][x] = 0.5 // uniform gray
		}
	}

	blurred := gaussianBlur(img, width, height)

	// Uniform image should remain uniform after blur
	for y := 2; y < height-2; y++ {
		for x := 2; x < width-2; x++ {
			if absFloat(blurred[y][x]-0.5) > 0.01 {
				t.Errorf("blurred[%d][%d]: got %.3f, want ~0.5", y, x, blurred[y][x])
			}
		}
	}
}

func TestGaussianBlur_WithSpot(t *testing.T) {
	// Create image with a bright spot
	width, height := 11, 11
	img := make([][]float64, height)
	for y := 0; y < height; y++ {
		img[y] = make([]float64, width)
	}
	img[5][5] = 1.0 // bright spot in center

	blurred := gaussianBlur(img, width, height)

	// Center should be reduced (spread to neighbors)
	if blurred[5][5] >= 1.0 {
		t.Error("bright spot should be reduced after blur")
	}

	// Neighbors should receive some of the brightness
	if blurred[5][4] == 0 || blurred[5][6] == 0 || blurred[4][5] == 0 || blurred[6][5] == 0 {
		t.Error("neighbors should receive some brightness from blur")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},    // within range
		{-1, 0, 10, 0},   // below min
		{15, 0, 10, 10},  // above max
		{0, 0, 10, 0},    // at min
		{10, 0, 10, 10},  // at max
	}

	for _, tt := range tests {
		got := clamp(tt.val, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d",
				tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

// Helper functions

// createEdgeTestImage creates an image with a black rectangle on white background
// to create clear edges for testing
func createEdgeTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// White background
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}

	// Black rectangle in center (creates 4 edges)
	for y := height/4; y < 3*height/4; y++ {
		for x := width/4; x < 3*width/4; x++ {
			img.Set(x, y, color.Black)
		}
	}

	return img
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
