package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// CropResult contains one cropped tile encoded as base64 PNG.
type CropResult struct {
	Index       int    `json:"index"`
	X1          int    `json:"x1"`
	Y1          int    `json:"y1"`
	X2          int    `json:"x2"`
	Y2          int    `json:"y2"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts the rectangular region (x1,y1)-(x2,y2) from img and
// optionally rescales it. A scale of 1 or less than or equal to 0 keeps the
// native size.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	encoded, err := EncodePNG(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		X1:          x1,
		Y1:          y1,
		X2:          x2,
		Y2:          y2,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// CropTiles cuts every tile out of img, in order. Tiles that stick out of
// the image are clipped to it; a tile with nothing left after clipping is an
// error.
func CropTiles(img image.Image, tiles []image.Rectangle) ([]*image.NRGBA, error) {
	bounds := img.Bounds()
	crops := make([]*image.NRGBA, 0, len(tiles))
	for i, tile := range tiles {
		r := tile.Intersect(bounds)
		if r.Empty() {
			return nil, fmt.Errorf("tile %d %v does not overlap image bounds %v", i, tile, bounds)
		}
		crops = append(crops, imaging.Crop(img, r))
	}
	return crops, nil
}

// SaveTiles writes each crop to dir as view_<i>.png and returns the paths.
// dir is created if missing.
func SaveTiles(dir string, crops []*image.NRGBA) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(crops))
	for i, crop := range crops {
		path := filepath.Join(dir, fmt.Sprintf("view_%d.png", i))
		if err := imaging.Save(crop, path); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SaveImage writes img to path, creating the parent directory. The format
// follows the file extension.
func SaveImage(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// EncodePNG encodes img as PNG and returns it base64 encoded.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
