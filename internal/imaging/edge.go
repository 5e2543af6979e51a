package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/effect"
)

// EdgeMapResult contains an edge raster encoded as base64 PNG.
//
// White pixels (255) are edges, black pixels (0) are background. This is the
// same raster the grid pipeline feeds to the line detector.
type EdgeMapResult struct {
	// Width of the raster in pixels (same as input).
	Width int `json:"width"`

	// Height of the raster in pixels (same as input).
	Height int `json:"height"`

	// EdgePixels is the number of white pixels.
	EdgePixels int `json:"edge_pixels"`

	// ImageBase64 is the raster encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// Grayscale converts img to 8-bit luminance. The result has bounds
// (0,0)-(w,h).
func Grayscale(img image.Image) *image.Gray {
	rgba := effect.Grayscale(img)

	// bild writes the same luminance to R, G and B; keep the R channel
	b := rgba.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+b.Dx()*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()]
		for x := range dst {
			dst[x] = src[x*4]
		}
	}
	return gray
}

// EdgeMap runs Canny edge detection on img and returns a binary raster with
// bounds (0,0)-(w,h). Edge pixels are 255, all others 0.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - thresholdLow: Weak edge threshold (0-255). Gradients below it are dropped.
//   - thresholdHigh: Strong edge threshold (0-255). Gradients above it are kept.
//
// # Algorithm
//
//  1. Grayscale conversion via bild
//  2. Gaussian blur: 5x5 kernel to reduce noise
//  3. Gradient computation: Sobel operators, magnitude = sqrt(Gx² + Gy²)
//  4. Non-maximum suppression along the gradient direction
//  5. Hysteresis: weak edges survive only next to a strong edge
//
// Wall screenshots have hard, high-contrast tile borders, so the pipeline
// defaults to 250/255, which keeps little more than those borders.
func EdgeMap(img image.Image, thresholdLow, thresholdHigh int) *image.Gray {
	g := Grayscale(img)
	gb := g.Bounds()
	width := gb.Dx()
	height := gb.Dy()

	result := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return result
	}

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gray[y][x] = float64(g.GrayAt(x+gb.Min.X, y+gb.Min.Y).Y) / 255.0
		}
	}

	blurred := gaussianBlur(gray, width, height)
	magnitude, direction := sobel(blurred, width, height)
	suppressed := suppressNonMaxima(magnitude, direction, width, height)

	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh {
				result.SetGray(x, y, color.Gray{255})
			} else if val >= lowThresh && hasStrongNeighbor(suppressed, x, y, width, height, highThresh) {
				result.SetGray(x, y, color.Gray{255})
			}
		}
	}

	return result
}

// EncodeEdgeMap encodes an edge raster as base64 PNG.
func EncodeEdgeMap(edges *image.Gray) (*EdgeMapResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, edges); err != nil {
		return nil, fmt.Errorf("failed to encode edge image: %w", err)
	}

	return &EdgeMapResult{
		Width:       edges.Bounds().Dx(),
		Height:      edges.Bounds().Dy(),
		EdgePixels:  CountEdgePixels(edges),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// CountEdgePixels returns the number of non-zero pixels in edges.
func CountEdgePixels(edges *image.Gray) int {
	b := edges.Bounds()
	count := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if edges.GrayAt(x, y).Y > 0 {
				count++
			}
		}
	}
	return count
}

func sobel(blurred [][]float64, width, height int) (magnitude, direction [][]float64) {
	sobelX := [][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude = make([][]float64, height)
	direction = make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += blurred[py][px] * sobelX[ky+1][kx+1]
					gy += blurred[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// suppressNonMaxima thins edges to one pixel by keeping only local maxima
// along the gradient direction. The outermost ring is always zero.
func suppressNonMaxima(magnitude, direction [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}
	return suppressed
}

func hasStrongNeighbor(suppressed [][]float64, x, y, width, height int, highThresh float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			py := clamp(y+ky, 0, height-1)
			px := clamp(x+kx, 0, width-1)
			if suppressed[py][px] >= highThresh {
				return true
			}
		}
	}
	return false
}

// gaussianBlur applies a 5x5 Gaussian blur (sigma ≈ 1.4, kernel sum 273).
// Border pixels use clamped values.
func gaussianBlur(img [][]float64, width, height int) [][]float64 {
	kernel := [][]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	kernelSum := 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += img[py][px] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
