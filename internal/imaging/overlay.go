package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultLineColor is the color separator lines are drawn in.
const DefaultLineColor = "#00FF00"

// OverlayOptions controls how tiles and separator lines are drawn.
type OverlayOptions struct {
	// LineColor is a "#RRGGBB" color for separator lines. Empty means
	// DefaultLineColor.
	LineColor string

	// Thickness of outlines and lines in pixels. Zero means 3.
	Thickness int

	// Labels draws each tile's index in its top-left corner.
	Labels bool
}

// Line is a straight segment between two points, both inclusive.
type Line struct {
	From image.Point
	To   image.Point
}

// OverlayResult contains the annotated image encoded as base64 PNG.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Tiles       int    `json:"tiles"`
	Lines       int    `json:"lines"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// TileColor returns the outline color for the i-th tile. Hues step by the
// golden angle so neighbouring tiles are easy to tell apart.
func TileColor(i int) color.RGBA {
	hue := math.Mod(float64(i)*137.508, 360)
	r, g, b := colorful.Hsv(hue, 0.85, 1.0).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ParseColor parses a "#RRGGBB" color string.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// DrawOverlay returns a copy of img with every tile outlined in its palette
// color and every line drawn in opts.LineColor.
func DrawOverlay(img image.Image, tiles []image.Rectangle, lines []Line, opts OverlayOptions) (*image.RGBA, error) {
	lineHex := opts.LineColor
	if lineHex == "" {
		lineHex = DefaultLineColor
	}
	lineColor, err := ParseColor(lineHex)
	if err != nil {
		return nil, err
	}
	thickness := opts.Thickness
	if thickness <= 0 {
		thickness = 3
	}

	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	for i, tile := range tiles {
		c := TileColor(i)
		outline(result, tile, thickness, c)
		if opts.Labels {
			drawLabel(result, tile.Min.X+thickness+2, tile.Min.Y+thickness+2, strconv.Itoa(i), c)
		}
	}

	for _, l := range lines {
		drawLine(result, l, thickness, lineColor)
	}

	return result, nil
}

// EncodeOverlay encodes an image produced by DrawOverlay as base64 PNG.
func EncodeOverlay(img *image.RGBA, tiles, lines int) (*OverlayResult, error) {
	encoded, err := EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &OverlayResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Tiles:       tiles,
		Lines:       lines,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// outline draws the border of r inward, so it stays inside the tile.
func outline(img *image.RGBA, r image.Rectangle, thickness int, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	t := thickness
	if t > r.Dx()/2 {
		t = r.Dx() / 2
	}
	if t > r.Dy()/2 {
		t = r.Dy() / 2
	}
	if t < 1 {
		t = 1
	}
	src := image.NewUniform(c)
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
		image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(img, edge, src, image.Point{}, draw.Src)
	}
}

// drawLine draws l with Bresenham's algorithm, stamping a square brush of
// the given thickness at every step.
func drawLine(img *image.RGBA, l Line, thickness int, c color.RGBA) {
	x0, y0 := l.From.X, l.From.Y
	x1, y1 := l.To.X, l.To.Y
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	half := thickness / 2
	src := image.NewUniform(c)
	bounds := img.Bounds()

	errTerm := dx + dy
	for {
		brush := image.Rect(x0-half, y0-half, x0-half+thickness, y0-half+thickness).Intersect(bounds)
		if !brush.Empty() {
			draw.Draw(img, brush, src, image.Point{}, draw.Src)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errTerm
		if e2 >= dy {
			errTerm += dy
			x0 += sx
		}
		if e2 <= dx {
			errTerm += dx
			y0 += sy
		}
	}
}

// drawLabel writes text with basicfont on a black box whose top-left
// corner is (x, y).
func drawLabel(img *image.RGBA, x, y int, text string, fg color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	box := image.Rect(x-2, y-2, x+width+2, y+face.Height+2).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(color.RGBA{0, 0, 0, 200}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + face.Ascent)},
	}
	d.DrawString(text)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
