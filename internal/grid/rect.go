package grid

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned rectangle in canvas pixel coordinates.
//
// Rect represents a splitting region, a detected frame, or a synthesized
// tile. It is a plain value; every operation in this package returns new
// rectangles instead of modifying its input.
type Rect struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Width returns X2 - X1.
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height returns Y2 - Y1.
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}

// FromImage converts an image.Rectangle to a Rect.
func FromImage(r image.Rectangle) Rect {
	return Rect{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Segment is a straight line between two endpoints as reported by a
// LineDetector. A segment is horizontal when Y1 == Y2 and vertical when
// X1 == X2; anything else is ignored by the splitter.
type Segment struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Axis selects the orientation of separator lines.
type Axis int

const (
	// Horizontal lines split a region into rows.
	Horizontal Axis = iota
	// Vertical lines split a region into columns.
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// ParseAxis parses "horizontal" or "vertical".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown axis: %s", s)
}

// matches reports whether s is a line of this axis in its own coordinates.
func (a Axis) matches(s Segment) bool {
	if a == Vertical {
		return s.X1 == s.X2
	}
	return s.Y1 == s.Y2
}

// position returns the coordinate of a line perpendicular to the axis.
func (a Axis) position(s Segment) int {
	if a == Vertical {
		return s.X1
	}
	return s.Y1
}

// span returns the extent of r along the lines of this axis.
func (a Axis) span(r Rect) int {
	if a == Vertical {
		return r.Height()
	}
	return r.Width()
}
