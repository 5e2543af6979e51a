package grid

import (
	"image"
	"sort"
)

// LineDetector finds straight line segments in a binary edge raster.
//
// region is a view into the full edge map; returned coordinates are relative
// to region.Bounds().Min. Implementations may return segments of any angle,
// in any order, with duplicates. A nil or empty result means no lines.
type LineDetector interface {
	DetectLines(region *image.Gray, p HoughParams) []Segment
}

// Splitter partitions rectangles of an edge map along detected separator
// lines. A Splitter only reads the edge map.
type Splitter struct {
	edges    *image.Gray
	detector LineDetector
	cfg      Config
}

// NewSplitter creates a Splitter over edges.
func NewSplitter(edges *image.Gray, detector LineDetector, cfg Config) *Splitter {
	return &Splitter{edges: edges, detector: detector, cfg: cfg}
}

// Lines runs the detector on region and returns the normalized separator
// lines of the given axis.
func (s *Splitter) Lines(region Rect, axis Axis) []Segment {
	sub := s.crop(region)
	if sub == nil {
		return nil
	}

	raw := s.detector.DetectLines(sub, s.cfg.houghParams(axis.span(region)))
	kept := make([]Segment, 0, len(raw))
	for _, seg := range raw {
		if axis.matches(seg) {
			kept = append(kept, seg)
		}
	}
	return NormalizeLines(region, kept, axis, s.cfg)
}

// crop returns the part of the edge map under region, or nil when the region
// does not overlap it.
func (s *Splitter) crop(region Rect) *image.Gray {
	r := region.Image().Intersect(s.edges.Bounds())
	if r.Empty() {
		return nil
	}
	sub, ok := s.edges.SubImage(r).(*image.Gray)
	if !ok {
		return nil
	}
	return sub
}

// SplitOnce splits region once along axis. With no separator lines the
// region itself is returned as the only element.
func (s *Splitter) SplitOnce(region Rect, axis Axis) []Rect {
	lines := s.Lines(region, axis)
	if len(lines) == 0 {
		return []Rect{region}
	}
	return sliceRegion(region, lines, axis)
}

// sliceRegion cuts region at every line. The region's own edges act as
// sentinels, so N lines always yield N+1 rectangles covering the region.
func sliceRegion(region Rect, lines []Segment, axis Axis) []Rect {
	cuts := make([]int, 0, len(lines)+2)
	if axis == Vertical {
		cuts = append(cuts, region.X1, region.X2)
	} else {
		cuts = append(cuts, region.Y1, region.Y2)
	}
	for _, l := range lines {
		cuts = append(cuts, axis.position(l))
	}
	sort.Ints(cuts)

	parts := make([]Rect, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		if axis == Vertical {
			parts = append(parts, Rect{X1: cuts[i], Y1: region.Y1, X2: cuts[i+1], Y2: region.Y2})
		} else {
			parts = append(parts, Rect{X1: region.X1, Y1: cuts[i], X2: region.X2, Y2: cuts[i+1]})
		}
	}
	return parts
}

type splitItem struct {
	rect Rect
	axis Axis
}

// SplitFrom splits region along axis, then splits every piece along the
// other axis, alternating until no piece has separator lines left. Leaves
// are returned in depth-first order, top-to-bottom and left-to-right within
// each split.
//
// Every split strictly shrinks the pieces along one axis, so the worklist
// drains. Zero-sized leaves are kept; FilterProportional removes them.
func (s *Splitter) SplitFrom(region Rect, axis Axis) []Rect {
	var leaves []Rect
	stack := []splitItem{{rect: region, axis: axis}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		lines := s.Lines(item.rect, item.axis)
		if len(lines) == 0 {
			leaves = append(leaves, item.rect)
			continue
		}

		parts := sliceRegion(item.rect, lines, item.axis)
		for i := len(parts) - 1; i >= 0; i-- {
			stack = append(stack, splitItem{rect: parts[i], axis: item.axis.Other()})
		}
	}
	return leaves
}

// Split partitions region starting with horizontal separators. When no
// horizontal separator exists at the top level the region is split
// vertically instead, so a pure column layout is still found.
func (s *Splitter) Split(region Rect) []Rect {
	frames := s.SplitFrom(region, Horizontal)
	if len(frames) == 1 {
		frames = s.SplitFrom(region, Vertical)
	}
	return frames
}

// FindFrames splits region and keeps only frames within the top-level
// aspect ratio window.
func (s *Splitter) FindFrames(region Rect) []Rect {
	return FilterProportional(s.Split(region), s.cfg.TopMinRatio, s.cfg.TopMaxRatio)
}
