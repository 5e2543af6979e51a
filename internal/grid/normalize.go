package grid

import "sort"

// NormalizeLines converts segments detected inside region into full-span
// separator lines in canvas coordinates.
//
// Segments are given in region-local coordinates. For the horizontal axis
// only Y1 is read; for the vertical axis only X1. A line that falls exactly on
// the region's own boundary is dropped since the boundary is already implied.
// The result is sorted by position.
//
// Lines closer than cfg.DedupTolerance are collapsed only when cfg.Dedup is
// set. Without it the sorted list is returned as is, near-duplicates
// included, and the splitter produces thin slivers that FilterProportional
// later removes.
func NormalizeLines(region Rect, segs []Segment, axis Axis, cfg Config) []Segment {
	if len(segs) == 0 {
		return nil
	}

	lines := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if axis == Vertical {
			x := s.X1 + region.X1
			if x == region.X1 || x == region.X2 {
				continue
			}
			lines = append(lines, Segment{X1: x, Y1: region.Y1, X2: x, Y2: region.Y2})
			continue
		}
		y := s.Y1 + region.Y1
		if y == region.Y1 || y == region.Y2 {
			continue
		}
		lines = append(lines, Segment{X1: region.X1, Y1: y, X2: region.X2, Y2: y})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return axis.position(lines[i]) < axis.position(lines[j])
	})

	unique := dedupLines(lines, axis, cfg.DedupTolerance)
	if cfg.Dedup {
		return unique
	}
	return lines
}

// dedupLines keeps a sorted line only if it lies more than tolerance pixels
// past the last kept line.
func dedupLines(sorted []Segment, axis Axis, tolerance int) []Segment {
	unique := make([]Segment, 0, len(sorted))
	for _, l := range sorted {
		if len(unique) == 0 || axis.position(l)-axis.position(unique[len(unique)-1]) > tolerance {
			unique = append(unique, l)
		}
	}
	return unique
}
