package grid

// FilterProportional returns the rectangles whose width/height ratio lies in
// [minRatio, maxRatio]. Rectangles without area are dropped. Order is kept.
func FilterProportional(rects []Rect, minRatio, maxRatio float64) []Rect {
	kept := make([]Rect, 0, len(rects))
	for _, r := range rects {
		if isProportional(r, minRatio, maxRatio) {
			kept = append(kept, r)
		}
	}
	return kept
}

func isProportional(r Rect, minRatio, maxRatio float64) bool {
	w := absInt(r.Width())
	h := absInt(r.Height())
	if w == 0 || h == 0 {
		return false
	}
	ratio := float64(w) / float64(h)
	return minRatio <= ratio && ratio <= maxRatio
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
