package grid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WidthGroup is a set of rectangles considered to share one frame width.
//
// Key is the width of the rectangle that created the group. Membership is
// decided against Key, not against the running average, so the grouping
// depends on the order rectangles are seen in.
type WidthGroup struct {
	Key     int    `json:"key"`
	Members []Rect `json:"members"`
}

// widths returns the member widths as float64 values.
func (g WidthGroup) widths() []float64 {
	w := make([]float64, len(g.Members))
	for i, r := range g.Members {
		w[i] = float64(r.Width())
	}
	return w
}

// TotalWidth returns the summed width of all members.
func (g WidthGroup) TotalWidth() float64 {
	return floats.Sum(g.widths())
}

// AverageWidth returns the mean member width, or 0 for an empty group.
func (g WidthGroup) AverageWidth() float64 {
	if len(g.Members) == 0 {
		return 0
	}
	return stat.Mean(g.widths(), nil)
}

// MarginEstimate is the regularized layout of one row.
type MarginEstimate struct {
	// FrameWidth is the inferred width of one view in pixels.
	FrameWidth float64 `json:"frame_width"`

	// SideMargin is the blank space left of the first view. Zero unless a
	// second, narrower width group suggests a side lane.
	SideMargin float64 `json:"side_margin"`

	// BetweenMargin is the blank space between adjacent views.
	BetweenMargin float64 `json:"between_margin"`

	// Count is floor(imageWidth / FrameWidth), the number of views in the row.
	Count int `json:"count"`
}

// GroupByWidth clusters rectangles by width in a single greedy pass.
//
// Each rectangle is compared against the key of every existing group, in
// creation order, using the relative difference |key-width|/key. It joins the
// first group within tolerance, otherwise it starts a new group keyed by its
// own width. Rectangles with no width are skipped.
//
// Example with tolerance 0.05 and widths [100, 102, 200, 98]: 102 and 98 are
// within 2% of 100, 200 is not, giving {100, 102, 98} and {200}.
func GroupByWidth(rects []Rect, tolerance float64) []WidthGroup {
	var groups []WidthGroup
	for _, r := range rects {
		width := r.Width()
		if width <= 0 {
			continue
		}

		found := false
		for i := range groups {
			key := float64(groups[i].Key)
			if math.Abs(key-float64(width))/key <= tolerance {
				groups[i].Members = append(groups[i].Members, r)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, WidthGroup{Key: width, Members: []Rect{r}})
		}
	}
	return groups
}

// DominantGroup returns the group with the most members, breaking ties by
// total width and then by creation order. ok is false when groups is empty.
func DominantGroup(groups []WidthGroup) (dominant WidthGroup, ok bool) {
	for i, g := range groups {
		if i == 0 {
			dominant = g
			continue
		}
		if len(g.Members) > len(dominant.Members) ||
			(len(g.Members) == len(dominant.Members) && g.TotalWidth() > dominant.TotalWidth()) {
			dominant = g
		}
	}
	return dominant, len(groups) > 0
}

// InferMargins derives frame width and margins of a row from its width
// groups.
//
// Parameters:
//   - groups: Output of GroupByWidth for one row.
//   - imageWidth: Width of the canvas in pixels.
//   - cfg: Supplies SideLaneMinWidth.
//
// # Algorithm
//
//  1. Groups are ordered by average width, widest first (stable).
//  2. FrameWidth is the average width of the widest group.
//  3. If a second group exists and its average exceeds SideLaneMinWidth, the
//     row is taken to have a side lane and
//     SideMargin = (imageWidth - 2*FrameWidth) / 2.
//  4. Count = floor(imageWidth / FrameWidth) and, for Count > 1,
//     BetweenMargin = (imageWidth - Count*FrameWidth - 2*SideMargin) / (Count - 1).
//
// This is a heuristic: it assumes the widest group is representative of the
// whole row and that margins are uniform. It does not check that the
// resulting tiles actually cover the row. An empty group list yields a zero
// estimate.
func InferMargins(groups []WidthGroup, imageWidth int, cfg Config) MarginEstimate {
	if len(groups) == 0 {
		return MarginEstimate{}
	}

	sorted := make([]WidthGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AverageWidth() > sorted[j].AverageWidth()
	})

	width := float64(imageWidth)
	est := MarginEstimate{FrameWidth: sorted[0].AverageWidth()}
	if est.FrameWidth <= 0 {
		return MarginEstimate{}
	}

	if len(sorted) > 1 && sorted[1].AverageWidth() > cfg.SideLaneMinWidth {
		est.SideMargin = (width - est.FrameWidth*2) / 2
	}

	est.Count = int(math.Floor(width / est.FrameWidth))
	if est.Count > 1 {
		est.BetweenMargin = (width - float64(est.Count)*est.FrameWidth - est.SideMargin*2) / float64(est.Count-1)
	}
	return est
}
