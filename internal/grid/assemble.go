package grid

import (
	"image"
	"math"
)

// Grid is the inferred tile layout: rows top-to-bottom, tiles left-to-right.
type Grid struct {
	Mode Mode     `json:"mode"`
	Rows [][]Rect `json:"rows"`

	// Estimates holds the margin estimate of every emitted row in
	// ModeMargins. It is empty in ModeRecursive.
	Estimates []MarginEstimate `json:"estimates,omitempty"`
}

// Tiles returns all tiles in row-major order.
func (g Grid) Tiles() []Rect {
	var tiles []Rect
	for _, row := range g.Rows {
		tiles = append(tiles, row...)
	}
	return tiles
}

// Count returns the number of tiles.
func (g Grid) Count() int {
	n := 0
	for _, row := range g.Rows {
		n += len(row)
	}
	return n
}

// Assembler builds a Grid from an edge map.
type Assembler struct {
	splitter *Splitter
	cfg      Config
}

// NewAssembler creates an Assembler over edges.
func NewAssembler(edges *image.Gray, detector LineDetector, cfg Config) *Assembler {
	return &Assembler{
		splitter: NewSplitter(edges, detector, cfg),
		cfg:      cfg,
	}
}

// Assemble infers the grid of canvas using the configured mode.
func (a *Assembler) Assemble(canvas Rect) Grid {
	if a.cfg.Mode == ModeRecursive {
		return a.assembleRecursive(canvas)
	}
	return a.assembleMargins(canvas)
}

// assembleMargins lays out each row from its inferred frame width and
// margins. Rows come from a single horizontal pass over the canvas and
// columns from a single vertical pass over each row.
func (a *Assembler) assembleMargins(canvas Rect) Grid {
	g := Grid{Mode: ModeMargins}

	for _, row := range a.splitter.SplitOnce(canvas, Horizontal) {
		cols := a.splitter.SplitOnce(row, Vertical)
		cols = FilterProportional(cols, a.cfg.MinRatio, a.cfg.MaxRatio)
		if len(cols) == 0 {
			continue
		}

		est := InferMargins(GroupByWidth(cols, a.cfg.WidthTolerance), canvas.Width(), a.cfg)
		if est.Count == 0 {
			continue
		}

		x := est.SideMargin
		if x <= 0 {
			x = est.BetweenMargin / 2
		}
		x += float64(canvas.X1)

		tiles := make([]Rect, 0, est.Count)
		for i := 0; i < est.Count; i++ {
			x2 := x + est.FrameWidth
			tiles = append(tiles, Rect{X1: int(x), Y1: row.Y1, X2: int(x2), Y2: row.Y2})
			x = x2 + est.BetweenMargin
		}

		g.Rows = append(g.Rows, tiles)
		g.Estimates = append(g.Estimates, est)
	}
	return g
}

// assembleRecursive counts the frames of every row and rebuilds a uniform
// grid from those counts with fixed margins. The measured frame coordinates
// are discarded once counted.
func (a *Assembler) assembleRecursive(canvas Rect) Grid {
	g := Grid{Mode: ModeRecursive}

	rows := a.splitter.SplitOnce(canvas, Horizontal)
	counts := make([]int, len(rows))
	nonEmpty := 0
	for i, row := range rows {
		frames := a.splitter.SplitFrom(row, Vertical)
		counts[i] = len(FilterProportional(frames, a.cfg.MinRatio, a.cfg.MaxRatio))
		if counts[i] > 0 {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return g
	}

	width := canvas.Width()
	margin := a.cfg.FrameMargin
	frameHeight := floorDiv(canvas.Height()-margin*(nonEmpty-1), nonEmpty)

	y := canvas.Y1
	for _, n := range counts {
		if n == 0 {
			continue
		}

		side := 0
		if n == 2 && len(rows) > 1 {
			side = a.cfg.SideMargin
		}
		frameWidth := floorDiv(width-side*2-margin*(n-1), n)

		x := canvas.X1 + side
		tiles := make([]Rect, 0, n)
		for i := 0; i < n; i++ {
			tiles = append(tiles, Rect{X1: x, Y1: y, X2: x + frameWidth, Y2: y + frameHeight})
			x += frameWidth + margin
		}

		g.Rows = append(g.Rows, tiles)
		y += frameHeight
	}
	return g
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	return int(math.Floor(float64(a) / float64(b)))
}
