package wall

import (
	"fmt"
	"image"

	"github.com/ironsheep/wallgrid-mcp/internal/grid"
	"github.com/ironsheep/wallgrid-mcp/internal/imaging"
)

// Result is the inferred grid of one screenshot in canvas coordinates.
type Result struct {
	Path         string                `json:"path"`
	Mode         grid.Mode             `json:"mode"`
	Backend      string                `json:"backend"`
	CanvasWidth  int                   `json:"canvas_width"`
	CanvasHeight int                   `json:"canvas_height"`
	Count        int                   `json:"count"`
	Rows         [][]grid.Rect         `json:"rows"`
	Tiles        []grid.Rect           `json:"tiles"`
	Estimates    []grid.MarginEstimate `json:"estimates,omitempty"`
}

// Analyze infers the tile grid of the screenshot at path.
func (a *Analyzer) Analyze(path string) (*Result, error) {
	p, err := a.Prepare(path)
	if err != nil {
		return nil, err
	}
	return a.Grid(p), nil
}

// Grid infers the tile grid of a prepared screenshot.
func (a *Analyzer) Grid(p *Prepared) *Result {
	path := p.Path
	g := a.assembler(p).Assemble(p.Bounds)

	if a.cfg.Debug() {
		for i, est := range g.Estimates {
			a.logger.Printf("%s: row %d: frame width %.1f, side margin %.1f, between margin %.1f, %d frames",
				path, i, est.FrameWidth, est.SideMargin, est.BetweenMargin, est.Count)
		}
		a.logger.Printf("%s: %s mode, %d rows, %d tiles", path, g.Mode, len(g.Rows), g.Count())
	}

	tiles := g.Tiles()
	if tiles == nil {
		tiles = []grid.Rect{}
	}
	return &Result{
		Path:         path,
		Mode:         g.Mode,
		Backend:      a.backend.Name(),
		CanvasWidth:  p.Bounds.Width(),
		CanvasHeight: p.Bounds.Height(),
		Count:        g.Count(),
		Rows:         g.Rows,
		Tiles:        tiles,
		Estimates:    g.Estimates,
	}
}

// FindFrames splits the whole canvas recursively and keeps the frames whose
// aspect ratio lies in the top-level window.
func (a *Analyzer) FindFrames(path string) ([]grid.Rect, error) {
	p, err := a.Prepare(path)
	if err != nil {
		return nil, err
	}
	frames := a.splitter(p).FindFrames(p.Bounds)
	if frames == nil {
		frames = []grid.Rect{}
	}
	return frames, nil
}

// Lines returns the normalized separator lines of region along axis. An
// empty region means the whole canvas.
func (a *Analyzer) Lines(path string, region grid.Rect, axis grid.Axis) ([]grid.Segment, error) {
	p, err := a.Prepare(path)
	if err != nil {
		return nil, err
	}
	if region.Empty() {
		region = p.Bounds
	}
	if region.Image().Intersect(p.Bounds.Image()) != region.Image() {
		return nil, fmt.Errorf("region %v outside canvas %v", region, p.Bounds)
	}
	lines := a.splitter(p).Lines(region, axis)
	if lines == nil {
		lines = []grid.Segment{}
	}
	return lines, nil
}

// Crops infers the grid and cuts every tile out of the canonical canvas in
// row-major order.
func (a *Analyzer) Crops(path string) ([]*image.NRGBA, *Result, error) {
	p, err := a.Prepare(path)
	if err != nil {
		return nil, nil, err
	}
	res := a.Grid(p)
	crops, err := a.CropTiles(p, res)
	if err != nil {
		return nil, nil, err
	}
	return crops, res, nil
}

// CropTiles cuts the tiles of res out of the canvas of p in row-major order.
func (a *Analyzer) CropTiles(p *Prepared, res *Result) ([]*image.NRGBA, error) {
	crops, err := imaging.CropTiles(p.Canvas, rectangles(res.Tiles))
	if err != nil {
		return nil, fmt.Errorf("failed to crop tiles of %s: %w", p.Path, err)
	}
	return crops, nil
}

// Extract writes every tile of path to dir as view_<i>.png.
func (a *Analyzer) Extract(path, dir string) ([]string, *Result, error) {
	crops, res, err := a.Crops(path)
	if err != nil {
		return nil, nil, err
	}
	paths, err := imaging.SaveTiles(dir, crops)
	if err != nil {
		return nil, nil, err
	}
	return paths, res, nil
}

// Annotated is a canvas with the inferred grid drawn over it.
type Annotated struct {
	Image *image.RGBA
	Lines []imaging.Line
	Grid  *Result
}

// Overlay draws the inferred tiles and the separator lines used to find
// them over the canonical canvas: horizontal lines of the whole canvas and
// vertical lines of every row band.
func (a *Analyzer) Overlay(path string, opts imaging.OverlayOptions) (*Annotated, error) {
	p, err := a.Prepare(path)
	if err != nil {
		return nil, err
	}
	return a.Annotate(p, a.Grid(p), opts)
}

// Annotate draws the tiles of res and the separator lines of p over its
// canvas.
func (a *Analyzer) Annotate(p *Prepared, res *Result, opts imaging.OverlayOptions) (*Annotated, error) {
	s := a.splitter(p)
	segs := s.Lines(p.Bounds, grid.Horizontal)
	for _, row := range s.SplitOnce(p.Bounds, grid.Horizontal) {
		segs = append(segs, s.Lines(row, grid.Vertical)...)
	}

	lines := make([]imaging.Line, 0, len(segs))
	for _, seg := range segs {
		lines = append(lines, imaging.Line{
			From: image.Pt(seg.X1, seg.Y1),
			To:   image.Pt(seg.X2, seg.Y2),
		})
	}

	out, err := imaging.DrawOverlay(p.Canvas, rectangles(res.Tiles), lines, opts)
	if err != nil {
		return nil, err
	}
	return &Annotated{Image: out, Lines: lines, Grid: res}, nil
}

// EdgeMap returns the edge raster of the canonical canvas.
func (a *Analyzer) EdgeMap(path string) (*image.Gray, error) {
	p, err := a.Prepare(path)
	if err != nil {
		return nil, err
	}
	return p.Edges, nil
}

func rectangles(tiles []grid.Rect) []image.Rectangle {
	out := make([]image.Rectangle, len(tiles))
	for i, t := range tiles {
		out[i] = t.Image()
	}
	return out
}
