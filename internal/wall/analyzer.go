package wall

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/ironsheep/wallgrid-mcp/internal/config"
	"github.com/ironsheep/wallgrid-mcp/internal/detection"
	"github.com/ironsheep/wallgrid-mcp/internal/grid"
	"github.com/ironsheep/wallgrid-mcp/internal/imaging"
)

// ErrInput marks errors caused by an image that cannot be loaded or decoded.
var ErrInput = errors.New("invalid input image")

// Analyzer runs the pipeline with a fixed configuration. It is safe for
// concurrent use as long as the backend is.
type Analyzer struct {
	cfg     config.Config
	cache   *imaging.ImageCache
	backend detection.Backend
	logger  *log.Logger
}

// New creates an Analyzer. A nil cache gets a private one, a nil logger
// discards output.
func New(cfg config.Config, cache *imaging.ImageCache, logger *log.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	backend, err := detection.NewBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Analyzer{cfg: cfg, cache: cache, backend: backend, logger: logger}, nil
}

// WithGrid returns a copy of a that uses gc for grid inference. The cache,
// backend and logger are shared.
func (a *Analyzer) WithGrid(gc grid.Config) (*Analyzer, error) {
	if err := gc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid configuration: %w", err)
	}
	c := *a
	c.cfg.Grid = gc
	return &c, nil
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() config.Config { return a.cfg }

// Backend returns the name of the detection backend in use.
func (a *Analyzer) Backend() string { return a.backend.Name() }

// Cache returns the image cache the analyzer loads through.
func (a *Analyzer) Cache() *imaging.ImageCache { return a.cache }

// Prepared is a screenshot ready for grid inference.
type Prepared struct {
	// Path is the file the screenshot was loaded from.
	Path string

	// Canvas is the screenshot resized to the canonical size.
	Canvas *image.NRGBA

	// Edges is the binary edge raster of Canvas.
	Edges *image.Gray

	// Bounds covers the whole canvas.
	Bounds grid.Rect
}

// Prepare loads path, resizes it to the canonical canvas and computes its
// edge raster.
func (a *Analyzer) Prepare(path string) (*Prepared, error) {
	img, err := a.cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInput, path, err)
	}

	canvas, err := imaging.Canonicalize(img, a.cfg.CanvasWidth, a.cfg.CanvasHeight)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInput, path, err)
	}

	edges, err := a.backend.EdgeMap(canvas, a.cfg.CannyLow, a.cfg.CannyHigh)
	if err != nil {
		return nil, fmt.Errorf("failed to compute edges for %s: %w", path, err)
	}

	if a.cfg.Debug() {
		a.logger.Printf("%s: %dx%d -> %dx%d, %d edge pixels (%s)",
			path, img.Bounds().Dx(), img.Bounds().Dy(), a.cfg.CanvasWidth, a.cfg.CanvasHeight,
			imaging.CountEdgePixels(edges), a.backend.Name())
	}

	return &Prepared{
		Path:   path,
		Canvas: canvas,
		Edges:  edges,
		Bounds: grid.FromImage(canvas.Bounds()),
	}, nil
}

func (a *Analyzer) assembler(p *Prepared) *grid.Assembler {
	return grid.NewAssembler(p.Edges, a.backend, a.cfg.Grid)
}

func (a *Analyzer) splitter(p *Prepared) *grid.Splitter {
	return grid.NewSplitter(p.Edges, a.backend, a.cfg.Grid)
}
