package detection

import (
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/wallgrid-mcp/internal/grid"
	"github.com/ironsheep/wallgrid-mcp/internal/imaging"
)

// Backend bundles the edge detector and line detector used by the grid
// pipeline. Both halves must agree on what an edge pixel is: any non-zero
// value in the returned raster.
type Backend interface {
	grid.LineDetector

	// EdgeMap converts img into a binary edge raster of the same size.
	// Edge pixels are 255, everything else 0.
	EdgeMap(img image.Image, low, high int) (*image.Gray, error)

	// Name identifies the backend in logs and tool output.
	Name() string
}

// PureBackend runs Canny edge detection and the Hough transform in Go.
// It needs no system libraries.
type PureBackend struct {
	HoughDetector
}

// NewPureBackend returns the default backend.
func NewPureBackend() *PureBackend {
	return &PureBackend{}
}

// EdgeMap implements Backend using imaging.EdgeMap.
func (b *PureBackend) EdgeMap(img image.Image, low, high int) (*image.Gray, error) {
	return imaging.EdgeMap(img, low, high), nil
}

// Name implements Backend.
func (b *PureBackend) Name() string { return "pure" }

var backends = map[string]func() Backend{
	"pure": func() Backend { return NewPureBackend() },
}

// registerBackend makes an optional backend selectable by name. It is
// called from init functions of build-tagged files.
func registerBackend(name string, factory func() Backend) {
	backends[name] = factory
}

// NewBackend returns the backend with the given name. The empty string
// selects "pure".
func NewBackend(name string) (Backend, error) {
	if name == "" {
		name = "pure"
	}
	factory, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown detection backend: %s (available: %v)", name, Backends())
	}
	return factory(), nil
}

// Backends lists the names of the compiled-in backends, sorted.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
