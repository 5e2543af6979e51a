//go:build gocv

package detection

import (
	"fmt"
	"image"
	"image/draw"
	"log"

	"gocv.io/x/gocv"

	"github.com/ironsheep/wallgrid-mcp/internal/grid"
	"github.com/ironsheep/wallgrid-mcp/internal/imaging"
)

func init() {
	registerBackend("opencv", func() Backend { return OpenCVBackend{} })
}

// OpenCVBackend runs Canny and the probabilistic Hough transform through
// OpenCV. Build with -tags gocv and an installed OpenCV 4.
type OpenCVBackend struct{}

// Name implements Backend.
func (OpenCVBackend) Name() string { return "opencv" }

// EdgeMap implements Backend with cv::Canny on the grayscale image.
func (OpenCVBackend) EdgeMap(img image.Image, low, high int) (*image.Gray, error) {
	src, err := gocv.ImageGrayToMatGray(imaging.Grayscale(img))
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to mat: %w", err)
	}
	defer src.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	if err := gocv.Canny(src, &edges, float32(low), float32(high)); err != nil {
		return nil, fmt.Errorf("canny failed: %w", err)
	}

	out, err := edges.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert edge mat: %w", err)
	}
	gray, ok := out.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("unexpected edge image type %T", out)
	}
	return gray, nil
}

// DetectLines implements grid.LineDetector with cv::HoughLinesP. An OpenCV
// failure is logged and reported as no lines.
func (b OpenCVBackend) DetectLines(region *image.Gray, p grid.HoughParams) []grid.Segment {
	segments, err := b.houghLines(region, p)
	if err != nil {
		log.Printf("opencv line detection failed on %v: %v", region.Bounds(), err)
		return nil
	}
	return segments
}

func (OpenCVBackend) houghLines(region *image.Gray, p grid.HoughParams) ([]grid.Segment, error) {
	if region.Bounds().Empty() {
		return nil, nil
	}

	src, err := gocv.ImageGrayToMatGray(compactGray(region))
	if err != nil {
		return nil, fmt.Errorf("failed to convert region to mat: %w", err)
	}
	defer src.Close()

	lines := gocv.NewMat()
	defer lines.Close()
	if err := gocv.HoughLinesPWithParams(src, &lines, float32(p.Rho), float32(p.Theta), p.Threshold,
		float32(p.MinLength), float32(p.MaxGap)); err != nil {
		return nil, fmt.Errorf("hough lines failed: %w", err)
	}

	segments := make([]grid.Segment, 0, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		segments = append(segments, grid.Segment{
			X1: int(v[0]), Y1: int(v[1]), X2: int(v[2]), Y2: int(v[3]),
		})
	}
	return segments, nil
}

// compactGray copies a sub-image into a raster whose stride equals its
// width, which is the memory layout gocv expects.
func compactGray(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
