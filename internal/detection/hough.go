package detection

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/wallgrid-mcp/internal/grid"
)

// HoughDetector finds line segments in a binary edge raster with a Hough
// transform followed by a walk along every accepted line.
//
// The output follows the contract of a probabilistic Hough transform: a set
// of segments with integer endpoints, each at least MinLength long, in which
// runs of edge pixels separated by at most MaxGap pixels are merged. Lines
// found at exactly 0 or 90 degrees produce segments with X1 == X2 or
// Y1 == Y2, which is what the grid splitter keeps.
//
// HoughDetector is stateless and safe for concurrent use.
type HoughDetector struct {
	// MaxLines caps the number of accumulator peaks walked, strongest first.
	// Zero means no cap.
	MaxLines int
}

type houghPeak struct {
	rho   int
	theta int
	votes int
}

// DetectLines implements grid.LineDetector. Coordinates of the returned
// segments are relative to region.Bounds().Min.
func (d HoughDetector) DetectLines(region *image.Gray, p grid.HoughParams) []grid.Segment {
	bounds := region.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 || p.Rho <= 0 || p.Theta <= 0 {
		return nil
	}

	edges := make([][]bool, height)
	var points []image.Point
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if region.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y > 0 {
				edges[y][x] = true
				points = append(points, image.Point{X: x, Y: y})
			}
		}
	}
	if len(points) == 0 {
		return nil
	}

	// Hough accumulator over [0, π) with rho offset so negative distances fit
	numAngles := int(math.Round(math.Pi / p.Theta))
	maxDist := int(math.Ceil(math.Hypot(float64(width), float64(height)) / p.Rho))
	numRho := maxDist*2 + 1

	cosT := make([]float64, numAngles)
	sinT := make([]float64, numAngles)
	for t := 0; t < numAngles; t++ {
		angle := float64(t) * p.Theta
		cosT[t] = math.Cos(angle)
		sinT[t] = math.Sin(angle)
	}

	accumulator := make([][]int, numRho)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	for _, pt := range points {
		for t := 0; t < numAngles; t++ {
			rho := float64(pt.X)*cosT[t] + float64(pt.Y)*sinT[t]
			rhoIdx := int(math.Round(rho/p.Rho)) + maxDist
			if rhoIdx >= 0 && rhoIdx < numRho {
				accumulator[rhoIdx][t]++
			}
		}
	}

	// Find peaks in accumulator
	threshold := p.Threshold
	if threshold < 1 {
		threshold = 1
	}
	peaks := make([]houghPeak, 0)
	for rhoIdx := 0; rhoIdx < numRho; rhoIdx++ {
		for t := 0; t < numAngles; t++ {
			votes := accumulator[rhoIdx][t]
			if votes < threshold {
				continue
			}
			if isLocalMax(accumulator, rhoIdx, t, numRho, numAngles) {
				peaks = append(peaks, houghPeak{rho: rhoIdx - maxDist, theta: t, votes: votes})
			}
		}
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})
	if d.MaxLines > 0 && len(peaks) > d.MaxLines {
		peaks = peaks[:d.MaxLines]
	}

	segments := make([]grid.Segment, 0)
	for _, peak := range peaks {
		rho := float64(peak.rho) * p.Rho
		segments = append(segments, walkLine(edges, width, height, rho, cosT[peak.theta], sinT[peak.theta], p)...)
	}
	return segments
}

// isLocalMax reports whether no neighbour within one bin in rho and theta
// has strictly more votes. Theta wraps around.
func isLocalMax(acc [][]int, rhoIdx, t, numRho, numAngles int) bool {
	v := acc[rhoIdx][t]
	for dr := -1; dr <= 1; dr++ {
		for dt := -1; dt <= 1; dt++ {
			if dr == 0 && dt == 0 {
				continue
			}
			nr := rhoIdx + dr
			nt := (t + dt + numAngles) % numAngles
			if nr >= 0 && nr < numRho && acc[nr][nt] > v {
				return false
			}
		}
	}
	return true
}

// walkLine steps one pixel at a time along the line x*cos + y*sin = rho and
// collects runs of edge pixels. A run ends once more than MaxGap consecutive
// pixels are missing; runs shorter than MinLength are dropped.
func walkLine(edges [][]bool, width, height int, rho, cosA, sinA float64, p grid.HoughParams) []grid.Segment {
	var segments []grid.Segment

	// Step along the axis the line is closer to
	alongX := math.Abs(sinA) >= math.Abs(cosA)
	steps := height
	if alongX {
		steps = width
	}

	var start, last image.Point
	inRun := false
	gap := 0

	flush := func() {
		if !inRun {
			return
		}
		length := math.Hypot(float64(last.X-start.X), float64(last.Y-start.Y))
		if length >= p.MinLength {
			segments = append(segments, grid.Segment{X1: start.X, Y1: start.Y, X2: last.X, Y2: last.Y})
		}
		inRun = false
	}

	for i := 0; i < steps; i++ {
		var x, y int
		if alongX {
			x = i
			y = int(math.Round((rho - float64(x)*cosA) / sinA))
		} else {
			y = i
			x = int(math.Round((rho - float64(y)*sinA) / cosA))
		}

		if x < 0 || x >= width || y < 0 || y >= height || !edges[y][x] {
			if inRun {
				gap++
				if float64(gap) > p.MaxGap {
					flush()
				}
			}
			continue
		}

		if !inRun {
			start = image.Point{X: x, Y: y}
			inRun = true
		}
		last = image.Point{X: x, Y: y}
		gap = 0
	}
	flush()

	return segments
}
