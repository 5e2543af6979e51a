// Package detection provides the edge and line detectors the grid pipeline
// runs on.
//
// A Backend pairs an edge detector, which turns a canonical screenshot into
// a binary edge raster, with a line detector implementing grid.LineDetector.
//
// # Backends
//
//   - pure: Canny edges from the imaging package and HoughDetector, a
//     standard Hough transform whose accumulator peaks are walked into
//     segments. Always available, no system libraries.
//   - opencv: cv::Canny and cv::HoughLinesP through gocv. Compiled in only
//     with the gocv build tag (go build -tags gocv) and requires OpenCV.
//
// Select a backend by name with NewBackend. Backends lists what this binary
// was built with.
//
// # Coordinate System
//
// Line detectors receive a sub-image of the edge raster and report segments
// relative to its Bounds().Min, with inclusive integer endpoints:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Performance Considerations
//
// The pure Hough transform visits every edge pixel once per angle bin. The
// grid pipeline calls it once per region, on the 250/255 Canny output of a
// 1920x1080 canvas, which keeps the point count small. Noisy photographs
// with dense edges are slow and produce spurious separators.
package detection
