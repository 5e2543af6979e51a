// Package wall runs the grid inference pipeline on screenshot files.
//
// An Analyzer loads a screenshot through the shared image cache, resizes it
// to the canonical canvas, computes the edge raster with the configured
// detection backend and hands it to grid.Assembler. The same prepared
// canvas feeds the secondary operations: top-level frame finding, separator
// line inspection, tile crops and debug overlays.
//
// Errors caused by the input file (missing, unreadable, not an image) wrap
// ErrInput so callers can tell them apart from internal failures:
//
//	res, err := analyzer.Analyze(path)
//	if errors.Is(err, wall.ErrInput) {
//	    // skip this file
//	}
package wall
