// Package imaging provides the pixel-level operations behind grid inference:
// loading and caching screenshots, resizing them to the canonical canvas,
// Canny edge detection, tile crops and debug overlays.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Canonical Canvas
//
// Screenshots come in many resolutions. Canonicalize resizes every image to
// CanvasWidth x CanvasHeight (1920x1080) before edges are computed, so tile
// coordinates and crops refer to the canonical canvas. ImageInfo reports the
// scale factors that map them back to source pixels.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Crop regions outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - File I/O errors during image loading or saving
//   - Encoding errors during image output
package imaging
