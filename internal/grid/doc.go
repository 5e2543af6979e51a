// Package grid infers the tile layout of a video wall screenshot.
//
// A video wall screenshot is a single still image made of several camera
// views arranged in rows, separated by thin lines and blank margins. Given a
// binary edge map of the screenshot and a LineDetector, this package recovers
// the rectangle of every view so that each can be cropped out on its own.
//
// # Pipeline
//
// The package is organized leaves first:
//
//  1. NormalizeLines turns raw detected segments into sorted, full-span
//     separator lines in image coordinates.
//  2. Splitter partitions a rectangle by alternating horizontal and vertical
//     splits until no more separator lines are found.
//  3. FilterProportional drops rectangles whose aspect ratio cannot be a view.
//  4. GroupByWidth and InferMargins regularize a noisy row of rectangles into
//     a uniform frame width with side and between margins.
//  5. Assembler combines the above into the final Grid.
//
// # Coordinate System
//
// All coordinates are pixels in the canonical canvas, origin top-left.
// Rectangles are half-open: (X1,Y1) inclusive, (X2,Y2) exclusive, which is
// the same convention as image.Rectangle.
//
// # Preserved Behavior
//
// Two behaviors of the first implementation are reproduced on purpose and
// covered by tests. Line deduplication is computed but not applied unless
// Config.Dedup is set, and width grouping is greedy and order-sensitive.
// Recursive mode also rebuilds tiles from row and column counts only.
package grid
