// Package server implements the MCP (Model Context Protocol) server for
// video-wall grid inference.
//
// This package provides a JSON-RPC 2.0 server that exposes the wall pipeline
// through the MCP protocol, so MCP clients can ask where the tiles of a
// surveillance or video-wall screenshot are and get them cropped out.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load a screenshot and get metadata
//   - wall_detect_grid: Infer the tile grid (margins or recursive mode)
//   - wall_detect_frames: Recursive split plus the top-level aspect filter
//   - wall_detect_lines: Normalized separator lines of a region
//   - wall_extract_tiles: Crop every tile, inline or to view_<i>.png files
//   - wall_overlay: Draw tiles and separator lines for visual checking
//   - wall_edge_map: The Canny edge map inference runs on
//
// Grid tools accept "mode" and "dedup" to override the server configuration
// for a single call. All coordinates refer to the canonical 1920x1080 canvas.
//
// # Image Caching
//
// Decoded screenshots are cached by path in the analyzer's ImageCache and
// reused across tool calls for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	analyzer, err := wall.New(cfg, nil, log.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.New(analyzer, version).Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
