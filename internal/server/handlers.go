package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/wallgrid-mcp/internal/grid"
	"github.com/ironsheep/wallgrid-mcp/internal/imaging"
	"github.com/ironsheep/wallgrid-mcp/internal/wall"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "wall_detect_grid").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies per-call overrides on top of the server configuration
//  3. Runs the pipeline through the shared analyzer
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)

	// Grid inference
	case "wall_detect_grid":
		return s.handleDetectGrid(args)
	case "wall_detect_frames":
		return s.handleDetectFrames(args)
	case "wall_detect_lines":
		return s.handleDetectLines(args)

	// Outputs
	case "wall_extract_tiles":
		return s.handleExtractTiles(args)
	case "wall_overlay":
		return s.handleOverlay(args)
	case "wall_edge_map":
		return s.handleEdgeMap(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// parseArgs unmarshals tool arguments and checks that a path was given.
func parseArgs(args json.RawMessage, v interface{ path() string }) error {
	if err := json.Unmarshal(args, v); err != nil {
		return err
	}
	if v.path() == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

type pathArgs struct {
	Path string `json:"path"`
}

func (a *pathArgs) path() string { return a.Path }

// === Image Information ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := parseArgs(args, &a); err != nil {
		return nil, err
	}
	cfg := s.analyzer.Config()
	return imaging.LoadImageInfo(s.analyzer.Cache(), a.Path, cfg.CanvasWidth, cfg.CanvasHeight)
}

// === Grid Inference ===

type gridArgs struct {
	pathArgs
	Mode  string `json:"mode"`
	Dedup *bool  `json:"dedup"`
}

// analyzerFor applies the per-call mode and dedup overrides.
func (s *Server) analyzerFor(a gridArgs) (*wall.Analyzer, error) {
	if a.Mode == "" && a.Dedup == nil {
		return s.analyzer, nil
	}
	gc := s.analyzer.Config().Grid
	if a.Mode != "" {
		mode, err := grid.ParseMode(a.Mode)
		if err != nil {
			return nil, err
		}
		gc.Mode = mode
	}
	if a.Dedup != nil {
		gc.Dedup = *a.Dedup
	}
	return s.analyzer.WithGrid(gc)
}

func (s *Server) handleDetectGrid(args json.RawMessage) (interface{}, error) {
	var a gridArgs
	if err := parseArgs(args, &a); err != nil {
		return nil, err
	}
	an, err := s.analyzerFor(a)
	if err != nil {
		return nil, err
	}
	return an.Analyze(a.Path)
}

type framesResult struct {
	Path   string      `json:"path"`
	Count  int         `json:"count"`
	Frames []grid.Rect `json:"frames"`
}

func (s *Server) handleDetectFrames(args json.RawMessage) (interface{}, error) {
	var a gridArgs
	if err := parseArgs(args, &a); err != nil {
		return nil, err
	}
	an, err := s.analyzerFor(a)
	if err != nil {
		return nil, err
	}
	frames, err := an.FindFrames(a.Path)
	if err != nil {
		return nil, err
	}
	return &framesResult{Path: a.Path, Count: len(frames), Frames: frames}, nil
}

type linesArgs struct {
	gridArgs
	Axis string `json:"axis"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

type linesResult struct {
	Path   string         `json:"path"`
	Axis   string         `json:"axis"`
	Region grid.Rect      `json:"region"`
	Count  int            `json:"count"`
	Lines  []grid.Segment `json:"lines"`
}

func (s *Server) handleDetectLines(args json.RawMessage) (interface{}, error) {
	var a linesArgs
	if err := parseArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Axis == "" {
		a.Axis = "horizontal"
	}
	axis, err := grid.ParseAxis(a.Axis)
	if err != nil {
		return nil, err
	}
	an, err := s.analyzerFor(a.gridArgs)
	if err != nil {
		return nil, err
	}

	region := grid.Rect{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2}
	lines, err := an.Lines(a.Path, region, axis)
	if err != nil {
		return nil, err
	}
	if region.Empty() {
		cfg := an.Config()
		region = grid.Rect{X2: cfg.CanvasWidth, Y2: cfg.CanvasHeight}
	}
	return &linesResult{
		Path:   a.Path,
		Axis:   axis.String(),
		Region: region,
		Count:  len(lines),
		Lines:  lines,
	}, nil
}

// === Outputs ===

type extractArgs struct {
	gridArgs
	OutputDir string  `json:"output_dir"`
	Scale     float64 `json:"scale"`
}

type extractResult struct {
	Grid  *wall.Result          `json:"grid"`
	Files []string              `json:"files,omitempty"`
	Tiles []*imaging.CropResult `json:"tiles,omitempty"`
}

func (s *Server) handleExtractTiles(args json.RawMessage) (interface{}, error) {
	var a extractArgs
	if err := parseArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	an, err := s.analyzerFor(a.gridArgs)
	if err != nil {
		return nil, err
	}

	if a.OutputDir != "" {
		files, res, err := an.Extract(a.Path, a.OutputDir)
		if err != nil {
			return nil, err
		}
		return &extractResult{Grid: res, Files: files}, nil
	}

	crops, res, err := an.Crops(a.Path)
	if err != nil {
		return nil, err
	}
	tiles := make([]*imaging.CropResult, 0, len(crops))
	for i, c := range crops {
		b := c.Bounds()
		cr, err := imaging.Crop(c, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y, a.Scale)
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", i, err)
		}
		t := res.Tiles[i]
		cr.Index, cr.X1, cr.Y1, cr.X2, cr.Y2 = i, t.X1, t.Y1, t.X2, t.Y2
		tiles = append(tiles, cr)
	}
	return &extractResult{Grid: res, Tiles: tiles}, nil
}

type overlayArgs struct {
	gridArgs
	LineColor string `json:"line_color"`
	Thickness int    `json:"thickness"`
	Labels    *bool  `json:"labels"`
}

type overlayResult struct {
	Grid *wall.Result `json:"grid"`
	*imaging.OverlayResult
}

func (s *Server) handleOverlay(args json.RawMessage) (interface{}, error) {
	var a overlayArgs
	if err := parseArgs(args, &a); err != nil {
		return nil, err
	}
	opts := imaging.OverlayOptions{LineColor: a.LineColor, Thickness: a.Thickness, Labels: true}
	if a.Labels != nil {
		opts.Labels = *a.Labels
	}
	an, err := s.analyzerFor(a.gridArgs)
	if err != nil {
		return nil, err
	}

	ann, err := an.Overlay(a.Path, opts)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodeOverlay(ann.Image, ann.Grid.Count, len(ann.Lines))
	if err != nil {
		return nil, err
	}
	return &overlayResult{Grid: ann.Grid, OverlayResult: encoded}, nil
}

func (s *Server) handleEdgeMap(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := parseArgs(args, &a); err != nil {
		return nil, err
	}
	edges, err := s.analyzer.EdgeMap(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeEdgeMap(edges)
}
