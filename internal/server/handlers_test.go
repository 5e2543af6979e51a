package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/wallgrid-mcp/internal/config"
	"github.com/ironsheep/wallgrid-mcp/internal/grid"
	"github.com/ironsheep/wallgrid-mcp/internal/wall"
)

// createWallImage writes a black 1920x1080 PNG split into four quarters by
// 4px white bars and returns its path.
func createWallImage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 255}), image.Point{}, draw.Src)
	white := image.NewUniform(color.RGBA{255, 255, 255, 255})
	draw.Draw(img, image.Rect(0, 538, 1920, 542), white, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(958, 0, 962, 1080), white, image.Point{}, draw.Src)

	path := filepath.Join(t.TempDir(), "wall.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool runs a tools/call request and decodes the text content into out.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}, out interface{}) *MCPResponse {
	t.Helper()
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil || out == nil {
		return resp
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), out); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
	return resp
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := newTestServer(t)

	var info struct {
		Width  int     `json:"width"`
		Height int     `json:"height"`
		Format string  `json:"format"`
		ScaleX float64 `json:"scale_x"`
	}
	resp := callTool(t, s, "image_load", map[string]interface{}{"path": createWallImage(t)}, &info)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if info.Width != 1920 || info.Height != 1080 || info.Format != "png" || info.ScaleX != 1 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestHandleToolsCall_ImageLoadCustomCanvas(t *testing.T) {
	cfg := config.Default()
	cfg.CanvasWidth, cfg.CanvasHeight = 1280, 720
	analyzer, err := wall.New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("wall.New failed: %v", err)
	}
	s := New(analyzer, "test")

	var info struct {
		ScaleX float64 `json:"scale_x"`
		ScaleY float64 `json:"scale_y"`
	}
	resp := callTool(t, s, "image_load", map[string]interface{}{"path": createWallImage(t)}, &info)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if info.ScaleX != 1.5 || info.ScaleY != 1.5 {
		t.Errorf("scale: got %vx%v, want 1.5x1.5", info.ScaleX, info.ScaleY)
	}
}

func TestHandleToolsCall_DetectGrid(t *testing.T) {
	s := newTestServer(t)
	path := createWallImage(t)

	for _, mode := range []string{"margins", "recursive"} {
		t.Run(mode, func(t *testing.T) {
			var res struct {
				Mode      string        `json:"mode"`
				Count     int           `json:"count"`
				Rows      [][]grid.Rect `json:"rows"`
				Tiles     []grid.Rect   `json:"tiles"`
				Estimates []interface{} `json:"estimates"`
			}
			resp := callTool(t, s, "wall_detect_grid", map[string]interface{}{"path": path, "mode": mode}, &res)
			if resp.Error != nil {
				t.Fatalf("Unexpected error: %v", resp.Error)
			}
			if res.Mode != mode {
				t.Errorf("mode: got %s, want %s", res.Mode, mode)
			}
			if res.Count != 4 || len(res.Tiles) != 4 || len(res.Rows) != 2 {
				t.Errorf("got %d tiles in %d rows, want 4 in 2", res.Count, len(res.Rows))
			}
			if mode == "margins" && len(res.Estimates) != 2 {
				t.Errorf("estimates: got %d, want 2", len(res.Estimates))
			}
			if mode == "recursive" && len(res.Estimates) != 0 {
				t.Errorf("recursive mode should not report estimates")
			}
		})
	}
}

func TestHandleToolsCall_DetectGridInvalidMode(t *testing.T) {
	s := newTestServer(t)
	resp := callTool(t, s, "wall_detect_grid", map[string]interface{}{"path": createWallImage(t), "mode": "diagonal"}, nil)
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected tool error, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_DetectFrames(t *testing.T) {
	s := newTestServer(t)

	var res framesResult
	resp := callTool(t, s, "wall_detect_frames", map[string]interface{}{"path": createWallImage(t)}, &res)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	// 16:9 quarters are outside the 0.56-1.5 window
	if res.Count != 0 || len(res.Frames) != 0 {
		t.Errorf("got %v, want no frames", res.Frames)
	}
}

func TestHandleToolsCall_DetectLines(t *testing.T) {
	s := newTestServer(t)
	path := createWallImage(t)

	var res linesResult
	resp := callTool(t, s, "wall_detect_lines", map[string]interface{}{
		"path": path,
		"axis": "vertical",
		"x1":   0, "y1": 0, "x2": 1920, "y2": 500,
	}, &res)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if res.Axis != "vertical" || res.Count == 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	for _, l := range res.Lines {
		if l.X1 != l.X2 || l.X1 < 950 || l.X1 > 970 || l.Y1 != 0 || l.Y2 != 500 {
			t.Errorf("unexpected line %v", l)
		}
	}

	// Default axis and region
	res = linesResult{}
	callTool(t, s, "wall_detect_lines", map[string]interface{}{"path": path}, &res)
	if res.Axis != "horizontal" || res.Region != (grid.Rect{X2: 1920, Y2: 1080}) {
		t.Errorf("defaults: got axis %s region %v", res.Axis, res.Region)
	}

	resp = callTool(t, s, "wall_detect_lines", map[string]interface{}{"path": path, "axis": "diagonal"}, nil)
	if resp.Error == nil {
		t.Error("expected error for invalid axis")
	}
}

func TestHandleToolsCall_ExtractTiles(t *testing.T) {
	s := newTestServer(t)
	path := createWallImage(t)

	var inline struct {
		Tiles []struct {
			Index       int    `json:"index"`
			X1          int    `json:"x1"`
			Width       int    `json:"width"`
			Height      int    `json:"height"`
			ImageBase64 string `json:"image_base64"`
		} `json:"tiles"`
	}
	resp := callTool(t, s, "wall_extract_tiles", map[string]interface{}{"path": path, "mode": "recursive", "scale": 0.5}, &inline)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if len(inline.Tiles) != 4 {
		t.Fatalf("got %d tiles, want 4", len(inline.Tiles))
	}
	for i, tile := range inline.Tiles {
		if tile.Index != i || tile.ImageBase64 == "" {
			t.Errorf("tile %d: %+v", i, tile)
		}
	}
	// Recursive mode: 705x535 tiles, halved
	if inline.Tiles[0].Width != 352 || inline.Tiles[0].Height != 267 {
		t.Errorf("scaled tile: got %dx%d, want 352x267", inline.Tiles[0].Width, inline.Tiles[0].Height)
	}
	if inline.Tiles[0].X1 != 250 {
		t.Errorf("tile 0 X1: got %d, want 250", inline.Tiles[0].X1)
	}

	dir := filepath.Join(t.TempDir(), "views")
	var saved struct {
		Files []string `json:"files"`
	}
	resp = callTool(t, s, "wall_extract_tiles", map[string]interface{}{"path": path, "output_dir": dir}, &saved)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if len(saved.Files) != 4 {
		t.Fatalf("got %d files, want 4", len(saved.Files))
	}
	for _, f := range saved.Files {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}
}

func TestHandleToolsCall_Overlay(t *testing.T) {
	s := newTestServer(t)

	var res struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		Tiles       int    `json:"tiles"`
		Lines       int    `json:"lines"`
		ImageBase64 string `json:"image_base64"`
		MimeType    string `json:"mime_type"`
	}
	resp := callTool(t, s, "wall_overlay", map[string]interface{}{"path": createWallImage(t), "labels": false}, &res)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if res.Width != 1920 || res.Height != 1080 || res.Tiles != 4 || res.Lines == 0 {
		t.Errorf("unexpected overlay: %dx%d, %d tiles, %d lines", res.Width, res.Height, res.Tiles, res.Lines)
	}
	if res.ImageBase64 == "" || res.MimeType != "image/png" {
		t.Error("missing overlay image")
	}

	resp = callTool(t, s, "wall_overlay", map[string]interface{}{"path": createWallImage(t), "line_color": "green"}, nil)
	if resp.Error == nil {
		t.Error("expected error for invalid color")
	}
}

func TestHandleToolsCall_EdgeMap(t *testing.T) {
	s := newTestServer(t)

	var res struct {
		Width      int `json:"width"`
		Height     int `json:"height"`
		EdgePixels int `json:"edge_pixels"`
	}
	resp := callTool(t, s, "wall_edge_map", map[string]interface{}{"path": createWallImage(t)}, &res)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if res.Width != 1920 || res.Height != 1080 || res.EdgePixels == 0 {
		t.Errorf("unexpected edge map: %+v", res)
	}
}

func TestHandleToolsCall_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		tool string
		args map[string]interface{}
	}{
		{"unknown tool", "image_ocr_full", map[string]interface{}{"path": "/tmp/x.png"}},
		{"missing path", "wall_detect_grid", map[string]interface{}{}},
		{"nonexistent file", "wall_detect_grid", map[string]interface{}{"path": "/nonexistent/wall.png"}},
		{"nonexistent file load", "image_load", map[string]interface{}{"path": "/nonexistent/wall.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, tt.tool, tt.args, nil)
			if resp.Error == nil {
				t.Fatal("expected error")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("code: got %d, want -32000", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}
