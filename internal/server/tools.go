package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the screenshot file",
	}
}

// gridProperties are the per-call overrides accepted by every tool that runs
// grid inference.
func gridProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"margins", "recursive"},
			"description": "Assembly strategy. 'margins' infers frame width and margins per row, 'recursive' rebuilds a uniform grid from per-row frame counts. Defaults to the server configuration.",
		},
		"dedup": map[string]interface{}{
			"type":        "boolean",
			"description": "Collapse separator lines closer than the dedup tolerance (2px). Defaults to the server configuration.",
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load a screenshot and return its dimensions, format and the scale factors from the canonical 1920x1080 canvas back to source pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Grid inference
		{
			Name:        "wall_detect_grid",
			Description: "Infer the tile grid of a video-wall screenshot. Returns rows of tile rectangles in canonical 1920x1080 canvas coordinates (x1,y1 inclusive, x2,y2 exclusive) and, in margins mode, the per-row frame width and margin estimates.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": gridProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "wall_detect_frames",
			Description: "Split the whole canvas recursively along detected separator lines and return the frames whose width/height ratio lies between 0.56 and 1.5.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": gridProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "wall_detect_lines",
			Description: "Return the normalized separator lines found in a canvas region along one axis. Omit the region to use the whole canvas.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gridProperties(), map[string]interface{}{
					"axis": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical"},
						"description": "Line orientation. Default: horizontal",
						"default":     "horizontal",
					},
					"x1": map[string]interface{}{"type": "integer", "description": "Region left edge (canvas coordinates)"},
					"y1": map[string]interface{}{"type": "integer", "description": "Region top edge (canvas coordinates)"},
					"x2": map[string]interface{}{"type": "integer", "description": "Region right edge (exclusive)"},
					"y2": map[string]interface{}{"type": "integer", "description": "Region bottom edge (exclusive)"},
				}),
				"required": []string{"path"},
			},
		},

		// Outputs
		{
			Name:        "wall_extract_tiles",
			Description: "Infer the grid and crop every tile from the canonical canvas. With output_dir the crops are written as view_<i>.png; otherwise they are returned as base64-encoded PNGs.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gridProperties(), map[string]interface{}{
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write view_<i>.png files to. Created if missing.",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor for returned crops (e.g., 0.5 to halve size). Default 1.0",
						"default":     1.0,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "wall_overlay",
			Description: "Draw the inferred tiles and the separator lines used to find them over the canonical canvas. Returns a base64-encoded PNG for visual verification.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gridProperties(), map[string]interface{}{
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Separator line color as #RRGGBB. Default: #00FF00",
						"default":     "#00FF00",
					},
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Line and outline thickness in pixels. Default: 3",
						"default":     3,
					},
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw tile indices. Default: true",
						"default":     true,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "wall_edge_map",
			Description: "Return the binary Canny edge map of the canonical canvas that grid inference runs on, as a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
