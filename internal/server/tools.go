package server

import (
	"github.com/ironsheep/holophase-mcp/internal/phase"
	"github.com/ironsheep/holophase-mcp/internal/transform"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the hologram image file (PNG, JPEG, GIF, BMP or TIFF)",
	}
}

// phaseProperties describes the arguments shared by hologram_phase and
// hologram_spectrum.
func phaseProperties() map[string]interface{} {
	def := phase.DefaultParams()
	return map[string]interface{}{
		"path": pathProperty(),
		"top_percent": map[string]interface{}{
			"type":        "integer",
			"description": "Percentage of spectrum rows, from the top, searched for the carrier peak (1-100)",
			"minimum":     1,
			"maximum":     100,
			"default":     def.TopPercent,
		},
		"roi": map[string]interface{}{
			"type":        "integer",
			"description": "Requested half-size of the square kept around the peak; shrunk to fit the spectrum",
			"minimum":     0,
			"default":     def.ROI,
		},
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional sub-region of the hologram to process; (x1,y1) inclusive, (x2,y2) exclusive",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
		"engine": map[string]interface{}{
			"type":        "string",
			"enum":        transform.Names(),
			"description": "Transform engine; defaults to the server's configured engine",
		},
		"range_check": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"off", "warn", "strict"},
			"description": "What to do when the phase range does not reach ±π: skip the check, log a warning or fail",
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional scale factor for the returned image (nearest-neighbor). Default 1.0",
			"default":     1.0,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	spectrumProps := phaseProperties()
	spectrumProps["color"] = map[string]interface{}{
		"type":        "string",
		"description": "Overlay color in hex format (e.g., '#FF0000' or '#FF000080')",
		"default":     "#FF0000",
	}

	return []Tool{
		{
			Name:        "hologram_load",
			Description: "Load a hologram image and return its dimensions, file format and stored color model. The grayscale copy is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "hologram_crop",
			Description: "Crop a rectangular region of a hologram (after grayscale conversion) and return it as base64-encoded PNG. Use this to pick a region for hologram_phase.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "hologram_phase",
			Description: "Extract the wrapped phase of an off-axis hologram: locate the carrier peak in the upper part of the centered spectrum, keep a square around it, move it to the center, invert the transform and return the phase rescaled to 0-255 as base64-encoded PNG, with a report of the peak, the kept square and the phase range.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": phaseProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "hologram_spectrum",
			Description: "Render the centered log-magnitude spectrum of a hologram with the searched band, the clamped square around the carrier peak and the peak coordinates drawn on it. Use this to choose top_percent and roi for hologram_phase.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": spectrumProps,
				"required":   []string{"path"},
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
