package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/holophase-mcp/internal/imaging"
	"github.com/ironsheep/holophase-mcp/internal/phase"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "hologram_load", "hologram_phase").
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
//  2. Applies default values for optional parameters
//  3. Loads the hologram from cache
//  4. Calls the appropriate imaging or phase function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "hologram_load":
		return s.handleHologramLoad(args)
	case "hologram_crop":
		return s.handleHologramCrop(args)
	case "hologram_phase":
		return s.handleHologramPhase(args)
	case "hologram_spectrum":
		return s.handleHologramSpectrum(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Hologram Information Handlers ===

type hologramLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleHologramLoad(args json.RawMessage) (interface{}, error) {
	var a hologramLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type hologramCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleHologramCrop(args json.RawMessage) (interface{}, error) {
	var a hologramCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, imaging.Region{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2}, a.Scale)
}

// === Phase Extraction Handlers ===

// phaseArgs are shared by hologram_phase and hologram_spectrum. ROI is a
// pointer because 0 is a meaningful request.
type phaseArgs struct {
	Path       string          `json:"path"`
	TopPercent int             `json:"top_percent"`
	ROI        *int            `json:"roi"`
	Region     *imaging.Region `json:"region"`
	Engine     string          `json:"engine"`
	RangeCheck string          `json:"range_check"`
	Scale      float64         `json:"scale"`
}

func (a *phaseArgs) params() phase.Params {
	p := phase.DefaultParams()
	if a.TopPercent != 0 {
		p.TopPercent = a.TopPercent
	}
	if a.ROI != nil {
		p.ROI = *a.ROI
	}
	return p
}

// PhaseResult is the hologram_phase result: the rescaled phase image and the
// report of how it was obtained.
type PhaseResult struct {
	imaging.ImageResult
	Engine string          `json:"engine"`
	Region *imaging.Region `json:"region,omitempty"`
	Report *phase.Report   `json:"report"`
}

// compute loads the hologram, narrows it to the requested region and runs
// the extractor chosen by the arguments.
func (s *Server) compute(a *phaseArgs, p phase.Params) (*image.Gray, *phase.Report, string, error) {
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	check := s.config.RangeCheck
	if a.RangeCheck != "" {
		c, err := phase.ParseRangeCheck(a.RangeCheck)
		if err != nil {
			return nil, nil, "", err
		}
		check = c
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, "", err
	}
	if a.Region != nil {
		if img, err = imaging.SubGray(img, *a.Region); err != nil {
			return nil, nil, "", err
		}
	}

	var (
		out    *image.Gray
		rep    *phase.Report
		engine string
	)
	err = s.withExtractor(a.Engine, check, func(ex *phase.Extractor) error {
		var err error
		out, rep, err = ex.ComputeGray(img, p)
		engine = ex.EngineName()
		return err
	})
	if err != nil {
		return nil, nil, "", err
	}
	return out, rep, engine, nil
}

func (s *Server) handleHologramPhase(args json.RawMessage) (interface{}, error) {
	var a phaseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	out, rep, engine, err := s.compute(&a, a.params())
	if err != nil {
		return nil, err
	}
	enc, err := imaging.EncodePNG(out, a.Scale, true)
	if err != nil {
		return nil, err
	}
	return &PhaseResult{ImageResult: *enc, Engine: engine, Region: a.Region, Report: rep}, nil
}

type hologramSpectrumArgs struct {
	phaseArgs
	Color string `json:"color"`
}

func (s *Server) handleHologramSpectrum(args json.RawMessage) (interface{}, error) {
	var a hologramSpectrumArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = "#FF0000"
	}
	p := a.params()
	p.KeepSpectrum = true

	_, rep, _, err := s.compute(&a.phaseArgs, p)
	if err != nil {
		return nil, err
	}
	ov := imaging.SpectrumOverlay{
		SearchRows: rep.SearchRows,
		Square:     rep.Square.Rect(),
		Peak:       rep.Peak,
	}
	return imaging.RenderSpectrum(rep.Spectrum, rep.Width, rep.Height, ov, a.Color, a.Scale)
}
