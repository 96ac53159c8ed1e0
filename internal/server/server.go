package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/ironsheep/holophase-mcp/internal/imaging"
	"github.com/ironsheep/holophase-mcp/internal/phase"
	"github.com/ironsheep/holophase-mcp/internal/transform"
)

// Config selects the defaults used by phase tools when a call leaves them out.
type Config struct {
	// Engine names the transform engine; empty selects transform.DefaultEngine.
	Engine string

	// RangeCheck is the ±π range policy for calls without a range_check argument.
	RangeCheck phase.RangeCheck

	// Logger receives extractor diagnostics. Nil selects slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used by New when none is given.
func DefaultConfig() Config {
	return Config{
		Engine:     transform.DefaultEngine,
		RangeCheck: phase.DefaultOptions().RangeCheck,
	}
}

// extractorKey identifies an extractor by the options fixed at construction.
type extractorKey struct {
	engine string
	check  phase.RangeCheck
}

// Server handles MCP protocol communication
type Server struct {
	cache  *imaging.ImageCache
	config Config

	// mu guards extractors; an Extractor is not safe for concurrent use, so
	// it is held for the whole computation.
	mu         sync.Mutex
	extractors map[extractorKey]*phase.Extractor
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance. The engine name is checked up front
// so a misconfigured server fails at startup rather than on the first call.
func New(cfg Config) (*Server, error) {
	if cfg.Engine == "" {
		cfg.Engine = transform.DefaultEngine
	}
	eng, err := transform.Lookup(cfg.Engine)
	if err != nil {
		return nil, err
	}
	cfg.Engine = eng.Name()
	return &Server{
		cache:      imaging.NewImageCache(),
		config:     cfg,
		extractors: make(map[extractorKey]*phase.Extractor),
	}, nil
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w
// until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "holophase-mcp",
				"version": "0.1.0",
			},
		},
	}
}

// withExtractor runs fn with the extractor for engine and check, creating it
// on first use. Extractors keep their buffers between calls, so repeated
// calls on same-sized holograms do not reallocate.
func (s *Server) withExtractor(engine string, check phase.RangeCheck, fn func(*phase.Extractor) error) error {
	if engine == "" {
		engine = s.config.Engine
	}
	eng, err := transform.Lookup(engine)
	if err != nil {
		return err
	}
	key := extractorKey{engine: eng.Name(), check: check}

	s.mu.Lock()
	defer s.mu.Unlock()

	ex, ok := s.extractors[key]
	if !ok {
		opts := phase.DefaultOptions()
		opts.Engine = eng
		opts.RangeCheck = check
		opts.Logger = s.config.Logger
		ex, err = phase.NewExtractor(opts)
		if err != nil {
			return err
		}
		s.extractors[key] = ex
	}
	return fn(ex)
}
