// Package server implements the MCP (Model Context Protocol) server for
// hologram phase extraction.
//
// This package provides a JSON-RPC 2.0 server that exposes the phase
// extractor through the MCP protocol, so an MCP client can load an off-axis
// hologram, inspect its spectrum and retrieve the wrapped phase image.
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
//   - hologram_load: Load a hologram and get its metadata
//   - hologram_crop: Extract a rectangular region as PNG
//   - hologram_phase: Wrapped phase as PNG plus the extraction report
//   - hologram_spectrum: Log-magnitude spectrum with the search band, the
//     kept square and the peak drawn on it
//
// hologram_phase and hologram_spectrum accept an optional region; only that
// part of the cached hologram is processed, without copying it.
//
// # Extractors
//
// The server keeps one phase.Extractor per transform engine and range check
// policy. Extractors hold their buffers between calls, so a series of calls on
// same-sized holograms allocates once. Calls are serialized on a mutex.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded holograms. Images are
// cached by path and reused across multiple tool calls, avoiding redundant
// disk I/O. The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv, err := server.New(server.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
