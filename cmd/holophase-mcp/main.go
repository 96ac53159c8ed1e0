package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/holophase-mcp/internal/phase"
	"github.com/ironsheep/holophase-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("holophase-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("holophase-mcp - MCP server for hologram phase extraction")
			fmt.Println()
			fmt.Println("Usage: holophase-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  HOLOPHASE_LOG_LEVEL=debug           Enable debug logging")
			fmt.Println("  HOLOPHASE_ENGINE=dsp|gonum          Default transform engine")
			fmt.Println("  HOLOPHASE_RANGE_CHECK=off|warn|strict")
			fmt.Println("                                      Default phase range policy")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	level := slog.LevelInfo
	logLevel := os.Getenv("HOLOPHASE_LOG_LEVEL")
	if logLevel == "debug" {
		level = slog.LevelDebug
		log.Printf("Holophase MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cfg := server.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if engine := os.Getenv("HOLOPHASE_ENGINE"); engine != "" {
		cfg.Engine = engine
	}
	if check := os.Getenv("HOLOPHASE_RANGE_CHECK"); check != "" {
		rc, err := phase.ParseRangeCheck(check)
		if err != nil {
			log.Fatalf("HOLOPHASE_RANGE_CHECK: %v", err)
		}
		cfg.RangeCheck = rc
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server configuration error: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
