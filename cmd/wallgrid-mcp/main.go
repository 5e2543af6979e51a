package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/wallgrid-mcp/internal/config"
	"github.com/ironsheep/wallgrid-mcp/internal/imaging"
	"github.com/ironsheep/wallgrid-mcp/internal/server"
	"github.com/ironsheep/wallgrid-mcp/internal/wall"
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
			fmt.Printf("wallgrid-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("wallgrid-mcp - MCP server for video-wall grid inference")
			fmt.Println()
			fmt.Println("Usage: wallgrid-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  WALLGRID_CONFIG=path         YAML configuration file")
			fmt.Println("  WALLGRID_MODE=margins        Grid mode (margins or recursive)")
			fmt.Println("  WALLGRID_DEDUP=true          Collapse separator lines within 2px")
			fmt.Println("  WALLGRID_BACKEND=pure        Detection backend")
			fmt.Println("  WALLGRID_LOG_LEVEL=debug     Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(os.Getenv(config.EnvConfig))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Wallgrid MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Mode %s, backend %s, canvas %dx%d", cfg.Grid.Mode, cfg.Backend, cfg.CanvasWidth, cfg.CanvasHeight)
	}

	analyzer, err := wall.New(cfg, imaging.NewImageCache(), log.Default())
	if err != nil {
		log.Fatalf("Analyzer error: %v", err)
	}

	srv := server.New(analyzer, Version)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
