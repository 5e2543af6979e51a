// Command wallgrid infers the tile grid of video-wall screenshots and writes
// every tile as view_<i>.png.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/wallgrid-mcp/internal/config"
	"github.com/ironsheep/wallgrid-mcp/internal/grid"
	"github.com/ironsheep/wallgrid-mcp/internal/imaging"
	"github.com/ironsheep/wallgrid-mcp/internal/wall"
)

// Version information - set by ldflags during build
var Version = "dev"

func main() {
	var (
		configPath string
		mode       string
		backend    string
		outputDir  string
		dedup      bool
		overlay    bool
		jsonOut    bool
		verbose    bool
		version    bool
	)

	flag.StringVar(&configPath, "config", os.Getenv(config.EnvConfig), "YAML configuration file")
	flag.StringVar(&mode, "mode", "", "Grid mode: margins or recursive (default from config)")
	flag.StringVar(&backend, "backend", "", "Detection backend (default from config)")
	flag.StringVar(&outputDir, "out", "", "Output directory; tiles go to <out>/<image name>/view_<i>.png")
	flag.BoolVar(&dedup, "dedup", false, "Collapse separator lines closer than the dedup tolerance (2px)")
	flag.BoolVar(&overlay, "overlay", false, "Also write overlay.png with tiles and separator lines")
	flag.BoolVar(&jsonOut, "json", false, "Print results as JSON on stdout")
	flag.BoolVar(&verbose, "verbose", false, "Print debug information")
	flag.BoolVar(&version, "version", false, "Print version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] image_files_or_dirs...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if version {
		fmt.Printf("wallgrid %s\n", Version)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Flags override the file and environment only when given.
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			m, err := grid.ParseMode(mode)
			if err != nil {
				flagErr = err
			}
			cfg.Grid.Mode = m
		case "backend":
			cfg.Backend = backend
		case "dedup":
			cfg.Grid.Dedup = dedup
		case "verbose":
			if verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if flagErr != nil {
		log.Fatalf("Invalid flag: %v", flagErr)
	}

	analyzer, err := wall.New(cfg, imaging.NewImageCache(), log.Default())
	if err != nil {
		log.Fatalf("Analyzer error: %v", err)
	}

	inputs, err := expandInputs(flag.Args())
	if err != nil {
		log.Fatalf("Input error: %v", err)
	}

	r := &runner{analyzer: analyzer, outputDir: outputDir, overlay: overlay}
	results, failed := r.runAll(inputs)

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatalf("Failed to encode results: %v", err)
		}
	} else {
		for _, res := range results {
			fmt.Printf("%s: %d tiles in %d rows (%s)\n", res.Path, res.Count, len(res.Rows), res.Mode)
		}
	}

	if failed > 0 {
		os.Exit(2)
	}
}
