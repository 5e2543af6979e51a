package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/wallgrid-mcp/internal/imaging"
	"github.com/ironsheep/wallgrid-mcp/internal/wall"
)

type runner struct {
	analyzer  *wall.Analyzer
	outputDir string
	overlay   bool
}

// runAll processes every input in order. A failing image is logged and
// skipped; the number of failures is returned with the successful results.
// Each image is evicted from the analyzer's cache once it is done.
func (r *runner) runAll(inputs []string) ([]*wall.Result, int) {
	results := make([]*wall.Result, 0, len(inputs))
	failed := 0
	for i, path := range inputs {
		res, err := r.process(path)
		r.analyzer.Cache().Evict(path)
		if err != nil {
			log.Printf("[%d/%d] WARNING: Skipping '%s': %v", i+1, len(inputs), path, err)
			failed++
			continue
		}
		results = append(results, res)
	}
	return results, failed
}

// process infers the grid of one image and, when an output directory is
// set, writes its tiles and optional overlay. Edges and the grid are
// computed once and shared by both outputs.
func (r *runner) process(path string) (*wall.Result, error) {
	if r.overlay && r.outputDir == "" {
		return nil, fmt.Errorf("-overlay requires -out")
	}

	p, err := r.analyzer.Prepare(path)
	if err != nil {
		return nil, err
	}
	res := r.analyzer.Grid(p)
	if r.outputDir == "" {
		return res, nil
	}

	crops, err := r.analyzer.CropTiles(p, res)
	if err != nil {
		return nil, err
	}
	dir := tileDir(r.outputDir, path)
	if _, err := imaging.SaveTiles(dir, crops); err != nil {
		return nil, err
	}

	if r.overlay {
		ann, err := r.analyzer.Annotate(p, res, imaging.OverlayOptions{Labels: true})
		if err != nil {
			return nil, err
		}
		if err := imaging.SaveImage(filepath.Join(dir, "overlay.png"), ann.Image); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// tileDir names the per-image output directory after the file's base name
// without its extension.
func tileDir(outputDir, path string) string {
	base := filepath.Base(path)
	return filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base)))
}

// expandInputs replaces every directory argument with the image files it
// contains, sorted by name. Plain files are kept as given.
func expandInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		if !isDir(arg) {
			inputs = append(inputs, arg)
			continue
		}
		files, err := expandDirectory(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list directory '%s': %w", arg, err)
		}
		inputs = append(inputs, files...)
	}
	return inputs, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func expandDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if isImageFile(path) {
			files = append(files, path)
		}
	}
	return files, nil
}

func isImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}
