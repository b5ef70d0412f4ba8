package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves every file the pipeline reads or writes
type Paths struct {
	InputFile string
	OutputDir string
}

// NewPaths creates the path resolver for a pipeline configuration
func NewPaths(cfg PipelineConfig) *Paths {
	return &Paths{
		InputFile: cfg.InputFile,
		OutputDir: cfg.OutputDir,
	}
}

// GetOutputPath returns the path of an artifact in the output directory.
// Absolute names are returned unchanged.
func (p *Paths) GetOutputPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	if p.OutputDir == "" {
		return filename
	}
	return filepath.Join(p.OutputDir, filename)
}

// EnsureDirectories creates the output directory if needed
func (p *Paths) EnsureDirectories() error {
	if p.OutputDir == "" || p.OutputDir == "." {
		return nil
	}
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", p.OutputDir, err)
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
