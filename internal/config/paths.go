package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths contains all the application paths.
// This is the single source of truth for file paths in the application.
type Paths struct {
	CacheDir  string
	OutputDir string
}

// NewPaths builds the application paths from configuration
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		CacheDir:  cfg.CacheDir,
		OutputDir: cfg.OutputDir,
	}
}

// EnsureDirectories creates the cache and output directories if missing
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.CacheDir, p.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DatasetCacheFile returns the cache path for a downloaded dataset table
func (p *Paths) DatasetCacheFile(date, table string) string {
	return filepath.Join(p.CacheDir, fmt.Sprintf("%s_%s.csv", date, table))
}

// ChartFile returns the output path for the rendered chart image,
// e.g. outputs/20260224.png for the 2026-02-24 dataset
func (p *Paths) ChartFile(date string) string {
	return filepath.Join(p.OutputDir, strings.ReplaceAll(date, "-", "")+".png")
}

// TopInstitutionsCSV returns the output path for the aggregate CSV report
func (p *Paths) TopInstitutionsCSV(date string) string {
	return filepath.Join(p.OutputDir, strings.ReplaceAll(date, "-", "")+"_top_institutions.csv")
}

// TopInstitutionsXLSX returns the output path for the aggregate Excel report
func (p *Paths) TopInstitutionsXLSX(date string) string {
	return filepath.Join(p.OutputDir, strings.ReplaceAll(date, "-", "")+"_top_institutions.xlsx")
}
