package processor

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the knobs shared by every extraction step. It is read-only
// once a pipeline run starts: steps and page workers receive it by pointer
// and must never write through it.
type Config struct {
	// MaxImageSizeMB is the hard ceiling for a single optimized image,
	// in megabytes.
	MaxImageSizeMB int `yaml:"max_image_size_mb"`

	// MaxRows and MaxCols bound the spreadsheet range that is read.
	// The range clamp currently enforces its own fixed constants and
	// does not consult these fields; they are kept for config-file
	// compatibility.
	MaxRows int `yaml:"max_rows"`
	MaxCols int `yaml:"max_cols"`

	// OCRLanguage is the Tesseract language code, e.g. "eng" or "eng+fra".
	OCRLanguage string `yaml:"ocr_language"`

	// OCRQualityThreshold is accepted for config-file compatibility;
	// the quality filter uses fixed thresholds and does not consult it.
	OCRQualityThreshold float64 `yaml:"ocr_quality_threshold"`

	// TempDir is where retained temporary files are moved when KeepTemps
	// is set.
	TempDir string `yaml:"temp_dir"`

	// Threads caps concurrent per-page work inside the PDF step.
	Threads int `yaml:"threads"`

	// TimeoutSeconds bounds a whole pipeline run. Zero disables the bound.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// KeepTemps retains intermediate OCR images under TempDir instead of
	// deleting them with their scratch directory.
	KeepTemps bool `yaml:"keep_temps"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		MaxImageSizeMB:      3,
		MaxRows:             1000,
		MaxCols:             100,
		OCRLanguage:         "eng",
		OCRQualityThreshold: 0.5,
		TempDir:             os.TempDir(),
		Threads:             runtime.NumCPU(),
		TimeoutSeconds:      300,
		KeepTemps:           false,
	}
}

// LoadConfig reads a YAML configuration file. Fields absent from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
