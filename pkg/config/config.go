// Package config provides configuration loading and management for the
// ellipse detector. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ericfarng/yaed/pkg/ellipse"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// ArcSegmentation parameters
	ArcSegmentation struct {
		// MinArcPixelCount rejects connected components smaller than this
		// many pixels before they reach convexity classification.
		MinArcPixelCount int `yaml:"minArcPixelCount"`

		// MinBoundingBoxSize rejects arcs whose bounding box is smaller
		// than this on either side.
		MinBoundingBoxSize int `yaml:"minBoundingBoxSize"`

		// CheckAllArcPointsForStraightLine controls whether straight-line
		// rejection samples 3 points per arc or every point.
		CheckAllArcPointsForStraightLine bool `yaml:"checkAllArcPointsForStraightLine"`
	} `yaml:"arcSegmentation"`

	// Triplet parameters
	Triplet struct {
		// MutualPositionBoundingBoxPixelTolerance is the slack allowed
		// when testing whether two arcs' bounding boxes are adjacent.
		MutualPositionBoundingBoxPixelTolerance int `yaml:"mutualPositionBoundingBoxPixelTolerance"`

		// NumberOfParallelChords controls how many parallel chords are
		// sampled per arc pair when estimating a candidate center.
		NumberOfParallelChords int `yaml:"numberOfParallelChords"`

		// CenterDistancePercent bounds how far apart two chord-pair
		// center estimates may be, as a fraction of image size, before
		// the triplet is rejected.
		CenterDistancePercent float64 `yaml:"centerDistancePercent"`
	} `yaml:"triplet"`

	// Validation parameters
	Validation struct {
		// DistanceToEllipseContour is the tolerance on |h-1|, where h is a
		// point's value of the normalized ellipse equation, for the point
		// to count as on-contour.
		DistanceToEllipseContour float64 `yaml:"distanceToEllipseContour"`

		// DistanceToEllipseContourScoreCutoff is the minimum fraction of
		// on-contour points required to accept a candidate.
		DistanceToEllipseContourScoreCutoff float64 `yaml:"distanceToEllipseContourScoreCutoff"`

		// ReliabilityCutoff is the minimum angular-coverage reliability
		// required to accept a candidate.
		ReliabilityCutoff float64 `yaml:"reliabilityCutoff"`
	} `yaml:"validation"`

	// ParameterEstimation parameters
	ParameterEstimation struct {
		// UseMedianCenter selects the median-of-candidates center
		// estimator instead of the mean.
		UseMedianCenter bool `yaml:"useMedianCenter"`
	} `yaml:"parameterEstimation"`

	// Output parameters
	Output struct {
		// Verbose controls whether the CLI demo prints numbered
		// progress lines while detecting.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values, matching
// ellipse.DefaultOptions().
func DefaultConfig() *Config {
	cfg := &Config{}
	opts := ellipse.DefaultOptions()

	cfg.ArcSegmentation.MinArcPixelCount = opts.MinArcPixelCount
	cfg.ArcSegmentation.MinBoundingBoxSize = opts.MinBoundingBoxSize
	cfg.ArcSegmentation.CheckAllArcPointsForStraightLine = opts.CheckAllArcPointsForStraightLine

	cfg.Triplet.MutualPositionBoundingBoxPixelTolerance = opts.MutualPositionBoundingBoxPixelTolerance
	cfg.Triplet.NumberOfParallelChords = opts.NumberOfParallelChords
	cfg.Triplet.CenterDistancePercent = float64(opts.CenterDistancePercent)

	cfg.Validation.DistanceToEllipseContour = float64(opts.DistanceToEllipseContour)
	cfg.Validation.DistanceToEllipseContourScoreCutoff = float64(opts.DistanceToEllipseContourScoreCutoff)
	cfg.Validation.ReliabilityCutoff = float64(opts.ReliabilityCutoff)

	cfg.ParameterEstimation.UseMedianCenter = opts.UseMedianCenter

	cfg.Output.Verbose = false

	return cfg
}

// Options converts cfg into the ellipse.Options the detector consumes.
func (cfg *Config) Options() ellipse.Options {
	return ellipse.Options{
		MinArcPixelCount:                        cfg.ArcSegmentation.MinArcPixelCount,
		MinBoundingBoxSize:                      cfg.ArcSegmentation.MinBoundingBoxSize,
		CheckAllArcPointsForStraightLine:         cfg.ArcSegmentation.CheckAllArcPointsForStraightLine,
		MutualPositionBoundingBoxPixelTolerance:  cfg.Triplet.MutualPositionBoundingBoxPixelTolerance,
		NumberOfParallelChords:                   cfg.Triplet.NumberOfParallelChords,
		CenterDistancePercent:                    float32(cfg.Triplet.CenterDistancePercent),
		DistanceToEllipseContour:                 float32(cfg.Validation.DistanceToEllipseContour),
		DistanceToEllipseContourScoreCutoff:      float32(cfg.Validation.DistanceToEllipseContourScoreCutoff),
		ReliabilityCutoff:                        float32(cfg.Validation.ReliabilityCutoff),
		UseMedianCenter:                          cfg.ParameterEstimation.UseMedianCenter,
	}
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
