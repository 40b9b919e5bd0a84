package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Detection DetectionConfig `json:"detection"`
	Preview   PreviewConfig   `json:"preview"`
	Output    OutputConfig    `json:"output"`
}

// DetectionConfig holds configuration for the boundary scan
type DetectionConfig struct {
	StepSize        int     `json:"step_size"`
	WindowRadius    int     `json:"window_radius"`
	Tolerance       int     `json:"tolerance"`
	BackgroundRatio float64 `json:"background_ratio"`
	BackgroundColor string  `json:"background_color"`
	MinArea         float64 `json:"min_area_threshold"`
	MinDimension    float64 `json:"min_dimension_threshold"`
}

// PreviewConfig holds configuration for preview rendering
type PreviewConfig struct {
	MaxDim  int    `json:"max_dim"`
	Format  string `json:"format"`
	Quality int    `json:"quality"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	DefaultFormat string `json:"default_format"`
	OutputDir     string `json:"output_dir"`
	Prefix        string `json:"prefix"`
	Suffix        string `json:"suffix"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Detection: DetectionConfig{
			StepSize:        2,
			WindowRadius:    3,
			Tolerance:       30,
			BackgroundRatio: 0.7,
			BackgroundColor: "white",
			MinArea:         2500,
			MinDimension:    30,
		},
		Preview: PreviewConfig{
			MaxDim:  200,
			Format:  "jpg",
			Quality: 85,
		},
		Output: OutputConfig{
			DefaultFormat: "jpg",
			OutputDir:     "./output",
			Prefix:        "",
			Suffix:        "_preview",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Detection.StepSize < 1 {
		return fmt.Errorf("detection.step_size must be positive")
	}

	if c.Detection.WindowRadius < 0 {
		return fmt.Errorf("detection.window_radius must not be negative")
	}

	if c.Detection.Tolerance < 0 || c.Detection.Tolerance > 255 {
		return fmt.Errorf("detection.tolerance must be between 0 and 255")
	}

	if c.Detection.BackgroundRatio < 0 || c.Detection.BackgroundRatio > 1 {
		return fmt.Errorf("detection.background_ratio must be between 0 and 1")
	}

	switch c.Detection.BackgroundColor {
	case "white", "black", "auto":
	default:
		return fmt.Errorf("detection.background_color must be white, black or auto")
	}

	if c.Detection.MinArea < 0 {
		return fmt.Errorf("detection.min_area_threshold must not be negative")
	}

	if c.Detection.MinDimension < 0 {
		return fmt.Errorf("detection.min_dimension_threshold must not be negative")
	}

	if c.Preview.MaxDim < 1 {
		return fmt.Errorf("preview.max_dim must be positive")
	}

	if c.Preview.Quality < 1 || c.Preview.Quality > 100 {
		return fmt.Errorf("preview.quality must be between 1 and 100")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "scanview", "config.json")
}
