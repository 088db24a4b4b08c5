// Package config loads tool configuration from environment variables.
// CLI flags override anything loaded here.
package config

import (
	"os"

	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal/errors"
)

// Config represents the complete tool configuration
type Config struct {
	Input  InputConfig
	Output OutputConfig
}

// InputConfig holds settings for the BIF input file
type InputConfig struct {
	FilePath  string
	SheetName string
}

// OutputConfig holds settings for the per-category output files
type OutputConfig struct {
	Directory string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Input: InputConfig{
			FilePath:  os.Getenv("AMF_INPUT_FILE"),
			SheetName: getEnvOrDefault("AMF_SHEET_NAME", "AMF-BIF"),
		},
		Output: OutputConfig{
			Directory: getEnvOrDefault("AMF_OUTPUT_DIR", "."),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(config *Config) error {
	if config.Input.SheetName == "" {
		return errors.ConfigInvalid("AMF_SHEET_NAME must not be empty")
	}
	if config.Output.Directory == "" {
		return errors.ConfigInvalid("AMF_OUTPUT_DIR must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
