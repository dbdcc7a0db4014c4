package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Paths      PathsConfig
	Preprocess PreprocessConfig
	LLM        LLMConfig
}

// PathsConfig holds the filesystem layout shared by both stages.
type PathsConfig struct {
	ImagesDir       string
	PreprocessedDir string
	ResultsDir      string
}

// PreprocessConfig holds image-normalization parameters.
type PreprocessConfig struct {
	MaxWidth        int
	JPEGQuality     int
	ContinueOnError bool
}

// LLMConfig holds inference-endpoint configuration.
type LLMConfig struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			ImagesDir:       getEnv("IMAGES_DIR", "images"),
			PreprocessedDir: getEnv("PREPROCESSED_DIR", "preprocessed_images"),
			ResultsDir:      getEnv("RESULTS_DIR", "results"),
		},
		Preprocess: PreprocessConfig{
			MaxWidth:        getEnvAsInt("MAX_WIDTH", 4000),
			JPEGQuality:     getEnvAsInt("JPEG_QUALITY", 90),
			ContinueOnError: getEnvAsBool("CONTINUE_ON_ERROR", false),
		},
		LLM: LLMConfig{
			APIKey:   getEnv("FIREWORKS_API_KEY", ""),
			Endpoint: getEnv("FIREWORKS_ENDPOINT", ""),
			Model:    getEnv("FIREWORKS_MODEL", ""),
			Timeout:  getEnvAsDuration("LLM_TIMEOUT", 0),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the configuration shared by both stages.
func (c *Config) Validate() error {
	if c.Paths.ImagesDir == "" {
		return NewConfigurationError("IMAGES_DIR is required")
	}
	if c.Paths.PreprocessedDir == "" {
		return NewConfigurationError("PREPROCESSED_DIR is required")
	}
	if c.Paths.ResultsDir == "" {
		return NewConfigurationError("RESULTS_DIR is required")
	}
	if c.Preprocess.MaxWidth <= 0 {
		return NewConfigurationError("MAX_WIDTH must be positive")
	}
	if q := c.Preprocess.JPEGQuality; q < 1 || q > 100 {
		return NewConfigurationError("JPEG_QUALITY must be in 1..100")
	}
	return nil
}

// ValidateLLM checks the credentials the extraction stage needs before any
// network activity. The preprocessing stage does not require them.
func (c *Config) ValidateLLM() error {
	if c.LLM.APIKey == "" {
		return NewConfigurationError("FIREWORKS_API_KEY is required")
	}
	if c.LLM.Endpoint == "" {
		return NewConfigurationError("FIREWORKS_ENDPOINT is required")
	}
	if c.LLM.Model == "" {
		return NewConfigurationError("FIREWORKS_MODEL is required")
	}
	return nil
}
