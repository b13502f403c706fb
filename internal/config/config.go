package config

import (
	"os"
	"strconv"

	"sheetsense/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	AI        AIConfig
	Detection DetectionConfig
	Hierarchy HierarchyConfig
	Workers   WorkerConfig
}

// AIConfig holds the embedding provider settings. The semantic scorer is
// optional: an empty key disables it and the rule scorer runs alone.
type AIConfig struct {
	OpenAIKey       string
	SemanticEnabled bool
}

// DetectionConfig holds the header detection tuning knobs.
type DetectionConfig struct {
	MaxRowsToScan    int
	RuleMinScore     float64
	SemanticMinScore float64
	MaxHeaderRows    int
}

// HierarchyConfig holds the column-matching terms the structurer keys on.
type HierarchyConfig struct {
	AnchorMatch string
	GroupMatch  string
	SerialMatch string
}

// WorkerConfig holds concurrency settings.
type WorkerConfig struct {
	SheetScorers int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		AI:        loadAIConfig(),
		Detection: loadDetectionConfig(),
		Hierarchy: loadHierarchyConfig(),
		Workers:   loadWorkerConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadAIConfig() AIConfig {
	key := os.Getenv("OPENAI_API_KEY")
	return AIConfig{
		OpenAIKey:       key,
		SemanticEnabled: key != "" && getEnvBoolOrDefault("SHEETSENSE_SEMANTIC", true),
	}
}

func loadDetectionConfig() DetectionConfig {
	return DetectionConfig{
		MaxRowsToScan:    getEnvIntOrDefault("SHEETSENSE_SCAN_ROWS", 20),
		RuleMinScore:     getEnvFloatOrDefault("SHEETSENSE_RULE_MIN_SCORE", 2.0),
		SemanticMinScore: getEnvFloatOrDefault("SHEETSENSE_SEMANTIC_MIN_SCORE", 0.3),
		MaxHeaderRows:    getEnvIntOrDefault("SHEETSENSE_MAX_HEADER_ROWS", 3),
	}
}

func loadHierarchyConfig() HierarchyConfig {
	return HierarchyConfig{
		AnchorMatch: getEnvOrDefault("SHEETSENSE_ANCHOR_COLUMN", "项目名称"),
		GroupMatch:  getEnvOrDefault("SHEETSENSE_GROUP_COLUMN", "功能区"),
		SerialMatch: getEnvOrDefault("SHEETSENSE_SERIAL_COLUMN", "序号"),
	}
}

func loadWorkerConfig() WorkerConfig {
	return WorkerConfig{
		SheetScorers: getEnvIntOrDefault("SHEETSENSE_SHEET_WORKERS", 4),
	}
}

func validateConfig(config *Config) error {
	if config.Detection.MaxRowsToScan <= 0 {
		return errors.ConfigInvalid("SHEETSENSE_SCAN_ROWS must be positive")
	}
	if config.Detection.MaxHeaderRows <= 0 {
		return errors.ConfigInvalid("SHEETSENSE_MAX_HEADER_ROWS must be positive")
	}
	if config.Workers.SheetScorers <= 0 {
		return errors.ConfigInvalid("SHEETSENSE_SHEET_WORKERS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
