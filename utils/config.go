package utils

import (
	"fmt"
)

// Config holds demo run configuration. The loss itself performs no
// validation; these checks live at the CLI boundary.
type Config struct {
	BatchSize   int
	NumClasses  int
	FeatureDim  int
	Temperature float64
	Batches     int
}

// ValidateConfig validates a demo run configuration.
func ValidateConfig(config *Config) error {
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}

	if config.NumClasses < 1 {
		return fmt.Errorf("at least one class is required")
	}

	if config.FeatureDim <= 0 {
		return fmt.Errorf("feature dimension must be positive")
	}

	if config.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive")
	}

	if config.Batches <= 0 {
		return fmt.Errorf("number of batches must be positive")
	}

	return nil
}
