package config

import "fmt"

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateLogLevel checks if a log level is valid.
func ValidateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return nil
	default:
		return &ValidationError{Field: "logging.level", Message: "must be one of: debug, info, warn, error, fatal"}
	}
}

// Validate checks cross-field constraints after defaults are applied.
func (c *Config) Validate() error {
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.LLM.Enabled && c.LLM.APIKey == "" {
		return &ValidationError{Field: "llm.api_key", Message: "is required when llm.enabled is true"}
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return &ValidationError{Field: "redis.address", Message: "is required when redis.enabled is true"}
	}
	if c.Extraction.DefaultHour < 0 || c.Extraction.DefaultHour > maxHourOfDay {
		return &ValidationError{Field: "extraction.default_hour", Message: "must be between 0 and 23"}
	}
	if _, err := c.Extraction.Location(); err != nil {
		return &ValidationError{Field: "extraction.timezone", Message: err.Error()}
	}
	if c.Paid.MembershipPriceCeiling > c.Paid.LargePriceThreshold {
		return &ValidationError{
			Field:   "paid.membership_price_ceiling",
			Message: "must not exceed paid.large_price_threshold",
		}
	}
	if c.Processor.Concurrency < 1 || c.Processor.Concurrency > maxConcurrency {
		return &ValidationError{Field: "processor.concurrency", Message: "must be between 1 and 64"}
	}
	return nil
}
