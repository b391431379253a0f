package logger

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level (debug, info, warn, error, fatal).
	Level string `env:"LOG_LEVEL" yaml:"level"`
	// Format is kept for config compatibility; output is always JSON.
	Format string `env:"LOG_FORMAT" yaml:"format"`
	// Development disables sampling so every entry is visible.
	Development bool `yaml:"development"`
	// OutputPaths lists URLs or file paths to write logging output to.
	OutputPaths []string `yaml:"output_paths"`
}

// Default configuration values.
const (
	DefaultLevel  = "info"
	DefaultFormat = "json"
)

// SetDefaults applies default values to the config if not set.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if len(c.OutputPaths) == 0 {
		// stderr keeps stdout free for the CLI's JSON results.
		c.OutputPaths = []string{"stderr"}
	}
}
