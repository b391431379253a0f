package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName     = "freefood"
	defaultServiceVersion  = "1.0.0"
	defaultConfigPath      = "config.yml"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultRedisAddress    = "localhost:6379"
	defaultLLMModel        = "claude-3-5-haiku-latest"
	defaultLLMTimeout      = 10 * time.Second
	defaultLLMMaxTokens    = 256
	defaultLLMCacheTTL     = 7 * 24 * time.Hour
	defaultLLMRPS          = 2
	defaultLLMBurst        = 4
	defaultBreakerFailures = 5
	defaultBreakerCooldown = time.Minute
	defaultTimezone        = "Europe/Dublin"
	defaultEventHour       = 18
	defaultPastTolerance   = 24 * time.Hour
	defaultFutureWindow    = 90 * 24 * time.Hour
	defaultLargePrice      = 10.0
	defaultMembershipPrice = 5.0
	defaultConcurrency     = 4
	maxConcurrency         = 64
	maxHourOfDay           = 23
	defaultMaxVisionImages = 3
)

// DefaultPath is the config file read when CONFIG_PATH is unset.
const DefaultPath = defaultConfigPath

// Config holds all configuration for the extractor.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Logging    LoggingConfig    `yaml:"logging"`
	Redis      RedisConfig      `yaml:"redis"`
	LLM        LLMConfig        `yaml:"llm"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Paid       PaidConfig       `yaml:"paid"`
	Processor  ProcessorConfig  `yaml:"processor"`
}

// ServiceConfig holds service-level identity.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Debug   bool   `env:"APP_DEBUG" yaml:"debug"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// RedisConfig holds the hint cache connection.
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED"  yaml:"enabled"`
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB"       yaml:"db"`
}

// LLMConfig holds the fallback classifier settings.
type LLMConfig struct {
	Enabled         bool          `env:"LLM_ENABLED"        yaml:"enabled"`
	APIKey          string        `env:"ANTHROPIC_API_KEY"  yaml:"api_key"`
	Model           string        `env:"LLM_MODEL"          yaml:"model"`
	Timeout         time.Duration `env:"LLM_TIMEOUT"        yaml:"timeout"`
	MaxTokens       int           `yaml:"max_tokens"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	VisionEnabled   bool          `env:"LLM_VISION_ENABLED" yaml:"vision_enabled"`
	MaxVisionImages int           `yaml:"max_vision_images"`
	RequestsPerSec  float64       `env:"LLM_RPS"            yaml:"requests_per_second"`
	Burst           int           `yaml:"burst"`
	BreakerFailures int           `yaml:"breaker_failures"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown"`
}

// ExtractionConfig holds date/time resolution settings.
type ExtractionConfig struct {
	Timezone      string        `env:"EXTRACTION_TIMEZONE" yaml:"timezone"`
	DefaultHour   int           `yaml:"default_hour"`
	PastTolerance time.Duration `yaml:"past_tolerance"`
	FutureWindow  time.Duration `yaml:"future_window"`
}

// Location resolves the configured timezone.
func (c *ExtractionConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// PaidConfig holds the paid-event price thresholds in euro.
type PaidConfig struct {
	LargePriceThreshold    float64 `yaml:"large_price_threshold"`
	MembershipPriceCeiling float64 `yaml:"membership_price_ceiling"`
}

// ProcessorConfig holds batch processing settings.
type ProcessorConfig struct {
	Concurrency int `env:"PROCESSOR_CONCURRENCY" yaml:"concurrency"`
}

// Load loads configuration from path.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with every default applied and no file or
// environment input.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setLoggingDefaults(&cfg.Logging)
	setRedisDefaults(&cfg.Redis)
	setLLMDefaults(&cfg.LLM)
	setExtractionDefaults(&cfg.Extraction)
	setPaidDefaults(&cfg.Paid)
	if cfg.Processor.Concurrency == 0 {
		cfg.Processor.Concurrency = defaultConcurrency
	}
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.Address == "" {
		r.Address = defaultRedisAddress
	}
}

func setLLMDefaults(l *LLMConfig) {
	if l.Model == "" {
		l.Model = defaultLLMModel
	}
	if l.Timeout == 0 {
		l.Timeout = defaultLLMTimeout
	}
	if l.MaxTokens == 0 {
		l.MaxTokens = defaultLLMMaxTokens
	}
	if l.CacheTTL == 0 {
		l.CacheTTL = defaultLLMCacheTTL
	}
	if l.MaxVisionImages == 0 {
		l.MaxVisionImages = defaultMaxVisionImages
	}
	if l.RequestsPerSec == 0 {
		l.RequestsPerSec = defaultLLMRPS
	}
	if l.Burst == 0 {
		l.Burst = defaultLLMBurst
	}
	if l.BreakerFailures == 0 {
		l.BreakerFailures = defaultBreakerFailures
	}
	if l.BreakerCooldown == 0 {
		l.BreakerCooldown = defaultBreakerCooldown
	}
}

func setExtractionDefaults(e *ExtractionConfig) {
	if e.Timezone == "" {
		e.Timezone = defaultTimezone
	}
	if e.DefaultHour == 0 {
		e.DefaultHour = defaultEventHour
	}
	if e.PastTolerance == 0 {
		e.PastTolerance = defaultPastTolerance
	}
	if e.FutureWindow == 0 {
		e.FutureWindow = defaultFutureWindow
	}
}

func setPaidDefaults(p *PaidConfig) {
	if p.LargePriceThreshold == 0 {
		p.LargePriceThreshold = defaultLargePrice
	}
	if p.MembershipPriceCeiling == 0 {
		p.MembershipPriceCeiling = defaultMembershipPrice
	}
}
