package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName   = "postbot"
	defaultXBaseURL      = "https://api.x.com"
	defaultXTimeout      = 30 * time.Second
	defaultProvider      = ProviderGemini
	defaultGeminiModel   = "gemini-1.5-flash"
	defaultClaudeModel   = "claude-3-5-haiku-latest"
	defaultMaxTokens     = 256
	defaultOverrideProb  = 0.3
	defaultPostHour      = 9
	defaultPostMinute    = 0
	defaultTimezone      = "Asia/Kolkata"
	defaultStatusPort    = 8095
	defaultLoggingLevel  = "info"
	maxHour              = 23
	maxMinute            = 59
	maxStatusPort        = 65535
	defaultConfigPath    = "config.yml"
	defaultCategoryFirst = "coding_tip"
	defaultCategoryNext  = "motivational_quote"
)

// Generation providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config holds the application configuration.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Twitter    TwitterConfig    `yaml:"twitter"`
	Generation GenerationConfig `yaml:"generation"`
	Content    ContentConfig    `yaml:"content"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Status     StatusConfig     `yaml:"status"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name  string `yaml:"name"`
	Debug bool   `env:"APP_DEBUG" yaml:"debug"`
}

// TwitterConfig holds the X API credentials and endpoint.
type TwitterConfig struct {
	APIKey            string        `env:"TWITTER_API_KEY"             yaml:"api_key"`
	APIKeySecret      string        `env:"TWITTER_API_KEY_SECRET"      yaml:"api_key_secret"`
	AccessToken       string        `env:"TWITTER_ACCESS_TOKEN"        yaml:"access_token"`
	AccessTokenSecret string        `env:"TWITTER_ACCESS_TOKEN_SECRET" yaml:"access_token_secret"`
	BaseURL           string        `env:"TWITTER_API_BASE_URL"        yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
}

// GenerationConfig selects and configures the text generation provider.
type GenerationConfig struct {
	Provider        string `env:"GENERATION_PROVIDER" yaml:"provider"`
	Model           string `env:"GENERATION_MODEL"    yaml:"model"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"      yaml:"gemini_api_key"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"   yaml:"anthropic_api_key"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}

// APIKey returns the key of the selected provider.
func (g *GenerationConfig) APIKey() string {
	if g.Provider == ProviderAnthropic {
		return g.AnthropicAPIKey
	}
	return g.GeminiAPIKey
}

// APIKeyEnv returns the environment variable that holds the selected provider's key.
func (g *GenerationConfig) APIKeyEnv() string {
	if g.Provider == ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// ContentConfig controls category rotation.
type ContentConfig struct {
	Categories          []string `env:"BOT_CATEGORIES"       yaml:"categories"`
	OverrideProbability float64  `env:"BOT_RANDOM_OVERRIDE"  yaml:"override_probability"`
}

// ScheduleConfig holds the daily posting slot.
type ScheduleConfig struct {
	Hour     int    `env:"BOT_POST_HOUR"   yaml:"hour"`
	Minute   int    `env:"BOT_POST_MINUTE" yaml:"minute"`
	Timezone string `env:"BOT_TIMEZONE"    yaml:"timezone"`
}

// Location resolves the configured timezone.
func (s *ScheduleConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// StatusConfig configures the status HTTP server of the serve command.
// Port 0 disables it.
type StatusConfig struct {
	Port int `env:"STATUS_PORT" yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return LoadWithDefaults[Config](path, setDefaults)
}

// DefaultPath returns CONFIG_PATH or config.yml.
func DefaultPath() string {
	return GetConfigPath(defaultConfigPath)
}

func setDefaults(cfg *Config) {
	cfg.Service = ServiceConfig{Name: defaultServiceName}
	cfg.Twitter = TwitterConfig{BaseURL: defaultXBaseURL, Timeout: defaultXTimeout}
	cfg.Generation = GenerationConfig{Provider: defaultProvider, MaxOutputTokens: defaultMaxTokens}
	cfg.Content = ContentConfig{
		Categories:          []string{defaultCategoryFirst, defaultCategoryNext},
		OverrideProbability: defaultOverrideProb,
	}
	cfg.Schedule = ScheduleConfig{Hour: defaultPostHour, Minute: defaultPostMinute, Timezone: defaultTimezone}
	cfg.Status = StatusConfig{Port: defaultStatusPort}
	cfg.Logging = LoggingConfig{Level: defaultLoggingLevel}
}

// Default returns a configuration holding only default values.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// GenerationModel returns the configured model or the provider default.
func (c *Config) GenerationModel() string {
	if c.Generation.Model != "" {
		return c.Generation.Model
	}
	if c.Generation.Provider == ProviderAnthropic {
		return defaultClaudeModel
	}
	return defaultGeminiModel
}

// Validate validates the configuration. Secrets are not checked here:
// their absence is reported by the publisher and the diagnose command.
func (c *Config) Validate() error {
	switch c.Generation.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return &ValidationError{Field: "generation.provider", Message: "must be one of: gemini, anthropic"}
	}
	if err := ValidateRange("schedule.hour", c.Schedule.Hour, 0, maxHour); err != nil {
		return err
	}
	if err := ValidateRange("schedule.minute", c.Schedule.Minute, 0, maxMinute); err != nil {
		return err
	}
	if _, err := c.Schedule.Location(); err != nil {
		return &ValidationError{Field: "schedule.timezone", Message: err.Error()}
	}
	if c.Content.OverrideProbability < 0 || c.Content.OverrideProbability > 1 {
		return &ValidationError{Field: "content.override_probability", Message: "must be between 0 and 1"}
	}
	if len(c.Content.Categories) == 0 {
		return &ValidationError{Field: "content.categories", Message: "is required"}
	}
	if err := ValidateRange("status.port", c.Status.Port, 0, maxStatusPort); err != nil {
		return err
	}
	return ValidateLogLevel(c.Logging.Level)
}
