package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, defaultServiceName, cfg.Service.Name)
	assert.Equal(t, defaultXBaseURL, cfg.Twitter.BaseURL)
	assert.Equal(t, defaultXTimeout, cfg.Twitter.Timeout)
	assert.Equal(t, ProviderGemini, cfg.Generation.Provider)
	assert.Equal(t, []string{"coding_tip", "motivational_quote"}, cfg.Content.Categories)
	assert.InDelta(t, 0.3, cfg.Content.OverrideProbability, 1e-9)
	assert.Equal(t, 9, cfg.Schedule.Hour)
	assert.Equal(t, 0, cfg.Schedule.Minute)
	assert.Equal(t, "Asia/Kolkata", cfg.Schedule.Timezone)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestGenerationModel(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, defaultGeminiModel, cfg.GenerationModel())

	cfg.Generation.Provider = ProviderAnthropic
	assert.Equal(t, defaultClaudeModel, cfg.GenerationModel())
	assert.Equal(t, "ANTHROPIC_API_KEY", cfg.Generation.APIKeyEnv())

	cfg.Generation.Model = "custom-model"
	assert.Equal(t, "custom-model", cfg.GenerationModel())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "hour too large", mutate: func(c *Config) { c.Schedule.Hour = 24 }, wantField: "schedule.hour"},
		{name: "negative minute", mutate: func(c *Config) { c.Schedule.Minute = -1 }, wantField: "schedule.minute"},
		{name: "unknown timezone", mutate: func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }, wantField: "schedule.timezone"},
		{name: "unknown provider", mutate: func(c *Config) { c.Generation.Provider = "markov" }, wantField: "generation.provider"},
		{name: "probability above one", mutate: func(c *Config) { c.Content.OverrideProbability = 1.5 }, wantField: "content.override_probability"},
		{name: "no categories", mutate: func(c *Config) { c.Content.Categories = nil }, wantField: "content.categories"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantField: "logging.level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.wantField, vErr.Field)
		})
	}
}

func TestValidate_MidnightIsAllowed(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Schedule.Hour = 0
	cfg.Schedule.Timezone = "UTC"

	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("BOT_POST_HOUR", "0")
	t.Setenv("BOT_POST_MINUTE", "30")
	t.Setenv("BOT_TIMEZONE", "Europe/Berlin")
	t.Setenv("TWITTER_API_KEY", "key")
	t.Setenv("BOT_CATEGORIES", "tech_fact, career_advice")
	t.Setenv("BOT_RANDOM_OVERRIDE", "0")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Schedule.Hour)
	assert.Equal(t, 30, cfg.Schedule.Minute)
	assert.Equal(t, "Europe/Berlin", cfg.Schedule.Timezone)
	assert.Equal(t, "key", cfg.Twitter.APIKey)
	assert.Equal(t, []string{"tech_fact", "career_advice"}, cfg.Content.Categories)
	assert.Zero(t, cfg.Content.OverrideProbability)
	assert.Equal(t, defaultXBaseURL, cfg.Twitter.BaseURL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "absent.env"))
	t.Setenv("BOT_POST_MINUTE", "45")

	path := filepath.Join(dir, "config.yml")
	yml := `
schedule:
  hour: 7
  minute: 15
  timezone: UTC
twitter:
  timeout: 5s
generation:
  provider: anthropic
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Schedule.Hour)
	assert.Equal(t, 45, cfg.Schedule.Minute, "env wins over file")
	assert.Equal(t, "UTC", cfg.Schedule.Timezone)
	assert.Equal(t, 5*time.Second, cfg.Twitter.Timeout)
	assert.Equal(t, ProviderAnthropic, cfg.Generation.Provider)
	assert.Equal(t, defaultLoggingLevel, cfg.Logging.Level, "unset values keep defaults")
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "bot.env")
	require.NoError(t, os.WriteFile(envPath, []byte("POSTBOT_TEST_ONLY_KEY=from-file\n"), 0o600))
	t.Setenv("ENV_FILE", envPath)
	t.Cleanup(func() { _ = os.Unsetenv("POSTBOT_TEST_ONLY_KEY") })

	_, err := Load(filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "from-file", os.Getenv("POSTBOT_TEST_ONLY_KEY"))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "absent.env"))

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("schedule: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
