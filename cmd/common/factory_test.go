package common_test

import (
	"context"
	"testing"

	"github.com/jonesrussell/north-cloud/postbot/cmd/common"
	"github.com/jonesrussell/north-cloud/postbot/internal/config"
	"github.com/jonesrussell/north-cloud/postbot/internal/content"
	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecrets_FollowsProvider(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Twitter.APIKey = "k"
	cfg.Generation.GeminiAPIKey = "g"

	secrets := common.Secrets(cfg)
	require.Len(t, secrets, 5)
	assert.Equal(t, "GEMINI_API_KEY", secrets[4].Name)
	assert.Equal(t, "g", secrets[4].Value)

	cfg.Generation.Provider = config.ProviderAnthropic
	assert.Equal(t, "ANTHROPIC_API_KEY", common.Secrets(cfg)[4].Name)
}

func TestRotator_FromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Content.Categories = []string{"tech_fact", "career_advice"}
	cfg.Content.OverrideProbability = 0

	r, err := common.Rotator(cfg)
	require.NoError(t, err)
	assert.Equal(t, content.TechFact, r.Next())
	assert.Equal(t, content.CareerAdvice, r.Next())

	cfg.Content.Categories = []string{"limericks"}
	_, err = common.Rotator(cfg)
	require.Error(t, err)
}

func TestBot_WithoutKeysStillBuilds(t *testing.T) {
	t.Parallel()

	deps := common.CommandDeps{Config: config.Default(), Logger: logger.NewNop()}
	require.NoError(t, deps.Validate())

	b, err := common.Bot(context.Background(), deps, nil)
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestCommandDeps_Validate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, common.CommandDeps{Config: config.Default()}.Validate(), common.ErrLoggerRequired)
	require.ErrorIs(t, common.CommandDeps{Logger: logger.NewNop()}.Validate(), common.ErrConfigRequired)
}
