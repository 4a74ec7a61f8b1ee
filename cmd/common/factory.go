package common

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonesrussell/north-cloud/postbot/internal/bot"
	"github.com/jonesrussell/north-cloud/postbot/internal/config"
	"github.com/jonesrussell/north-cloud/postbot/internal/content"
	"github.com/jonesrussell/north-cloud/postbot/internal/diagnostics"
	"github.com/jonesrussell/north-cloud/postbot/internal/httpclient"
	"github.com/jonesrussell/north-cloud/postbot/internal/llm"
	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/jonesrussell/north-cloud/postbot/internal/publisher"
	"github.com/jonesrussell/north-cloud/postbot/internal/x"
)

// Credentials extracts the X credentials from cfg.
func Credentials(cfg *config.Config) x.Credentials {
	return x.Credentials{
		APIKey:            cfg.Twitter.APIKey,
		APIKeySecret:      cfg.Twitter.APIKeySecret,
		AccessToken:       cfg.Twitter.AccessToken,
		AccessTokenSecret: cfg.Twitter.AccessTokenSecret,
	}
}

// Secrets lists the five secrets checked by diagnose.
func Secrets(cfg *config.Config) []diagnostics.Secret {
	return []diagnostics.Secret{
		{Name: "TWITTER_API_KEY", Value: cfg.Twitter.APIKey},
		{Name: "TWITTER_API_KEY_SECRET", Value: cfg.Twitter.APIKeySecret},
		{Name: "TWITTER_ACCESS_TOKEN", Value: cfg.Twitter.AccessToken},
		{Name: "TWITTER_ACCESS_TOKEN_SECRET", Value: cfg.Twitter.AccessTokenSecret},
		{Name: cfg.Generation.APIKeyEnv(), Value: cfg.Generation.APIKey()},
	}
}

// HTTPClient creates the shared outbound client.
func HTTPClient(cfg *config.Config) *http.Client {
	return httpclient.New(httpclient.Config{Timeout: cfg.Twitter.Timeout})
}

// XClient creates the signed X API client.
func XClient(cfg *config.Config, hc *http.Client) *x.Client {
	return x.NewClient(Credentials(cfg), cfg.Twitter.BaseURL, hc)
}

// Generator creates the content generator for the configured provider.
func Generator(ctx context.Context, deps CommandDeps, hc *http.Client) (*content.Generator, error) {
	provider, err := llm.New(ctx, deps.Config, hc)
	if err != nil {
		return nil, fmt.Errorf("create generation provider: %w", err)
	}
	deps.Logger.Debug("Generation provider ready", logger.String("provider", provider.Name()))
	return content.NewGenerator(provider, deps.Logger), nil
}

// Rotator creates the category rotator from the configured categories.
func Rotator(cfg *config.Config) (*content.Rotator, error) {
	categories, err := content.ParseCategories(cfg.Content.Categories)
	if err != nil {
		return nil, fmt.Errorf("content.categories: %w", err)
	}
	return content.NewRotator(categories, content.WithOverrideProbability(cfg.Content.OverrideProbability)), nil
}

// Bot wires rotator, generator and publisher.
func Bot(ctx context.Context, deps CommandDeps, rec bot.Recorder) (*bot.Bot, error) {
	hc := HTTPClient(deps.Config)

	rotator, err := Rotator(deps.Config)
	if err != nil {
		return nil, err
	}
	gen, err := Generator(ctx, deps, hc)
	if err != nil {
		return nil, err
	}
	pub := publisher.New(Credentials(deps.Config), XClient(deps.Config, hc), deps.Logger)

	return bot.New(rotator, gen, pub, bot.WithRecorder(rec), bot.WithLogger(deps.Logger)), nil
}
