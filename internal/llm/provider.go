// Package llm adapts generation services to a single-prompt text interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonesrussell/north-cloud/postbot/internal/config"
)

// ErrMissingAPIKey is returned when the selected provider has no key.
var ErrMissingAPIKey = errors.New("generation API key not set")

// ErrEmptyResponse is returned when the service answers without text.
var ErrEmptyResponse = errors.New("generation response has no candidates")

// Provider produces one completion for one prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider and model in logs.
	Name() string
}

// Options holds the settings shared by every provider.
type Options struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	HTTPClient      *http.Client
	// BaseURL overrides the service endpoint. Empty uses the SDK default.
	BaseURL string
}

// New builds the provider selected by cfg. A missing key does not fail
// construction: the returned provider reports ErrMissingAPIKey on every
// call so generation falls back instead of aborting the run.
func New(ctx context.Context, cfg *config.Config, httpClient *http.Client) (Provider, error) {
	opts := Options{
		APIKey:          strings.TrimSpace(cfg.Generation.APIKey()),
		Model:           cfg.GenerationModel(),
		MaxOutputTokens: cfg.Generation.MaxOutputTokens,
		HTTPClient:      httpClient,
	}

	if opts.APIKey == "" {
		return Unavailable{
			Provider: cfg.Generation.Provider,
			Err:      fmt.Errorf("%w: %s", ErrMissingAPIKey, cfg.Generation.APIKeyEnv()),
		}, nil
	}

	switch cfg.Generation.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, opts)
	case config.ProviderAnthropic:
		return NewAnthropic(opts), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Generation.Provider)
	}
}

// Unavailable is a provider that always fails with Err.
type Unavailable struct {
	Provider string
	Err      error
}

// Generate returns u.Err.
func (u Unavailable) Generate(context.Context, string) (string, error) {
	return "", u.Err
}

// Name returns the configured provider name marked unavailable.
func (u Unavailable) Name() string {
	return u.Provider + ":unavailable"
}
