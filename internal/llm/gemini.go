package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini generates text with Google's Gemini API.
type Gemini struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, opts Options) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client:    client,
		model:     opts.Model,
		maxTokens: int32(opts.MaxOutputTokens), //nolint:gosec // small configured value
	}, nil
}

// Generate sends prompt as a single user turn and returns the response text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	var genCfg *genai.GenerateContentConfig
	if g.maxTokens > 0 {
		genCfg = &genai.GenerateContentConfig{MaxOutputTokens: g.maxTokens}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Text(), nil
}

// Name returns "gemini:<model>".
func (g *Gemini) Name() string {
	return "gemini:" + g.model
}
