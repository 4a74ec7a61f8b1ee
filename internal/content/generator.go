package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
)

// Post length limits, counted in characters (runes).
const (
	MaxLength  = 280
	Ellipsis   = "..."
	truncateAt = MaxLength - len(Ellipsis)
)

// ErrGeneration marks a failed call to the generation service. It never
// leaves Generate; it is only reported through Content.FallbackReason.
var ErrGeneration = errors.New("content generation failed")

// TextGenerator produces a single completion for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Content is the text chosen for one post.
type Content struct {
	Text     string
	Category Category
	// UsedFallback is true when Text is the category's static fallback.
	UsedFallback bool
	// FallbackReason wraps ErrGeneration when UsedFallback is set.
	FallbackReason error
}

// Generator turns a category into post text.
type Generator struct {
	llm TextGenerator
	log logger.Logger
}

// NewGenerator creates a generator backed by llm. A nil llm makes every
// call fall back.
func NewGenerator(llm TextGenerator, log logger.Logger) *Generator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Generator{llm: llm, log: log}
}

// Generate asks the generation service for a post in category c and
// returns it cleaned up and within MaxLength. Any failure yields the
// category's fallback text instead; Generate never fails.
func (g *Generator) Generate(ctx context.Context, c Category) Content {
	category := c.OrDefault()
	log := logger.FromContextOr(ctx, g.log).With(logger.String("category", category.String()))
	log.Info("Generating content")

	text, err := g.call(ctx, Prompt(category))
	if err != nil {
		reason := fmt.Errorf("%w: %w", ErrGeneration, err)
		fallback := Fallback(category)
		log.Error("Generation failed, using fallback content",
			logger.Error(reason),
			logger.String("fallback", fallback),
		)
		return Content{
			Text:           fallback,
			Category:       category,
			UsedFallback:   true,
			FallbackReason: reason,
		}
	}

	text = Normalize(text)
	log.Info("Generated content", logger.String("text", text), logger.Int("length", utf8.RuneCountInString(text)))

	return Content{Text: text, Category: category}
}

func (g *Generator) call(ctx context.Context, prompt string) (string, error) {
	if g.llm == nil {
		return "", errors.New("no generation provider configured")
	}
	return g.llm.Generate(ctx, prompt)
}

// Normalize trims surrounding whitespace, strips one leading and one
// trailing quote character and truncates the result to MaxLength.
func Normalize(text string) string {
	return Truncate(StripQuotes(strings.TrimSpace(text)))
}

// StripQuotes removes a single leading and a single trailing `"` or `'`.
func StripQuotes(text string) string {
	if text != "" && isQuote(text[0]) {
		text = text[1:]
	}
	if text != "" && isQuote(text[len(text)-1]) {
		text = text[:len(text)-1]
	}
	return text
}

func isQuote(b byte) bool {
	return b == '"' || b == '\''
}

// Truncate cuts text longer than MaxLength characters to its first
// MaxLength-3 characters followed by Ellipsis.
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:truncateAt]) + Ellipsis
}
