// Package bot runs one generate-and-post cycle.
package bot

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonesrussell/north-cloud/postbot/internal/content"
	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/jonesrussell/north-cloud/postbot/internal/publisher"
)

// CategoryPicker chooses the category of the next post.
type CategoryPicker interface {
	Next() content.Category
}

// ContentGenerator produces post text for a category. It never fails.
type ContentGenerator interface {
	Generate(ctx context.Context, c content.Category) content.Content
}

// Publisher posts text.
type Publisher interface {
	Post(ctx context.Context, text string) (*publisher.PostResult, error)
}

// Recorder receives run metrics.
type Recorder interface {
	RecordGeneration(category string, usedFallback bool)
	RecordPost(err error, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordGeneration(string, bool)   {}
func (nopRecorder) RecordPost(error, time.Duration) {}

// Bot ties category selection, generation and publishing together.
type Bot struct {
	picker    CategoryPicker
	generator ContentGenerator
	publisher Publisher
	recorder  Recorder
	log       logger.Logger
}

// Option configures a Bot.
type Option func(*Bot)

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(b *Bot) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(b *Bot) {
		if log != nil {
			b.log = log
		}
	}
}

// New creates a bot.
func New(picker CategoryPicker, gen ContentGenerator, pub Publisher, opts ...Option) *Bot {
	b := &Bot{
		picker:    picker,
		generator: gen,
		publisher: pub,
		recorder:  nopRecorder{},
		log:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run picks a category, generates text for it and posts the text.
// Publishing errors are returned unchanged; generation never fails.
func (b *Bot) Run(ctx context.Context) (*publisher.PostResult, error) {
	start := time.Now()
	log := b.log.With(logger.String("run_id", uuid.NewString()))
	ctx = logger.WithContext(ctx, log)

	category := b.picker.Next()
	log.Info("Starting post run", logger.String("category", category.String()))

	generated := b.generator.Generate(ctx, category)
	b.recorder.RecordGeneration(generated.Category.String(), generated.UsedFallback)

	result, err := b.publisher.Post(ctx, generated.Text)
	duration := time.Since(start)
	b.recorder.RecordPost(err, duration)
	if err != nil {
		return nil, err
	}

	log.Info("Post run completed",
		logger.String("post_id", result.ID),
		logger.String("category", generated.Category.String()),
		logger.Bool("used_fallback", generated.UsedFallback),
		logger.Duration("duration", duration),
	)
	return result, nil
}
