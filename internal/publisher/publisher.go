// Package publisher posts text to X and classifies what went wrong.
package publisher

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/jonesrussell/north-cloud/postbot/internal/x"
)

// PostCreator creates a post on the platform.
type PostCreator interface {
	CreatePost(ctx context.Context, text string) (*x.Post, error)
}

// PostResult describes a published post.
type PostResult struct {
	ID   string
	Text string
}

// Publisher sends post text to the platform.
type Publisher struct {
	creds  x.Credentials
	client PostCreator
	log    logger.Logger
}

// New creates a publisher. creds are only checked for presence; client
// does the signing.
func New(creds x.Credentials, client PostCreator, log logger.Logger) *Publisher {
	if log == nil {
		log = logger.NewNop()
	}
	return &Publisher{creds: creds, client: client, log: log}
}

// Post publishes text unchanged. Missing credentials fail with
// ErrConfiguration before any request is made. Platform failures are
// classified, logged with guidance and returned.
func (p *Publisher) Post(ctx context.Context, text string) (*PostResult, error) {
	log := logger.FromContextOr(ctx, p.log)

	if missing := p.creds.Missing(); len(missing) > 0 {
		err := fmt.Errorf("%w: missing %s", ErrConfiguration, strings.Join(missing, ", "))
		log.Error("Cannot post", logger.Error(err), logger.String("guidance", Guidance(err)))
		return nil, err
	}

	log.Info("Posting", logger.String("text", text), logger.Int("length", utf8.RuneCountInString(text)))

	post, err := p.client.CreatePost(ctx, text)
	if err != nil {
		classified := Classify(err)
		fields := []logger.Field{
			logger.Error(classified),
			logger.Int("status_code", StatusCode(err)),
		}
		if g := Guidance(classified); g != "" {
			fields = append(fields, logger.String("guidance", g))
		}
		log.Error("Post failed", fields...)
		return nil, classified
	}

	log.Info("Posted successfully", logger.String("post_id", post.ID))
	return &PostResult{ID: post.ID, Text: text}, nil
}
