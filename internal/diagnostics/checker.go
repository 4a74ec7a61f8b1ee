// Package diagnostics verifies the bot's configuration and credentials
// without publishing anything.
package diagnostics

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/jonesrussell/north-cloud/postbot/internal/x"
)

// AccountClient is the read-only part of the platform client.
type AccountClient interface {
	Me(ctx context.Context) (*x.User, error)
	CheckWriteAccess(ctx context.Context) error
}

// CredentialResult is the outcome of a credential check.
type CredentialResult struct {
	Authenticated bool
	WriteAccess   bool
	Username      string
	AccessLevel   string
	// Problem describes why the check failed, empty on success.
	Problem string
}

// OK reports whether the account can post.
func (r CredentialResult) OK() bool {
	return r.Authenticated && r.WriteAccess
}

// Checker validates platform credentials.
type Checker struct {
	client AccountClient
	log    logger.Logger
}

// NewChecker creates a checker.
func NewChecker(client AccountClient, log logger.Logger) *Checker {
	if log == nil {
		log = logger.NewNop()
	}
	return &Checker{client: client, log: log}
}

// CheckCredentials returns true when the credentials authenticate and
// carry write access. Rejected credentials (401) and read-only access
// (403) return false with a nil error. Any other failure is returned.
func (c *Checker) CheckCredentials(ctx context.Context) (bool, error) {
	res, err := c.Check(ctx)
	if err != nil {
		return false, err
	}
	return res.OK(), nil
}

// Check runs the identity lookup followed by the write-access check and
// returns what it learned.
func (c *Checker) Check(ctx context.Context) (CredentialResult, error) {
	var res CredentialResult

	user, err := c.client.Me(ctx)
	if err != nil {
		if statusOf(err) == http.StatusUnauthorized {
			res.Problem = "credentials rejected (401): check your API key, secret and access tokens"
			c.log.Error("Credential test failed", logger.Error(err), logger.String("problem", res.Problem))
			return res, nil
		}
		c.log.Error("Identity lookup failed", logger.Error(err))
		return res, err
	}

	res.Authenticated = true
	res.Username = user.Username
	res.AccessLevel = user.AccessLevel
	c.log.Info("Authentication successful", logger.String("username", user.Username))

	if err = c.client.CheckWriteAccess(ctx); err != nil {
		if statusOf(err) == http.StatusForbidden {
			res.Problem = "read-only access: the app has no write permission"
			c.log.Warn("No write permissions detected", logger.Error(err))
			return res, nil
		}
		c.log.Error("Write access check failed", logger.Error(err))
		return res, err
	}

	res.WriteAccess = true
	c.log.Info("Write permissions confirmed", logger.String("access_level", user.AccessLevel))
	return res, nil
}

func statusOf(err error) int {
	var apiErr *x.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
