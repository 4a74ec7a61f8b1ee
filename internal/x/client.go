// Package x is a minimal X API v2 client signed with OAuth 1.0a user context.
package x

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"
)

// DefaultBaseURL is the production API host.
const DefaultBaseURL = "https://api.x.com"

const (
	pathMe    = "/2/users/me"
	pathPosts = "/2/tweets"

	headerAccessLevel = "x-access-level"
)

// ErrAccessLevelUnknown is returned when a response carries no access level.
var ErrAccessLevelUnknown = errors.New("x api did not report an access level")

// Credentials are the four OAuth 1.0a secrets of the posting account.
type Credentials struct {
	APIKey            string
	APIKeySecret      string
	AccessToken       string
	AccessTokenSecret string
}

// Missing returns the environment names of the credentials that are empty.
func (c Credentials) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"TWITTER_API_KEY", c.APIKey},
		{"TWITTER_API_KEY_SECRET", c.APIKeySecret},
		{"TWITTER_ACCESS_TOKEN", c.AccessToken},
		{"TWITTER_ACCESS_TOKEN_SECRET", c.AccessTokenSecret},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// User is the authenticated account.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	AccessLevel string `json:"-"`
}

// Post is a created post.
type Post struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Client talks to the X API.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client that signs every request with creds. base
// supplies the transport and timeout; nil uses http.DefaultClient.
func NewClient(creds Credentials, baseURL string, base *http.Client) *Client {
	if base == nil {
		base = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, base)
	signed := oauth1.NewConfig(creds.APIKey, creds.APIKeySecret).
		Client(ctx, oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret))
	signed.Timeout = base.Timeout

	return &Client{
		http:    signed,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Me returns the authenticated user together with the access level the
// tokens were granted.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		Data User `json:"data"`
	}
	resp, err := c.do(ctx, http.MethodGet, pathMe, nil, &out)
	if err != nil {
		return nil, fmt.Errorf("get authenticated user: %w", err)
	}
	out.Data.AccessLevel = resp.Header.Get(headerAccessLevel)
	return &out.Data, nil
}

// CheckWriteAccess verifies that the tokens may create posts without
// creating one. The API has no dry-run mode for posting, so the check
// reads the access level reported on a signed identity request. A level
// without write permission is returned as a 403 APIError.
func (c *Client) CheckWriteAccess(ctx context.Context) error {
	user, err := c.Me(ctx)
	if err != nil {
		return err
	}

	level := strings.ToLower(user.AccessLevel)
	if level == "" {
		return ErrAccessLevelUnknown
	}
	if !strings.Contains(level, "write") {
		return &APIError{
			StatusCode: http.StatusForbidden,
			Status:     "403 Forbidden",
			Detail:     fmt.Sprintf("tokens have %q access, posting requires read-write", user.AccessLevel),
		}
	}
	return nil
}

// CreatePost publishes text as a new post.
func (c *Client) CreatePost(ctx context.Context, text string) (*Post, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("marshal post: %w", err)
	}

	var out struct {
		Data Post `json:"data"`
	}
	if _, err = c.do(ctx, http.MethodPost, pathPosts, payload, &out); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if out.Data.ID == "" {
		return nil, errors.New("create post: response has no post id")
	}
	return &out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, parseAPIError(resp)
	}

	if out != nil {
		if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
			return resp, fmt.Errorf("decode response: %w", decodeErr)
		}
	}
	return resp, nil
}
