package diagnostics_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jonesrussell/north-cloud/postbot/internal/content"
	"github.com/jonesrussell/north-cloud/postbot/internal/diagnostics"
	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/jonesrussell/north-cloud/postbot/internal/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccount struct {
	meErr      error
	writeErr   error
	writeCalls int
}

func (f *fakeAccount) Me(context.Context) (*x.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return &x.User{ID: "1", Username: "devbot", AccessLevel: "read-write"}, nil
}

func (f *fakeAccount) CheckWriteAccess(context.Context) error {
	f.writeCalls++
	return f.writeErr
}

func TestCheckCredentials(t *testing.T) {
	t.Parallel()

	unexpected := errors.New("dns lookup failed")

	testCases := []struct {
		name       string
		account    *fakeAccount
		want       bool
		wantErr    error
		wantAPIErr bool
		writeCalls int
	}{
		{
			name:       "identity rejected",
			account:    &fakeAccount{meErr: &x.APIError{StatusCode: http.StatusUnauthorized}},
			want:       false,
			writeCalls: 0,
		},
		{
			name:       "identity unexpected failure",
			account:    &fakeAccount{meErr: unexpected},
			want:       false,
			wantErr:    unexpected,
			writeCalls: 0,
		},
		{
			name:       "read only",
			account:    &fakeAccount{writeErr: &x.APIError{StatusCode: http.StatusForbidden}},
			want:       false,
			writeCalls: 1,
		},
		{
			name:       "read write",
			account:    &fakeAccount{},
			want:       true,
			writeCalls: 1,
		},
		{
			name:       "dry run unexpected failure",
			account:    &fakeAccount{writeErr: unexpected},
			want:       false,
			wantErr:    unexpected,
			writeCalls: 1,
		},
		{
			name:       "dry run server error",
			account:    &fakeAccount{writeErr: &x.APIError{StatusCode: http.StatusServiceUnavailable}},
			want:       false,
			wantAPIErr: true,
			writeCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ok, err := diagnostics.NewChecker(tc.account, logger.NewNop()).CheckCredentials(context.Background())

			assert.Equal(t, tc.want, ok)
			assert.Equal(t, tc.writeCalls, tc.account.writeCalls)
			switch {
			case tc.wantAPIErr:
				var apiErr *x.APIError
				require.ErrorAs(t, err, &apiErr)
			case tc.wantErr != nil:
				require.ErrorIs(t, err, tc.wantErr)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestCheck_ReportsAccount(t *testing.T) {
	t.Parallel()

	res, err := diagnostics.NewChecker(&fakeAccount{}, nil).Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "devbot", res.Username)
	assert.Equal(t, "read-write", res.AccessLevel)
	assert.Empty(t, res.Problem)

	res, err = diagnostics.NewChecker(&fakeAccount{writeErr: &x.APIError{StatusCode: http.StatusForbidden}}, nil).
		Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Authenticated)
	assert.False(t, res.WriteAccess)
	assert.Contains(t, res.Problem, "read-only")
}

type stubGenerator struct {
	calls    int
	fallback bool
}

func (s *stubGenerator) Generate(_ context.Context, c content.Category) content.Content {
	s.calls++
	return content.Content{Text: "sample", Category: c, UsedFallback: s.fallback}
}

func secrets(values ...string) []diagnostics.Secret {
	names := []string{
		"TWITTER_API_KEY", "TWITTER_API_KEY_SECRET",
		"TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_TOKEN_SECRET", "GEMINI_API_KEY",
	}
	out := make([]diagnostics.Secret, len(names))
	for i, n := range names {
		out[i] = diagnostics.Secret{Name: n, Value: values[i]}
	}
	return out
}

func TestRun_StopsOnMissingSecrets(t *testing.T) {
	t.Parallel()

	account := &fakeAccount{}
	gen := &stubGenerator{}

	report := diagnostics.Run(context.Background(), secrets("k", "", "t", "ts", ""),
		diagnostics.NewChecker(account, nil), gen)

	assert.Equal(t, []string{"TWITTER_API_KEY_SECRET", "GEMINI_API_KEY"}, report.Missing)
	assert.Len(t, report.Secrets, 5)
	assert.Nil(t, report.Credential)
	assert.Nil(t, report.Sample)
	assert.Zero(t, gen.calls)
	assert.Zero(t, account.writeCalls)
	assert.False(t, report.Healthy())
}

func TestRun_AllPass(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{}
	report := diagnostics.Run(context.Background(), secrets("k", "s", "t", "ts", "g"),
		diagnostics.NewChecker(&fakeAccount{}, nil), gen)

	require.NotNil(t, report.Sample)
	assert.Equal(t, content.CodingTip, report.Sample.Category)
	assert.True(t, report.Healthy())
	assert.Empty(t, report.FixSteps())
}

func TestRun_ReadOnlySuggestsPermissionFix(t *testing.T) {
	t.Parallel()

	account := &fakeAccount{writeErr: &x.APIError{StatusCode: http.StatusForbidden}}
	report := diagnostics.Run(context.Background(), secrets("k", "s", "t", "ts", "g"),
		diagnostics.NewChecker(account, nil), &stubGenerator{})

	assert.False(t, report.Healthy())
	steps := report.FixSteps()
	require.Len(t, steps, 9)
	assert.Contains(t, steps[3], "Read and Write")
}

func TestRun_FallbackSampleIsNotHealthy(t *testing.T) {
	t.Parallel()

	report := diagnostics.Run(context.Background(), secrets("k", "s", "t", "ts", "g"),
		diagnostics.NewChecker(&fakeAccount{}, nil), &stubGenerator{fallback: true})

	assert.False(t, report.Healthy())
}
