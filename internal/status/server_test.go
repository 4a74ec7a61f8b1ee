package status

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/jonesrussell/north-cloud/postbot/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedState struct {
	st scheduler.Status
}

func (f fixedState) Status() scheduler.Status { return f.st }

func getHealth(t *testing.T, srv *Server) (int, HealthResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth_SchedulerStates(t *testing.T) {
	testCases := []struct {
		name       string
		st         scheduler.Status
		wantCode   int
		wantStatus HealthStatus
	}{
		{
			name:       "running",
			st:         scheduler.Status{Running: true, NextRun: time.Now().Add(time.Hour)},
			wantCode:   http.StatusOK,
			wantStatus: HealthStatusHealthy,
		},
		{
			name:       "last run failed",
			st:         scheduler.Status{Running: true, LastError: errors.New("403")},
			wantCode:   http.StatusOK,
			wantStatus: HealthStatusDegraded,
		},
		{
			name:       "stopped",
			st:         scheduler.Status{},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: HealthStatusUnhealthy,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := NewServer(Config{
				ServiceName:    "postbot",
				ServiceVersion: "test",
				Checks:         map[string]HealthChecker{"scheduler": SchedulerHealthChecker(fixedState{tc.st})},
			}, logger.NewNop())

			code, body := getHealth(t, srv)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantStatus, body.Status)
			assert.Equal(t, "postbot", body.Service)
			assert.Equal(t, tc.wantStatus, body.Checks["scheduler"].Status)
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("postbot_posts_total 0\n"))
	})
	srv := NewServer(Config{Metrics: metrics}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "postbot_posts_total")

	noMetrics := NewServer(Config{}, nil)
	rec = httptest.NewRecorder()
	noMetrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFormatUptime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5s", formatUptime(5*time.Second))
	assert.Equal(t, "2m 5s", formatUptime(2*time.Minute+5*time.Second))
	assert.Equal(t, "3h 2m", formatUptime(3*time.Hour+2*time.Minute))
	assert.Equal(t, "1d 1h 0m", formatUptime(25*time.Hour))
}
