package worker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", p.err)
}

func TestHealthServer(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		pingErr    error
		wantCode   int
		wantStatus string
	}{
		{"health ok", "/health", nil, http.StatusOK, "healthy"},
		{"health redis down", "/health", errors.New("connection refused"), http.StatusServiceUnavailable, "unhealthy"},
		{"ready ok", "/ready", nil, http.StatusOK, "ready"},
		{"ready redis down", "/ready", errors.New("connection refused"), http.StatusServiceUnavailable, "not ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := NewHealthServer(0, fakePinger{err: tt.pingErr}, zap.NewNop())

			rec := httptest.NewRecorder()
			hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}

	t.Run("redis check detail", func(t *testing.T) {
		hs := NewHealthServer(0, fakePinger{err: errors.New("connection refused")}, zap.NewNop())

		rec := httptest.NewRecorder()
		hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy: connection refused", resp.Checks["redis"])
	})

	t.Run("stop before start", func(t *testing.T) {
		assert.NoError(t, NewHealthServer(0, fakePinger{}, zap.NewNop()).Stop())
	})
}
