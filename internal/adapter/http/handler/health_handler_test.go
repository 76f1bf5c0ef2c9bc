package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func okPinger() Pinger {
	return PingerFunc(func(context.Context) error { return nil })
}

func TestHealthHandler_Readiness(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	tests := []struct {
		name     string
		postgres Pinger
		redis    Pinger
		expected int
		redisVal string
	}{
		{name: "all healthy", postgres: okPinger(), redis: RedisPinger(client), expected: http.StatusOK, redisVal: "ok"},
		{name: "redis disabled", postgres: okPinger(), expected: http.StatusOK, redisVal: "disabled"},
		{
			name:     "postgres down",
			postgres: PingerFunc(func(context.Context) error { return errors.New("connection refused") }),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "redis down",
			postgres: okPinger(),
			redis:    PingerFunc(func(context.Context) error { return errors.New("i/o timeout") }),
			expected: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.postgres, tt.redis)
			rec := httptest.NewRecorder()

			h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d: %s", tt.expected, rec.Code, rec.Body.String())
			}
			if tt.redisVal == "" {
				return
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["redis"] != tt.redisVal {
				t.Fatalf("expected redis=%s, got %s", tt.redisVal, body["redis"])
			}
		})
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(nil, nil).Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
