package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClientSuccess(t *testing.T) {
	s := miniredis.RunT(t)

	ctx := context.Background()
	client, err := NewClient(ctx, fmt.Sprintf("redis://%s", s.Addr()))
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	if err := client.Set(ctx, "compta:ping", "ok", 0).Err(); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, _ := s.Get("compta:ping"); got != "ok" {
		t.Fatalf("expected value in server, got %q", got)
	}
}

func TestNewClientWithOptions(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := NewClientWithOptions(context.Background(), fmt.Sprintf("redis://%s/2", s.Addr()), Options{
		PoolSize:    3,
		DialTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	opts := client.Options()
	if opts.PoolSize != 3 || opts.DialTimeout != time.Second {
		t.Fatalf("options not applied: pool=%d dial=%s", opts.PoolSize, opts.DialTimeout)
	}
	if opts.DB != 2 {
		t.Fatalf("expected db 2 from URL, got %d", opts.DB)
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://bad-url")
	if err == nil {
		t.Fatalf("expected error for invalid URL")
	}
}

func TestNewClientPingFailure(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close()

	_, err := NewClient(context.Background(), url)
	if err == nil {
		t.Fatalf("expected ping error when server is down")
	}
}
