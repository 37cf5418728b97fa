package db

import (
	"context"
	"strings"
	"testing"

	"github.com/icuchart/icuchart/internal/config"
)

func TestNewPool_RejectsMalformedURL(t *testing.T) {
	cfg := &config.Config{DatabaseURL: "not a url", DBMaxConns: 4, DBMinConns: 1}

	pool, err := NewPool(context.Background(), cfg)
	if err == nil {
		pool.Close()
		t.Fatal("expected error for a malformed database url")
	}
	if !strings.Contains(err.Error(), "parse database url") {
		t.Errorf("unexpected error: %v", err)
	}
}
