package ctxutil

import (
	"context"
	"testing"
)

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")

	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("expected %q, got %q", "req-123", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestRequestIDFromCtx_ForeignKeyIgnored(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "request_id", "not-ours") //nolint:staticcheck

	if got := RequestIDFromCtx(ctx); got != "" {
		t.Fatalf("expected empty string for a foreign key, got %q", got)
	}
}
