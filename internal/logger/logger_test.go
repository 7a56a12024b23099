package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker", "test"} {
		t.Run(env, func(t *testing.T) {
			l, err := NewLogger(env)
			if err != nil {
				t.Fatalf("NewLogger(%q): %v", env, err)
			}
			if l == nil {
				t.Fatal("logger is nil")
			}
		})
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging"); err == nil {
		t.Error("expected error for unknown environment")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("dev", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zap.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if _, err := NewLogger("dev", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestFromContext(t *testing.T) {
	if l := FromContext(context.Background()); l == nil {
		t.Fatal("FromContext without logger should return nop, got nil")
	}
	want := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), want)
	if got := FromContext(ctx); got != want {
		t.Error("FromContext did not return stored logger")
	}
}

func TestRequestIDFromContext(t *testing.T) {
	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Error("empty context should have no request id")
	}
	if _, ok := RequestIDFromContext(ContextWithRequestID(context.Background(), "")); ok {
		t.Error("empty request id should be ignored")
	}
	id, ok := RequestIDFromContext(ContextWithRequestID(context.Background(), "req-1"))
	if !ok || id != "req-1" {
		t.Errorf("request id = %q, %v, want req-1", id, ok)
	}
}
