package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diewo77/techfix/internal/config"
	"go.uber.org/zap"
)

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "techfix.log")
	logger, err := New(config.LogConfig{Mode: "production", File: path, Level: "info"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer zap.ReplaceGlobals(zap.NewNop())

	logger.Info("catalog loaded", zap.Int("products", 2))
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"catalog loaded"`) {
		t.Fatalf("expected JSON entry, got %s", b)
	}
	if zap.L() != logger {
		t.Fatalf("expected logger to be installed globally")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "chatty"}); err == nil {
		t.Fatalf("expected level error")
	}
}
