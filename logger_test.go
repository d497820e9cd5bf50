package rangka

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSimpleLoggerLevels(t *testing.T) {
	logger := NewSimpleLogger()

	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "count", 3)
	logger.Warn("warn message")
	logger.Error("error message", "err", "boom")
}

func TestZapLoggerAdapter(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Info("request completed", "status", 200)
	logger.Warn("client is closed, request suppressed")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Message != "request completed" {
		t.Errorf("unexpected first message: %s", entries[0].Message)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("expected warn level, got %v", entries[1].Level)
	}
}

func TestDefaultDebugConfig(t *testing.T) {
	cfg := DefaultDebugConfig()

	if cfg.Enabled {
		t.Error("debug should be disabled by default")
	}
	if !cfg.LogRequests || !cfg.LogRateLimit {
		t.Error("request and rate-limit logging should default on")
	}
	if cfg.RequestIDGen == nil {
		t.Fatal("RequestIDGen not set")
	}
	if a, b := cfg.RequestIDGen(), cfg.RequestIDGen(); a == b {
		t.Error("request IDs should be unique")
	}
}
