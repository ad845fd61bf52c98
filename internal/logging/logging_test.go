package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"": slog.LevelInfo, "debug": slog.LevelDebug, "WARN": slog.LevelWarn, "error": slog.LevelError}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected invalid level error")
	}
}

func TestNewWritesToFallbackAndFile(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New("warn", "", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", slog.String("key", "v"))
	_ = closer.Close()
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "key=v") {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	path := filepath.Join(t.TempDir(), "logs", "aitodo.log")
	logger, closer, err = New("info", path, &buf)
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	logger.Info("to file")
	_ = closer.Close()
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), "to file") {
		t.Fatalf("file not written: %q %v", data, err)
	}
}
