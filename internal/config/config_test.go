package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.Storage.Driver != "sqlite3" || cfg.Projects.DeletePolicy != DeletePolicyDelete {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Storage.Path != filepath.Join(filepath.Dir(path), "aitodo.db") {
		t.Fatalf("storage path not resolved against config dir: %q", cfg.Storage.Path)
	}
	if cfg.AI.Timeout.Duration() != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.AI.Timeout.Duration())
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload written defaults: %v", err)
	}
	if again.AI.Timeout != cfg.AI.Timeout || again.AI.Model != cfg.AI.Model {
		t.Fatalf("written defaults did not round trip: %+v", again.AI)
	}
}

func TestLoadFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := `
[storage]
driver = "memory"

[history]
limit = 5

[projects]
delete_policy = "reassign"

[ai]
timeout = "90s"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "memory" || cfg.History.Limit != 5 || cfg.Projects.DeletePolicy != DeletePolicyReassign {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.AI.Timeout.Duration() != 90*time.Second {
		t.Fatalf("timeout = %v", cfg.AI.Timeout.Duration())
	}
	if cfg.AI.Model != "gemini-2.5-flash-lite" {
		t.Fatalf("missing keys must keep defaults: %q", cfg.AI.Model)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	t.Setenv("AITODO_STORAGE_DRIVER", "memory")
	t.Setenv("AITODO_HISTORY_LIMIT", "7")
	t.Setenv("AITODO_AI_TIMEOUT", "12")
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("AITODO_USER", "ada@example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "memory" || cfg.History.Limit != 7 || cfg.AI.APIKey != "key-123" || cfg.User.Email != "ada@example.com" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.AI.Timeout.Duration() != 12*time.Second {
		t.Fatalf("bare seconds not parsed: %v", cfg.AI.Timeout.Duration())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	t.Setenv("AITODO_PROJECT_DELETE_POLICY", "archive")
	if _, err := Load(path); err == nil {
		t.Fatal("expected invalid delete policy error")
	}

	cfg := Default()
	cfg.Storage.Driver = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing redis url error")
	}
}

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"10":     10 * time.Second,
		"10s":    10 * time.Second,
		`"5m"`:   5 * time.Minute,
		" 250ms": 250 * time.Millisecond,
	}
	for in, want := range cases {
		got, err := parseDuration(in)
		if err != nil || got != want {
			t.Fatalf("parseDuration(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseDuration("soon"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDescribeListsEnvVars(t *testing.T) {
	out, err := Describe()
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	for _, name := range []string{"AITODO_STORAGE_DRIVER", "GEMINI_API_KEY", "AITODO_AI_TIMEOUT"} {
		if !strings.Contains(out, name) {
			t.Fatalf("description missing %s:\n%s", name, out)
		}
	}
}
