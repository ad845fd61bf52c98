// Package config loads aitodo.toml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
)

const FileName = "aitodo.toml"

const (
	DeletePolicyDelete   = "delete"
	DeletePolicyReassign = "reassign"
)

type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	History  HistoryConfig  `toml:"history"`
	Search   SearchConfig   `toml:"search"`
	Projects ProjectsConfig `toml:"projects"`
	AI       AIConfig       `toml:"ai"`
	Log      LogConfig      `toml:"log"`
	User     UserConfig     `toml:"user"`

	// Dir is the directory holding the config file. Relative paths resolve
	// against it.
	Dir string `toml:"-"`
}

type StorageConfig struct {
	Driver   string `toml:"driver" env:"AITODO_STORAGE_DRIVER" env-description:"sqlite3, sqlite, redis or memory"`
	Path     string `toml:"path" env:"AITODO_DB_PATH" env-description:"sqlite database file"`
	RedisURL string `toml:"redis_url" env:"AITODO_REDIS_URL" env-description:"redis:// URL for the redis driver"`
}

type HistoryConfig struct {
	Limit int `toml:"limit" env:"AITODO_HISTORY_LIMIT" env-description:"undo entries kept, 0 for unbounded"`
}

type SearchConfig struct {
	MinScore int `toml:"min_score" env:"AITODO_SEARCH_MIN_SCORE" env-description:"lowest fuzzy score a search term may match with"`
}

type ProjectsConfig struct {
	DeletePolicy string `toml:"delete_policy" env:"AITODO_PROJECT_DELETE_POLICY" env-description:"what happens to a deleted project's todos: delete or reassign"`
}

type AIConfig struct {
	APIKey  string          `toml:"api_key" env:"GEMINI_API_KEY" env-description:"Gemini API key"`
	Model   string          `toml:"model" env:"AITODO_AI_MODEL" env-description:"Gemini model name"`
	Timeout DurationSeconds `toml:"timeout" env:"AITODO_AI_TIMEOUT" env-description:"generation timeout, e.g. 30s or a number of seconds"`
}

type LogConfig struct {
	Level string `toml:"level" env:"AITODO_LOG_LEVEL" env-description:"debug, info, warn or error"`
	File  string `toml:"file" env:"AITODO_LOG_FILE" env-description:"log file; the TUI always logs to a file"`
}

type UserConfig struct {
	Email string `toml:"email" env:"AITODO_USER" env-description:"email of the local user to act as"`
}

func Default() Config {
	return Config{
		Storage:  StorageConfig{Driver: "sqlite3", Path: "aitodo.db"},
		History:  HistoryConfig{Limit: 200},
		Search:   SearchConfig{MinScore: -1000},
		Projects: ProjectsConfig{DeletePolicy: DeletePolicyDelete},
		AI:       AIConfig{Model: "gemini-2.5-flash-lite", Timeout: DurationSeconds(30 * time.Second)},
		Log:      LogConfig{Level: "info", File: "aitodo.log"},
	}
}

// DefaultPath is aitodo.toml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return filepath.Join(dir, "aitodo", FileName), nil
}

// Load reads path over the defaults, then the environment. A missing file is
// created with the defaults first.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	if err := writeDefaultIfMissing(path); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	cfg.Storage.Path = cfg.resolve(cfg.Storage.Path)
	cfg.Log.File = cfg.resolve(cfg.Log.File)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite3", "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "redis" && c.Storage.RedisURL == "" {
		return errors.New("config: storage.redis_url is required for the redis driver")
	}
	switch c.Projects.DeletePolicy {
	case DeletePolicyDelete, DeletePolicyReassign:
	default:
		return fmt.Errorf("config: unknown project delete policy %q", c.Projects.DeletePolicy)
	}
	if c.History.Limit < 0 {
		return errors.New("config: history.limit must not be negative")
	}
	return nil
}

// Describe lists the environment overrides.
func Describe() (string, error) {
	cfg := Default()
	header := "Environment overrides:"
	return cleanenv.GetDescription(&cfg, &header)
}

func (c Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

func writeDefaultIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(Default()); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode default config: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// DurationSeconds accepts "30s", "5m" or a bare number of seconds.
type DurationSeconds time.Duration

func (d DurationSeconds) Duration() time.Duration { return time.Duration(d) }

// SetValue implements cleanenv.Setter.
func (d *DurationSeconds) SetValue(s string) error {
	v, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = DurationSeconds(v)
	return nil
}

func (d *DurationSeconds) UnmarshalText(text []byte) error {
	return d.SetValue(string(text))
}

func (d DurationSeconds) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	return d, nil
}
