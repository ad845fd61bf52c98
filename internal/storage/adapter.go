package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sandeepkv93/aitodo/internal/model"
)

const (
	KeyTodos        = "ai-todo-list-todos"
	KeyProjects     = "ai-todo-list-projects"
	KeySavedFilters = "ai-todo-list-saved-filters"
	KeyActivities   = "ai-todo-activities"
	KeyUsers        = "ai-todo-users"
	KeyCurrentUser  = "ai-todo-current-user"

	passwordKeyPrefix = "password-"
	schemaKeySuffix   = ".schema"
)

// PasswordKey is the key holding the plaintext password for email.
func PasswordKey(email string) string {
	return passwordKeyPrefix + email
}

// Adapter is the storage context handed to every store. It owns the KV
// backend and turns stored JSON into model values and back.
type Adapter struct {
	kv     KV
	logger *slog.Logger
}

func NewAdapter(kv KV, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{kv: kv, logger: logger}
}

func (a *Adapter) Close() error {
	return a.kv.Close()
}

// Load reads a JSON array stored under key. Missing, unreadable and corrupt
// values all load as an empty collection; the latter two are logged.
func Load[T any](ctx context.Context, a *Adapter, key string) []T {
	raw, err := a.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.logger.Warn("storage read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		a.logger.Warn("storage value corrupt", slog.String("key", key), slog.String("error", err.Error()))
		return nil
	}
	return out
}

// Save replaces the whole collection stored under key.
func Save[T any](ctx context.Context, a *Adapter, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// LoadTodos reads the todo collection and runs any pending schema upgrade.
// An upgraded collection is written back so the upgrade happens once.
func (a *Adapter) LoadTodos(ctx context.Context) []model.Todo {
	todos := mapSlice(Load[todoRecord](ctx, a, KeyTodos), todoFromRecord)
	version := a.todoSchema(ctx, len(todos))
	if version >= CurrentTodoSchema {
		return todos
	}
	upgraded, to := UpgradeTodos(todos, version)
	if err := a.SaveTodos(ctx, upgraded); err != nil {
		a.logger.Warn("storage schema upgrade not persisted", slog.String("key", KeyTodos), slog.String("error", err.Error()))
	} else {
		a.logger.Info("storage schema upgraded",
			slog.String("key", KeyTodos), slog.Int("from", version), slog.Int("to", to), slog.Int("todos", len(upgraded)))
	}
	return upgraded
}

// SaveTodos writes the collection and stamps it with the current schema.
func (a *Adapter) SaveTodos(ctx context.Context, todos []model.Todo) error {
	if err := Save(ctx, a, KeyTodos, mapSlice(todos, todoToRecord)); err != nil {
		return err
	}
	return a.kv.Set(ctx, KeyTodos+schemaKeySuffix, []byte(strconv.Itoa(CurrentTodoSchema)))
}

// todoSchema returns the stored schema version. An empty store has nothing
// to upgrade and reports the current version.
func (a *Adapter) todoSchema(ctx context.Context, count int) int {
	raw, err := a.kv.Get(ctx, KeyTodos+schemaKeySuffix)
	if err != nil {
		if count == 0 {
			return CurrentTodoSchema
		}
		return TodoSchemaLegacy
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		a.logger.Warn("storage schema version corrupt", slog.String("key", KeyTodos), slog.String("error", err.Error()))
		return TodoSchemaLegacy
	}
	return v
}

func (a *Adapter) LoadProjects(ctx context.Context) []model.Project {
	return mapSlice(Load[projectRecord](ctx, a, KeyProjects), projectFromRecord)
}

func (a *Adapter) SaveProjects(ctx context.Context, projects []model.Project) error {
	return Save(ctx, a, KeyProjects, mapSlice(projects, projectToRecord))
}

func (a *Adapter) LoadSavedFilters(ctx context.Context) []model.SavedFilter {
	return mapSlice(Load[savedFilterRecord](ctx, a, KeySavedFilters), savedFilterFromRecord)
}

func (a *Adapter) SaveSavedFilters(ctx context.Context, filters []model.SavedFilter) error {
	return Save(ctx, a, KeySavedFilters, mapSlice(filters, savedFilterToRecord))
}

func (a *Adapter) LoadActivities(ctx context.Context) []model.Activity {
	return mapSlice(Load[activityRecord](ctx, a, KeyActivities), activityFromRecord)
}

func (a *Adapter) SaveActivities(ctx context.Context, activities []model.Activity) error {
	return Save(ctx, a, KeyActivities, mapSlice(activities, activityToRecord))
}

func (a *Adapter) LoadUsers(ctx context.Context) []model.User {
	return mapSlice(Load[userRecord](ctx, a, KeyUsers), userFromRecord)
}

func (a *Adapter) SaveUsers(ctx context.Context, users []model.User) error {
	return Save(ctx, a, KeyUsers, mapSlice(users, userToRecord))
}

// CurrentUserID returns the signed-in user id, stored as a bare string.
func (a *Adapter) CurrentUserID(ctx context.Context) (string, bool) {
	return a.getString(ctx, KeyCurrentUser)
}

// SetCurrentUserID stores id, or clears the pointer when id is empty.
func (a *Adapter) SetCurrentUserID(ctx context.Context, id string) error {
	if id == "" {
		return a.kv.Delete(ctx, KeyCurrentUser)
	}
	return a.kv.Set(ctx, KeyCurrentUser, []byte(id))
}

// Password returns the stored plaintext password for email.
func (a *Adapter) Password(ctx context.Context, email string) (string, bool) {
	return a.getString(ctx, PasswordKey(email))
}

func (a *Adapter) SetPassword(ctx context.Context, email, password string) error {
	return a.kv.Set(ctx, PasswordKey(email), []byte(password))
}

func (a *Adapter) getString(ctx context.Context, key string) (string, bool) {
	raw, err := a.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.logger.Warn("storage read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return "", false
	}
	if len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}
