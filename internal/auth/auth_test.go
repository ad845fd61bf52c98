package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/sandeepkv93/aitodo/internal/activity"
	"github.com/sandeepkv93/aitodo/internal/ids"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/storage"
)

func setupAuth(t *testing.T) (*Store, *activity.Log) {
	t.Helper()
	adapter := storage.NewAdapter(storage.NewMemoryKV(), nil)
	log := activity.New(adapter, activity.Options{})
	return New(adapter, Options{Activity: log, NewID: ids.Sequence("user-")}), log
}

func TestSignupLoginLogout(t *testing.T) {
	ctx := context.Background()
	s, log := setupAuth(t)

	u, err := s.Signup(ctx, "Ada", " Ada@Example.com ", "secret")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if cur, ok := s.Current(ctx); !ok || cur.ID != u.ID {
		t.Fatalf("signup must sign the user in: %#v %v", cur, ok)
	}
	if _, err := s.Signup(ctx, "Ada", "ada@example.com", "other"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := s.Current(ctx); ok {
		t.Fatal("logout did not clear current user")
	}

	if _, err := s.Login(ctx, "nobody@example.com", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := s.Login(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := s.Login(ctx, "ADA@example.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	entries := log.List(ctx, u.ID)
	if len(entries) != 2 {
		t.Fatalf("expected logout+login activities, got %d", len(entries))
	}
	seen := map[model.ActivityType]bool{}
	for _, e := range entries {
		seen[e.Type] = true
	}
	if !seen[model.ActivityLogin] || !seen[model.ActivityLogout] {
		t.Fatalf("missing login/logout activities: %#v", entries)
	}
}

func TestSignupRequiresCredentials(t *testing.T) {
	s, _ := setupAuth(t)
	if _, err := s.Signup(context.Background(), "x", "", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("logout without user: %v", err)
	}
}
