// Package auth is a local identity store that yields the user id used to
// partition activity entries.
//
// Passwords are stored in plaintext under "password-<email>". This is a
// placeholder for single-user local use and provides no security.
package auth

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/aitodo/internal/ids"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/storage"
)

var (
	ErrUserExists      = errors.New("auth: user already exists")
	ErrUserNotFound    = errors.New("auth: user not found")
	ErrInvalidPassword = errors.New("auth: invalid password")
	ErrInvalidInput    = errors.New("auth: email and password are required")
)

// Activity records login and logout entries.
type Activity interface {
	Add(ctx context.Context, userID string, typ model.ActivityType, description string, metadata map[string]any) (model.Activity, error)
}

type Options struct {
	Activity Activity
	Now      func() time.Time
	NewID    ids.Generator
}

type Store struct {
	store    *storage.Adapter
	activity Activity
	now      func() time.Time
	newID    ids.Generator
}

func New(store *storage.Adapter, opts Options) *Store {
	s := &Store{store: store, activity: opts.Activity, now: opts.Now, newID: opts.NewID}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = ids.New
	}
	return s
}

// Signup creates a user and signs them in.
func (s *Store) Signup(ctx context.Context, name, email, password string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, ErrInvalidInput
	}
	users := s.store.LoadUsers(ctx)
	if slices.ContainsFunc(users, func(u model.User) bool { return u.Email == email }) {
		return model.User{}, ErrUserExists
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = email
	}
	u := model.User{ID: s.newID(), Email: email, Name: name, CreatedAt: s.now()}
	if err := s.store.SaveUsers(ctx, append(users, u)); err != nil {
		return model.User{}, err
	}
	if err := s.store.SetPassword(ctx, email, password); err != nil {
		return model.User{}, err
	}
	if err := s.store.SetCurrentUserID(ctx, u.ID); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (s *Store) Login(ctx context.Context, email, password string) (model.User, error) {
	email = normalizeEmail(email)
	u, ok := s.FindByEmail(ctx, email)
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	if stored, ok := s.store.Password(ctx, email); !ok || stored != password {
		return model.User{}, ErrInvalidPassword
	}
	if err := s.store.SetCurrentUserID(ctx, u.ID); err != nil {
		return model.User{}, err
	}
	s.record(ctx, u.ID, model.ActivityLogin, "Logged in")
	return u, nil
}

// Logout clears the current user. It is a no-op when nobody is signed in.
func (s *Store) Logout(ctx context.Context) error {
	u, ok := s.Current(ctx)
	if err := s.store.SetCurrentUserID(ctx, ""); err != nil {
		return err
	}
	if ok {
		s.record(ctx, u.ID, model.ActivityLogout, "Logged out")
	}
	return nil
}

// Current resolves the stored current-user pointer.
func (s *Store) Current(ctx context.Context) (model.User, bool) {
	id, ok := s.store.CurrentUserID(ctx)
	if !ok {
		return model.User{}, false
	}
	for _, u := range s.store.LoadUsers(ctx) {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Store) FindByEmail(ctx context.Context, email string) (model.User, bool) {
	email = normalizeEmail(email)
	for _, u := range s.store.LoadUsers(ctx) {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Store) record(ctx context.Context, userID string, typ model.ActivityType, description string) {
	if s.activity == nil {
		return
	}
	_, _ = s.activity.Add(ctx, userID, typ, description, nil)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
