// Package activity is the append-only audit log, partitioned by user id.
package activity

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/aitodo/internal/ids"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/storage"
)

type Log struct {
	store  *storage.Adapter
	logger *slog.Logger
	now    func() time.Time
	newID  ids.Generator
}

type Options struct {
	Logger *slog.Logger
	Now    func() time.Time
	NewID  ids.Generator
}

func New(store *storage.Adapter, opts Options) *Log {
	l := &Log{store: store, logger: opts.Logger, now: opts.Now, newID: opts.NewID}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.newID == nil {
		l.newID = ids.New
	}
	return l
}

// Add appends an entry for userID. With no signed-in user it does nothing.
func (l *Log) Add(ctx context.Context, userID string, typ model.ActivityType, description string, metadata map[string]any) (model.Activity, error) {
	if strings.TrimSpace(userID) == "" {
		return model.Activity{}, nil
	}
	a := model.Activity{
		ID:          l.newID(),
		UserID:      userID,
		Type:        typ,
		Description: description,
		Timestamp:   l.now(),
		Metadata:    metadata,
	}
	if err := a.Validate(); err != nil {
		return model.Activity{}, err
	}
	all := l.store.LoadActivities(ctx)
	all = append(all, a)
	if err := l.store.SaveActivities(ctx, all); err != nil {
		return model.Activity{}, err
	}
	return a, nil
}

// List returns userID's entries, most recent first.
func (l *Log) List(ctx context.Context, userID string) []model.Activity {
	all := l.store.LoadActivities(ctx)
	out := make([]model.Activity, 0, len(all))
	for _, a := range all {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Activity) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// Clear removes userID's entries and leaves everyone else's alone.
func (l *Log) Clear(ctx context.Context, userID string) error {
	all := l.store.LoadActivities(ctx)
	kept := slices.DeleteFunc(all, func(a model.Activity) bool { return a.UserID == userID })
	return l.store.SaveActivities(ctx, kept)
}

// For binds the log to userID for stores that emit activities.
func (l *Log) For(userID string) *Sink {
	return &Sink{log: l, userID: userID}
}

type Sink struct {
	log    *Log
	userID string
}

func (s *Sink) Record(ctx context.Context, typ model.ActivityType, description string, metadata map[string]any) error {
	_, err := s.log.Add(ctx, s.userID, typ, description, metadata)
	return err
}

func (s *Sink) UserID() string {
	return s.userID
}
