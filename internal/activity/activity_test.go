package activity

import (
	"context"
	"testing"
	"time"

	"github.com/sandeepkv93/aitodo/internal/ids"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/storage"
)

func newTestLog(t *testing.T) (*Log, *time.Time) {
	t.Helper()
	clock := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	l := New(storage.NewAdapter(storage.NewMemoryKV(), nil), Options{
		Now:   func() time.Time { return clock },
		NewID: ids.Sequence("act-"),
	})
	return l, &clock
}

func TestAddListNewestFirst(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLog(t)

	if _, err := l.Add(ctx, "u1", model.ActivityLogin, "Logged in", nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	*clock = clock.Add(time.Minute)
	if _, err := l.Add(ctx, "u2", model.ActivityLogin, "Logged in", nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	*clock = clock.Add(time.Minute)
	if _, err := l.Add(ctx, "u1", model.ActivityTodoCreated, "Created todo: Buy milk", map[string]any{"projectId": "inbox"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := l.List(ctx, "u1")
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for u1, got %d", len(got))
	}
	if got[0].Type != model.ActivityTodoCreated || got[1].Type != model.ActivityLogin {
		t.Fatalf("unexpected order: %s, %s", got[0].Type, got[1].Type)
	}
}

func TestAddWithoutUserIsNoop(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLog(t)
	a, err := l.Add(ctx, "  ", model.ActivityLogin, "Logged in", nil)
	if err != nil || a.ID != "" {
		t.Fatalf("expected no-op, got %#v %v", a, err)
	}
	if _, err := l.Add(ctx, "u1", model.ActivityType("bogus"), "x", nil); err == nil {
		t.Fatal("expected invalid activity type error")
	}
}

func TestClearOnlyRemovesOwnEntries(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLog(t)
	_ = l.For("u1").Record(ctx, model.ActivityLogin, "Logged in", nil)
	_ = l.For("u2").Record(ctx, model.ActivityLogin, "Logged in", nil)

	if err := l.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := l.List(ctx, "u1"); len(got) != 0 {
		t.Fatalf("u1 entries survived clear: %d", len(got))
	}
	if got := l.List(ctx, "u2"); len(got) != 1 {
		t.Fatalf("u2 entries lost: %d", len(got))
	}
}
