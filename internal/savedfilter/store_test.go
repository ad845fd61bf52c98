package savedfilter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/aitodo/internal/ids"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/storage"
)

func setupStore(t *testing.T) (*Store, *storage.Adapter) {
	t.Helper()
	adapter := storage.NewAdapter(storage.NewMemoryKV(), nil)
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	return New(context.Background(), adapter, Options{
		Now:   func() time.Time { return now },
		NewID: ids.Sequence("filter_"),
	}), adapter
}

func TestSaveCopiesFilterByValue(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	live := model.TodoFilter{Status: "completed", DueDateRange: model.DueCustom, DueFrom: &from}

	id, err := s.Save(ctx, "Done this month", live)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	live.Status = "pending"
	*live.DueFrom = from.AddDate(0, 1, 0)

	got, ok := s.Get(id)
	if !ok || got.Filter.Status != "completed" || !got.Filter.DueFrom.Equal(from) {
		t.Fatalf("saved filter followed live changes: %#v", got.Filter)
	}
}

func TestSaveValidation(t *testing.T) {
	s, _ := setupStore(t)
	if _, err := s.Save(context.Background(), " ", model.TodoFilter{}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := s.Save(context.Background(), "x", model.TodoFilter{DueDateRange: "someday"}); !errors.Is(err, model.ErrInvalidDueDateRange) {
		t.Fatalf("expected ErrInvalidDueDateRange, got %v", err)
	}
}

func TestUpdateDeleteAndReload(t *testing.T) {
	s, adapter := setupStore(t)
	ctx := context.Background()
	id, _ := s.Save(ctx, "High", model.TodoFilter{Priority: "high"})

	if ok, err := s.Update(ctx, id, "Urgent work", model.TodoFilter{Priority: "high", ProjectID: "work"}); !ok || err != nil {
		t.Fatalf("update: %v %v", ok, err)
	}
	if ok, _ := s.Update(ctx, "missing", "x", model.TodoFilter{}); ok {
		t.Fatal("update of unknown id reported change")
	}

	reloaded := New(ctx, adapter, Options{})
	got, ok := reloaded.FindByName("urgent WORK")
	if !ok || got.Filter.ProjectID != "work" {
		t.Fatalf("reload lost update: %#v", got)
	}

	if ok, err := s.Delete(ctx, id); !ok || err != nil {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, _ := s.Delete(ctx, id); ok {
		t.Fatal("second delete reported change")
	}
	if len(s.List()) != 0 {
		t.Fatal("filter still listed after delete")
	}
}
