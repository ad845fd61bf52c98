package model

import (
	"errors"
	"testing"
	"time"
)

func TestTodoValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	todo := Todo{
		ID:        "todo-1",
		Title:     "Buy milk",
		Status:    StatusPending,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := todo.Validate(); err != nil {
		t.Fatalf("expected valid todo, got error: %v", err)
	}
}

func TestTodoValidateInvalidEnums(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	todo := Todo{ID: "todo-1", Title: "x", Status: Status("done"), Priority: PriorityLow, CreatedAt: now}
	if err := todo.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}

	todo.Status = StatusPending
	todo.Priority = PriorityCritical
	if err := todo.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority for legacy priority, got: %v", err)
	}

	todo.Priority = PriorityHigh
	todo.Title = "   "
	if err := todo.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got: %v", err)
	}
}

func TestNormalizePriority(t *testing.T) {
	cases := []struct {
		in   Priority
		want Priority
	}{
		{PriorityCritical, PriorityHigh},
		{PriorityUrgent, PriorityHigh},
		{PriorityHigh, PriorityHigh},
		{PriorityNormal, PriorityMedium},
		{PriorityMedium, PriorityMedium},
		{PriorityLow, PriorityLow},
		{Priority("URGENT"), PriorityHigh},
		{Priority("whatever"), PriorityMedium},
		{Priority(""), PriorityMedium},
	}
	for _, tc := range cases {
		if got := NormalizePriority(tc.in); got != tc.want {
			t.Fatalf("NormalizePriority(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if got := NormalizePriority(NormalizePriority(tc.in)); got != tc.want {
			t.Fatalf("NormalizePriority is not idempotent for %q: %q", tc.in, got)
		}
	}
}

func TestIsOverdueTruncatesToDay(t *testing.T) {
	now := time.Date(2026, 2, 9, 15, 0, 0, 0, time.UTC)
	earlierToday := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 2, 8, 23, 0, 0, 0, time.UTC)

	if IsOverdue(Todo{Status: StatusPending, DueDate: &earlierToday}, now) {
		t.Fatal("todo due earlier today must not be overdue")
	}
	if !IsOverdue(Todo{Status: StatusPending, DueDate: &yesterday}, now) {
		t.Fatal("todo due yesterday must be overdue")
	}
	if IsOverdue(Todo{Status: StatusCompleted, DueDate: &yesterday}, now) {
		t.Fatal("completed todo must never be overdue")
	}
	if IsOverdue(Todo{Status: StatusPending}, now) {
		t.Fatal("todo without due date must not be overdue")
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 2, 9, 15, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	todos := []Todo{
		{ID: "a", Status: StatusPending, DueDate: &past},
		{ID: "b", Status: StatusCompleted, DueDate: &past},
		{ID: "c", Status: StatusInProgress},
		{ID: "d", Status: StatusCompleted},
	}
	s := ComputeStats(todos, now)
	want := Stats{Total: 4, Completed: 2, Pending: 1, InProgress: 1, Overdue: 1}
	if s != want {
		t.Fatalf("unexpected stats: %+v, want %+v", s, want)
	}
}

func TestCloneTodosDoesNotAliasDueDate(t *testing.T) {
	due := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	orig := []Todo{{ID: "a", DueDate: &due}}
	cp := CloneTodos(orig)
	*cp[0].DueDate = due.AddDate(0, 0, 1)
	if !orig[0].DueDate.Equal(due) {
		t.Fatalf("clone aliased due date: %v", orig[0].DueDate)
	}
}

func TestParseStatusAndPriority(t *testing.T) {
	if s, err := ParseStatus("In_Progress"); err != nil || s != StatusInProgress {
		t.Fatalf("unexpected status parse: %q %v", s, err)
	}
	if _, err := ParseStatus("done"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if p, err := ParsePriority(" HIGH "); err != nil || p != PriorityHigh {
		t.Fatalf("unexpected priority parse: %q %v", p, err)
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}
