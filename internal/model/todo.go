package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid todo status")
	ErrInvalidPriority = errors.New("model: invalid todo priority")
	ErrEmptyTitle      = errors.New("model: todo title is required")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Statuses returns the statuses in the order the UI cycles through them.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	// Values written by the extended six-level schema. They are only ever
	// read from storage and collapse into the three levels above.
	PriorityNormal   Priority = "normal"
	PriorityUrgent   Priority = "urgent"
	PriorityCritical Priority = "critical"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Priorities returns the canonical priority levels, lowest first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// NormalizePriority maps any stored priority onto the three-level set.
// Unknown values become medium.
func NormalizePriority(p Priority) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(string(p)))) {
	case PriorityCritical, PriorityUrgent, PriorityHigh:
		return PriorityHigh
	case PriorityNormal, PriorityMedium:
		return PriorityMedium
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// ParsePriority accepts user input and rejects anything outside the
// three-level set.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "in_progress" || s == "inprogress" {
		s = StatusInProgress
	}
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

type Todo struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	ProjectID   string
	DueDate     *time.Time
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: todo id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: todo created_at is required")
	}
	return nil
}

// Clone returns a copy that shares no pointers with t.
func (t Todo) Clone() Todo {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// CloneTodos deep-copies a collection.
func CloneTodos(in []Todo) []Todo {
	if in == nil {
		return nil
	}
	out := make([]Todo, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsOverdue reports whether t has a due day strictly before the day of now
// and is not completed.
func IsOverdue(t Todo, now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusCompleted {
		return false
	}
	due := StartOfDay(t.DueDate.In(now.Location()))
	return due.Before(StartOfDay(now))
}

type Stats struct {
	Total      int
	Completed  int
	Pending    int
	InProgress int
	Overdue    int
}

// ComputeStats counts statuses and overdue items over todos.
func ComputeStats(todos []Todo, now time.Time) Stats {
	s := Stats{Total: len(todos)}
	for _, t := range todos {
		switch t.Status {
		case StatusCompleted:
			s.Completed++
		case StatusPending:
			s.Pending++
		case StatusInProgress:
			s.InProgress++
		}
		if IsOverdue(t, now) {
			s.Overdue++
		}
	}
	return s
}
