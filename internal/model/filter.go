package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDueDateRange = errors.New("model: invalid due date range")

// All is the filter value meaning "unconstrained".
const All = "all"

type DueDateRange string

const (
	DueAll      DueDateRange = "all"
	DueToday    DueDateRange = "today"
	DueTomorrow DueDateRange = "tomorrow"
	DueThisWeek DueDateRange = "this-week"
	DueNextWeek DueDateRange = "next-week"
	DueOverdue  DueDateRange = "overdue"
	DueCustom   DueDateRange = "custom"
)

func (r DueDateRange) IsValid() bool {
	switch r {
	case "", DueAll, DueToday, DueTomorrow, DueThisWeek, DueNextWeek, DueOverdue, DueCustom:
		return true
	default:
		return false
	}
}

func ParseDueDateRange(raw string) (DueDateRange, error) {
	r := DueDateRange(strings.ToLower(strings.TrimSpace(raw)))
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDueDateRange, raw)
	}
	if r == "" {
		r = DueAll
	}
	return r, nil
}

// TodoFilter is a query over todos. Empty strings and "all" leave a field
// unconstrained. DueFrom and DueTo only apply to the custom range.
type TodoFilter struct {
	Status       string
	Priority     string
	ProjectID    string
	Search       string
	DueDateRange DueDateRange
	DueFrom      *time.Time
	DueTo        *time.Time
}

// Clone returns a copy that shares no pointers with f.
func (f TodoFilter) Clone() TodoFilter {
	if f.DueFrom != nil {
		v := *f.DueFrom
		f.DueFrom = &v
	}
	if f.DueTo != nil {
		v := *f.DueTo
		f.DueTo = &v
	}
	return f
}

// IsZero reports whether the filter constrains nothing.
func (f TodoFilter) IsZero() bool {
	return unconstrained(f.Status) && unconstrained(f.Priority) && unconstrained(f.ProjectID) &&
		strings.TrimSpace(f.Search) == "" && unconstrained(string(f.DueDateRange))
}

func unconstrained(v string) bool {
	return v == "" || v == All
}

// Constrained reports whether v restricts a filter field.
func Constrained(v string) bool {
	return !unconstrained(v)
}

type SavedFilter struct {
	ID        string
	Name      string
	Filter    TodoFilter
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s SavedFilter) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: saved filter id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if !s.Filter.DueDateRange.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDueDateRange, s.Filter.DueDateRange)
	}
	return nil
}
