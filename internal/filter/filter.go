// Package filter computes the visible, ordered subset of a todo collection.
package filter

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/sandeepkv93/aitodo/internal/model"
)

// NoThreshold accepts every fuzzy match regardless of score.
const NoThreshold = math.MinInt

type Options struct {
	// MinScore is the lowest fuzzy score a search token may match with.
	MinScore int
}

func DefaultOptions() Options {
	return Options{MinScore: NoThreshold}
}

// Apply returns the todos matching f, sorted by manual order. todos is not
// modified and the result shares no due-date pointers with it.
func Apply(todos []model.Todo, f model.TodoFilter, now time.Time, opts Options) []model.Todo {
	tokens := strings.Fields(strings.ToLower(f.Search))
	window, hasWindow := dueWindow(f, now)

	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if len(tokens) > 0 && !matchesSearch(t, tokens, opts.MinScore) {
			continue
		}
		if model.Constrained(f.Status) && string(t.Status) != f.Status {
			continue
		}
		if model.Constrained(f.Priority) && string(t.Priority) != f.Priority {
			continue
		}
		if model.Constrained(f.ProjectID) && t.ProjectID != f.ProjectID {
			continue
		}
		if model.Constrained(string(f.DueDateRange)) && !inDueRange(t, f.DueDateRange, window, hasWindow, now) {
			continue
		}
		out = append(out, t.Clone())
	}
	SortByOrder(out)
	return out
}

// SortByOrder sorts in place by Order, then CreatedAt, then ID.
func SortByOrder(todos []model.Todo) {
	slices.SortStableFunc(todos, func(a, b model.Todo) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// matchesSearch requires every token to fuzzy-match the title or the
// description.
func matchesSearch(t model.Todo, tokens []string, minScore int) bool {
	fields := []string{strings.ToLower(t.Title), strings.ToLower(t.Description)}
	for _, tok := range tokens {
		best, found := math.MinInt, false
		for _, m := range fuzzy.Find(tok, fields) {
			if !found || m.Score > best {
				best, found = m.Score, true
			}
		}
		if !found || best < minScore {
			return false
		}
	}
	return true
}

// span is a half-open day window. A zero bound is open.
type span struct {
	from time.Time
	to   time.Time
}

func (s span) contains(t time.Time) bool {
	if !s.from.IsZero() && t.Before(s.from) {
		return false
	}
	return s.to.IsZero() || t.Before(s.to)
}

// dueWindow resolves the day-aligned window for calendar buckets.
func dueWindow(f model.TodoFilter, now time.Time) (span, bool) {
	today := model.StartOfDay(now)
	switch f.DueDateRange {
	case model.DueToday:
		return span{today, today.AddDate(0, 0, 1)}, true
	case model.DueTomorrow:
		return span{today.AddDate(0, 0, 1), today.AddDate(0, 0, 2)}, true
	case model.DueThisWeek:
		return span{today, nextMonday(today)}, true
	case model.DueNextWeek:
		start := nextMonday(today)
		return span{start, start.AddDate(0, 0, 7)}, true
	case model.DueCustom:
		var s span
		if f.DueFrom != nil {
			s.from = model.StartOfDay(f.DueFrom.In(now.Location()))
		}
		if f.DueTo != nil {
			s.to = model.StartOfDay(f.DueTo.In(now.Location())).AddDate(0, 0, 1)
		}
		return s, true
	default:
		return span{}, false
	}
}

// nextMonday returns the Monday strictly after day.
func nextMonday(day time.Time) time.Time {
	sinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, 7-sinceMonday)
}

func inDueRange(t model.Todo, r model.DueDateRange, window span, hasWindow bool, now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if r == model.DueOverdue {
		return model.IsOverdue(t, now)
	}
	if !hasWindow {
		return false
	}
	return window.contains(model.StartOfDay(t.DueDate.In(now.Location())))
}
