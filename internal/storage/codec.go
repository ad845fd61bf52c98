package storage

import (
	"time"

	"github.com/sandeepkv93/aitodo/internal/model"
)

var readLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format(sqliteTimeLayout)
}

func formatNullableTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}

func parseTime(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range readLayouts {
		if out, err := time.Parse(layout, v); err == nil {
			return out, true
		}
	}
	return time.Time{}, false
}

func parseRequiredTime(v string) time.Time {
	out, _ := parseTime(v)
	return out
}

func parseNullableTime(v string) *time.Time {
	out, ok := parseTime(v)
	if !ok {
		return nil
	}
	return &out
}

func todoToRecord(t model.Todo) todoRecord {
	return todoRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		ProjectID:   t.ProjectID,
		DueDate:     formatNullableTime(t.DueDate),
		Order:       t.Order,
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
}

func todoFromRecord(r todoRecord) model.Todo {
	return model.Todo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      model.Status(r.Status),
		Priority:    model.Priority(r.Priority),
		ProjectID:   r.ProjectID,
		DueDate:     parseNullableTime(r.DueDate),
		Order:       r.Order,
		CreatedAt:   parseRequiredTime(r.CreatedAt),
		UpdatedAt:   parseRequiredTime(r.UpdatedAt),
	}
}

func projectToRecord(p model.Project) projectRecord {
	return projectRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func projectFromRecord(r projectRecord) model.Project {
	return model.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		CreatedAt:   parseRequiredTime(r.CreatedAt),
		UpdatedAt:   parseRequiredTime(r.UpdatedAt),
	}
}

func filterToRecord(f model.TodoFilter) filterRecord {
	return filterRecord{
		Status:       f.Status,
		Priority:     f.Priority,
		ProjectID:    f.ProjectID,
		Search:       f.Search,
		DueDateRange: string(f.DueDateRange),
		DueFrom:      formatNullableTime(f.DueFrom),
		DueTo:        formatNullableTime(f.DueTo),
	}
}

func filterFromRecord(r filterRecord) model.TodoFilter {
	return model.TodoFilter{
		Status:       r.Status,
		Priority:     r.Priority,
		ProjectID:    r.ProjectID,
		Search:       r.Search,
		DueDateRange: model.DueDateRange(r.DueDateRange),
		DueFrom:      parseNullableTime(r.DueFrom),
		DueTo:        parseNullableTime(r.DueTo),
	}
}

func savedFilterToRecord(s model.SavedFilter) savedFilterRecord {
	return savedFilterRecord{
		ID:        s.ID,
		Name:      s.Name,
		Filter:    filterToRecord(s.Filter),
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
}

func savedFilterFromRecord(r savedFilterRecord) model.SavedFilter {
	return model.SavedFilter{
		ID:        r.ID,
		Name:      r.Name,
		Filter:    filterFromRecord(r.Filter),
		CreatedAt: parseRequiredTime(r.CreatedAt),
		UpdatedAt: parseRequiredTime(r.UpdatedAt),
	}
}

func activityToRecord(a model.Activity) activityRecord {
	return activityRecord{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        string(a.Type),
		Description: a.Description,
		Timestamp:   formatTime(a.Timestamp),
		Metadata:    a.Metadata,
	}
}

func activityFromRecord(r activityRecord) model.Activity {
	return model.Activity{
		ID:          r.ID,
		UserID:      r.UserID,
		Type:        model.ActivityType(r.Type),
		Description: r.Description,
		Timestamp:   parseRequiredTime(r.Timestamp),
		Metadata:    r.Metadata,
	}
}

func userToRecord(u model.User) userRecord {
	return userRecord{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: formatTime(u.CreatedAt)}
}

func userFromRecord(r userRecord) model.User {
	return model.User{ID: r.ID, Email: r.Email, Name: r.Name, CreatedAt: parseRequiredTime(r.CreatedAt)}
}

func mapSlice[A, B any](in []A, fn func(A) B) []B {
	out := make([]B, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
