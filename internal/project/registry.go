// Package project keeps the named, colored containers todos belong to. The
// inbox project always exists and cannot be deleted.
package project

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/aitodo/internal/ids"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/storage"
)

var (
	ErrEmptyName        = model.ErrEmptyName
	ErrProtectedProject = errors.New("project: the inbox project cannot be deleted")
)

type ActivitySink interface {
	Record(ctx context.Context, typ model.ActivityType, description string, metadata map[string]any) error
}

// Cascade is invoked before a project is removed so dependent todos can be
// reassigned or deleted.
type Cascade func(ctx context.Context, projectID string)

type Options struct {
	Activity ActivitySink
	Logger   *slog.Logger
	Now      func() time.Time
	NewID    ids.Generator
}

type Registry struct {
	store    *storage.Adapter
	projects []model.Project
	activity ActivitySink
	logger   *slog.Logger
	now      func() time.Time
	newID    ids.Generator
}

// New loads projects from store, seeding the inbox when it is missing.
func New(ctx context.Context, store *storage.Adapter, opts Options) *Registry {
	r := &Registry{
		store:    store,
		activity: opts.Activity,
		logger:   opts.Logger,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newID == nil {
		r.newID = ids.Prefixed(ids.ProjectPrefix)
	}
	r.projects = store.LoadProjects(ctx)
	if r.indexOf(model.InboxProjectID) < 0 {
		r.projects = slices.Insert(r.projects, 0, model.InboxProject(r.now()))
		r.persist(ctx)
	}
	return r
}

// Create appends a project and returns its id. An empty color gets the
// default project color.
func (r *Registry) Create(ctx context.Context, name, description, color string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if strings.TrimSpace(color) == "" {
		color = model.DefaultProjectColor
	}
	now := r.now()
	p := model.Project{
		ID:          r.newID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.projects = append(r.projects, p)
	r.persist(ctx)
	r.emit(ctx, model.ActivityProjectCreated, "Created project: "+p.Name, p.ID)
	return p.ID, nil
}

type Patch struct {
	Name        *string
	Description *string
	Color       *string
}

// Update merges p into the project with id. Unknown ids report false.
func (r *Registry) Update(ctx context.Context, id string, p Patch) (bool, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return false, ErrEmptyName
	}
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	cur := r.projects[i]
	if p.Name != nil {
		cur.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		cur.Description = strings.TrimSpace(*p.Description)
	}
	if p.Color != nil && strings.TrimSpace(*p.Color) != "" {
		cur.Color = *p.Color
	}
	cur.UpdatedAt = r.now()
	r.projects[i] = cur
	r.persist(ctx)
	r.emit(ctx, model.ActivityProjectEdited, "Edited project: "+cur.Name, cur.ID)
	return true, nil
}

// Delete removes the project with id after running cascade. The inbox is
// refused with ErrProtectedProject; unknown ids report false and skip the
// cascade.
func (r *Registry) Delete(ctx context.Context, id string, cascade Cascade) (bool, error) {
	if id == model.InboxProjectID {
		return false, ErrProtectedProject
	}
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	removed := r.projects[i]
	if cascade != nil {
		cascade(ctx, id)
	}
	r.projects = slices.Delete(r.projects, i, i+1)
	r.persist(ctx)
	r.emit(ctx, model.ActivityProjectDeleted, "Deleted project: "+removed.Name, removed.ID)
	return true, nil
}

func (r *Registry) Get(id string) (model.Project, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return model.Project{}, false
	}
	return r.projects[i], true
}

// FindByName matches case-insensitively on the trimmed name.
func (r *Registry) FindByName(name string) (model.Project, bool) {
	name = strings.TrimSpace(name)
	for _, p := range r.projects {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return model.Project{}, false
}

func (r *Registry) List() []model.Project {
	return slices.Clone(r.projects)
}

type Stats struct {
	ID        string
	Name      string
	Color     string
	TodoCount int
	Completed int
	Pending   int
	Overdue   int
}

// Stats summarizes the todos that reference projectID. Unknown projects
// report as "Unknown" with the inbox color.
func (r *Registry) Stats(projectID string, todos []model.Todo, now time.Time) Stats {
	s := Stats{ID: projectID, Name: "Unknown", Color: model.InboxProjectColor}
	if p, ok := r.Get(projectID); ok {
		s.Name, s.Color = p.Name, p.Color
	}
	for _, t := range todos {
		if t.ProjectID != projectID {
			continue
		}
		s.TodoCount++
		if t.Status == model.StatusCompleted {
			s.Completed++
		} else {
			s.Pending++
		}
		if model.IsOverdue(t, now) {
			s.Overdue++
		}
	}
	return s
}

func (r *Registry) indexOf(id string) int {
	return slices.IndexFunc(r.projects, func(p model.Project) bool { return p.ID == id })
}

func (r *Registry) persist(ctx context.Context) {
	if err := r.store.SaveProjects(ctx, r.projects); err != nil {
		r.logger.Warn("persist projects failed", slog.String("error", err.Error()))
	}
}

func (r *Registry) emit(ctx context.Context, typ model.ActivityType, description, projectID string) {
	if r.activity == nil {
		return
	}
	if err := r.activity.Record(ctx, typ, description, map[string]any{"projectId": projectID}); err != nil {
		r.logger.Warn("record activity failed", slog.String("type", string(typ)), slog.String("error", err.Error()))
	}
}
