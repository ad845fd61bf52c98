// Package app wires the stores into one workspace for a single local user.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeepkv93/aitodo/internal/activity"
	"github.com/sandeepkv93/aitodo/internal/ai"
	"github.com/sandeepkv93/aitodo/internal/filter"
	"github.com/sandeepkv93/aitodo/internal/ids"
	"github.com/sandeepkv93/aitodo/internal/logging"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/project"
	"github.com/sandeepkv93/aitodo/internal/savedfilter"
	"github.com/sandeepkv93/aitodo/internal/storage"
	"github.com/sandeepkv93/aitodo/internal/todo"
)

// DeletePolicy decides what happens to a deleted project's todos.
type DeletePolicy string

const (
	DeleteTodos   DeletePolicy = "delete"
	ReassignTodos DeletePolicy = "reassign"
)

type Options struct {
	Store          *storage.Adapter
	UserID         string
	Logger         *slog.Logger
	HistoryLimit   int
	// SearchMinScore is the fuzzy search threshold. Zero disables it.
	SearchMinScore int
	DeletePolicy   DeletePolicy
	AI             *ai.Service
	Now            func() time.Time
	NewTodoID      ids.Generator
}

type Workspace struct {
	Store    *storage.Adapter
	Todos    *todo.Engine
	Projects *project.Registry
	Filters  *savedfilter.Store
	Activity *activity.Log
	AI       *ai.Service

	userID string
	policy DeletePolicy
	logger *slog.Logger
	now    func() time.Time
}

func Open(ctx context.Context, opts Options) (*Workspace, error) {
	if opts.Store == nil {
		return nil, errors.New("app: nil store")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	switch opts.DeletePolicy {
	case "":
		opts.DeletePolicy = DeleteTodos
	case DeleteTodos, ReassignTodos:
	default:
		return nil, fmt.Errorf("app: unknown delete policy %q", opts.DeletePolicy)
	}
	if opts.AI == nil {
		opts.AI = ai.NewService(nil, ai.Options{Logger: opts.Logger})
	}

	fopts := filter.DefaultOptions()
	if opts.SearchMinScore != 0 {
		fopts.MinScore = opts.SearchMinScore
	}

	log := activity.New(opts.Store, activity.Options{Logger: opts.Logger, Now: opts.Now})
	sink := log.For(opts.UserID)
	w := &Workspace{
		Store:    opts.Store,
		Activity: log,
		AI:       opts.AI,
		userID:   opts.UserID,
		policy:   opts.DeletePolicy,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	w.Projects = project.New(ctx, opts.Store, project.Options{Activity: sink, Logger: opts.Logger, Now: opts.Now})
	w.Todos = todo.New(ctx, opts.Store, todo.Options{
		DefaultProjectID: model.InboxProjectID,
		HistoryLimit:     opts.HistoryLimit,
		Filter:           fopts,
		Activity:         sink,
		Logger:           opts.Logger,
		Now:              opts.Now,
		NewID:            opts.NewTodoID,
	})
	w.Filters = savedfilter.New(ctx, opts.Store, savedfilter.Options{Now: opts.Now})
	return w, nil
}

func (w *Workspace) UserID() string { return w.userID }

func (w *Workspace) Policy() DeletePolicy { return w.policy }

// DeleteProject removes a project and applies the delete policy to its
// todos. It returns how many todos were deleted or reassigned.
func (w *Workspace) DeleteProject(ctx context.Context, id string) (bool, int, error) {
	affected := 0
	ok, err := w.Projects.Delete(ctx, id, func(ctx context.Context, projectID string) {
		switch w.policy {
		case ReassignTodos:
			affected = w.Todos.ReassignProject(ctx, projectID, model.InboxProjectID)
		default:
			affected = w.Todos.DeleteByProject(ctx, projectID)
		}
	})
	if ok {
		w.logger.Info("project deleted",
			slog.String("project", id), slog.String("policy", string(w.policy)), slog.Int("todos", affected))
	}
	return ok, affected, err
}

// ActivityLog returns the workspace user's entries, most recent first.
func (w *Workspace) ActivityLog(ctx context.Context) []model.Activity {
	return w.Activity.List(ctx, w.userID)
}

// GenerateRequest builds the model request for prompt in projectID, listing
// the project's current todos so the model avoids duplicates.
func (w *Workspace) GenerateRequest(prompt, projectID string, style ai.Style) ai.Request {
	if projectID == "" {
		projectID = model.InboxProjectID
	}
	req := ai.Request{Prompt: prompt, Style: style}
	if p, ok := w.Projects.Get(projectID); ok {
		req.ProjectName, req.ProjectDescription = p.Name, p.Description
	}
	for _, t := range w.Todos.Visible(model.TodoFilter{ProjectID: projectID}) {
		req.Existing = append(req.Existing, ai.Summary{Title: t.Title, Description: t.Description, Priority: t.Priority})
	}
	return req
}

// Generate drafts candidates. Nothing is added to the collection.
func (w *Workspace) Generate(ctx context.Context, prompt, projectID string, style ai.Style) ([]ai.Candidate, error) {
	return w.AI.Generate(ctx, w.GenerateRequest(prompt, projectID, style))
}

// AcceptGenerated adds reviewed candidates to projectID through the normal
// add path as one undoable step.
func (w *Workspace) AcceptGenerated(ctx context.Context, projectID string, candidates []ai.Candidate) []model.Todo {
	if projectID == "" {
		projectID = model.InboxProjectID
	}
	name := projectID
	if p, ok := w.Projects.Get(projectID); ok {
		name = p.Name
	}
	in := make([]todo.NewTodo, 0, len(candidates))
	for _, c := range candidates {
		in = append(in, todo.NewTodo{Title: c.Title, Description: c.Description, Priority: c.Priority, ProjectID: projectID})
	}
	return w.Todos.AddMany(ctx, in, fmt.Sprintf("Generated %d todos with AI for %q", len(in), name))
}

func (w *Workspace) Close() error {
	return w.Store.Close()
}
