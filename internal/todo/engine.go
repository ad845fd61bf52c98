// Package todo owns the todo collection: mutations, manual ordering, stats,
// and the undo/redo history over full snapshots.
//
// An Engine is not safe for concurrent use. Every mutation runs to completion
// on the caller's goroutine: the pre-mutation snapshot is captured, the change
// applied, history recorded, the collection written through to storage, and
// finally an activity emitted.
package todo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/aitodo/internal/filter"
	"github.com/sandeepkv93/aitodo/internal/history"
	"github.com/sandeepkv93/aitodo/internal/ids"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/storage"
)

var ErrEmptyTitle = model.ErrEmptyTitle

// History entry kinds.
const (
	KindAdd        = "add"
	KindUpdate     = "update"
	KindDelete     = "delete"
	KindReorder    = "reorder"
	KindBulkUpdate = "bulk_update"
	KindBulkDelete = "bulk_delete"
	KindAddMany    = "add_many"
	KindCascade    = "cascade"
)

// ActivitySink receives human-readable descriptions of mutations.
type ActivitySink interface {
	Record(ctx context.Context, typ model.ActivityType, description string, metadata map[string]any) error
}

type Options struct {
	DefaultProjectID string
	HistoryLimit     int
	Filter           filter.Options
	Activity         ActivitySink
	Logger           *slog.Logger
	Now              func() time.Time
	NewID            ids.Generator
}

type Engine struct {
	store          *storage.Adapter
	todos          []model.Todo
	history        *history.Manager[[]model.Todo]
	defaultProject string
	filterOpts     filter.Options
	activity       ActivitySink
	logger         *slog.Logger
	now            func() time.Time
	newID          ids.Generator
}

// New loads the collection from store.
func New(ctx context.Context, store *storage.Adapter, opts Options) *Engine {
	e := &Engine{
		store:          store,
		history:        history.New[[]model.Todo](opts.HistoryLimit),
		defaultProject: opts.DefaultProjectID,
		filterOpts:     opts.Filter,
		activity:       opts.Activity,
		logger:         opts.Logger,
		now:            opts.Now,
		newID:          opts.NewID,
	}
	if e.defaultProject == "" {
		e.defaultProject = model.InboxProjectID
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = ids.New
	}
	e.todos = store.LoadTodos(ctx)
	return e
}

type NewTodo struct {
	Title       string
	Description string
	Priority    model.Priority
	DueDate     *time.Time
	ProjectID   string
}

// Patch lists the fields Update may change. Nil fields are left alone.
type Patch struct {
	Title        *string
	Description  *string
	Status       *model.Status
	Priority     *model.Priority
	DueDate      *time.Time
	ClearDueDate bool
	ProjectID    *string
	Order        *int
}

func (p Patch) validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidStatus, *p.Status)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidPriority, *p.Priority)
	}
	return nil
}

func (p Patch) apply(t model.Todo) model.Todo {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
	return t
}

// All returns a copy of the whole collection in storage order.
func (e *Engine) All() []model.Todo {
	return model.CloneTodos(e.todos)
}

// Get returns the todo with id.
func (e *Engine) Get(id string) (model.Todo, bool) {
	i := e.indexOf(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return e.todos[i].Clone(), true
}

// Visible runs the filter pipeline over the whole collection.
func (e *Engine) Visible(f model.TodoFilter) []model.Todo {
	return filter.Apply(e.todos, f, e.now(), e.filterOpts)
}

// Stats counts over the unfiltered collection.
func (e *Engine) Stats() model.Stats {
	return model.ComputeStats(e.todos, e.now())
}

func (e *Engine) Add(ctx context.Context, in NewTodo) (model.Todo, error) {
	t, err := e.build(in, e.nextOrder(e.todos))
	if err != nil {
		return model.Todo{}, err
	}
	before := e.snapshot()
	e.todos = append(e.todos, t)
	e.commit(ctx, KindAdd, before)
	e.emit(ctx, model.ActivityTodoCreated, "Created todo: "+t.Title, map[string]any{"todoId": t.ID, "projectId": t.ProjectID})
	return t.Clone(), nil
}

// AddMany ingests reviewed candidates as one history entry. Candidates with
// a blank title are skipped.
func (e *Engine) AddMany(ctx context.Context, in []NewTodo, description string) []model.Todo {
	before := e.snapshot()
	next := e.nextOrder(e.todos)
	added := make([]model.Todo, 0, len(in))
	for _, c := range in {
		t, err := e.build(c, next)
		if err != nil {
			continue
		}
		next++
		added = append(added, t)
	}
	if len(added) == 0 {
		return nil
	}
	e.todos = append(e.todos, added...)
	e.commit(ctx, KindAddMany, before)
	meta := map[string]any{"count": len(added)}
	if p := added[0].ProjectID; p != "" {
		meta["projectId"] = p
	}
	if description == "" {
		description = fmt.Sprintf("Added %d todos", len(added))
	}
	e.emit(ctx, model.ActivityAIGeneration, description, meta)
	return model.CloneTodos(added)
}

func (e *Engine) build(in NewTodo, order int) (model.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Todo{}, ErrEmptyTitle
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.IsValid() {
		return model.Todo{}, fmt.Errorf("%w: %q", model.ErrInvalidPriority, priority)
	}
	project := in.ProjectID
	if project == "" {
		project = e.defaultProject
	}
	now := e.now()
	t := model.Todo{
		ID:          e.newID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      model.StatusPending,
		Priority:    priority,
		ProjectID:   project,
		Order:       order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueDate != nil {
		due := *in.DueDate
		t.DueDate = &due
	}
	return t, nil
}

// Update merges p into the todo with id. It reports false, with no history
// entry, when id is unknown.
func (e *Engine) Update(ctx context.Context, id string, p Patch) (bool, error) {
	if err := p.validate(); err != nil {
		return false, err
	}
	i := e.indexOf(id)
	if i < 0 {
		return false, nil
	}
	before := e.snapshot()
	prev := e.todos[i]
	next := p.apply(prev.Clone())
	next.UpdatedAt = e.now()
	e.todos[i] = next
	e.commit(ctx, KindUpdate, before)
	e.emitUpdate(ctx, prev, next)
	return true, nil
}

// SetStatus is Update restricted to the status field.
func (e *Engine) SetStatus(ctx context.Context, id string, s model.Status) (bool, error) {
	return e.Update(ctx, id, Patch{Status: &s})
}

// ToggleComplete flips between completed and pending.
func (e *Engine) ToggleComplete(ctx context.Context, id string) (bool, error) {
	t, ok := e.Get(id)
	if !ok {
		return false, nil
	}
	if t.Status == model.StatusCompleted {
		return e.SetStatus(ctx, id, model.StatusPending)
	}
	return e.SetStatus(ctx, id, model.StatusCompleted)
}

func (e *Engine) emitUpdate(ctx context.Context, prev, next model.Todo) {
	meta := map[string]any{"todoId": next.ID, "projectId": next.ProjectID}
	switch {
	case prev.Status != model.StatusCompleted && next.Status == model.StatusCompleted:
		e.emit(ctx, model.ActivityTodoCompleted, "Completed todo: "+next.Title, meta)
	case prev.Status == model.StatusCompleted && next.Status != model.StatusCompleted:
		e.emit(ctx, model.ActivityTodoIncomplete, "Marked todo as incomplete: "+next.Title, meta)
	default:
		e.emit(ctx, model.ActivityTodoEdited, "Edited todo: "+next.Title, meta)
	}
}

func (e *Engine) Delete(ctx context.Context, id string) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	before := e.snapshot()
	removed := e.todos[i]
	e.todos = slices.Delete(e.todos, i, i+1)
	e.commit(ctx, KindDelete, before)
	e.emit(ctx, model.ActivityTodoDeleted, "Deleted todo: "+removed.Title, map[string]any{"todoId": removed.ID, "projectId": removed.ProjectID})
	return true
}

// BulkUpdate applies p to every known id as one history entry and returns how
// many todos changed.
func (e *Engine) BulkUpdate(ctx context.Context, idList []string, p Patch) (int, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	before := e.snapshot()
	now := e.now()
	n := 0
	for _, id := range dedupe(idList) {
		i := e.indexOf(id)
		if i < 0 {
			continue
		}
		e.todos[i] = p.apply(e.todos[i].Clone())
		e.todos[i].UpdatedAt = now
		n++
	}
	if n == 0 {
		return 0, nil
	}
	e.commit(ctx, KindBulkUpdate, before)
	e.emit(ctx, model.ActivityBulkOperation, fmt.Sprintf("Updated %d todos", n), map[string]any{"count": n})
	return n, nil
}

// BulkDelete removes every known id as one history entry.
func (e *Engine) BulkDelete(ctx context.Context, idList []string) int {
	set := make(map[string]struct{}, len(idList))
	for _, id := range idList {
		set[id] = struct{}{}
	}
	n := e.removeWhere(ctx, KindBulkDelete, func(t model.Todo) bool {
		_, ok := set[t.ID]
		return ok
	})
	if n > 0 {
		e.emit(ctx, model.ActivityBulkOperation, fmt.Sprintf("Deleted %d todos", n), map[string]any{"count": n})
	}
	return n
}

// DeleteByProject removes every todo in projectID.
func (e *Engine) DeleteByProject(ctx context.Context, projectID string) int {
	return e.removeWhere(ctx, KindCascade, func(t model.Todo) bool { return t.ProjectID == projectID })
}

// ReassignProject moves every todo in from to project to.
func (e *Engine) ReassignProject(ctx context.Context, from, to string) int {
	if from == to {
		return 0
	}
	before := e.snapshot()
	now := e.now()
	n := 0
	for i := range e.todos {
		if e.todos[i].ProjectID == from {
			e.todos[i].ProjectID = to
			e.todos[i].UpdatedAt = now
			n++
		}
	}
	if n > 0 {
		e.commit(ctx, KindCascade, before)
	}
	return n
}

func (e *Engine) removeWhere(ctx context.Context, kind string, match func(model.Todo) bool) int {
	before := e.snapshot()
	kept := make([]model.Todo, 0, len(e.todos))
	for _, t := range e.todos {
		if !match(t) {
			kept = append(kept, t)
		}
	}
	n := len(e.todos) - len(kept)
	if n == 0 {
		return 0
	}
	e.todos = kept
	e.commit(ctx, kind, before)
	return n
}

// Reorder moves the todo at display position from to position to and
// rewrites every order densely. It reports whether anything changed.
func (e *Engine) Reorder(ctx context.Context, from, to int) bool {
	seq := e.displayOrder()
	if from < 0 || from >= len(seq) || to < 0 || to >= len(seq) {
		return false
	}
	return e.applySequence(ctx, move(seq, from, to))
}

// ReorderByID moves movedID onto targetID's slot, resolving direction from
// their positions in the filtered view f. Items hidden by f keep their
// relative place in the full sequence.
func (e *Engine) ReorderByID(ctx context.Context, movedID, targetID string, f model.TodoFilter) bool {
	if movedID == targetID {
		return false
	}
	visible := e.Visible(f)
	vFrom, vTo := positionOf(visible, movedID), positionOf(visible, targetID)
	if vFrom < 0 || vTo < 0 {
		return false
	}
	seq := e.displayOrder()
	from, to := positionOf(seq, movedID), positionOf(seq, targetID)
	if from < 0 || to < 0 {
		return false
	}
	moved := seq[from]
	seq = slices.Delete(seq, from, from+1)
	at := positionOf(seq, targetID)
	if vFrom < vTo {
		at++
	}
	seq = slices.Insert(seq, at, moved)
	return e.applySequence(ctx, seq)
}

func (e *Engine) applySequence(ctx context.Context, seq []model.Todo) bool {
	changed := false
	for i := range seq {
		if seq[i].Order != i {
			changed = true
		}
		seq[i].Order = i
	}
	if !changed {
		return false
	}
	before := e.snapshot()
	e.todos = seq
	e.commit(ctx, KindReorder, before)
	return true
}

func (e *Engine) displayOrder() []model.Todo {
	seq := model.CloneTodos(e.todos)
	filter.SortByOrder(seq)
	return seq
}

func (e *Engine) Undo(ctx context.Context) bool {
	s, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(ctx, s)
	return true
}

func (e *Engine) Redo(ctx context.Context) bool {
	s, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(ctx, s)
	return true
}

func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

func (e *Engine) restore(ctx context.Context, s []model.Todo) {
	e.todos = model.CloneTodos(s)
	e.persist(ctx)
}

func (e *Engine) snapshot() []model.Todo {
	return model.CloneTodos(e.todos)
}

func (e *Engine) commit(ctx context.Context, kind string, before []model.Todo) {
	e.history.Record(kind, before, e.snapshot())
	e.persist(ctx)
}

func (e *Engine) persist(ctx context.Context) {
	if err := e.store.SaveTodos(ctx, e.todos); err != nil {
		e.logger.Warn("persist todos failed", slog.String("error", err.Error()))
	}
}

func (e *Engine) emit(ctx context.Context, typ model.ActivityType, description string, meta map[string]any) {
	if e.activity == nil {
		return
	}
	if err := e.activity.Record(ctx, typ, description, meta); err != nil {
		e.logger.Warn("record activity failed", slog.String("type", string(typ)), slog.String("error", err.Error()))
	}
}

func (e *Engine) indexOf(id string) int {
	return positionOf(e.todos, id)
}

func (e *Engine) nextOrder(todos []model.Todo) int {
	if len(todos) == 0 {
		return 0
	}
	highest := todos[0].Order
	for _, t := range todos[1:] {
		if t.Order > highest {
			highest = t.Order
		}
	}
	return highest + 1
}

func positionOf(todos []model.Todo, id string) int {
	return slices.IndexFunc(todos, func(t model.Todo) bool { return t.ID == id })
}

func move(seq []model.Todo, from, to int) []model.Todo {
	moved := seq[from]
	seq = slices.Delete(seq, from, from+1)
	return slices.Insert(seq, to, moved)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
