package todo

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/aitodo/internal/filter"
	"github.com/sandeepkv93/aitodo/internal/ids"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/storage"
)

type recordedActivity struct {
	Type        model.ActivityType
	Description string
}

type recordingSink struct {
	entries []recordedActivity
	err     error
}

func (r *recordingSink) Record(_ context.Context, typ model.ActivityType, description string, _ map[string]any) error {
	r.entries = append(r.entries, recordedActivity{Type: typ, Description: description})
	return r.err
}

var testNow = time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)

func setupEngine(t *testing.T) (*Engine, *storage.Adapter, *recordingSink) {
	t.Helper()
	store := storage.NewAdapter(storage.NewMemoryKV(), nil)
	sink := &recordingSink{}
	e := New(context.Background(), store, Options{
		Activity: sink,
		Filter:   filter.DefaultOptions(),
		Now:      func() time.Time { return testNow },
		NewID:    ids.Sequence("todo-"),
	})
	return e, store, sink
}

func mustAdd(t *testing.T, e *Engine, title string) model.Todo {
	t.Helper()
	td, err := e.Add(context.Background(), NewTodo{Title: title})
	if err != nil {
		t.Fatalf("add %q: %v", title, err)
	}
	return td
}

func orders(e *Engine) map[string]int {
	out := make(map[string]int)
	for _, td := range e.All() {
		out[td.Title] = td.Order
	}
	return out
}

func TestBuyMilkWalkDogScenario(t *testing.T) {
	e, _, _ := setupEngine(t)
	ctx := context.Background()

	milk := mustAdd(t, e, "Buy milk")
	visible := e.Visible(model.TodoFilter{})
	if len(visible) != 1 || visible[0].Title != "Buy milk" || visible[0].Status != model.StatusPending || visible[0].Order != 0 {
		t.Fatalf("unexpected visible list: %#v", visible)
	}
	if milk.ProjectID != model.InboxProjectID || milk.Priority != model.PriorityMedium {
		t.Fatalf("defaults not applied: %#v", milk)
	}

	dog := mustAdd(t, e, "Walk dog")
	if dog.Order != 1 {
		t.Fatalf("expected order 1, got %d", dog.Order)
	}

	if !e.Reorder(ctx, 1, 0) {
		t.Fatal("reorder reported no change")
	}
	if got := orders(e); got["Walk dog"] != 0 || got["Buy milk"] != 1 {
		t.Fatalf("unexpected orders after reorder: %v", got)
	}

	if !e.Undo(ctx) {
		t.Fatal("undo failed")
	}
	if got := orders(e); got["Buy milk"] != 0 || got["Walk dog"] != 1 {
		t.Fatalf("unexpected orders after undo: %v", got)
	}
}

func TestAddAssignsMaxPlusOne(t *testing.T) {
	e, _, _ := setupEngine(t)
	ctx := context.Background()
	mustAdd(t, e, "a")
	b := mustAdd(t, e, "b")
	seven := 7
	if _, err := e.Update(ctx, b.ID, Patch{Order: &seven}); err != nil {
		t.Fatalf("update: %v", err)
	}
	c := mustAdd(t, e, "c")
	if c.Order != 8 {
		t.Fatalf("expected order 8, got %d", c.Order)
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	e, _, sink := setupEngine(t)
	if _, err := e.Add(context.Background(), NewTodo{Title: "   "}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if len(e.All()) != 0 || e.CanUndo() || len(sink.entries) != 0 {
		t.Fatal("rejected add must not touch the collection")
	}
}

func TestUndoRoundTripOverMixedSequence(t *testing.T) {
	e, _, _ := setupEngine(t)
	ctx := context.Background()
	mustAdd(t, e, "seed")
	initial := e.All()

	a := mustAdd(t, e, "a")
	title := "a2"
	if ok, err := e.Update(ctx, a.ID, Patch{Title: &title}); !ok || err != nil {
		t.Fatalf("update: %v %v", ok, err)
	}
	mustAdd(t, e, "b")
	if !e.Reorder(ctx, 2, 0) {
		t.Fatal("reorder no-op")
	}
	if !e.Delete(ctx, a.ID) {
		t.Fatal("delete no-op")
	}

	for i := 0; i < 5; i++ {
		if !e.Undo(ctx) {
			t.Fatalf("undo %d failed", i)
		}
	}
	if !reflect.DeepEqual(e.All(), initial) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", e.All(), initial)
	}
}

func TestUndoThenRedoIsIdentity(t *testing.T) {
	e, _, _ := setupEngine(t)
	ctx := context.Background()
	a := mustAdd(t, e, "a")
	high := model.PriorityHigh
	if _, err := e.Update(ctx, a.ID, Patch{Priority: &high}); err != nil {
		t.Fatalf("update: %v", err)
	}
	after := e.All()

	if !e.Undo(ctx) {
		t.Fatal("undo failed")
	}
	if got, _ := e.Get(a.ID); got.Priority != model.PriorityMedium {
		t.Fatalf("undo did not restore priority: %s", got.Priority)
	}
	if !e.Redo(ctx) {
		t.Fatal("redo failed")
	}
	if !reflect.DeepEqual(e.All(), after) {
		t.Fatalf("redo mismatch:\n got %#v\nwant %#v", e.All(), after)
	}
	if e.CanRedo() {
		t.Fatal("redo should be exhausted")
	}
}

func TestNotFoundIsSilentNoop(t *testing.T) {
	e, _, sink := setupEngine(t)
	ctx := context.Background()
	title := "x"
	ok, err := e.Update(ctx, "missing", Patch{Title: &title})
	if ok || err != nil {
		t.Fatalf("expected silent no-op, got %v %v", ok, err)
	}
	if e.Delete(ctx, "missing") {
		t.Fatal("delete of unknown id reported change")
	}
	if e.CanUndo() || len(sink.entries) != 0 {
		t.Fatal("no-op recorded history or activity")
	}
}

func TestUpdateRejectsBlankTitleWithoutMutation(t *testing.T) {
	e, _, _ := setupEngine(t)
	a := mustAdd(t, e, "a")
	blank := " "
	if _, err := e.Update(context.Background(), a.ID, Patch{Title: &blank}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if got, _ := e.Get(a.ID); got.Title != "a" {
		t.Fatalf("title mutated: %q", got.Title)
	}
}

func TestReorderIsDense(t *testing.T) {
	e, _, _ := setupEngine(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c", "d"} {
		mustAdd(t, e, title)
	}
	ten := 10
	all := e.All()
	if _, err := e.Update(ctx, all[1].ID, Patch{Order: &ten}); err != nil {
		t.Fatalf("update: %v", err)
	}
	// Display order is now a, c, d, b.
	if !e.Reorder(ctx, 0, 3) {
		t.Fatal("reorder no-op")
	}
	got := e.Visible(model.TodoFilter{})
	want := []string{"c", "d", "b", "a"}
	for i, td := range got {
		if td.Order != i {
			t.Fatalf("order not dense at %d: %d", i, td.Order)
		}
		if td.Title != want[i] {
			t.Fatalf("position %d: got %q want %q", i, td.Title, want[i])
		}
	}
	if e.Reorder(ctx, 0, 9) || e.Reorder(ctx, -1, 0) {
		t.Fatal("out of range reorder must be a no-op")
	}
	if e.Reorder(ctx, 2, 2) {
		t.Fatal("reorder onto itself of a dense collection must be a no-op")
	}
}

func TestReorderByIDUsesFilteredOrder(t *testing.T) {
	ctx := context.Background()
	setup := func(t *testing.T) *Engine {
		e, _, _ := setupEngine(t)
		for _, title := range []string{"a", "b", "c", "d"} {
			mustAdd(t, e, title)
		}
		done := model.StatusCompleted
		if _, err := e.Update(ctx, "todo-2", Patch{Status: &done}); err != nil {
			t.Fatalf("update: %v", err)
		}
		return e
	}
	pending := model.TodoFilter{Status: string(model.StatusPending)}

	up := setup(t)
	if !up.ReorderByID(ctx, "todo-4", "todo-1", pending) {
		t.Fatal("reorder up no-op")
	}
	if got := titles(up.Visible(model.TodoFilter{})); !reflect.DeepEqual(got, []string{"d", "a", "b", "c"}) {
		t.Fatalf("unexpected order after moving up: %v", got)
	}

	down := setup(t)
	if !down.ReorderByID(ctx, "todo-1", "todo-3", pending) {
		t.Fatal("reorder down no-op")
	}
	if got := titles(down.Visible(model.TodoFilter{})); !reflect.DeepEqual(got, []string{"b", "c", "a", "d"}) {
		t.Fatalf("unexpected order after moving down: %v", got)
	}

	if down.ReorderByID(ctx, "todo-2", "todo-1", pending) {
		t.Fatal("moving an item hidden by the filter must be a no-op")
	}
}

func titles(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, td := range todos {
		out[i] = td.Title
	}
	return out
}

func TestStatsOverUnfilteredCollection(t *testing.T) {
	e, _, _ := setupEngine(t)
	ctx := context.Background()
	past := testNow.AddDate(0, 0, -2)
	a, _ := e.Add(ctx, NewTodo{Title: "late", DueDate: &past})
	b, _ := e.Add(ctx, NewTodo{Title: "late but done", DueDate: &past})
	mustAdd(t, e, "fresh")
	if _, err := e.SetStatus(ctx, b.ID, model.StatusCompleted); err != nil {
		t.Fatalf("set status: %v", err)
	}
	inProgress := model.StatusInProgress
	if _, err := e.Update(ctx, a.ID, Patch{Status: &inProgress}); err != nil {
		t.Fatalf("update: %v", err)
	}

	s := e.Stats()
	want := model.Stats{Total: 3, Completed: 1, Pending: 1, InProgress: 1, Overdue: 1}
	if s != want {
		t.Fatalf("stats = %+v, want %+v", s, want)
	}
	if len(e.Visible(model.TodoFilter{Status: "completed"})) != 1 || e.Stats().Total != 3 {
		t.Fatal("stats must ignore the visible subset")
	}
}

func TestMutationsWriteThroughAndEmitActivity(t *testing.T) {
	e, store, sink := setupEngine(t)
	ctx := context.Background()
	a := mustAdd(t, e, "Buy milk")
	if _, err := e.ToggleComplete(ctx, a.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := e.ToggleComplete(ctx, a.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	desc := "2 liters"
	if _, err := e.Update(ctx, a.ID, Patch{Description: &desc}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := store.LoadTodos(ctx); len(got) != 1 || got[0].Description != "2 liters" {
		t.Fatalf("write-through missing: %#v", got)
	}
	e.Delete(ctx, a.ID)
	if got := store.LoadTodos(ctx); len(got) != 0 {
		t.Fatalf("delete not persisted: %#v", got)
	}

	wantTypes := []model.ActivityType{
		model.ActivityTodoCreated,
		model.ActivityTodoCompleted,
		model.ActivityTodoIncomplete,
		model.ActivityTodoEdited,
		model.ActivityTodoDeleted,
	}
	if len(sink.entries) != len(wantTypes) {
		t.Fatalf("unexpected activities: %#v", sink.entries)
	}
	for i, w := range wantTypes {
		if sink.entries[i].Type != w {
			t.Fatalf("activity %d: got %s want %s", i, sink.entries[i].Type, w)
		}
	}
	if sink.entries[0].Description != "Created todo: Buy milk" {
		t.Fatalf("unexpected description: %q", sink.entries[0].Description)
	}
}

func TestActivityFailureDoesNotRollBack(t *testing.T) {
	e, _, sink := setupEngine(t)
	sink.err = errors.New("activity store down")
	a := mustAdd(t, e, "kept")
	if _, ok := e.Get(a.ID); !ok {
		t.Fatal("mutation rolled back on activity failure")
	}
}

func TestBulkOperationsAreSingleHistoryEntries(t *testing.T) {
	e, _, sink := setupEngine(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		mustAdd(t, e, title)
	}
	before := e.All()
	low := model.PriorityLow
	n, err := e.BulkUpdate(ctx, []string{"todo-1", "todo-3", "todo-3", "missing"}, Patch{Priority: &low})
	if err != nil || n != 2 {
		t.Fatalf("bulk update: %d %v", n, err)
	}
	if !e.Undo(ctx) || !reflect.DeepEqual(e.All(), before) {
		t.Fatal("bulk update must undo in one step")
	}
	if got := e.BulkDelete(ctx, []string{"todo-1", "todo-2"}); got != 2 {
		t.Fatalf("bulk delete removed %d", got)
	}
	if len(e.All()) != 1 {
		t.Fatalf("expected 1 todo left, got %d", len(e.All()))
	}
	if last := sink.entries[len(sink.entries)-1]; last.Type != model.ActivityBulkOperation || last.Description != "Deleted 2 todos" {
		t.Fatalf("unexpected bulk activity: %#v", last)
	}
	if !e.Undo(ctx) || len(e.All()) != 3 {
		t.Fatal("bulk delete must undo in one step")
	}
}

func TestProjectCascadeTargets(t *testing.T) {
	e, _, _ := setupEngine(t)
	ctx := context.Background()
	e.Add(ctx, NewTodo{Title: "w1", ProjectID: "work"})
	e.Add(ctx, NewTodo{Title: "w2", ProjectID: "work"})
	e.Add(ctx, NewTodo{Title: "home"})

	if n := e.ReassignProject(ctx, "work", model.InboxProjectID); n != 2 {
		t.Fatalf("reassigned %d", n)
	}
	if got := e.Visible(model.TodoFilter{ProjectID: model.InboxProjectID}); len(got) != 3 {
		t.Fatalf("expected 3 inbox todos, got %d", len(got))
	}
	e.Undo(ctx)
	if n := e.DeleteByProject(ctx, "work"); n != 2 {
		t.Fatalf("deleted %d", n)
	}
	if n := e.DeleteByProject(ctx, "work"); n != 0 {
		t.Fatalf("second cascade deleted %d", n)
	}
}

func TestAddManySkipsBlankAndRecordsOnce(t *testing.T) {
	e, _, sink := setupEngine(t)
	ctx := context.Background()
	mustAdd(t, e, "existing")
	added := e.AddMany(ctx, []NewTodo{
		{Title: "one", Priority: model.PriorityHigh, ProjectID: "work"},
		{Title: "  "},
		{Title: "two", Description: " desc "},
	}, `Generated 2 todos with AI for "Work"`)
	if len(added) != 2 || added[0].Order != 1 || added[1].Order != 2 || added[1].Description != "desc" {
		t.Fatalf("unexpected added: %#v", added)
	}
	if last := sink.entries[len(sink.entries)-1]; last.Type != model.ActivityAIGeneration {
		t.Fatalf("expected ai_generation activity, got %s", last.Type)
	}
	if !e.Undo(ctx) || len(e.All()) != 1 {
		t.Fatal("AddMany must undo in one step")
	}
	if got := e.AddMany(ctx, nil, ""); got != nil || !e.CanRedo() {
		t.Fatal("empty AddMany must not record history")
	}
}

func TestEngineReloadsPersistedCollection(t *testing.T) {
	e, store, _ := setupEngine(t)
	mustAdd(t, e, "persisted")
	again := New(context.Background(), store, Options{Now: func() time.Time { return testNow }})
	if got := again.All(); len(got) != 1 || got[0].Title != "persisted" {
		t.Fatalf("reload mismatch: %#v", got)
	}
	if again.CanUndo() {
		t.Fatal("history must not survive reload")
	}
}
