package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/aitodo/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"done 2", TypeDone},
		{"undo", TypeUndo},
		{"/redo", TypeRedo},
		{"filter status:completed", TypeFilter},
		{"search milk", TypeSearch},
		{"clear", TypeClear},
		{"save Work stuff", TypeSave},
		{"load Work stuff", TypeLoad},
		{"project Home", TypeProject},
		{"generate plan a birthday party", TypeGenerate},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddInlineTokens(t *testing.T) {
	cmd, err := Parse("add pay rent p:high due:2026-03-01 project:Home")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	a := cmd.Add
	if a.Title != "pay rent" || a.Priority != model.PriorityHigh || a.Project != "Home" {
		t.Fatalf("unexpected add args: %+v", a)
	}
	if a.Due == nil || a.Due.Format("2006-01-02") != "2026-03-01" {
		t.Fatalf("unexpected due: %v", a.Due)
	}

	if cmd, _ := Parse("add ratio 3:2 matters"); cmd.Add.Title != "ratio 3:2 matters" {
		t.Fatalf("unknown key should stay in title, got %q", cmd.Add.Title)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"add",
		"add p:high",
		"add x p:urgent",
		"add x due:tomorrow",
		"done",
		"done zero",
		"done 0",
		"undo now",
		"filter",
		"filter status",
		"filter status:done",
		"filter colour:red",
		"filter due:custom",
		"search",
		"save",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input, got %v", in, err)
		}
	}
	_, err := Parse("/unknown do x")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestFilterArgsApplyOnlyNamedKeys(t *testing.T) {
	cmd, err := Parse("filter status:in_progress due:this-week")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	base := model.TodoFilter{Priority: "high", Search: "milk"}
	got := cmd.Filter.Apply(base)
	if got.Status != string(model.StatusInProgress) || got.DueDateRange != model.DueThisWeek {
		t.Fatalf("filter not applied: %+v", got)
	}
	if got.Priority != "high" || got.Search != "milk" {
		t.Fatalf("unnamed keys changed: %+v", got)
	}

	cmd, _ = Parse("filter status:all")
	if got := cmd.Filter.Apply(model.TodoFilter{Status: "completed"}); got.Status != model.All {
		t.Fatalf("status:all should reset, got %q", got.Status)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteTextCommands(t *testing.T) {
	got := map[Type]string{}
	record := func(typ Type) func(TextArgs) (Result, error) {
		return func(a TextArgs) (Result, error) {
			got[typ] = a.Text
			return Result{}, nil
		}
	}
	h := Handlers{
		Search:   record(TypeSearch),
		Save:     record(TypeSave),
		Load:     record(TypeLoad),
		Project:  record(TypeProject),
		Generate: record(TypeGenerate),
	}
	for _, in := range []string{"search buy milk", "save Focus", "load Focus", "project Side gig", "generate trip to Rome"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		if _, err := Execute(cmd, h); err != nil {
			t.Fatalf("execute %q failed: %v", in, err)
		}
	}
	want := map[Type]string{
		TypeSearch:   "buy milk",
		TypeSave:     "Focus",
		TypeLoad:     "Focus",
		TypeProject:  "Side gig",
		TypeGenerate: "trip to Rome",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s got %q, want %q", k, got[k], v)
		}
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"undo", "search x", "done 1"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}
