package views

import (
	"strings"
	"testing"
)

func TestRenderTodoPanelMarksSelectionAndStats(t *testing.T) {
	out := RenderTodoPanel(TodoPanelData{
		Rows: []TodoRowData{
			{Position: 1, Title: "Buy milk", Priority: "high"},
			{Position: 2, Title: "Walk dog", Priority: "low", Completed: true, Selected: true},
		},
		Stats: StatsData{Total: 2, Completed: 1, Pending: 1},
	})
	if !strings.Contains(out, "2 total | 1 done | 1 pending") {
		t.Fatalf("stats line missing: %q", out)
	}
	if !strings.Contains(out, "Buy milk") || !strings.Contains(out, "[x]") {
		t.Fatalf("rows missing: %q", out)
	}
}

func TestRenderTodoPanelEmpty(t *testing.T) {
	if out := RenderTodoPanel(TodoPanelData{}); !strings.Contains(out, "(no todos)") {
		t.Fatalf("expected empty marker, got %q", out)
	}
}

func TestWrapBreaksLongLines(t *testing.T) {
	out := Wrap("one two three four five six", 10)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 10 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
	if !strings.Contains(out, "\n") {
		t.Fatalf("expected wrapping, got %q", out)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if RenderMarkdown("   ", 40) != "" {
		t.Fatal("blank markdown should render empty")
	}
}

func TestRenderCommandPaletteInactive(t *testing.T) {
	if RenderCommandPalette(false, "add x") != "" {
		t.Fatal("inactive palette should render nothing")
	}
	if got := RenderCommandPalette(true, "add x"); got != "command: /add x" {
		t.Fatalf("unexpected palette: %q", got)
	}
}
