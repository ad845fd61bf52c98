package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/aitodo/internal/ai"
	"github.com/sandeepkv93/aitodo/internal/app"
	"github.com/sandeepkv93/aitodo/internal/model"
)

type View string

const (
	ViewTodos    View = "Todos"
	ViewProjects View = "Projects"
	ViewActivity View = "Activity"
)

func allViews() []View {
	return []View{ViewTodos, ViewProjects, ViewActivity}
}

// Mode is the input layer currently receiving keys.
type Mode string

const (
	ModeNormal  Mode = "normal"
	ModeAdd     Mode = "add"
	ModePalette Mode = "palette"
	ModePrompt  Mode = "prompt"
	ModeReview  Mode = "review"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add      string
	Toggle   string
	Delete   string
	MoveDown string
	MoveUp   string
	Undo     string
	Redo     string
	Priority string
	Status   string
	Filter   string
	Palette  string
	Generate string
	NextView string
	Help     string
	Quit     string
}

func DefaultKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Add:      "a",
		Toggle:   " ",
		Delete:   "x",
		MoveDown: "J",
		MoveUp:   "K",
		Undo:     "u",
		Redo:     "ctrl+r",
		Priority: "p",
		Status:   "s",
		Filter:   "f",
		Palette:  "/",
		Generate: "g",
		NextView: "tab",
		Help:     "?",
		Quit:     "q",
	}
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// PromptState is the AI prompt dialog. GenID is the generation the dialog
// is waiting on; zero means nothing is in flight.
type PromptState struct {
	ProjectID string
	Style     ai.Style
	Pending   bool
	GenID     uint64
}

// ReviewState holds generated candidates until the user accepts or discards
// them.
type ReviewState struct {
	ProjectID  string
	Candidates []ai.Candidate
}

type Model struct {
	CurrentView   View
	Mode          Mode
	Filter        model.TodoFilter
	Cursor        int
	ProjectCursor int
	Palette       CommandPaletteState
	Prompt        PromptState
	Review        ReviewState
	HelpVisible   bool
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	ctx       context.Context
	ws        *app.Workspace
	dialog    *ai.Dialog
	cfg       RuntimeConfig
	now       func() time.Time
	statusSeq int

	addInput     textinput.Model
	commandInput textinput.Model
	promptInput  textinput.Model
	aiSpinner    spinner.Model
	helpModel    help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

// ClearStatusMsg clears the toast it was scheduled for. Seq zero clears
// whatever is shown.
type ClearStatusMsg struct {
	Seq int
}

type AppErrorMsg struct {
	Err error
}

// GenerationMsg carries a finished AI call back to the update loop.
type GenerationMsg struct {
	Result ai.Result
}

func NewModel(ctx context.Context, ws *app.Workspace, cfg RuntimeConfig) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg = cfg.withDefaults()
	m := Model{
		CurrentView: ViewTodos,
		Mode:        ModeNormal,
		Keys:        DefaultKeyMap(),
		Prompt:      PromptState{Style: cfg.AIStyle},
		ctx:         ctx,
		ws:          ws,
		dialog:      ai.NewDialog(ws.AI),
		cfg:         cfg,
		now:         time.Now,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Placeholder = "title p:high due:2026-01-31 project:Work"
	m.addInput.Prompt = "add> "
	m.addInput.CharLimit = 200

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "filter status:pending"
	m.commandInput.Prompt = "/"

	m.promptInput = textinput.New()
	m.promptInput.Placeholder = "plan a product launch"
	m.promptInput.Prompt = "ai> "
	m.promptInput.CharLimit = 500

	m.aiSpinner = spinner.New()
	m.aiSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}
