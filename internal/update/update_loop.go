package update

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/aitodo/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.dialog.Dismiss()
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModePalette:
			return m.handlePaletteKey(typed)
		case ModeAdd:
			return m.handleAddKey(typed)
		case ModePrompt:
			return m.handlePromptKey(typed)
		case ModeReview:
			return m.handleReviewKey(typed)
		}
		return m.handleNormalKey(typed)
	case spinner.TickMsg:
		if m.Prompt.Pending {
			var cmd tea.Cmd
			m.aiSpinner, cmd = m.aiSpinner.Update(typed)
			return m, cmd
		}
	case GenerationMsg:
		return m.onGeneration(typed.Result)
	case SwitchViewMsg:
		if slices.Contains(allViews(), typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		return m.setStatus(typed.Text, typed.IsError)
	case ClearStatusMsg:
		if typed.Seq == 0 || typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			return m.setStatus(typed.Err.Error(), true)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.dialog.Dismiss()
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.NextView:
		m.CurrentView = nextView(m.CurrentView)
		return m, nil
	case m.Keys.Palette:
		m.Mode = ModePalette
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case m.Keys.Generate:
		return m.openPrompt(m.currentProjectID())
	case m.Keys.Undo:
		if m.ws.Todos.Undo(m.ctx) {
			m.clampCursor()
			return m.setStatus("undone", false)
		}
		return m.setStatus("nothing to undo", false)
	case m.Keys.Redo:
		if m.ws.Todos.Redo(m.ctx) {
			m.clampCursor()
			return m.setStatus("redone", false)
		}
		return m.setStatus("nothing to redo", false)
	}
	switch m.CurrentView {
	case ViewTodos:
		return m.handleTodoKey(msg)
	case ViewProjects:
		return m.handleProjectKey(msg)
	}
	return m, nil
}

// setStatus shows a toast and schedules it to clear.
func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.statusSeq++
	m.Status = StatusBar{Text: text, IsError: isErr}
	if m.cfg.StatusTimeout == 0 || text == "" {
		return m, nil
	}
	seq := m.statusSeq
	return m, tea.Tick(m.cfg.StatusTimeout, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
}

func nextView(v View) View {
	all := allViews()
	i := slices.Index(all, v)
	return all[(i+1)%len(all)]
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	tabs := make([]string, 0, len(allViews()))
	for _, v := range allViews() {
		tabs = append(tabs, string(v))
	}

	var left, right string
	switch m.CurrentView {
	case ViewTodos:
		left = m.renderTodoView()
		right = m.renderTodoDetail()
	case ViewProjects:
		left = m.renderProjectView()
	case ViewActivity:
		left = m.renderActivityView()
	}
	switch m.Mode {
	case ModePalette:
		right = m.renderCommandPalette()
	case ModePrompt:
		right = m.renderPromptView()
	case ModeReview:
		right = m.renderReviewView()
	}
	right += m.renderHelpIfVisible()

	return views.RenderApp(views.AppData{
		Header:      fmt.Sprintf("aitodo | user: %s | undo: %v redo: %v", m.ws.UserID(), m.ws.Todos.CanUndo(), m.ws.Todos.CanRedo()),
		Tabs:        tabs,
		ActiveTab:   slices.Index(allViews(), m.CurrentView),
		LeftPane:    left,
		RightPane:   right,
		StatusLine:  status,
		StatusError: m.Status.IsError,
		Footer:      "keys: a add | space done | x delete | J/K move | u undo | ctrl+r redo | / cmd | g ai | tab view | ? help | q quit",
	})
}
