package update

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/aitodo/internal/ai"
)

func (m Model) openPrompt(projectID string) (tea.Model, tea.Cmd) {
	if !m.ws.AI.Available() {
		return m.setStatus("AI generation needs an API key (GEMINI_API_KEY)", true)
	}
	m.Mode = ModePrompt
	m.Prompt.ProjectID = projectID
	m.Prompt.Pending = false
	m.Prompt.GenID = 0
	m.promptInput.SetValue("")
	m.promptInput.Focus()
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dialog.Dismiss()
		m.Prompt.Pending = false
		m.Prompt.GenID = 0
		m.Mode = ModeNormal
		m.promptInput.Blur()
		return m.setStatus("generation cancelled", false)
	case "enter":
		if m.Prompt.Pending {
			return m, nil
		}
		text := strings.TrimSpace(m.promptInput.Value())
		if text == "" {
			return m.setStatus("describe what to generate", true)
		}
		cmd := m.submitPrompt(text)
		return m, cmd
	case "tab":
		if !m.Prompt.Pending {
			m.Prompt.Style = nextStyle(m.Prompt.Style)
		}
		return m, nil
	}
	if !m.Prompt.Pending {
		m.promptInput = typeInto(m.promptInput, msg)
	}
	return m, nil
}

// submitPrompt starts a generation and returns the command that delivers
// its result. An earlier in-flight generation is superseded.
func (m *Model) submitPrompt(text string) tea.Cmd {
	m.Mode = ModePrompt
	m.promptInput.SetValue(text)
	req := m.ws.GenerateRequest(text, m.Prompt.ProjectID, m.Prompt.Style)
	pending := m.dialog.Submit(m.ctx, req)
	m.Prompt.Pending = true
	m.Prompt.GenID = pending.ID
	return tea.Batch(waitForGeneration(pending), m.aiSpinner.Tick)
}

func waitForGeneration(p *ai.Pending) tea.Cmd {
	return func() tea.Msg {
		res, _ := p.Wait()
		return GenerationMsg{Result: res}
	}
}

// onGeneration shows a result only if the dialog is still waiting for that
// exact generation. Anything else is stale and dropped.
func (m Model) onGeneration(res ai.Result) (tea.Model, tea.Cmd) {
	if m.Mode != ModePrompt || res.ID != m.Prompt.GenID || !m.dialog.Accepts(res.ID) {
		return m, nil
	}
	m.dialog.Complete(res.ID)
	m.Prompt.Pending = false
	m.Prompt.GenID = 0
	if res.Err != nil {
		m.LastError = res.Err
		return m.setStatus(res.Err.Error(), true)
	}
	m.Mode = ModeReview
	m.promptInput.Blur()
	m.Review = ReviewState{ProjectID: m.Prompt.ProjectID, Candidates: res.Candidates}
	return m.setStatus(fmt.Sprintf("%d suggestions", len(res.Candidates)), false)
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		added := m.ws.AcceptGenerated(m.ctx, m.Review.ProjectID, m.Review.Candidates)
		m.Review = ReviewState{}
		m.Mode = ModeNormal
		m.clampCursor()
		return m.setStatus(fmt.Sprintf("added %d todos", len(added)), false)
	case "esc":
		m.Review = ReviewState{}
		m.Mode = ModeNormal
		return m.setStatus("suggestions discarded", false)
	}
	return m, nil
}

func nextStyle(s ai.Style) ai.Style {
	all := ai.Styles()
	i := slices.Index(all, s)
	return all[(i+1)%len(all)]
}
