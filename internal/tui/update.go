package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case NavigateMsg:
		m.navigate(msg.Scene)
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ProjectionStartedMsg:
		m.loading = true
		m.loadingMessage = "Projecting " + msg.Path + "..."
		return m, runProjectionCmd(m.ctx, m.engine, msg.Path)

	case ProjectionLoadedMsg:
		m.setResult(msg.Result)
		m.resize()
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case m.err != nil:
		// any other key dismisses the error
		m.err = nil
		return m, nil
	case key.Matches(msg, m.keys.Summary):
		m.navigate(SceneSummary)
	case key.Matches(msg, m.keys.Monthly):
		m.navigate(SceneMonthly)
	case key.Matches(msg, m.keys.Warnings):
		m.navigate(SceneWarnings)
	case key.Matches(msg, m.keys.Chart):
		m.navigate(SceneChart)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.navigate(SceneHelp)
	case key.Matches(msg, m.keys.Back):
		m.navigate(m.previousScene)
	case key.Matches(msg, m.keys.Reload):
		if m.scenarioPath == "" {
			return m, nil
		}
		path := m.scenarioPath
		return m, func() tea.Msg { return ProjectionStartedMsg{Path: path} }
	default:
		return m.updateCurrentScene(msg)
	}
	return m, nil
}

func (m *Model) navigate(scene Scene) {
	if scene == m.currentScene {
		return
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
}

// updateCurrentScene forwards scrolling input to the focused widget.
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneSummary:
		m.annual, cmd = m.annual.Update(msg)
	case SceneMonthly:
		m.monthly, cmd = m.monthly.Update(msg)
	case SceneWarnings:
		m.warnings, cmd = m.warnings.Update(msg)
	}
	return m, cmd
}

// resize fits the widgets below the metric cards and above the status bar.
func (m *Model) resize() {
	body := m.height - 4
	m.annual.SetHeight(max(3, body-8))
	m.monthly.SetHeight(max(3, body-2))
	m.warnings.Width = max(20, m.width-4)
	m.warnings.Height = max(3, body-2)
	m.help.Width = m.width
}
