package tui

import (
	"github.com/rgehrsitz/hpgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSummary Scene = iota
	SceneMonthly
	SceneWarnings
	SceneChart
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneMonthly:
		return "Monthly"
	case SceneWarnings:
		return "Warnings"
	case SceneChart:
		return "Net Worth"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProjectionStartedMsg signals a projection run has begun
type ProjectionStartedMsg struct {
	Path string
}

// ProjectionLoadedMsg carries a finished projection
type ProjectionLoadedMsg struct {
	Path   string
	Result *domain.ProjectionResult
}
