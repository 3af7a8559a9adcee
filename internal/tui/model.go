package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	ctx          context.Context
	scenarioPath string
	engine       *calculation.ProjectionEngine
	result       *domain.ProjectionResult

	annual   table.Model
	monthly  table.Model
	warnings viewport.Model
	keys     keyMap
	help     help.Model

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates a model that projects the scenario at path on start.
func NewModel(path string, engine *calculation.ProjectionEngine) Model {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	m := Model{
		currentScene: SceneSummary,
		ctx:          context.Background(),
		scenarioPath: path,
		engine:       engine,
		annual:       newTable(),
		monthly:      newTable(),
		warnings:     viewport.New(80, 16),
		keys:         defaultKeyMap(),
		help:         help.New(),
		width:        80,
		height:       24,
		loading:      path != "",
	}
	m.loadingMessage = fmt.Sprintf("Projecting %s...", path)
	return m
}

// NewModelWithResult creates a model over an already computed result.
func NewModelWithResult(result *domain.ProjectionResult) Model {
	m := NewModel("", nil)
	m.setResult(result)
	return m
}

// WithContext returns a copy of m whose projections run under ctx.
func (m Model) WithContext(ctx context.Context) Model {
	if ctx != nil {
		m.ctx = ctx
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.scenarioPath == "" {
		return nil
	}
	return runProjectionCmd(m.ctx, m.engine, m.scenarioPath)
}

// runProjectionCmd loads the scenario file and projects it.
func runProjectionCmd(ctx context.Context, engine *calculation.ProjectionEngine, path string) tea.Cmd {
	return func() tea.Msg {
		input, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		result, err := engine.Run(ctx, input)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProjectionLoadedMsg{Path: path, Result: result}
	}
}

func newTable() table.Model {
	t := table.New(table.WithFocused(true), table.WithHeight(12))
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = TableHighlightStyle
	t.SetStyles(s)
	return t
}

func (m *Model) setResult(result *domain.ProjectionResult) {
	m.result = result
	m.err = nil
	m.loading = false
	if result == nil {
		return
	}
	cur := result.Currency

	m.annual.SetRows(nil)
	m.annual.SetColumns([]table.Column{
		{Title: "Year", Width: 6},
		{Title: "Income", Width: 14},
		{Title: "Expenses", Width: 14},
		{Title: "Taxes", Width: 13},
		{Title: "Loans", Width: 12},
		{Title: "Net Savings", Width: 14},
		{Title: "End Net Worth", Width: 16},
	})
	rows := make([]table.Row, 0, len(result.Annual))
	for _, a := range result.Annual {
		rows = append(rows, table.Row{
			fmt.Sprint(a.Year),
			FormatCurrency(a.Income, cur),
			FormatCurrency(a.Expenses, cur),
			FormatCurrency(a.Taxes, cur),
			FormatCurrency(a.LoanPayments, cur),
			FormatCurrency(a.NetSavings, cur),
			FormatCurrency(a.EndNetWorth, cur),
		})
	}
	m.annual.SetRows(rows)

	m.monthly.SetRows(nil)
	m.monthly.SetColumns([]table.Column{
		{Title: "Month", Width: 8},
		{Title: "Income", Width: 12},
		{Title: "Expenses", Width: 12},
		{Title: "Taxes", Width: 11},
		{Title: "Returns", Width: 11},
		{Title: "Cashflow", Width: 12},
		{Title: "Net Worth", Width: 15},
	})
	rows = make([]table.Row, 0, len(result.Monthly))
	for _, mb := range result.Monthly {
		rows = append(rows, table.Row{
			mb.Month,
			FormatCurrency(mb.Income, cur),
			FormatCurrency(mb.Expenses, cur),
			FormatCurrency(mb.Taxes, cur),
			FormatCurrency(mb.InvestmentReturns, cur),
			FormatCurrency(mb.NetCashflow, cur),
			FormatCurrency(mb.NetWorth, cur),
		})
	}
	m.monthly.SetRows(rows)

	m.warnings.SetContent(renderWarnings(result.Warnings))
	m.warnings.GotoTop()
}

// CurrentScene reports the active scene.
func (m Model) CurrentScene() Scene { return m.currentScene }

// Result returns the projection being browsed, if any.
func (m Model) Result() *domain.ProjectionResult { return m.result }
