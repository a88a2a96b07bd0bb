package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	exportsvc "github.com/cheerioskun/reqninja/internal/export"
	"github.com/cheerioskun/reqninja/internal/form"
	"github.com/cheerioskun/reqninja/internal/messages"
	"github.com/cheerioskun/reqninja/internal/models"
	"github.com/cheerioskun/reqninja/internal/utils"
	"github.com/cheerioskun/reqninja/ui/export"
	"github.com/cheerioskun/reqninja/ui/filter"
	"github.com/cheerioskun/reqninja/ui/response"
)

// FocusedPanel represents which panel is currently focused
type FocusedPanel int

const (
	InputPanel FocusedPanel = iota
	FilterPanel
	ResponsePanel
)

// Input placeholder and button labels
const (
	InputPlaceholder = `{ "data": ["M","1","334","4","B"] }`
	SubmitLabel      = "Submit"
	LoadingLabel     = "Processing..."
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Margin(1, 0, 0, 0)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Padding(0, 2).
			Margin(1, 0)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("237")).
				Padding(0, 2).
				Margin(1, 0)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Options carries the display settings of the form
type Options struct {
	Title        string
	RollNumber   string
	InitialInput string
}

// AppModel represents the main application model
type AppModel struct {
	// Core state
	controller *form.Controller
	logger     *utils.Logger

	// Components
	input    textarea.Model
	spinner  spinner.Model
	filter   *filter.Model
	response *response.Model
	exporter *export.Model

	// UI state
	opts    Options
	focused FocusedPanel
	width   int
	height  int

	// Request lifetime; cancelled when the program quits
	ctx    context.Context
	cancel context.CancelFunc

	quitting bool
}

// NewAppModel creates a new application model
func NewAppModel(controller *form.Controller, exportService *exportsvc.Service, opts Options) *AppModel {
	ta := textarea.New()
	ta.Placeholder = InputPlaceholder
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(5)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(context.Background())

	m := &AppModel{
		controller: controller,
		logger:     utils.GetLogger(),
		input:      ta,
		spinner:    sp,
		filter:     filter.NewModel(),
		response:   response.NewModel(),
		exporter:   export.NewModel(exportService),
		opts:       opts,
		focused:    InputPanel,
		width:      80,
		height:     24,
		ctx:        ctx,
		cancel:     cancel,
	}

	if opts.InitialInput != "" {
		m.SetInput(opts.InitialInput)
	}

	return m
}

// SetInput replaces the payload text
func (m *AppModel) SetInput(raw string) {
	m.input.SetValue(raw)
	m.controller.SetInput(raw)
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.opts.RollNumber != "" {
		cmds = append(cmds, tea.SetWindowTitle(m.opts.RollNumber))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case messages.SubmitCompletedMsg:
		return m, m.completeSubmit(msg)

	case messages.FilterSelectionChangedMsg:
		m.controller.UpdateFilterSelection(msg.Selection)
		m.refreshResponse()
		return m, nil

	case spinner.TickMsg:
		if m.controller.Phase() != models.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case export.ExportModalCancelledMsg, export.ExportModalClosedMsg:
		return m, nil
	}

	if m.exporter.IsVisible() {
		var cmd tea.Cmd
		m.exporter, cmd = m.exporter.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "q":
			if m.focused != InputPanel {
				return m, m.quit()
			}

		case "tab":
			m.cycleFocus(1)
			return m, nil

		case "shift+tab":
			m.cycleFocus(-1)
			return m, nil

		case "ctrl+s":
			return m, m.submit()

		case "ctrl+e":
			return m, m.showExport()
		}
	}

	return m, m.updateFocused(msg)
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return "Thanks for using reqninja!\n"
	}

	if m.exporter.IsVisible() {
		return m.exporter.View()
	}

	state := m.controller.Snapshot()

	parts := []string{
		titleStyle.Render(m.opts.Title),
		labelStyle.Render("Enter JSON Input:"),
		m.input.View(),
		m.renderButton(state),
	}

	if state.ErrorVisible() {
		parts = append(parts, errorStyle.Render(state.Err))
	}

	if state.FiltersVisible() {
		parts = append(parts, m.filter.View())
	}

	if state.ProjectionVisible() {
		parts = append(parts, "", m.response.View())
	}

	parts = append(parts, "", m.renderHelp(state))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *AppModel) renderButton(state form.State) string {
	if state.Phase == models.PhaseLoading {
		return disabledButtonStyle.Render(m.spinner.View() + " " + LoadingLabel)
	}
	if !m.controller.CanSubmit() {
		return disabledButtonStyle.Render(SubmitLabel)
	}
	return buttonStyle.Render(SubmitLabel)
}

func (m *AppModel) renderHelp(state form.State) string {
	items := []string{"Ctrl+S: Submit"}
	if state.FiltersVisible() {
		items = append(items, "Tab: Navigate")
	}
	if state.ProjectionVisible() {
		items = append(items, "Ctrl+E: Export")
	}
	items = append(items, "Ctrl+C: Quit")
	return helpStyle.Render(strings.Join(items, " | "))
}

// submit starts a submission when the submit control is enabled
func (m *AppModel) submit() tea.Cmd {
	if !m.controller.CanSubmit() {
		return nil
	}

	raw := m.input.Value()
	m.filter.Reset()
	m.response.SetProjection(nil)
	m.focusPanel(InputPanel)

	if err := m.controller.BeginSubmit(raw); err != nil {
		if !errors.Is(err, form.ErrSubmitInProgress) {
			m.logger.Debug("submit rejected: %v", err)
		}
		return nil
	}

	m.logger.Info("submitting %d bytes", len(raw))
	return tea.Batch(m.spinner.Tick, sendCmd(m.ctx, m.controller.Sender(), raw))
}

// sendCmd performs the POST off the update loop
func sendCmd(ctx context.Context, sender form.Sender, raw string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sender.Send(ctx, raw)
		return messages.SubmitCompletedMsg{Response: resp, Err: err}
	}
}

func (m *AppModel) completeSubmit(msg messages.SubmitCompletedMsg) tea.Cmd {
	m.controller.FinishSubmit(msg.Response, msg.Err)
	m.filter.Reset()
	m.refreshResponse()

	if m.controller.Phase() == models.PhaseSubmitted {
		m.focusPanel(FilterPanel)
	}
	return nil
}

func (m *AppModel) refreshResponse() {
	p, ok := m.controller.ProjectResponse()
	if !ok {
		m.response.SetProjection(nil)
		return
	}
	m.response.SetProjection(p)
}

func (m *AppModel) showExport() tea.Cmd {
	if !m.controller.Snapshot().ProjectionVisible() {
		return nil
	}

	p, ok := m.controller.ProjectResponse()
	if !ok {
		return nil
	}

	defaultPath, err := exportsvc.GetDefaultExportPath(m.opts.RollNumber)
	if err != nil {
		defaultPath = "./response.json"
	}

	m.exporter.SetSize(m.width, m.height)
	return m.exporter.Show(p, defaultPath)
}

func (m *AppModel) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	return tea.Quit
}

func (m *AppModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch m.focused {
	case InputPanel:
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			m.controller.SetInput(after)
		}
	case FilterPanel:
		m.filter, cmd = m.filter.Update(msg)
	case ResponsePanel:
		m.response, cmd = m.response.Update(msg)
	}

	return cmd
}

// visiblePanels lists the panels that can take focus in the current phase
func (m *AppModel) visiblePanels() []FocusedPanel {
	state := m.controller.Snapshot()
	panels := []FocusedPanel{InputPanel}
	if state.FiltersVisible() {
		panels = append(panels, FilterPanel)
	}
	if state.ProjectionVisible() {
		panels = append(panels, ResponsePanel)
	}
	return panels
}

func (m *AppModel) cycleFocus(step int) {
	panels := m.visiblePanels()
	current := 0
	for i, p := range panels {
		if p == m.focused {
			current = i
			break
		}
	}
	next := (current + step + len(panels)) % len(panels)
	m.focusPanel(panels[next])
}

func (m *AppModel) focusPanel(panel FocusedPanel) {
	m.focused = panel

	m.input.Blur()
	m.filter.Blur()
	m.response.Blur()

	switch panel {
	case InputPanel:
		m.input.Focus()
	case FilterPanel:
		m.filter.Focus()
	case ResponsePanel:
		m.response.Focus()
	}
}

// Focused returns the panel that receives key input
func (m *AppModel) Focused() FocusedPanel {
	return m.focused
}

func (m *AppModel) resize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := width - 2
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.input.SetWidth(inputWidth)
	m.filter.SetSize(inputWidth, 8)

	// Header, input, button and filter take roughly the top 20 rows
	responseHeight := height - 20
	if responseHeight < 5 {
		responseHeight = 5
	}
	m.response.SetSize(inputWidth, responseHeight)
	m.exporter.SetSize(width, height)
}
