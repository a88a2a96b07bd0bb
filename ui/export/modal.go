package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	exportsvc "github.com/cheerioskun/reqninja/internal/export"
	"github.com/cheerioskun/reqninja/internal/models"
)

// Styling
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Align(lipgloss.Center)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Margin(1, 0)

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Margin(1, 0)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Align(lipgloss.Center).
			Margin(1, 0)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Margin(1, 0)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true).
			Margin(1, 0)
)

// State represents the modal's current state
type State int

const (
	StateInput State = iota
	StateExporting
	StateSuccess
	StateError
)

// Model is the modal that saves the current projection to a file
type Model struct {
	// UI components
	textInput textinput.Model

	// State
	state     State
	visible   bool
	overwrite bool
	width     int
	height    int

	// Data
	projection     *models.Projection
	exportService  *exportsvc.Service
	summary        *exportsvc.ExportSummary
	errorMessage   string
	successMessage string
}

// ExportModalCancelledMsg is sent when the modal closes without a saved file
type ExportModalCancelledMsg struct{}

// ExportModalCompletedMsg is sent when the export attempt finishes
type ExportModalCompletedMsg struct {
	Success bool
	Error   error
	Summary *exportsvc.ExportSummary
}

// ExportModalClosedMsg is sent when the user dismisses a finished export
type ExportModalClosedMsg struct {
	Summary *exportsvc.ExportSummary
}

// NewModel creates a new export modal
func NewModel(exportService *exportsvc.Service) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter export destination..."
	ti.CharLimit = 256
	ti.Width = 50

	return &Model{
		textInput:     ti,
		state:         StateInput,
		exportService: exportService,
	}
}

// Show displays the modal for p, prefilled with defaultPath
func (m *Model) Show(p *models.Projection, defaultPath string) tea.Cmd {
	m.visible = true
	m.state = StateInput
	m.projection = p
	m.summary = nil
	m.overwrite = false
	m.errorMessage = ""
	m.successMessage = ""

	m.textInput.SetValue(defaultPath)
	return m.textInput.Focus()
}

// Hide hides the modal
func (m *Model) Hide() {
	m.visible = false
	m.textInput.Blur()
	m.state = StateInput
}

// IsVisible returns true if the modal is visible
func (m *Model) IsVisible() bool {
	return m.visible
}

// State returns the modal's current state
func (m *Model) State() State {
	return m.state
}

// SetSize sets the modal size
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the export modal
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case StateInput:
			switch msg.String() {
			case "enter":
				return m.confirmExport()
			case "esc":
				m.Hide()
				return m, func() tea.Msg { return ExportModalCancelledMsg{} }
			case "ctrl+o":
				m.overwrite = !m.overwrite
				return m, nil
			default:
				m.errorMessage = ""
				m.textInput, cmd = m.textInput.Update(msg)
				return m, cmd
			}
		case StateExporting:
			// Don't handle input while exporting
			return m, nil
		case StateSuccess, StateError:
			// Any key closes the modal after success/error
			wasSuccess := m.state == StateSuccess
			summary := m.summary
			m.Hide()
			if wasSuccess {
				return m, func() tea.Msg { return ExportModalClosedMsg{Summary: summary} }
			}
			return m, func() tea.Msg { return ExportModalCancelledMsg{} }
		}

	case ExportModalCompletedMsg:
		if msg.Success {
			m.state = StateSuccess
			m.summary = msg.Summary
			m.successMessage = fmt.Sprintf("Saved %d fields to %s",
				msg.Summary.FieldCount, msg.Summary.DestinationPath)
		} else {
			m.state = StateError
			m.errorMessage = fmt.Sprintf("Export failed: %v", msg.Error)
		}
		return m, nil

	default:
		if m.state == StateInput {
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the export modal
func (m *Model) View() string {
	if !m.visible {
		return ""
	}

	var content string

	switch m.state {
	case StateInput:
		content = m.renderInputState()
	case StateExporting:
		content = m.renderExportingState()
	case StateSuccess:
		content = m.renderSuccessState()
	case StateError:
		content = m.renderErrorState()
	}

	styledContent := modalStyle.
		Width(60).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, styledContent)
}

func (m *Model) renderInputState() string {
	var parts []string

	parts = append(parts, titleStyle.Render("Export Response"))

	if m.projection != nil {
		overwrite := "no"
		if m.overwrite {
			overwrite = "yes"
		}
		preview := fmt.Sprintf("Fields to export: %d\nOverwrite existing file: %s",
			len(m.projection.Fields), overwrite)
		parts = append(parts, previewStyle.Render(preview))
	}

	parts = append(parts, "Destination Path:")
	parts = append(parts, inputStyle.Render(m.textInput.View()))

	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}

	parts = append(parts, helpStyle.Render("Enter: Export • Ctrl+O: Toggle overwrite • Esc: Cancel"))

	return strings.Join(parts, "\n")
}

func (m *Model) renderExportingState() string {
	var parts []string

	parts = append(parts, titleStyle.Render("Exporting..."))
	parts = append(parts, previewStyle.Render("Please wait while the response is written..."))

	return strings.Join(parts, "\n")
}

func (m *Model) renderSuccessState() string {
	var parts []string

	parts = append(parts, titleStyle.Render("Export Complete"))
	parts = append(parts, successStyle.Render(m.successMessage))
	parts = append(parts, helpStyle.Render("Press any key to close"))

	return strings.Join(parts, "\n")
}

func (m *Model) renderErrorState() string {
	var parts []string

	parts = append(parts, titleStyle.Render("Export Failed"))
	parts = append(parts, errorStyle.Render(m.errorMessage))
	parts = append(parts, helpStyle.Render("Press any key to close"))

	return strings.Join(parts, "\n")
}

// confirmExport validates the path and starts the export
func (m *Model) confirmExport() (*Model, tea.Cmd) {
	destPath := strings.TrimSpace(m.textInput.Value())

	if err := m.exportService.ValidateExportPath(destPath); err != nil {
		m.errorMessage = err.Error()
		return m, nil
	}

	m.errorMessage = ""
	m.state = StateExporting

	return m, m.performExport(destPath)
}

// performExport writes the projection and reports the outcome
func (m *Model) performExport(destPath string) tea.Cmd {
	projection := m.projection
	opts := exportsvc.ExportOptions{
		DestinationPath: destPath,
		Overwrite:       m.overwrite,
	}
	service := m.exportService

	return func() tea.Msg {
		summary, err := service.SaveProjection(projection, opts)
		return ExportModalCompletedMsg{
			Success: err == nil,
			Error:   err,
			Summary: summary,
		}
	}
}
