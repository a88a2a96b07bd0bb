package filter

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/reqninja/internal/messages"
	"github.com/cheerioskun/reqninja/internal/models"
)

// Styling constants
var (
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")
	successColor   = lipgloss.Color("46")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Padding(0, 1)

	chipStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1).
			Margin(0, 1, 0, 0)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Italic(true).
				Padding(0, 1)

	selectedOptionStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(lipgloss.Color("0")).
				Padding(0, 1)

	optionStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// Placeholder is shown while nothing is selected
const Placeholder = "Select filters..."

// Model is a multi-select over the fixed filter options
type Model struct {
	// Data
	options   []models.FilterOption
	selection models.FilterSelection

	// UI state
	cursor  int
	focused bool
	width   int
	height  int
}

// NewModel creates a multi-select populated with the fixed options
func NewModel() *Model {
	return &Model{
		options:   models.FilterOptions(),
		selection: models.FilterSelection{},
		cursor:    0,
		width:     40,
		height:    8,
	}
}

// Update handles messages for the multi-select
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		m.moveCursorUp()
	case "down", "j":
		m.moveCursorDown()
	case " ", "enter", "x":
		m.selection = m.selection.Toggle(m.options[m.cursor])
		return m, m.emitSelectionChangedCmd()
	case "backspace", "delete":
		if len(m.selection) == 0 {
			return m, nil
		}
		m.selection = models.FilterSelection{}
		return m, m.emitSelectionChangedCmd()
	}

	return m, nil
}

// View renders the selected chips followed by the option list
func (m *Model) View() string {
	title := "Filter Results"
	if m.focused {
		title += " *"
	}
	header := headerStyle.Foreground(primaryColor).Render(title)

	var chips string
	if len(m.selection) == 0 {
		chips = placeholderStyle.Render(Placeholder)
	} else {
		rendered := make([]string, 0, len(m.selection))
		for _, opt := range m.selection {
			rendered = append(rendered, chipStyle.Render(opt.Label()))
		}
		chips = " " + lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	parts := []string{header, chips, m.renderOptions()}

	if m.focused {
		helpItems := []string{
			"↑/↓: Navigate",
			"Space/Enter: Toggle",
			"Backspace: Clear",
		}
		parts = append(parts, helpStyle.Render(strings.Join(helpItems, " • ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderOptions() string {
	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		marker := "□"
		if m.selection.Contains(opt) {
			marker = "☑"
		}
		content := fmt.Sprintf("%s %s", marker, opt.Label())

		switch {
		case m.focused && i == m.cursor:
			lines = append(lines, selectedOptionStyle.Render(content))
		case m.selection.Contains(opt):
			lines = append(lines, optionStyle.Foreground(successColor).Render(content))
		default:
			lines = append(lines, optionStyle.Render(content))
		}
	}
	return strings.Join(lines, "\n")
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selection returns a copy of the current selection
func (m *Model) Selection() models.FilterSelection {
	return m.selection.Clone()
}

// Reset clears the selection and cursor, as a new submission does
func (m *Model) Reset() {
	m.selection = models.FilterSelection{}
	m.cursor = 0
}

func (m *Model) moveCursorUp() {
	if m.cursor > 0 {
		m.cursor--
	} else {
		m.cursor = len(m.options) - 1
	}
}

func (m *Model) moveCursorDown() {
	if m.cursor < len(m.options)-1 {
		m.cursor++
	} else {
		m.cursor = 0
	}
}

// emitSelectionChangedCmd notifies the parent of the complete selection
func (m *Model) emitSelectionChangedCmd() tea.Cmd {
	selection := m.selection.Clone()
	return func() tea.Msg {
		return messages.FilterSelectionChangedMsg{
			Selection:       selection,
			SourceComponent: "filter_panel",
		}
	}
}
