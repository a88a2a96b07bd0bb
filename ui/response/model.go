package response

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/reqninja/internal/models"
)

// Title heads the response block
const Title = "API Response"

// Model shows the formatted projection in a scrollable viewport
type Model struct {
	// Data
	content string
	lines   int
	err     string

	// UI state
	focused  bool
	width    int
	height   int
	viewport viewport.Model

	// Styles
	titleStyle lipgloss.Style
	codeStyle  lipgloss.Style
	infoStyle  lipgloss.Style
	errStyle   lipgloss.Style
}

// NewModel creates a new response model
func NewModel() *Model {
	vp := viewport.New(60, 10) // Initial size, will be updated in SetSize
	vp.SetContent("")

	return &Model{
		width:    60,
		height:   14,
		viewport: vp,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Margin(0, 0, 1, 0),

		codeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")),

		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Align(lipgloss.Right),

		errStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}

// SetProjection renders p into the viewport; nil clears it
func (m *Model) SetProjection(p *models.Projection) {
	m.err = ""
	if p == nil {
		m.content = ""
		m.lines = 0
		m.viewport.SetContent("")
		return
	}

	formatted, err := p.Format()
	if err != nil {
		m.err = err.Error()
		formatted = ""
	}

	m.content = formatted
	m.lines = strings.Count(formatted, "\n") + 1
	m.viewport.SetContent(m.codeStyle.Render(formatted))
	m.viewport.GotoTop()
}

// Content returns the plain formatted projection
func (m *Model) Content() string {
	return m.content
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			m.viewport.LineDown(1)
		case "k", "up":
			m.viewport.LineUp(1)
		case "pgdown", " ":
			m.viewport.ViewDown()
		case "pgup":
			m.viewport.ViewUp()
		case "home", "g":
			m.viewport.GotoTop()
		case "end", "G":
			m.viewport.GotoBottom()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the component
func (m *Model) View() string {
	title := Title
	if m.focused {
		title += " *"
	}
	header := m.titleStyle.Render(title)

	if m.err != "" {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.errStyle.Render(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), m.renderSummary())
}

// renderSummary shows the scroll position when the content overflows
func (m *Model) renderSummary() string {
	if m.lines <= m.viewport.Height {
		return ""
	}
	return m.infoStyle.Render(fmt.Sprintf("%d/%d", m.viewport.YOffset+1, m.lines))
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

	// Account for title (2 lines) and the scroll summary
	viewportHeight := height - 3
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport.Width = width
	m.viewport.Height = viewportHeight
}
