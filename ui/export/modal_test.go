package export

import (
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	exportsvc "github.com/cheerioskun/reqninja/internal/export"
	"github.com/cheerioskun/reqninja/internal/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projection() *models.Projection {
	return models.Project(models.Response{
		"is_success": json.RawMessage(`true`),
		"user_id":    json.RawMessage(`"x"`),
	}, nil)
}

func TestExportFlow(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewModel(exportsvc.NewService(fs))
	m.SetSize(80, 24)

	m.Show(projection(), "/tmp/out/resp.json")
	require.True(t, m.IsVisible())
	assert.Contains(t, m.View(), "Export Response")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, StateExporting, m.State())

	done, ok := cmd().(ExportModalCompletedMsg)
	require.True(t, ok)
	require.True(t, done.Success, "export error: %v", done.Error)

	m.Update(done)
	assert.Equal(t, StateSuccess, m.State())

	data, err := afero.ReadFile(fs, "/tmp/out/resp.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_success":true,"user_id":"x"}`, string(data))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	_, ok = cmd().(ExportModalClosedMsg)
	assert.True(t, ok)
	assert.False(t, m.IsVisible())
}

func TestExportRefusesOverwriteUntilToggled(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/resp.json", []byte("old"), 0644))
	m := NewModel(exportsvc.NewService(fs))

	m.Show(projection(), "/resp.json")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	done := cmd().(ExportModalCompletedMsg)
	assert.False(t, done.Success)
	m.Update(done)
	assert.Equal(t, StateError, m.State())

	m.Show(projection(), "/resp.json")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	done = cmd().(ExportModalCompletedMsg)
	assert.True(t, done.Success)
}

func TestExportInvalidPathStaysInInput(t *testing.T) {
	m := NewModel(exportsvc.NewService(afero.NewMemMapFs()))
	m.Show(projection(), "")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, StateInput, m.State())
	assert.Contains(t, m.View(), "export path cannot be empty")
}

func TestEscCancels(t *testing.T) {
	m := NewModel(exportsvc.NewService(afero.NewMemMapFs()))
	m.Show(projection(), "/resp.json")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(ExportModalCancelledMsg)
	assert.True(t, ok)
	assert.False(t, m.IsVisible())
}
