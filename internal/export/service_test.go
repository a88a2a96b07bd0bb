package export

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cheerioskun/reqninja/internal/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjection() *models.Projection {
	resp := models.Response{
		"is_success":  json.RawMessage(`true`),
		"user_id":     json.RawMessage(`"x"`),
		"email":       json.RawMessage(`"a@b.com"`),
		"roll_number": json.RawMessage(`"2237889"`),
		"alphabets":   json.RawMessage(`["M","B"]`),
	}
	return models.Project(resp, models.NewFilterSelection(models.FilterAlphabets))
}

func TestSaveProjection(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs)

	summary, err := svc.SaveProjection(sampleProjection(), ExportOptions{DestinationPath: "/out/nested/resp.json"})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.FieldCount)

	data, err := afero.ReadFile(fs, "/out/nested/resp.json")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
	assert.JSONEq(t, `{"is_success":true,"user_id":"x","email":"a@b.com","roll_number":"2237889","alphabets":["M","B"]}`, string(data))
	assert.Equal(t, int64(len(data)), summary.Bytes)
}

func TestSaveProjectionOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs)
	require.NoError(t, afero.WriteFile(fs, "/resp.json", []byte("old"), 0644))

	_, err := svc.SaveProjection(sampleProjection(), ExportOptions{DestinationPath: "/resp.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overwrite is disabled")

	_, err = svc.SaveProjection(sampleProjection(), ExportOptions{DestinationPath: "/resp.json", Overwrite: true})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/resp.json")
	require.NoError(t, err)
	assert.NotEqual(t, "old", string(data))
}

func TestSaveProjectionNil(t *testing.T) {
	_, err := NewService(afero.NewMemMapFs()).SaveProjection(nil, ExportOptions{DestinationPath: "/x.json"})
	assert.Error(t, err)
}

func TestValidateExportPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/exports", 0755))
	svc := NewService(fs)

	assert.Error(t, svc.ValidateExportPath("  "))
	assert.Error(t, svc.ValidateExportPath("/exports/"))
	assert.Error(t, svc.ValidateExportPath("/exports"))
	assert.NoError(t, svc.ValidateExportPath("/exports/resp.json"))
}

func TestGetDefaultExportPath(t *testing.T) {
	path, err := GetDefaultExportPath("2237889")
	require.NoError(t, err)
	assert.Equal(t, "2237889_response.json", filepath.Base(path))
	assert.True(t, filepath.IsAbs(path))

	path, err = GetDefaultExportPath("")
	require.NoError(t, err)
	assert.Equal(t, "response.json", filepath.Base(path))
}
