package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheerioskun/reqninja/internal/models"
	"github.com/spf13/afero"
)

// Service writes rendered projections to the filesystem
type Service struct {
	fs afero.Fs
}

// NewService creates a new export service
func NewService(fs afero.Fs) *Service {
	return &Service{
		fs: fs,
	}
}

// ExportOptions contains configuration for export operations
type ExportOptions struct {
	DestinationPath string
	Overwrite       bool
}

// ExportSummary describes a completed export
type ExportSummary struct {
	DestinationPath string
	FieldCount      int
	Bytes           int64
}

// SaveProjection writes the formatted projection to opts.DestinationPath
func (s *Service) SaveProjection(p *models.Projection, opts ExportOptions) (*ExportSummary, error) {
	if p == nil {
		return nil, fmt.Errorf("nothing to export: no response stored")
	}

	content, err := p.Format()
	if err != nil {
		return nil, fmt.Errorf("failed to render projection: %w", err)
	}
	content += "\n"

	destDir := filepath.Dir(opts.DestinationPath)
	if err := s.fs.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	if !opts.Overwrite {
		if exists, err := afero.Exists(s.fs, opts.DestinationPath); err != nil {
			return nil, fmt.Errorf("failed to check if destination exists: %w", err)
		} else if exists {
			return nil, fmt.Errorf("destination file exists and overwrite is disabled: %s", opts.DestinationPath)
		}
	}

	if err := afero.WriteFile(s.fs, opts.DestinationPath, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", opts.DestinationPath, err)
	}

	return &ExportSummary{
		DestinationPath: opts.DestinationPath,
		FieldCount:      len(p.Fields),
		Bytes:           int64(len(content)),
	}, nil
}

// GetDefaultExportPath generates a default export path in the current working directory
func GetDefaultExportPath(rollNumber string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	name := "response.json"
	if prefix := strings.TrimSpace(rollNumber); prefix != "" {
		name = prefix + "_response.json"
	}

	return filepath.Join(cwd, name), nil
}

// ValidateExportPath performs basic validation on the export path
func (s *Service) ValidateExportPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path cannot be empty")
	}

	if strings.HasSuffix(path, string(filepath.Separator)) {
		return fmt.Errorf("export path must name a file: %s", path)
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		path = absPath
	}

	if info, err := s.fs.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("export path is a directory: %s", path)
	}

	return nil
}
