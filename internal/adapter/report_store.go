package adapter

import (
	"fmt"

	"gopkg.in/yaml.v3"

	m "elmscope.dev/pkg/elmscope/internal/model"
)

const (
	reportsFileName = "reports.yaml"

	reportsFileVersion = 1
)

// ReportStore persists check reports so previous runs can be viewed and
// sharded runs merged.
type ReportStore interface {
	// SaveReports writes reports into the directory at dir.
	SaveReports(dir m.Path, reports []m.CheckReport) error

	// LoadReports reads previously saved reports from the directory at dir.
	LoadReports(dir m.Path) ([]m.CheckReport, error)
}

// reportsFile is the on-disk envelope for a reports directory.
type reportsFile struct {
	Version int             `yaml:"version"`
	Reports []m.CheckReport `yaml:"reports"`
}

type yamlReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore creates a ReportStore writing YAML files through fs.
func NewReportStore(fs SourceFSAdapter) ReportStore {
	return &yamlReportStore{fs: fs}
}

func (s *yamlReportStore) SaveReports(dir m.Path, reports []m.CheckReport) error {
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	content, err := yaml.Marshal(reportsFile{Version: reportsFileVersion, Reports: reports})
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	target := s.fs.JoinPath(string(dir), reportsFileName)

	if err := s.fs.WriteFile(target, content, 0o600); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	return nil
}

func (s *yamlReportStore) LoadReports(dir m.Path) ([]m.CheckReport, error) {
	target := s.fs.JoinPath(string(dir), reportsFileName)

	content, err := s.fs.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}

	var file reportsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	if file.Version != reportsFileVersion {
		return nil, fmt.Errorf("unsupported reports file version %d", file.Version)
	}

	return file.Reports, nil
}
