package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a schedule import file.
type ImportSchema struct {
	Defaults  *DefaultsImport  `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Schedules []ScheduleImport `json:"schedules" yaml:"schedules"`
}

// DefaultsImport holds values applied to every schedule that leaves them unset.
type DefaultsImport struct {
	JobID       string   `json:"job_id,omitempty" yaml:"job_id,omitempty"`
	Crew        []string `json:"crew,omitempty" yaml:"crew,omitempty"`
	UseDuration *bool    `json:"use_duration,omitempty" yaml:"use_duration,omitempty"`
}

// ScheduleImport defines one schedule in the import file. After names the
// ref of an earlier entry that must finish first.
type ScheduleImport struct {
	Ref         string   `json:"ref" yaml:"ref"`
	Title       string   `json:"title" yaml:"title"`
	JobID       string   `json:"job_id,omitempty" yaml:"job_id,omitempty"`
	Crew        []string `json:"crew,omitempty" yaml:"crew,omitempty"`
	StartDate   string   `json:"start_date" yaml:"start_date"`
	EndDate     *string  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Status      string   `json:"status,omitempty" yaml:"status,omitempty"`
	After       *string  `json:"after,omitempty" yaml:"after,omitempty"`
	Lag         *int     `json:"lag,omitempty" yaml:"lag,omitempty"`
	Duration    *int     `json:"duration,omitempty" yaml:"duration,omitempty"`
	UseDuration *bool    `json:"use_duration,omitempty" yaml:"use_duration,omitempty"`
	Notes       string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// LoadImportSchema reads an import file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, filepath.Ext(path))
}

// ParseImportSchema decodes data according to the file extension ext.
func ParseImportSchema(data []byte, ext string) (*ImportSchema, error) {
	var schema ImportSchema
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
