package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/javaBin/speechrank/internal/domain"
)

//go:embed bootstrap.yaml
var defaultBootstrap []byte

type bootstrapFile struct {
	Imports []domain.ImportJob `yaml:"imports"`
}

// LoadBootstrap returns the bootstrap import table.
// An empty path selects the table shipped with the binary.
func LoadBootstrap(path string) ([]domain.ImportJob, error) {
	data := defaultBootstrap
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read bootstrap file: %w", err)
		}
	}
	return ParseBootstrap(data)
}

// ParseBootstrap decodes and validates a bootstrap table
func ParseBootstrap(data []byte) ([]domain.ImportJob, error) {
	var file bootstrapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bootstrap table: %w", err)
	}

	ids := make(map[string]struct{}, len(file.Imports))
	for i, job := range file.Imports {
		if err := domain.Validate(job); err != nil {
			return nil, fmt.Errorf("bootstrap import %d: %w", i, err)
		}
		if _, dup := ids[job.ConferenceID]; dup {
			return nil, fmt.Errorf("bootstrap import %d: conference id %q is listed twice", i, job.ConferenceID)
		}
		ids[job.ConferenceID] = struct{}{}
	}

	return file.Imports, nil
}
