package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
	"github.com/denisok6893-rgb/property-compare/internal/logger"
)

var (
	ErrNoDatasetFiles   = errors.New("no dataset files matched")
	ErrDuplicateID      = errors.New("duplicate property id")
	ErrUnsupportedInput = errors.New("unsupported dataset file extension")
)

// LoadDataset reads one dataset file. The format follows the extension:
// .json, or .yaml/.yml. A file holding a bare list of properties is
// accepted as a dataset with only properties.
func LoadDataset(path string) (*domain.Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}

	var unmarshal func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		unmarshal = json.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
	}

	var ds domain.Dataset
	if err := unmarshal(b, &ds); err != nil {
		var props []domain.Property
		if listErr := unmarshal(b, &props); listErr != nil {
			return nil, fmt.Errorf("unmarshal dataset %s: %w", path, err)
		}
		ds.Properties = props
	}
	for i := range ds.Properties {
		ds.Properties[i].ClearBlankQualities()
	}
	return &ds, nil
}

// LoadDatasets expands pattern (doublestar syntax, e.g. data/**/*.yaml),
// loads every match in lexical order and merges them. A pattern without
// glob metacharacters is treated as a single path.
func LoadDatasets(pattern string, log logger.Logger) (*domain.Dataset, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expand dataset pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDatasetFiles, pattern)
	}
	sort.Strings(paths)

	merged := &domain.Dataset{}
	seen := make(map[int64]string)
	for _, p := range paths {
		ds, err := LoadDataset(p)
		if err != nil {
			return nil, err
		}
		for _, prop := range ds.Properties {
			if first, dup := seen[prop.ID]; dup {
				return nil, fmt.Errorf("%w %d in %s (first seen in %s)", ErrDuplicateID, prop.ID, p, first)
			}
			seen[prop.ID] = p
		}
		if merged.ProjectID != 0 && ds.ProjectID != 0 && ds.ProjectID != merged.ProjectID {
			log.Warn("dataset files disagree on project id", map[string]interface{}{
				"file":     p,
				"project":  ds.ProjectID,
				"expected": merged.ProjectID,
			})
		}
		merged.Merge(ds)
		log.Debug("loaded dataset file", map[string]interface{}{
			"file":       p,
			"properties": len(ds.Properties),
			"commute":    len(ds.CommuteScores),
		})
	}

	log.Info("dataset loaded", map[string]interface{}{
		"files":      len(paths),
		"properties": len(merged.Properties),
	})
	return merged, nil
}
