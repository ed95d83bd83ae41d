package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"eurodist/internal/modules/dataset/domain"
	datasetout "eurodist/internal/modules/dataset/port/out"
	apperrors "eurodist/internal/platform/errors"
)

type datasetFile struct {
	Cities    []string       `yaml:"cities" json:"cities"`
	Distances []distanceFile `yaml:"distances" json:"distances"`
}

type distanceFile struct {
	From       string  `yaml:"from" json:"from"`
	To         string  `yaml:"to" json:"to"`
	Kilometers float64 `yaml:"km" json:"km"`
}

type FileDatasetSource struct{}

func NewFileDatasetSource() datasetout.DatasetSource {
	return FileDatasetSource{}
}

// Load reads a YAML (.yaml, .yml) or JSON (.json) seed file.
func (FileDatasetSource) Load(_ context.Context, path string) (domain.Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read seed file: %w", err)
	}
	var file datasetFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(b))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			return domain.Dataset{}, fmt.Errorf("decode seed yaml: %w", err)
		}
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(b))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&file); err != nil {
			return domain.Dataset{}, fmt.Errorf("decode seed json: %w", err)
		}
	default:
		return domain.Dataset{}, fmt.Errorf("%w: unsupported seed file extension %q", apperrors.ErrInvalidInput, ext)
	}

	ds := domain.Dataset{Cities: file.Cities, Distances: make([]domain.Distance, 0, len(file.Distances))}
	for _, d := range file.Distances {
		ds.Distances = append(ds.Distances, domain.Distance{From: d.From, To: d.To, Kilometers: d.Kilometers})
	}
	return ds, nil
}
