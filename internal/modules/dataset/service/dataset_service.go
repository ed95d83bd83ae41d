package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"eurodist/internal/modules/dataset/domain"
	datasetout "eurodist/internal/modules/dataset/port/out"
	"eurodist/internal/platform/clock"
	apperrors "eurodist/internal/platform/errors"
	"eurodist/internal/platform/slug"
)

const exportExt = ".xlsx"

type DatasetService struct {
	clock    clock.Clock
	source   datasetout.DatasetSource
	writer   datasetout.DatasetWriter
	exporter datasetout.SheetExporter
}

func NewDatasetService(clock clock.Clock, source datasetout.DatasetSource, writer datasetout.DatasetWriter, exporter datasetout.SheetExporter) *DatasetService {
	return &DatasetService{clock: clock, source: source, writer: writer, exporter: exporter}
}

func (s *DatasetService) Seed(ctx context.Context, path string) (domain.Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Dataset{}, fmt.Errorf("%w: seed file path is required", apperrors.ErrInvalidInput)
	}
	raw, err := s.source.Load(ctx, path)
	if err != nil {
		return domain.Dataset{}, err
	}
	dataset, err := raw.Normalize()
	if err != nil {
		return domain.Dataset{}, err
	}
	if err := s.writer.Replace(ctx, dataset); err != nil {
		return domain.Dataset{}, err
	}
	return dataset, nil
}

// Export writes sheet to path. An empty path becomes "<label>-distances.xlsx"
// in the working directory.
func (s *DatasetService) Export(ctx context.Context, sheet domain.Sheet, label, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultExportPath(label)
	}
	if !strings.EqualFold(filepath.Ext(path), exportExt) {
		path += exportExt
	}
	sheet.CreatedAt = s.clock.Now()
	if err := s.exporter.Write(ctx, path, sheet); err != nil {
		return "", err
	}
	return path, nil
}

func DefaultExportPath(label string) string {
	if strings.TrimSpace(label) == "" {
		label = "all"
	}
	return slug.Make(label) + "-distances" + exportExt
}
