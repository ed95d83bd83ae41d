package out

import (
	"context"

	"eurodist/internal/modules/dataset/domain"
)

type DatasetSource interface {
	Load(ctx context.Context, path string) (domain.Dataset, error)
}

// DatasetWriter replaces the stored dataset, creating the schema if needed.
type DatasetWriter interface {
	Replace(ctx context.Context, dataset domain.Dataset) error
}

type SheetExporter interface {
	Write(ctx context.Context, path string, sheet domain.Sheet) error
}
