package in

import (
	"context"

	"eurodist/internal/modules/dataset/dto"
)

type Usecase interface {
	Seed(ctx context.Context, input dto.SeedInput) (dto.SeedOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
