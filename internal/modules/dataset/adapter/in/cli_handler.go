package in

import (
	"context"

	"eurodist/internal/modules/dataset/dto"
	datasetin "eurodist/internal/modules/dataset/port/in"
)

type CLIHandler struct {
	usecase datasetin.Usecase
}

func NewCLIHandler(usecase datasetin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Seed(ctx context.Context, path string) (dto.SeedOutput, error) {
	return h.usecase.Seed(ctx, dto.SeedInput{Path: path})
}

// Export writes the default report when city is nil, the filtered one otherwise.
func (h CLIHandler) Export(ctx context.Context, city *string, path string) (dto.ExportOutput, error) {
	input := dto.ExportInput{Path: path}
	if city != nil {
		input.Filtered = true
		input.City = *city
	}
	return h.usecase.Export(ctx, input)
}
