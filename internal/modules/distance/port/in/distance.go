package in

import (
	"context"

	"eurodist/internal/modules/distance/dto"
)

type Usecase interface {
	DefaultReport(ctx context.Context) (dto.ReportOutput, error)
	FilteredReport(ctx context.Context, input dto.FilterInput) (dto.ReportOutput, error)
	Cities(ctx context.Context) (dto.CitiesOutput, error)
}
