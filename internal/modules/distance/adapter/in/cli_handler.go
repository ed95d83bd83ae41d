package in

import (
	"context"

	"eurodist/internal/modules/distance/dto"
	distancein "eurodist/internal/modules/distance/port/in"
)

type CLIHandler struct {
	usecase distancein.Usecase
}

func NewCLIHandler(usecase distancein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Report returns the default report when city is nil, the filtered one otherwise.
func (h CLIHandler) Report(ctx context.Context, city *string) (dto.ReportOutput, error) {
	if city == nil {
		return h.usecase.DefaultReport(ctx)
	}
	return h.usecase.FilteredReport(ctx, dto.FilterInput{City: *city})
}

func (h CLIHandler) Cities(ctx context.Context) (dto.CitiesOutput, error) {
	return h.usecase.Cities(ctx)
}
