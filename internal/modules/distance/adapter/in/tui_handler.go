package in

import (
	"context"

	"eurodist/internal/modules/distance/dto"
	distancein "eurodist/internal/modules/distance/port/in"
)

type TUIHandler struct {
	usecase distancein.Usecase
}

func NewTUIHandler(usecase distancein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) DefaultReport(ctx context.Context) (dto.ReportOutput, error) {
	return h.usecase.DefaultReport(ctx)
}

func (h TUIHandler) FilteredReport(ctx context.Context, city string) (dto.ReportOutput, error) {
	return h.usecase.FilteredReport(ctx, dto.FilterInput{City: city})
}

func (h TUIHandler) Cities(ctx context.Context) (dto.CitiesOutput, error) {
	return h.usecase.Cities(ctx)
}
