package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"eurodist/internal/modules/distance/domain"
	"eurodist/internal/modules/distance/dto"
	distancein "eurodist/internal/modules/distance/port/in"
	"eurodist/internal/modules/distance/service"
	"eurodist/internal/platform/id"
	"eurodist/internal/platform/obs"
)

type Interactor struct {
	svc *service.ReportService
	ids id.Generator
	log zerolog.Logger
}

func NewInteractor(svc *service.ReportService, ids id.Generator, log zerolog.Logger) distancein.Usecase {
	return &Interactor{svc: svc, ids: ids, log: log}
}

func (i *Interactor) DefaultReport(ctx context.Context) (out dto.ReportOutput, err error) {
	ctx = obs.WithOperationID(ctx, i.ids.New())
	defer obs.Time(ctx, i.log, "report.default")(&err)

	report, err := i.svc.DefaultReport(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return toReportOutput(report), nil
}

func (i *Interactor) FilteredReport(ctx context.Context, input dto.FilterInput) (out dto.ReportOutput, err error) {
	ctx = obs.WithOperationID(ctx, i.ids.New())
	defer obs.Time(ctx, i.log, "report.filtered")(&err)

	report, err := i.svc.FilteredReport(ctx, input.City)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return toReportOutput(report), nil
}

func (i *Interactor) Cities(ctx context.Context) (out dto.CitiesOutput, err error) {
	ctx = obs.WithOperationID(ctx, i.ids.New())
	defer obs.Time(ctx, i.log, "cities.list")(&err)

	cities, err := i.svc.Cities(ctx)
	if err != nil {
		return dto.CitiesOutput{}, err
	}
	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, c.Name)
	}
	return dto.CitiesOutput{Column: domain.ColumnCityName, Names: names}, nil
}

func toReportOutput(report domain.Report) dto.ReportOutput {
	rows := make([]dto.EdgeOutput, 0, len(report.Edges))
	for _, e := range report.Edges {
		rows = append(rows, dto.EdgeOutput{
			StartingCity:      e.StartingCity,
			EndingCity:        e.EndingCity,
			Kilometers:        e.Kilometers,
			MissingKilometers: e.MissingKilometers,
		})
	}
	return dto.ReportOutput{
		State:   string(report.State),
		Filter:  report.Filter.City,
		Columns: report.Columns,
		Rows:    rows,
	}
}
