package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"eurodist/internal/modules/dataset/domain"
	"eurodist/internal/modules/dataset/dto"
	datasetin "eurodist/internal/modules/dataset/port/in"
	"eurodist/internal/modules/dataset/service"
	distancedto "eurodist/internal/modules/distance/dto"
	distancein "eurodist/internal/modules/distance/port/in"
	"eurodist/internal/platform/id"
	"eurodist/internal/platform/obs"
)

const sheetName = "Distances"

type Interactor struct {
	svc      *service.DatasetService
	distance distancein.Usecase
	ids      id.Generator
	log      zerolog.Logger
}

func NewInteractor(svc *service.DatasetService, distance distancein.Usecase, ids id.Generator, log zerolog.Logger) datasetin.Usecase {
	return &Interactor{svc: svc, distance: distance, ids: ids, log: log}
}

func (i *Interactor) Seed(ctx context.Context, input dto.SeedInput) (out dto.SeedOutput, err error) {
	ctx = obs.WithOperationID(ctx, i.ids.New())
	defer obs.Time(ctx, i.log, "dataset.seed")(&err)

	ds, err := i.svc.Seed(ctx, input.Path)
	if err != nil {
		return dto.SeedOutput{}, err
	}
	i.log.Info().Int("cities", len(ds.Cities)).Int("distances", len(ds.Distances)).Str("file", input.Path).Msg("dataset seeded")
	return dto.SeedOutput{Cities: len(ds.Cities), Distances: len(ds.Distances)}, nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (out dto.ExportOutput, err error) {
	ctx = obs.WithOperationID(ctx, i.ids.New())
	defer obs.Time(ctx, i.log, "dataset.export")(&err)

	var report distancedto.ReportOutput
	if input.Filtered {
		report, err = i.distance.FilteredReport(ctx, distancedto.FilterInput{City: input.City})
	} else {
		report, err = i.distance.DefaultReport(ctx)
	}
	if err != nil {
		return dto.ExportOutput{}, err
	}

	path, err := i.svc.Export(ctx, toSheet(report), report.Filter, input.Path)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: path, Rows: len(report.Rows)}, nil
}

func toSheet(report distancedto.ReportOutput) domain.Sheet {
	title := "Distances from " + report.Filter
	if report.State == "filtered" {
		title = "Distances from cities matching \"" + report.Filter + "\""
	}
	rows := make([][]any, 0, len(report.Rows))
	for _, r := range report.Rows {
		var km any = r.Kilometers
		if r.MissingKilometers {
			km = nil
		}
		rows = append(rows, []any{r.StartingCity, r.EndingCity, km})
	}
	return domain.Sheet{Name: sheetName, Title: title, Columns: report.Columns, Rows: rows}
}
