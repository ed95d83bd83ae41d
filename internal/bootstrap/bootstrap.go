package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	datasetinadapter "eurodist/internal/modules/dataset/adapter/in"
	datasetoutadapter "eurodist/internal/modules/dataset/adapter/out"
	datasetservice "eurodist/internal/modules/dataset/service"
	datasetusecase "eurodist/internal/modules/dataset/usecase"
	distanceinadapter "eurodist/internal/modules/distance/adapter/in"
	distanceoutadapter "eurodist/internal/modules/distance/adapter/out"
	distanceservice "eurodist/internal/modules/distance/service"
	distanceusecase "eurodist/internal/modules/distance/usecase"
	"eurodist/internal/platform/clock"
	"eurodist/internal/platform/config"
	"eurodist/internal/platform/dbconn"
	"eurodist/internal/platform/id"
	"eurodist/internal/platform/logging"
	uiapp "eurodist/internal/ui/app"
)

type App struct {
	DistanceCLI distanceinadapter.CLIHandler
	DistanceTUI distanceinadapter.TUIHandler
	DatasetCLI  datasetinadapter.CLIHandler
}

// New wires the modules. Reports run on a read-only handler so a missing
// database is reported instead of created; seeding gets its own read-write
// handler.
func New(cfg config.Config, log zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}
	dbLog := logging.Component(log, "dbconn")

	reports, err := dbconn.NewHandler(dbconn.Settings{
		Driver: cfg.Driver,
		DSN:    cfg.DBPath,
		Name:   cfg.ConnectionName,
		Mode:   dbconn.ReadOnly,
	}, dbLog)
	if err != nil {
		return nil, fmt.Errorf("new report connection: %w", err)
	}
	seeds, err := dbconn.NewHandler(dbconn.Settings{
		Driver: cfg.Driver,
		DSN:    cfg.DBPath,
		Name:   cfg.ConnectionName + "_seed",
		Mode:   dbconn.ReadWrite,
	}, dbLog)
	if err != nil {
		return nil, fmt.Errorf("new seed connection: %w", err)
	}

	reportSvc, err := distanceservice.NewReportService(distanceoutadapter.NewSQLDistanceRepository(reports), cfg.DefaultCity)
	if err != nil {
		return nil, fmt.Errorf("new report service: %w", err)
	}
	distanceUC := distanceusecase.NewInteractor(reportSvc, ids, logging.Component(log, "distance"))

	writer, err := datasetoutadapter.NewSQLDatasetWriter(seeds)
	if err != nil {
		return nil, fmt.Errorf("new dataset writer: %w", err)
	}
	datasetUC := datasetusecase.NewInteractor(
		datasetservice.NewDatasetService(clk, datasetoutadapter.NewFileDatasetSource(), writer, datasetoutadapter.NewXLSXExporter()),
		distanceUC,
		ids,
		logging.Component(log, "dataset"),
	)

	return &App{
		DistanceCLI: distanceinadapter.NewCLIHandler(distanceUC),
		DistanceTUI: distanceinadapter.NewTUIHandler(distanceUC),
		DatasetCLI:  datasetinadapter.NewCLIHandler(datasetUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.DistanceTUI, app.DatasetCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
