package out

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"eurodist/internal/modules/dataset/domain"
	datasetout "eurodist/internal/modules/dataset/port/out"
	"eurodist/internal/platform/dbconn"
)

const (
	citiesTableName     = "Cities"
	distancesTableName  = "Distances"
	nameColName         = "Name"
	startingCityColName = "Starting_City_Name"
	endingCityColName   = "Ending_City_Name"
	kilometersColName   = "Kilometers"

	insertBatch = 200
)

var schemas = map[string][]string{
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS Cities (
  Name TEXT PRIMARY KEY
)`,
		`CREATE TABLE IF NOT EXISTS Distances (
  Starting_City_Name TEXT NOT NULL,
  Ending_City_Name TEXT NOT NULL,
  Kilometers REAL NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_distances_starting ON Distances(Starting_City_Name)`,
	},
	"postgres": {
		`CREATE TABLE IF NOT EXISTS "Cities" (
  "Name" TEXT PRIMARY KEY
)`,
		`CREATE TABLE IF NOT EXISTS "Distances" (
  "Starting_City_Name" TEXT NOT NULL,
  "Ending_City_Name" TEXT NOT NULL,
  "Kilometers" DOUBLE PRECISION NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_distances_starting ON "Distances" ("Starting_City_Name")`,
	},
	"mysql": {
		"CREATE TABLE IF NOT EXISTS `Cities` (\n  `Name` VARCHAR(255) PRIMARY KEY\n)",
		"CREATE TABLE IF NOT EXISTS `Distances` (\n  `Starting_City_Name` VARCHAR(255) NOT NULL,\n  `Ending_City_Name` VARCHAR(255) NOT NULL,\n  `Kilometers` DOUBLE NOT NULL,\n  INDEX idx_distances_starting (`Starting_City_Name`)\n)",
	},
}

type SQLDatasetWriter struct {
	conns   dbconn.Manager
	dialect goqu.DialectWrapper
	ddl     []string
}

func NewSQLDatasetWriter(conns dbconn.Manager) (datasetout.DatasetWriter, error) {
	ddl, ok := schemas[conns.Dialect()]
	if !ok {
		return nil, fmt.Errorf("no schema for dialect %q", conns.Dialect())
	}
	return &SQLDatasetWriter{conns: conns, dialect: goqu.Dialect(conns.Dialect()), ddl: ddl}, nil
}

func (w *SQLDatasetWriter) Replace(ctx context.Context, dataset domain.Dataset) error {
	return w.conns.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for i, stmt := range w.ddl {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
			}
		}
		for _, table := range []string{distancesTableName, citiesTableName} {
			query, args, err := w.dialect.Delete(table).Prepared(true).ToSQL()
			if err != nil {
				return fmt.Errorf("build delete %s: %w", table, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		if err := w.insertCities(ctx, tx, dataset.Cities); err != nil {
			return err
		}
		return w.insertDistances(ctx, tx, dataset.Distances)
	})
}

func (w *SQLDatasetWriter) insertCities(ctx context.Context, tx *sql.Tx, cities []string) error {
	for start := 0; start < len(cities); start += insertBatch {
		end := min(start+insertBatch, len(cities))
		rows := make([]any, 0, end-start)
		for _, name := range cities[start:end] {
			rows = append(rows, goqu.Record{nameColName: name})
		}
		query, args, err := w.dialect.Insert(citiesTableName).Rows(rows...).Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert cities: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert cities: %w", err)
		}
	}
	return nil
}

func (w *SQLDatasetWriter) insertDistances(ctx context.Context, tx *sql.Tx, distances []domain.Distance) error {
	for start := 0; start < len(distances); start += insertBatch {
		end := min(start+insertBatch, len(distances))
		rows := make([]any, 0, end-start)
		for _, d := range distances[start:end] {
			rows = append(rows, goqu.Record{
				startingCityColName: d.From,
				endingCityColName:   d.To,
				kilometersColName:   d.Kilometers,
			})
		}
		query, args, err := w.dialect.Insert(distancesTableName).Rows(rows...).Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert distances: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert distances: %w", err)
		}
	}
	return nil
}
