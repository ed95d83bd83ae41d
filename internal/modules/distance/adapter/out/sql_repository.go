package out

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"eurodist/internal/modules/distance/domain"
	distanceout "eurodist/internal/modules/distance/port/out"
	"eurodist/internal/platform/dbconn"
)

type SQLDistanceRepository struct {
	conns   dbconn.Manager
	queries Queries
}

func NewSQLDistanceRepository(conns dbconn.Manager) distanceout.DistanceRepository {
	return &SQLDistanceRepository{conns: conns, queries: NewQueries(conns.Dialect())}
}

func (r *SQLDistanceRepository) EdgesFrom(ctx context.Context, city string) ([]domain.Edge, error) {
	query, args, err := r.queries.EdgesFrom(city)
	if err != nil {
		return nil, fmt.Errorf("build edges-from query: %w", err)
	}
	return r.queryEdges(ctx, query, args)
}

func (r *SQLDistanceRepository) EdgesMatching(ctx context.Context, substring string) ([]domain.Edge, error) {
	query, args, err := r.queries.EdgesMatching(substring)
	if err != nil {
		return nil, fmt.Errorf("build edges-matching query: %w", err)
	}
	return r.queryEdges(ctx, query, args)
}

func (r *SQLDistanceRepository) CityNames(ctx context.Context) ([]string, error) {
	query, args, err := r.queries.CityNames()
	if err != nil {
		return nil, fmt.Errorf("build city names query: %w", err)
	}
	var out []string
	err = r.conns.Within(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("list cities: %w", err)
		}
		defer rows.Close()

		out = make([]string, 0, 32)
		for rows.Next() {
			var name sql.NullString
			if err := rows.Scan(&name); err != nil {
				return fmt.Errorf("scan city: %w", err)
			}
			out = append(out, name.String)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate cities: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLDistanceRepository) queryEdges(ctx context.Context, query string, args []any) ([]domain.Edge, error) {
	var out []domain.Edge
	err := r.conns.Within(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query distances: %w", err)
		}
		defer rows.Close()

		out = make([]domain.Edge, 0, 16)
		for rows.Next() {
			var starting, ending sql.NullString
			var km any
			if err := rows.Scan(&starting, &ending, &km); err != nil {
				return fmt.Errorf("scan distance: %w", err)
			}
			e := domain.Edge{StartingCity: starting.String, EndingCity: ending.String}
			e.Kilometers, e.MissingKilometers = kilometers(km)
			out = append(out, e)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate distances: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// kilometers converts a scanned Kilometers value. Databases not created by
// seed may hold NULL or text there; those rows report the value as missing.
func kilometers(v any) (float64, bool) {
	switch km := v.(type) {
	case float64:
		return km, false
	case float32:
		return float64(km), false
	case int64:
		return float64(km), false
	case []byte:
		return parseKilometers(string(km))
	case string:
		return parseKilometers(km)
	default:
		return 0, true
	}
}

func parseKilometers(s string) (float64, bool) {
	km, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, true
	}
	return km, false
}
