package service

import (
	"context"
	"fmt"
	"strings"

	"eurodist/internal/modules/distance/domain"
	distanceout "eurodist/internal/modules/distance/port/out"
	apperrors "eurodist/internal/platform/errors"
)

type ReportService struct {
	repo        distanceout.DistanceRepository
	defaultCity string
}

func NewReportService(repo distanceout.DistanceRepository, defaultCity string) (*ReportService, error) {
	defaultCity = strings.TrimSpace(defaultCity)
	if defaultCity == "" {
		return nil, fmt.Errorf("%w: default city is required", apperrors.ErrInvalidInput)
	}
	return &ReportService{repo: repo, defaultCity: defaultCity}, nil
}

// DefaultReport lists edges starting exactly at the configured default city.
func (s *ReportService) DefaultReport(ctx context.Context) (domain.Report, error) {
	filter := domain.Filter{Mode: domain.FilterExact, City: s.defaultCity}
	edges, err := s.repo.EdgesFrom(ctx, filter.City)
	if err != nil {
		return domain.Report{}, err
	}
	return newReport(domain.ReportDefault, filter, edges), nil
}

// FilteredReport lists edges whose starting city contains city. An empty
// value matches every edge.
func (s *ReportService) FilteredReport(ctx context.Context, city string) (domain.Report, error) {
	filter := domain.Filter{Mode: domain.FilterContains, City: city}
	edges, err := s.repo.EdgesMatching(ctx, city)
	if err != nil {
		return domain.Report{}, err
	}
	return newReport(domain.ReportFiltered, filter, edges), nil
}

func (s *ReportService) Cities(ctx context.Context) ([]domain.City, error) {
	names, err := s.repo.CityNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.City, 0, len(names))
	for _, name := range names {
		out = append(out, domain.City{Name: name})
	}
	return out, nil
}

func newReport(state domain.ReportState, filter domain.Filter, edges []domain.Edge) domain.Report {
	if edges == nil {
		edges = []domain.Edge{}
	}
	columns := make([]string, len(domain.ReportColumns))
	copy(columns, domain.ReportColumns)
	return domain.Report{State: state, Filter: filter, Columns: columns, Edges: edges}
}
