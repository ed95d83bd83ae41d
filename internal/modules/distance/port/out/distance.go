package out

import (
	"context"

	"eurodist/internal/modules/distance/domain"
)

type DistanceRepository interface {
	// EdgesFrom returns edges whose starting city equals city.
	EdgesFrom(ctx context.Context, city string) ([]domain.Edge, error)
	// EdgesMatching returns edges whose starting city contains substring.
	EdgesMatching(ctx context.Context, substring string) ([]domain.Edge, error)
	CityNames(ctx context.Context) ([]string, error)
}
