package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "eurodist/internal/platform/errors"
)

type Distance struct {
	From       string
	To         string
	Kilometers float64
}

type Dataset struct {
	Cities    []string
	Distances []Distance
}

// Normalize trims names, rejects invalid rows and appends any city that is
// only referenced by a distance, in order of first appearance.
func (d Dataset) Normalize() (Dataset, error) {
	seen := make(map[string]struct{}, len(d.Cities))
	out := Dataset{
		Cities:    make([]string, 0, len(d.Cities)),
		Distances: make([]Distance, 0, len(d.Distances)),
	}
	for i, name := range d.Cities {
		name = strings.TrimSpace(name)
		if name == "" {
			return Dataset{}, fmt.Errorf("%w: city #%d has no name", apperrors.ErrInvalidInput, i+1)
		}
		if _, dup := seen[name]; dup {
			return Dataset{}, fmt.Errorf("%w: duplicate city %q", apperrors.ErrInvalidInput, name)
		}
		seen[name] = struct{}{}
		out.Cities = append(out.Cities, name)
	}
	for i, dist := range d.Distances {
		dist.From = strings.TrimSpace(dist.From)
		dist.To = strings.TrimSpace(dist.To)
		if dist.From == "" || dist.To == "" {
			return Dataset{}, fmt.Errorf("%w: distance #%d needs both cities", apperrors.ErrInvalidInput, i+1)
		}
		if dist.Kilometers < 0 {
			return Dataset{}, fmt.Errorf("%w: distance #%d has negative kilometers", apperrors.ErrInvalidInput, i+1)
		}
		for _, name := range []string{dist.From, dist.To} {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				out.Cities = append(out.Cities, name)
			}
		}
		out.Distances = append(out.Distances, dist)
	}
	return out, nil
}

// Sheet is a rendered report ready to be written to a workbook.
type Sheet struct {
	Name      string
	Title     string
	Columns   []string
	Rows      [][]any
	CreatedAt time.Time
}
