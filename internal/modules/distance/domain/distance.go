package domain

import "strings"

const (
	ColumnStartingCity = "Starting City Name"
	ColumnEndingCity   = "Ending City Name"
	ColumnKilometers   = "Kilometers"
	ColumnCityName     = "City Name"
)

// ReportColumns are the headers of every distance report, in display order.
var ReportColumns = []string{ColumnStartingCity, ColumnEndingCity, ColumnKilometers}

type City struct {
	Name string
}

// Edge is one directed row of the Distances table. The reverse direction, if
// present, is a separate edge.
type Edge struct {
	StartingCity string
	EndingCity   string
	Kilometers   float64
	// MissingKilometers is set when the stored value is NULL or not a number.
	// Such rows are still reported, with Kilometers left at zero.
	MissingKilometers bool
}

type FilterMode int

const (
	FilterExact FilterMode = iota
	FilterContains
)

type Filter struct {
	Mode FilterMode
	City string
}

func (f Filter) String() string {
	if f.Mode == FilterContains {
		return "contains " + f.City
	}
	return f.City
}

type ReportState string

const (
	ReportDefault  ReportState = "default"
	ReportFiltered ReportState = "filtered"
)

type Report struct {
	State   ReportState
	Filter  Filter
	Columns []string
	Edges   []Edge
}

func (r Report) Empty() bool { return len(r.Edges) == 0 }

// LikeEscape is the escape character used for substring filters.
const LikeEscape = '!'

// EscapeLike escapes LIKE metacharacters so s matches literally.
func EscapeLike(s string, esc rune) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == esc {
			b.WriteRune(esc)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ContainsPattern returns the LIKE pattern matching any value containing s.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s, LikeEscape) + "%"
}
