package out_test

import (
	"strings"
	"testing"

	distanceout "eurodist/internal/modules/distance/adapter/out"
)

func TestQueriesAreParameterized(t *testing.T) {
	t.Parallel()
	hostile := "Rome' OR '1'='1"
	for _, dialect := range []string{"sqlite3", "mysql", "postgres"} {
		q := distanceout.NewQueries(dialect)

		query, args, err := q.EdgesFrom(hostile)
		if err != nil {
			t.Fatalf("%s edges-from: %v", dialect, err)
		}
		if strings.Contains(query, hostile) {
			t.Fatalf("%s: user text leaked into SQL: %s", dialect, query)
		}
		if len(args) != 1 || args[0] != hostile {
			t.Fatalf("%s: unexpected args %v", dialect, args)
		}

		query, args, err = q.EdgesMatching(hostile)
		if err != nil {
			t.Fatalf("%s edges-matching: %v", dialect, err)
		}
		if strings.Contains(query, "OR '1'") || !strings.Contains(query, "LIKE") || !strings.Contains(query, "ESCAPE") {
			t.Fatalf("%s: unexpected LIKE query: %s", dialect, query)
		}
		if len(args) != 2 || args[0] != "%"+hostile+"%" || args[1] != "!" {
			t.Fatalf("%s: unexpected LIKE args %v", dialect, args)
		}

		query, args, err = q.CityNames()
		if err != nil {
			t.Fatalf("%s city names: %v", dialect, err)
		}
		if !strings.Contains(query, "Cities") || strings.Contains(query, "ORDER BY") || len(args) != 0 {
			t.Fatalf("%s: unexpected city query %s %v", dialect, query, args)
		}
	}
}

func TestPlaceholderStylePerDialect(t *testing.T) {
	t.Parallel()
	query, _, err := distanceout.NewQueries("postgres").EdgesMatching("Ro")
	if err != nil {
		t.Fatalf("postgres: %v", err)
	}
	if !strings.Contains(query, "$1") || !strings.Contains(query, "$2") || !strings.Contains(query, `"Distances"`) {
		t.Fatalf("postgres should use numbered placeholders and double quotes: %s", query)
	}
	query, _, err = distanceout.NewQueries("sqlite3").EdgesFrom("Rome")
	if err != nil {
		t.Fatalf("sqlite3: %v", err)
	}
	if !strings.Contains(query, "?") || strings.Contains(query, "$1") {
		t.Fatalf("sqlite3 should use ? placeholders: %s", query)
	}
}
