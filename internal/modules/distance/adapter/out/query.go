package out

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"eurodist/internal/modules/distance/domain"
)

const (
	CitiesTableName                 = "Cities"
	CitiesTableNameColName          = "Name"
	DistancesTableName              = "Distances"
	DistancesTableStartingCityName  = "Starting_City_Name"
	DistancesTableEndingCityName    = "Ending_City_Name"
	DistancesTableKilometersColName = "Kilometers"
)

var (
	CitiesTable                = goqu.T(CitiesTableName)
	CitiesTableNameCol         = CitiesTable.Col(CitiesTableNameColName)
	DistancesTable             = goqu.T(DistancesTableName)
	DistancesTableStartingCol  = DistancesTable.Col(DistancesTableStartingCityName)
	DistancesTableEndingCol    = DistancesTable.Col(DistancesTableEndingCityName)
	DistancesTableKilometerCol = DistancesTable.Col(DistancesTableKilometersColName)
)

// Queries builds parameterized statements for one SQL dialect. User values
// only ever travel as bound arguments.
type Queries struct {
	dialect goqu.DialectWrapper
}

func NewQueries(dialect string) Queries {
	return Queries{dialect: goqu.Dialect(dialect)}
}

func (q Queries) EdgesFrom(city string) (string, []any, error) {
	return q.selectEdges().Where(DistancesTableStartingCol.Eq(city)).ToSQL()
}

func (q Queries) EdgesMatching(substring string) (string, []any, error) {
	like := goqu.L("? LIKE ? ESCAPE ?", DistancesTableStartingCol, domain.ContainsPattern(substring), string(domain.LikeEscape))
	return q.selectEdges().Where(like).ToSQL()
}

func (q Queries) CityNames() (string, []any, error) {
	return q.dialect.From(CitiesTable).Select(CitiesTableNameCol).Prepared(true).ToSQL()
}

func (q Queries) selectEdges() *goqu.SelectDataset {
	return q.dialect.From(DistancesTable).
		Select(DistancesTableStartingCol, DistancesTableEndingCol, DistancesTableKilometerCol).
		Prepared(true)
}
