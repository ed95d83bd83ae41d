package dto

type FilterInput struct {
	City string
}

type EdgeOutput struct {
	StartingCity      string
	EndingCity        string
	Kilometers        float64
	MissingKilometers bool
}

type ReportOutput struct {
	State   string
	Filter  string
	Columns []string
	Rows    []EdgeOutput
}

type CitiesOutput struct {
	Column string
	Names  []string
}
