package dto

type SeedInput struct {
	Path string
}

type SeedOutput struct {
	Cities    int
	Distances int
}

type ExportInput struct {
	// Filtered selects the substring report for City; otherwise the default
	// report is exported and City is ignored.
	Filtered bool
	City     string
	Path     string
}

type ExportOutput struct {
	Path string
	Rows int
}
