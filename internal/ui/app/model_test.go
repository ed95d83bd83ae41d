package app

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	datasetdto "eurodist/internal/modules/dataset/dto"
	"eurodist/internal/modules/distance/dto"
	apperrors "eurodist/internal/platform/errors"
)

var columns = []string{"Starting City Name", "Ending City Name", "Kilometers"}

type fakeDistance struct {
	down       bool
	reportDown bool
	filters    []string
	defaults   int
}

func (f *fakeDistance) DefaultReport(context.Context) (dto.ReportOutput, error) {
	f.defaults++
	if f.down || f.reportDown {
		return dto.ReportOutput{}, fmt.Errorf("%w: connection %q", apperrors.ErrDatabaseUnavailable, "european_cities")
	}
	return dto.ReportOutput{State: "default", Filter: "Rome", Columns: columns, Rows: []dto.EdgeOutput{
		{StartingCity: "Rome", EndingCity: "Paris", Kilometers: 1418},
		{StartingCity: "Rome", EndingCity: "Berlin", Kilometers: 1503},
	}}, nil
}

func (f *fakeDistance) FilteredReport(_ context.Context, city string) (dto.ReportOutput, error) {
	f.filters = append(f.filters, city)
	if f.down || f.reportDown {
		return dto.ReportOutput{}, apperrors.ErrDatabaseUnavailable
	}
	return dto.ReportOutput{State: "filtered", Filter: city, Columns: columns, Rows: []dto.EdgeOutput{
		{StartingCity: city, EndingCity: "Lisbon", Kilometers: 625},
	}}, nil
}

func (f *fakeDistance) Cities(context.Context) (dto.CitiesOutput, error) {
	if f.down {
		return dto.CitiesOutput{}, apperrors.ErrDatabaseUnavailable
	}
	return dto.CitiesOutput{Column: "City Name", Names: []string{"Rome", "Madrid", "Paris"}}, nil
}

type fakeExport struct {
	city *string
	path string
}

func (f *fakeExport) Export(_ context.Context, city *string, path string) (datasetdto.ExportOutput, error) {
	f.city = city
	f.path = path
	return datasetdto.ExportOutput{Path: path, Rows: 1}, nil
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and runs the returned command once, feeding
// its message back in.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case reportLoadedMsg, citiesLoadedMsg, exportedMsg:
		next, _ = m.Update(out)
		m = next.(Model)
	}
	return m
}

func loaded(t *testing.T, distance *fakeDistance, export *fakeExport) Model {
	t.Helper()
	m := NewModel(distance, export)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = send(t, m, m.defaultReportCmd()())
	m = send(t, m, m.loadCitiesCmd()())
	return m
}

func TestStartupShowsDefaultReportAndCities(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakeDistance{}, &fakeExport{})
	if got := len(m.report.Rows()); got != 2 {
		t.Fatalf("expected 2 default rows, got %d", got)
	}
	if m.report.Caption() != "Distances from Rome (2)" {
		t.Fatalf("unexpected caption: %q", m.report.Caption())
	}
	if got := m.selector.Options(); len(got) != 3 || got[0] != "Rome" {
		t.Fatalf("unexpected options: %v", got)
	}
	if m.selector.Value() != "Rome" {
		t.Fatalf("expected first option selected, got %q", m.selector.Value())
	}
}

func TestButtonRunsFilteredReportWithSelection(t *testing.T) {
	t.Parallel()
	distance := &fakeDistance{}
	m := loaded(t, distance, &fakeExport{})

	m = send(t, m, keyPress("down"))
	m = send(t, m, keyPress("enter"))
	if m.focus != focusButton {
		t.Fatalf("enter on the selector should focus the button, focus=%d", m.focus)
	}
	m = send(t, m, keyPress("enter"))

	if len(distance.filters) != 1 || distance.filters[0] != "Madrid" {
		t.Fatalf("expected one filtered query for Madrid, got %v", distance.filters)
	}
	rows := m.report.Rows()
	if len(rows) != 1 || rows[0][0] != "Madrid" || rows[0][2] != "625" {
		t.Fatalf("unexpected filtered rows: %v", rows)
	}
}

func TestUnavailableDatabaseRaisesAlertAndKeepsRows(t *testing.T) {
	t.Parallel()
	distance := &fakeDistance{}
	m := loaded(t, distance, &fakeExport{})

	distance.down = true
	m = send(t, m, keyPress("tab"))
	m = send(t, m, keyPress("enter"))
	if !m.alert.Visible() || m.alert.Message() != "Failed to open the database" {
		t.Fatalf("expected the database alert")
	}
	if len(m.report.Rows()) != 2 || len(m.selector.Options()) != 3 {
		t.Fatalf("failed load must not clear the panes")
	}

	// Keys are swallowed while the alert is up.
	m = send(t, m, keyPress("q"))
	m = send(t, m, keyPress("enter"))
	if len(distance.filters) != 1 {
		t.Fatalf("alert must swallow keys, got queries %v", distance.filters)
	}
	if m.alert.Visible() {
		t.Fatalf("enter should dismiss the alert")
	}

	distance.down = false
	m = send(t, m, keyPress("enter"))
	if m.alert.Visible() || len(distance.filters) != 2 || len(m.report.Rows()) != 1 {
		t.Fatalf("retry should succeed once the database is back")
	}
}

func TestStartupWithoutDatabase(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakeDistance{down: true}, &fakeExport{})
	if !m.alert.Visible() {
		t.Fatalf("expected the database alert")
	}
	if len(m.report.Rows()) != 0 || len(m.selector.Options()) != 0 {
		t.Fatalf("panes should stay empty")
	}
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()
	distance := &fakeDistance{}
	export := &fakeExport{}
	m := loaded(t, distance, export)

	next, cmd := m.executePalette("report:filter Vien")
	m = send(t, next.(Model), cmd())
	if m.current.State != "filtered" || m.current.Filter != "Vien" {
		t.Fatalf("unexpected current report: %+v", m.current)
	}

	next, cmd = m.executePalette("export out/vienna.xlsx")
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("export should return a command")
	}
	m = send(t, m, cmd())
	if export.city == nil || *export.city != "Vien" || export.path != "out/vienna.xlsx" {
		t.Fatalf("unexpected export call: city=%v path=%q", export.city, export.path)
	}
	if m.status != "exported 1 rows to out/vienna.xlsx" {
		t.Fatalf("unexpected status: %q", m.status)
	}

	next, _ = m.executePalette("bogus")
	if next.(Model).status != "unknown command: bogus" {
		t.Fatalf("unexpected status for unknown command")
	}
}

func TestStartupReportFailsButCitiesLoad(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakeDistance{reportDown: true}, &fakeExport{})
	if !m.alert.Visible() || m.alert.Message() != "Failed to open the database" {
		t.Fatalf("expected the database alert")
	}
	if got := m.selector.Options(); len(got) != 3 || got[0] != "Rome" {
		t.Fatalf("selector should load behind the alert, got %v", got)
	}
	if len(m.report.Rows()) != 0 || m.hasReport {
		t.Fatalf("report pane should stay empty")
	}
}

// openPalette opens the palette without running its blink command.
func openPalette(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(keyPress(":"))
	m = next.(Model)
	if !m.palette.Visible() {
		t.Fatalf("palette should be open")
	}
	return m
}

func TestReportLandsWhilePaletteOpen(t *testing.T) {
	t.Parallel()
	m := NewModel(&fakeDistance{}, &fakeExport{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = openPalette(t, next.(Model))

	next, _ = m.Update(m.defaultReportCmd()())
	m = next.(Model)
	next, _ = m.Update(m.loadCitiesCmd()())
	m = next.(Model)
	if !m.palette.Visible() {
		t.Fatalf("loads must not close the palette")
	}
	if !m.hasReport || len(m.report.Rows()) != 2 || len(m.selector.Options()) != 3 {
		t.Fatalf("loads were dropped: rows=%v options=%v", m.report.Rows(), m.selector.Options())
	}

	next, _ = m.Update(m.filteredReportCmd("Vien")())
	m = next.(Model)
	if m.current.Filter != "Vien" || len(m.report.Rows()) != 1 {
		t.Fatalf("filtered report was dropped: %+v", m.current)
	}

	next, _ = m.Update(keyPress("esc"))
	m = next.(Model)
	if m.palette.Visible() {
		t.Fatalf("esc should close the palette")
	}
	if rows := m.report.Rows(); len(rows) != 1 || rows[0][1] != "Lisbon" {
		t.Fatalf("rows should persist after closing the palette: %v", rows)
	}
}

func TestUnavailableWhilePaletteOpenRaisesAlert(t *testing.T) {
	t.Parallel()
	m := NewModel(&fakeDistance{down: true}, &fakeExport{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = openPalette(t, next.(Model))

	next, _ = m.Update(m.defaultReportCmd()())
	m = next.(Model)
	if !m.alert.Visible() {
		t.Fatalf("expected the database alert behind the open palette")
	}
	// The alert is served before the palette.
	next, _ = m.Update(keyPress("enter"))
	m = next.(Model)
	if m.alert.Visible() || !m.palette.Visible() {
		t.Fatalf("enter should dismiss only the alert")
	}
}
