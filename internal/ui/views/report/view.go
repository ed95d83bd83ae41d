package report

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"eurodist/internal/modules/distance/dto"
	"eurodist/internal/ui/theme"
)

// Model renders a distance report as a bubbles table.
type Model struct {
	table   table.Model
	caption string
	columns []string
	width   int
	height  int
}

func New() Model {
	styles := table.DefaultStyles()
	styles.Header = theme.TableHeader
	styles.Cell = theme.TableCell
	styles.Selected = theme.TableSelected

	t := table.New(
		table.WithFocused(false),
		table.WithStyles(styles),
	)
	return Model{table: t, caption: "No report loaded"}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	style := theme.Pane
	if m.table.Focused() {
		style = theme.PaneActive
	}
	body := theme.Title.Render(m.caption) + "\n" + m.table.View()
	return style.Width(max(m.width-2, 0)).Height(max(m.height-2, 0)).Render(body)
}

// SetReport replaces columns and rows with the report's. The column headers
// come from the report so the table always shows the query's own labels.
func (m *Model) SetReport(out dto.ReportOutput) {
	m.columns = append([]string(nil), out.Columns...)
	m.caption = Caption(out)
	// Rows must be cleared before the column count can change.
	m.table.SetRows(nil)
	m.resize()
	m.table.SetRows(Rows(out))
	m.table.GotoTop()
}

func (m Model) Caption() string { return m.caption }

func (m Model) Rows() []table.Row { return m.table.Rows() }

func (m *Model) Focus() { m.table.Focus() }
func (m *Model) Blur()  { m.table.Blur() }

func (m *Model) resize() {
	inner := max(m.width-4, 0)
	cols := make([]table.Column, len(m.columns))
	if n := len(m.columns); n > 0 {
		w := max(inner/n-2, 8)
		for i, title := range m.columns {
			cols[i] = table.Column{Title: title, Width: w}
		}
	}
	m.table.SetColumns(cols)
	m.table.SetWidth(inner)
	m.table.SetHeight(max(m.height-4, 1))
}

// Title names the report on screen.
func Title(out dto.ReportOutput) string {
	if out.State == "filtered" {
		return fmt.Sprintf("Distances from cities matching %q", out.Filter)
	}
	return "Distances from " + out.Filter
}

// Caption is Title followed by the row count.
func Caption(out dto.ReportOutput) string {
	return fmt.Sprintf("%s (%d)", Title(out), len(out.Rows))
}

// Rows converts report rows into table rows.
func Rows(out dto.ReportOutput) []table.Row {
	rows := make([]table.Row, len(out.Rows))
	for i, r := range out.Rows {
		rows[i] = table.Row{r.StartingCity, r.EndingCity, FormatKilometers(r)}
	}
	return rows
}

// FormatKilometers prints whole distances without a fractional part and a
// missing distance as an empty cell.
func FormatKilometers(r dto.EdgeOutput) string {
	if r.MissingKilometers {
		return ""
	}
	return strconv.FormatFloat(r.Kilometers, 'f', -1, 64)
}
