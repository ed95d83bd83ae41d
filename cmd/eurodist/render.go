package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"eurodist/internal/modules/distance/dto"
	"eurodist/internal/ui/theme"
	reportview "eurodist/internal/ui/views/report"
)

func reportRows(out dto.ReportOutput) [][]string {
	rows := make([][]string, 0, len(out.Rows))
	for _, r := range reportview.Rows(out) {
		rows = append(rows, r)
	}
	return rows
}

func renderReport(out dto.ReportOutput) string {
	header := theme.Title.Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	km := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Surface1)).
		Headers(out.Columns...).
		Rows(reportRows(out)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 2:
				return km
			default:
				return cell
			}
		})

	caption := theme.Hot.Render(reportview.Title(out))
	if len(out.Rows) == 0 {
		return caption + "\n" + theme.Muted.Render("no distances")
	}
	return caption + "\n" + t.String()
}

func writePlainReport(w io.Writer, out dto.ReportOutput) {
	_, _ = fmt.Fprintln(w, strings.Join(out.Columns, "\t"))
	for _, row := range reportRows(out) {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}
