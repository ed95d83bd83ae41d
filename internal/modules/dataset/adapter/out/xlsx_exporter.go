package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"eurodist/internal/modules/dataset/domain"
	datasetout "eurodist/internal/modules/dataset/port/out"
)

const defaultSheet = "Sheet1"

type XLSXExporter struct{}

func NewXLSXExporter() datasetout.SheetExporter {
	return XLSXExporter{}
}

// Write streams the sheet into a new workbook at path: the title on row 1,
// headers on row 3 and data from row 4.
func (XLSXExporter) Write(_ context.Context, path string, sheet domain.Sheet) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	name := sheet.Name
	if name == "" {
		name = defaultSheet
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(name)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	if len(sheet.Columns) > 0 {
		if err := sw.SetColWidth(1, len(sheet.Columns), 22); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	if err := sw.SetRow("A1", []any{sheet.Title}, excelize.RowOpts{StyleID: bold}); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	headers := make([]any, len(sheet.Columns))
	for i, c := range sheet.Columns {
		headers[i] = c
	}
	if err := sw.SetRow("A3", headers, excelize.RowOpts{StyleID: bold}); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	f.SetActiveSheet(index)
	if name != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("delete default sheet: %w", err)
		}
	}
	created := sheet.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   sheet.Title,
		Creator: "eurodist",
		Created: created.Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("set doc props: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
