package export

import (
	"fmt"
	"io"

	"github.com/de-tools/service-reports/pkg/models/value"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Reports"

// WriteXLSX writes the rows to a workbook with a single sheet. Numbers stay
// numeric cells.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	columns := Columns(rows)
	header := make([]interface{}, len(columns))
	for i, column := range columns {
		header[i] = column
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range rows {
		cells := make([]interface{}, len(columns))
		for i, column := range columns {
			cells[i] = xlsxCell(row[column])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func xlsxCell(v value.Value) interface{} {
	switch t := v.(type) {
	case value.Number:
		return float64(t)
	case value.Bool:
		return bool(t)
	case nil, value.Null:
		return nil
	default:
		return Cell(v)
	}
}
