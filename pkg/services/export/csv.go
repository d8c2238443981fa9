package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes a header line followed by one line per row.
func WriteCSV(w io.Writer, rows []Row) error {
	columns := Columns(rows)
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, column := range columns {
			record[i] = Cell(row[column])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
