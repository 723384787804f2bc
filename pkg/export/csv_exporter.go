package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders a Table into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes. Continued cells repeat the text of the
// cell that started the span so spreadsheets can filter on any row.
func (e *CSVExporter) Render(table Table) ([]byte, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := append([]string{table.CornerLabel}, table.Columns...)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}

	carry := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		record := make([]string, 0, len(row.Cells)+1)
		record = append(record, row.Label)
		for i, cell := range row.Cells {
			if cell.Continued {
				record = append(record, carry[i])
				continue
			}
			carry[i] = cell.Text
			record = append(record, cell.Text)
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
