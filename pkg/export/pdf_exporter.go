package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth   = 277.0
	labelWidth  = 16.0
	rowHeight   = 6.0
	headerHeight = 8.0
)

// PDFExporter renders a Table as a landscape timetable.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render draws the grid. Spanned lessons keep their fill colour across the
// covered rows and only the first row carries the text.
func (e *PDFExporter) Render(table Table) ([]byte, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if table.Title != "" {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, tr(table.Title), "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}

	colWidth := (pageWidth - labelWidth) / float64(len(table.Columns))

	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(labelWidth, headerHeight, tr(table.CornerLabel), "1", 0, "C", false, 0, "")
	for _, column := range table.Columns {
		pdf.CellFormat(colWidth, headerHeight, tr(column), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for ri, row := range table.Rows {
		pdf.CellFormat(labelWidth, rowHeight, row.Label, "1", 0, "C", false, 0, "")
		for ci, cell := range row.Cells {
			fill := false
			if r, g, b, ok := parseHexColor(cell.Color); ok {
				pdf.SetFillColor(r, g, b)
				fill = true
			}
			border := "1"
			if cell.Continued || continuesBelow(table.Rows, ri, ci) {
				border = borderFor(cell.Continued, continuesBelow(table.Rows, ri, ci))
			}
			text := ""
			if !cell.Continued {
				text = tr(fitText(pdf, cell.Text, colWidth-1))
			}
			pdf.CellFormat(colWidth, rowHeight, text, border, 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func continuesBelow(rows []Row, ri, ci int) bool {
	return ri+1 < len(rows) && rows[ri+1].Cells[ci].Continued
}

func borderFor(continued, below bool) string {
	switch {
	case continued && below:
		return "LR"
	case continued:
		return "LRB"
	default:
		return "LRT"
	}
}

func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
