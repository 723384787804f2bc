package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title:       "Centrale - lunedì 13 ottobre",
		CornerLabel: "Ora",
		Columns:     []string{"Pittura", "Design LAB"},
		Rows: []Row{
			{Label: "09:00", Cells: []Cell{{Text: "Disegno", Color: "#f4a261"}, {}}},
			{Label: "09:30", Cells: []Cell{{Continued: true, Color: "#f4a261"}, {Text: "Grafica"}}},
			{Label: "10:00", Cells: []Cell{{Continued: true, Color: "#f4a261"}, {}}},
		},
	}
}

func TestCSVRepeatsSpannedText(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Ora", "Pittura", "Design LAB"}, records[0])
	assert.Equal(t, []string{"09:30", "Disegno", "Grafica"}, records[2])
	assert.Equal(t, []string{"10:00", "Disegno", ""}, records[3])
}

func TestRenderRejectsRaggedRows(t *testing.T) {
	table := sampleTable()
	table.Rows[1].Cells = table.Rows[1].Cells[:1]

	_, err := NewCSVExporter().Render(table)
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(table)
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestParseHexColor(t *testing.T) {
	r, g, b, ok := parseHexColor("#0a1B2c")
	require.True(t, ok)
	assert.Equal(t, []int{10, 27, 44}, []int{r, g, b})

	_, _, _, ok = parseHexColor("blue")
	assert.False(t, ok)
}
