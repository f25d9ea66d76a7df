package reports

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/shared"
)

func TestBuildSalesTotals(t *testing.T) {
	raw := json.RawMessage(`[{"date":"2024-03-01","orders":10,"cancelled":1,"revenue":200},{"date":"2024-03-02","orders":30,"revenue":600.5}]`)
	columns, rows, totals, err := build(TypeSales, raw)
	require.NoError(t, err)
	assert.Len(t, columns, 5)
	assert.Len(t, rows, 2)
	assert.Equal(t, "40", totals[1].Text)
	assert.Equal(t, "1", totals[2].Text)
	assert.Equal(t, "800.50", totals[3].Text)
	assert.Equal(t, "20.01", totals[4].Text)
}

func TestBuildRejectsUnknownType(t *testing.T) {
	_, _, _, err := build("payroll", json.RawMessage(`[]`))
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	columns, rows, totals, err := build(TypeItems, json.RawMessage(`[{"name":"Fries, large","category":"Sides","quantity":3,"revenue":12}]`))
	require.NoError(t, err)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rep := &Report{Type: TypeItems, Range: shared.DateRange{From: day, To: day}, Columns: columns, Rows: rows, Totals: totals}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rep))
	assert.Equal(t, "Item,Category,Quantity,Revenue\n\"Fries, large\",Sides,3,12.00\nTotal,,3,12.00\n", buf.String())
	assert.Equal(t, "items-2024-03-01-2024-03-01.csv", Filename(rep, "csv"))
}

func TestFilterValidate(t *testing.T) {
	assert.Error(t, Filter{Type: "payroll"}.Validate())
	assert.NoError(t, Filter{Type: TypeTeam}.Validate())
}
