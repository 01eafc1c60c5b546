package listing

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type csvItem struct {
	Name, Note string
}

var csvColumns = []Column{
	{Header: "Name", Value: func(row interface{}) string { return row.(csvItem).Name }},
	{Header: "Note", Value: func(row interface{}) string { return row.(csvItem).Note }},
}

func TestWriteCSV(t *testing.T) {
	rows := []interface{}{
		csvItem{Name: "Doe, Jane", Note: `said "hi"`},
		csvItem{Name: "Smith", Note: "line one\nline two"},
		csvItem{Name: "Ngoy"},
	}

	out, err := ToCSV(csvColumns, rows)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "Note"},
		{"Doe, Jane", `said "hi"`},
		{"Smith", "line one\nline two"},
		{"Ngoy", ""},
	}, records)
}

func TestWriteCSV_noRows(t *testing.T) {
	out, err := ToCSV(csvColumns, nil)
	require.NoError(t, err)
	assert.Equal(t, "Name,Note\n", out)
}

func TestWriteXLSX(t *testing.T) {
	rows := []interface{}{
		csvItem{Name: "Doe, Jane", Note: "n1"},
		csvItem{Name: "Smith", Note: "n2"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "students", csvColumns, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows("students")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "Note"},
		{"Doe, Jane", "n1"},
		{"Smith", "n2"},
	}, got)
}
