package excel

import (
	"bytes"
	"testing"

	"student-portal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestRows(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"ID", " Name ", "Dept"},
		{"T001", "Alice", "Electronics"},
		{"T002", "Bob", ""},
	})

	rows, err := Rows(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "T001", rows[0].Get("id"))
	assert.Equal(t, "Alice", rows[0].Get("Name")) // header lookup is case-insensitive
	assert.Equal(t, "Electronics", rows[0].Get("dept"))
	assert.Equal(t, "", rows[1].Get("dept"))
}

func TestRowsHeaderOnly(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"id", "name"},
	})

	_, err := Rows(data)
	assert.ErrorIs(t, err, errors.ErrEmptySheet)
}

func TestRowsBlankRowsOnly(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"id", "name"},
		{"", ""},
		{" ", ""},
	})

	_, err := Rows(data)
	assert.ErrorIs(t, err, errors.ErrEmptySheet)
}

func TestRowsNotAWorkbook(t *testing.T) {
	_, err := Rows([]byte("definitely not xlsx"))
	assert.Error(t, err)
}
