package excel

import (
	"bytes"
	"fmt"
	"strings"

	"student-portal/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet data row keyed by lower-cased header cell.
type Row map[string]string

// Get returns the trimmed cell under the given header, "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[strings.ToLower(column)])
}

// Rows extracts the data rows of the first worksheet. The first row is
// treated as the header. Returns ErrNoSheet for a sheetless workbook and
// ErrEmptySheet when no data rows follow the header.
func Rows(data []byte) ([]Row, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ErrNoSheet
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	if len(rows) < 2 {
		return nil, errors.ErrEmptySheet
	}

	header := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}

	var out []Row
	for _, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}
		row := make(Row, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			}
		}
		out = append(out, row)
	}

	if len(out) == 0 {
		return nil, errors.ErrEmptySheet
	}

	return out, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
