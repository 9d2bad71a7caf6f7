package excel

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days from the 1900 epoch; 25569 is the
// offset of the Unix epoch (1970-01-01) in that scheme.
const serialEpochOffset = 25569

const dateLayout = "2006-01-02"

// SerialToDate converts a spreadsheet serial day number to a YYYY-MM-DD
// string. Serial 44927 resolves to 2023-01-01.
func SerialToDate(serial float64) string {
	days := math.Floor(serial - serialEpochOffset)
	return time.Unix(int64(days)*86400, 0).UTC().Format(dateLayout)
}

// ParseDate normalizes a cell value into a YYYY-MM-DD string. Two input
// shapes are supported: ISO-parseable text and spreadsheet serial numbers.
// Anything else (including blank) yields nil.
func ParseDate(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial <= serialEpochOffset {
			return nil
		}
		d := SerialToDate(serial)
		return &d
	}

	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02 15:04:05", "01-02-06", "1/2/06"} {
		if t, err := time.Parse(layout, value); err == nil {
			d := t.Format(dateLayout)
			return &d
		}
	}

	return nil
}
