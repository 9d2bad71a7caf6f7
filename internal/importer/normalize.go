package importer

import (
	"fmt"
	"strconv"
)

const (
	defaultPassword    = "default123"
	defaultName        = "Unknown"
	defaultPosition    = "N/A"
	defaultIncome      = "0.00"
	defaultDescription = "No description provided"
)

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func intOr(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// currencyOr parses a currency-like cell into a 2-decimal string.
func currencyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return fmt.Sprintf("%.2f", f)
}

// canonicalEnum maps a cell value onto a closed list. Values outside the
// list are replaced with the first canonical entry and reported as a
// warning, never rejected.
func canonicalEnum(field, value string, canonical []string) (string, []string) {
	for _, v := range canonical {
		if value == v {
			return value, nil
		}
	}
	warning := fmt.Sprintf("invalid %s %q, substituting %q", field, value, canonical[0])
	return canonical[0], []string{warning}
}
