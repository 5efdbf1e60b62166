package clmfolio

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind selects which decoration characters ParseValue strips before
// numeric coercion.
type ValueKind int

const (
	// Currency values like "$24,427.50".
	Currency ValueKind = iota
	// Percentage values like "12.20%".
	Percentage
)

// ParseValue coerces a messy spreadsheet cell into a float.
// Missing cells, empty strings, "N/A" and anything that still fails numeric
// coercion after stripping decoration all degrade to nil, never to an error.
func ParseValue(raw string, kind ValueKind) *float64 {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || cleaned == "N/A" {
		return nil
	}

	// Spreadsheet exports occasionally wrap numbers in stray quotes.
	cleaned = strings.Trim(cleaned, `"'`)

	switch kind {
	case Currency:
		cleaned = strings.ReplaceAll(cleaned, "$", "")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case Percentage:
		cleaned = strings.ReplaceAll(cleaned, "%", "")
	}

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || cleaned == "N/A" {
		return nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

// floatPtr is a test and construction helper.
func floatPtr(v float64) *float64 { return &v }
