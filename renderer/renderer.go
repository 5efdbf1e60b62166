// Package renderer turns portfolio state into markdown reports.
// Reports are plain strings; the caller decides whether to pretty-print
// them through glamour or pipe them raw.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// report formats markdown into a string builder.
type report struct {
	*strings.Builder
}

func newReport() *report { return &report{&strings.Builder{}} }

// Printf formats according to a format specifier and writes to the report.
func (r *report) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// usd formats a nullable USD amount, "-" when absent.
func usd(v *float64) string {
	if v == nil {
		return "-"
	}
	return money.NewFromFloat(*v, money.USD).Display()
}

// pct formats a nullable percentage with sign, "-" when absent.
func pct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", *v)
}

// num formats a nullable plain number, "-" when absent.
func num(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.4g", *v)
}

// rangeLabels map the stored range status values to report wording.
var rangeLabels = map[string]string{
	"in_range":          "in range",
	"out_of_range_low":  "below range",
	"out_of_range_high": "above range",
	"perp_active":       "perp active",
	"perp_closed":       "perp closed",
	"no_range":          "no range",
	"unknown":           "unknown",
}

func rangeLabel(status string) string {
	if label, ok := rangeLabels[status]; ok {
		return label
	}
	return status
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
