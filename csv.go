package clmfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// identifierCandidates are probed in order to find the column that names a
// row, both for the cleaner and for file classification.
var identifierCandidates = []string{
	"Position Details", "Position",
	"Transaction ID", "Tx Hash", "Address", "Token",
}

// ReadRows reads a CSV file into rows keyed by its header line.
// Records with a different field count than the header are kept; missing
// trailing cells read as absent.
func ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open csv %q: %w", path, err)
	}
	defer f.Close()
	return DecodeRows(f)
}

// DecodeRows decodes CSV content from r into rows. The first record is the
// header line.
func DecodeRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read csv record: %w", err)
		}
		rows = append(rows, NewRow(headers, record))
	}
	return rows, nil
}

// identifierColumn returns the column used to tell data rows from template
// decoration, or "" when the file has no recognizable identifier.
func identifierColumn(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	for _, col := range identifierCandidates {
		if rows[0].HasColumn(col) {
			return col
		}
	}
	return ""
}

// Clean drops the instruction rows that spreadsheet templates leave behind:
// rows whose identifier cell contains "Data format" or "How to get", and
// rows whose identifier cell is blank. Files without any identifier column
// pass through untouched.
func Clean(rows []Row) []Row {
	col := identifierColumn(rows)
	if col == "" {
		return rows
	}

	kept := rows[:0:0]
	for _, row := range rows {
		v, _ := row.Get(col)
		if strings.Contains(v, "Data format") || strings.Contains(v, "How to get") {
			continue
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}
