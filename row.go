package clmfolio

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// Row is a single CSV record indexed by header name. It preserves the header
// order of the source file so that identity hashes are stable for a given
// export.
type Row struct {
	headers []string
	cells   map[string]string
}

// NewRow builds a row from a header line and a record. Extra record fields
// beyond the headers are dropped; missing ones read as absent columns.
func NewRow(headers, record []string) Row {
	cells := make(map[string]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if i < len(record) {
			cells[h] = record[i]
		}
	}
	return Row{headers: headers, cells: cells}
}

// Get returns the raw cell under the given header. ok is false when the
// column does not exist in this row's file.
func (r Row) Get(col string) (value string, ok bool) {
	value, ok = r.cells[col]
	return value, ok
}

// Has reports whether the column exists and holds a non-blank value.
func (r Row) Has(col string) bool {
	v, ok := r.cells[col]
	return ok && strings.TrimSpace(v) != ""
}

// HasColumn reports whether the column exists at all, blank or not.
func (r Row) HasColumn(col string) bool {
	_, ok := r.cells[col]
	return ok
}

// FirstNonEmpty returns the first non-blank cell in header order, or "".
// Used as a last-resort identifier when no known column resolves.
func (r Row) FirstNonEmpty() string {
	for _, h := range r.headers {
		if v := strings.TrimSpace(r.cells[h]); v != "" {
			return v
		}
	}
	return ""
}

// canonical returns a stable string form of the whole row, in header order.
// It is the hash input for transaction and balance identity: a byte-identical
// re-import yields the same ID, while a re-export with reordered or added
// columns does not. See RowID.
func (r Row) canonical() string {
	var b strings.Builder
	for i, h := range r.headers {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(h)
		b.WriteByte('=')
		b.WriteString(r.cells[h])
	}
	return b.String()
}

// RowID derives the 12-hex-character identity used for transactions and
// balances from the entire raw row. It is deliberately format-sensitive:
// the persisted stores were built with this rule and switching to a
// stable-field subset would orphan every record already on disk. StableTxID
// is the candidate replacement.
func RowID(r Row) string {
	sum := md5.Sum([]byte(r.canonical()))
	return fmt.Sprintf("%x", sum)[:12]
}

// Semantic field names understood by Resolve.
const (
	FieldPosition        = "position"
	FieldPlatform        = "platform"
	FieldChain           = "chain"
	FieldEntryValue      = "entry_value"
	FieldEntryDate       = "entry_date"
	FieldWallet          = "wallet"
	FieldTransactionID   = "transaction_id"
	FieldGasFees         = "gas_fees"
	FieldBlockNumber     = "block_number"
	FieldContractAddress = "contract_address"
	FieldCurrentBalance  = "current_balance"
	FieldTokenABalance   = "token_a_balance"
	FieldTokenBBalance   = "token_b_balance"
)

// columnAliases maps a semantic field to the ordered list of header names
// that different CSV exports use for it. Supporting a new export means
// adding aliases here, never touching the parsers.
var columnAliases = map[string][]string{
	FieldPosition:        {"Position Details", "Position", "Token Pair"},
	FieldPlatform:        {"Platform", "Protocol"},
	FieldChain:           {"Chain", "Blockchain"},
	FieldEntryValue:      {"Total Entry Value", "Entry Value (cash in)"},
	FieldEntryDate:       {"Entry Date", "Date", "Timestamp"},
	FieldWallet:          {"Wallet", "Address", "Wallet Address"},
	FieldTransactionID:   {"Transaction ID", "Tx Hash", "Hash"},
	FieldGasFees:         {"Gas Fees", "Fee", "Gas Fee"},
	FieldBlockNumber:     {"Block Number", "Block"},
	FieldContractAddress: {"Contract Address", "Contract"},
	FieldCurrentBalance:  {"Current Balance", "Balance"},
	FieldTokenABalance:   {"Token A Balance", "Token A Amount"},
	FieldTokenBBalance:   {"Token B Balance", "Token B Amount"},
}

// Resolve returns the first present, non-blank value among the aliases
// registered for the semantic field, or "" when none resolves.
func (r Row) Resolve(field string) string {
	for _, col := range columnAliases[field] {
		if v, ok := r.cells[col]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ResolveOr resolves the field or falls back to def.
func (r Row) ResolveOr(field, def string) string {
	if v := r.Resolve(field); v != "" {
		return strings.TrimSpace(v)
	}
	return def
}
