package clmfolio

import (
	"crypto/md5"
	"fmt"
	"time"
)

// Transaction is an on-chain event imported from a wallet or DEX export.
// Once merged it is immutable under this package; the wallet-inference pass
// is the only later writer, and it rewrites the whole store.
type Transaction struct {
	ID              string   `json:"id"`
	TxHash          string   `json:"tx_hash"`
	Wallet          string   `json:"wallet"`
	Chain           string   `json:"chain"`
	Platform        string   `json:"platform"`
	Timestamp       string   `json:"timestamp"`
	GasFees         *float64 `json:"gas_fees"`
	BlockNumber     string   `json:"block_number"`
	ContractAddress string   `json:"contract_address"`
	ImportedAt      string   `json:"imported_at"`

	// RawData preserves the original row verbatim for downstream
	// heuristics (wallet inference reads token symbols and amounts from
	// here).
	RawData map[string]string `json:"raw_data"`
}

// Balance is a point-in-time LP balance snapshot. Unlike transactions,
// a re-imported balance with a known ID replaces the stored one.
type Balance struct {
	ID              string            `json:"id"`
	TokenPair       string            `json:"token_pair"`
	Wallet          string            `json:"wallet"`
	Chain           string            `json:"chain"`
	Platform        string            `json:"platform"`
	ContractAddress string            `json:"contract_address"`
	CurrentBalance  *float64          `json:"current_balance"`
	TokenABalance   *float64          `json:"token_a_balance"`
	TokenBBalance   *float64          `json:"token_b_balance"`
	ImportedAt      string            `json:"imported_at"`
	RawData         map[string]string `json:"raw_data"`
}

// rawData copies the row cells for the raw_data field.
func rawData(row Row) map[string]string {
	m := make(map[string]string, len(row.headers))
	for _, h := range row.headers {
		if v, ok := row.cells[h]; ok {
			m[h] = v
		}
	}
	return m
}

// ParseTransaction parses one cleaned export row into a Transaction.
// chain, when non-empty, overrides whatever the row resolves to; some
// exports carry no chain column at all.
func ParseTransaction(row Row, chain string) Transaction {
	if chain == "" {
		chain = row.ResolveOr(FieldChain, "Unknown")
	}
	return Transaction{
		ID:              RowID(row),
		TxHash:          row.ResolveOr(FieldTransactionID, ""),
		Wallet:          row.ResolveOr(FieldWallet, ""),
		Chain:           chain,
		Platform:        row.ResolveOr(FieldPlatform, "Unknown"),
		Timestamp:       row.ResolveOr(FieldEntryDate, ""),
		GasFees:         ParseValue(row.Resolve(FieldGasFees), Currency),
		BlockNumber:     row.ResolveOr(FieldBlockNumber, ""),
		ContractAddress: row.ResolveOr(FieldContractAddress, ""),
		ImportedAt:      time.Now().Format(time.RFC3339),
		RawData:         rawData(row),
	}
}

// StableTxID is the content-semantic alternative to the raw-row identity:
// it survives re-exports that reorder columns or add metadata. Not used as
// the persisted key — see RowID.
func StableTxID(tx Transaction) string {
	seed := fmt.Sprintf("%s_%s_%s", tx.TxHash, tx.Wallet, tx.Timestamp)
	return fmt.Sprintf("%x", md5.Sum([]byte(seed)))[:12]
}

// ParseBalance parses one cleaned balance-snapshot row.
func ParseBalance(row Row) Balance {
	return Balance{
		ID:              RowID(row),
		TokenPair:       row.ResolveOr(FieldPosition, ""),
		Wallet:          row.ResolveOr(FieldWallet, ""),
		Chain:           row.ResolveOr(FieldChain, "Unknown"),
		Platform:        row.ResolveOr(FieldPlatform, "Unknown"),
		ContractAddress: row.ResolveOr(FieldContractAddress, ""),
		CurrentBalance:  ParseValue(row.Resolve(FieldCurrentBalance), Currency),
		TokenABalance:   ParseValue(row.Resolve(FieldTokenABalance), Currency),
		TokenBBalance:   ParseValue(row.Resolve(FieldTokenBBalance), Currency),
		ImportedAt:      time.Now().Format(time.RFC3339),
		RawData:         rawData(row),
	}
}
