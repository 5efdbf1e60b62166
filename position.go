package clmfolio

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"
)

// Range status values set by enrichment.
const (
	RangeUnknown    = "unknown"
	RangeIn         = "in_range"
	RangeOutLow     = "out_of_range_low"
	RangeOutHigh    = "out_of_range_high"
	RangePerpActive = "perp_active"
	RangePerpClosed = "perp_closed"
	RangeNone       = "no_range"
)

// Recognized strategy stores. Anything else only survives when the row
// itself says so, and combined files drop it with a warning.
const (
	StrategyLong    = "long"
	StrategyNeutral = "neutral"
)

// Position is the canonical record for one liquidity/trading position,
// rebuilt from its source row on every import. The merge engine alone
// decides which of the long/neutral/closed stores it lands in.
type Position struct {
	ID              string `json:"id"`
	PositionDetails string `json:"position_details"`
	Strategy        string `json:"strategy"`
	Platform        string `json:"platform"`
	TokenPair       string `json:"token_pair"`
	Chain           string `json:"chain"`
	Wallet          string `json:"wallet"`

	EntryValue *float64 `json:"entry_value"`
	EntryDate  string   `json:"entry_date"`
	DaysActive *float64 `json:"days_active"`
	MinRange   *float64 `json:"min_range"`
	MaxRange   *float64 `json:"max_range"`

	ExitDate           *string  `json:"exit_date"`
	ExitValue          *float64 `json:"exit_value"`
	ClaimedYieldValue  *float64 `json:"claimed_yield_value"`
	ClaimedYieldReturn *float64 `json:"claimed_yield_return"`
	PriceReturn        *float64 `json:"price_return"`
	ImpermanentLoss    *float64 `json:"impermanent_loss"`
	TransactionFees    *float64 `json:"transaction_fees"`
	Slippage           *float64 `json:"slippage"`
	YieldAPR           *float64 `json:"yield_apr"`
	NetReturn          *float64 `json:"net_return"`

	Status   string `json:"status"`
	IsActive bool   `json:"is_active"`

	// Enrichment-owned. The parser always resets these; the merge engine
	// carries them forward from the previous record.
	CurrentPrice *float64 `json:"current_price"`
	RangeStatus  string   `json:"range_status"`

	LastUpdated string `json:"last_updated"`
}

// entryValueColumn is part of position identity: long sheets record entries
// under a different header than the others, so the raw cell feeding the ID
// differs by strategy.
func entryValueColumn(strategy string) string {
	if strategy == StrategyLong {
		return "Total Entry Value"
	}
	return "Entry Value (cash in)"
}

// PositionID derives the stable 12-hex identity of a position from its
// description, entry date, raw entry-value cell and strategy. The same
// source row under the same strategy always hashes to the same ID; that
// equality is the only "seen before" signal the merge engine has.
func PositionID(row Row, strategy string) string {
	details, _ := row.Get("Position Details")
	if strings.TrimSpace(details) == "" {
		details, _ = row.Get("Position")
	}
	entryDate, _ := row.Get("Entry Date")
	entryValue, _ := row.Get(entryValueColumn(strategy))

	seed := fmt.Sprintf("%s_%s_%s_%s", details, entryDate, entryValue, strategy)
	return fmt.Sprintf("%x", md5.Sum([]byte(seed)))[:12]
}

// closedStatuses are the Status spellings that mark a position closed.
var closedStatuses = map[string]bool{
	"closed": true, "close": true, "exit": true, "exited": true,
}

// ParsePosition parses one cleaned spreadsheet row into a Position.
// strategyHint carries the strategy for single-strategy files; a non-blank
// per-row Strategy column overrides it, which is how combined exports route
// themselves. Missing or malformed cells degrade field by field; no row
// ever fails as a whole.
func ParsePosition(row Row, strategyHint string) Position {
	details := row.Resolve(FieldPosition)
	if details == "" {
		details = row.FirstNonEmpty()
	}
	if details == "" {
		details = "Unknown"
	}

	// Everything after the first "|" describes the pair; otherwise the
	// whole cell does.
	pairText := details
	if i := strings.Index(details, "|"); i >= 0 {
		pairText = strings.TrimSpace(details[i+1:])
	}

	strategy := strategyHint
	if v, ok := row.Get("Strategy"); ok && strings.TrimSpace(v) != "" {
		strategy = strings.ToLower(strings.TrimSpace(v))
	}

	status := ""
	if v, ok := row.Get("Status"); ok {
		status = strings.ToLower(strings.TrimSpace(v))
	}
	exitDate, _ := row.Get("Exit Date")
	exitDate = strings.TrimSpace(exitDate)
	isClosed := closedStatuses[status] || exitDate != ""

	if status == "" {
		if isClosed {
			status = "closed"
		} else {
			status = "open"
		}
	}

	var exitDatePtr *string
	if exitDate != "" {
		exitDatePtr = &exitDate
	}

	cell := func(col string) string { v, _ := row.Get(col); return v }

	return Position{
		ID:              PositionID(row, strategy),
		PositionDetails: details,
		Strategy:        strategy,
		Platform:        row.ResolveOr(FieldPlatform, "Unknown"),
		TokenPair:       NormalizePair(pairText),
		Chain:           row.ResolveOr(FieldChain, "Unknown"),
		Wallet:          row.ResolveOr(FieldWallet, "Unknown"),

		EntryValue: ParseValue(row.Resolve(FieldEntryValue), Currency),
		EntryDate:  row.ResolveOr(FieldEntryDate, ""),
		DaysActive: ParseValue(cell("Days #"), Currency),
		MinRange:   ParseValue(cell("Min Range"), Currency),
		MaxRange:   ParseValue(cell("Max Range"), Currency),

		ExitDate:           exitDatePtr,
		ExitValue:          ParseValue(cell("Exit Value"), Currency),
		ClaimedYieldValue:  ParseValue(cell("Claimed Yield Value"), Currency),
		ClaimedYieldReturn: ParseValue(cell("Claimed Yield Return"), Percentage),
		PriceReturn:        ParseValue(cell("Price Return"), Percentage),
		ImpermanentLoss:    ParseValue(cell("IL"), Percentage),
		TransactionFees:    ParseValue(cell("Transaction Fees"), Percentage),
		Slippage:           ParseValue(cell("Slippage"), Percentage),
		YieldAPR:           ParseValue(cell("Yield APR"), Percentage),
		NetReturn:          ParseValue(cell("Net Return"), Percentage),

		Status:   status,
		IsActive: !isClosed,

		CurrentPrice: nil,
		RangeStatus:  RangeUnknown,
		LastUpdated:  time.Now().Format(time.RFC3339),
	}
}
