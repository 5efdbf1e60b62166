package clmfolio

import "log"

// Batch is the parsed output of one import scan, before reconciliation.
// Positions are grouped by the store their strategy targets and may contain
// both active and closed records; Merge routes them.
type Batch struct {
	Long         []Position
	Neutral      []Position
	Transactions []Transaction
	Balances     []Balance

	// Errors collects per-file failures. The scan never aborts on one bad
	// file; the caller decides what to do with the report.
	Errors []string
}

// MergeStats reports what one merge changed.
type MergeStats struct {
	NewPositions     int
	UpdatedPositions int
	MovedToClosed    int
	NewTransactions  int
	DuplicateTx      int
	NewBalances      int
	UpdatedBalances  int
}

// Merge reconciles a parsed batch against the portfolio state, in memory.
// Rules, per incoming position keyed by ID:
//
//   - inactive: removed from all three stores, appended to closed. Closing
//     is terminal; there is no reopen path.
//   - active and already in its target store: replaced, carrying forward
//     current_price and range_status from the stored record (the parser
//     cannot recompute enrichment).
//   - active and unseen: appended as new.
//
// Transactions append only when their ID is unseen; duplicates are counted
// and discarded. Balances replace in place by ID. The caller persists the
// result; a failure partway through leaves whatever was already merged.
func (p *Portfolio) Merge(b *Batch) MergeStats {
	var stats MergeStats

	existingLong := indexByID(p.Long)
	existingNeutral := indexByID(p.Neutral)
	existingClosed := indexByID(p.Closed)

	merge := func(strategy string, incoming []Position) {
		for _, pos := range incoming {
			if !pos.IsActive {
				if _, seen := existingClosed[pos.ID]; !seen {
					stats.MovedToClosed++
					log.Printf("moving to closed: %s", pos.PositionDetails)
				}
				p.Long = removeID(p.Long, pos.ID)
				p.Neutral = removeID(p.Neutral, pos.ID)
				p.Closed = removeID(p.Closed, pos.ID)
				p.Closed = append(p.Closed, pos)
				continue
			}

			// Closing is terminal: a closed ID showing up active again
			// stays closed.
			if _, closed := existingClosed[pos.ID]; closed {
				continue
			}

			existing := existingLong
			if strategy == StrategyNeutral {
				existing = existingNeutral
			}
			if prev, seen := existing[pos.ID]; seen {
				pos.CurrentPrice = prev.CurrentPrice
				pos.RangeStatus = prev.RangeStatus
				if pos.RangeStatus == "" {
					pos.RangeStatus = RangeUnknown
				}
				stats.UpdatedPositions++
			} else {
				stats.NewPositions++
				log.Printf("new %s position: %s", strategy, pos.PositionDetails)
			}

			if strategy == StrategyLong {
				p.Long = removeID(p.Long, pos.ID)
				p.Long = append(p.Long, pos)
			} else {
				p.Neutral = removeID(p.Neutral, pos.ID)
				p.Neutral = append(p.Neutral, pos)
			}
		}
	}
	merge(StrategyLong, b.Long)
	merge(StrategyNeutral, b.Neutral)

	seenTx := make(map[string]bool, len(p.Transactions))
	for _, tx := range p.Transactions {
		seenTx[tx.ID] = true
	}
	for _, tx := range b.Transactions {
		if seenTx[tx.ID] {
			stats.DuplicateTx++
			continue
		}
		seenTx[tx.ID] = true
		p.Transactions = append(p.Transactions, tx)
		stats.NewTransactions++
	}

	for _, bal := range b.Balances {
		replaced := false
		for i := range p.Balances {
			if p.Balances[i].ID == bal.ID {
				p.Balances[i] = bal
				stats.UpdatedBalances++
				replaced = true
				break
			}
		}
		if !replaced {
			p.Balances = append(p.Balances, bal)
			stats.NewBalances++
		}
	}

	return stats
}

func indexByID(positions []Position) map[string]Position {
	m := make(map[string]Position, len(positions))
	for _, pos := range positions {
		m[pos.ID] = pos
	}
	return m
}

func removeID(positions []Position, id string) []Position {
	kept := positions[:0]
	for _, pos := range positions {
		if pos.ID != id {
			kept = append(kept, pos)
		}
	}
	return kept
}
