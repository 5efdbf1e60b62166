package clmfolio

import "testing"

func activePos(id, strategy string) Position {
	return Position{ID: id, Strategy: strategy, IsActive: true, Status: "open", RangeStatus: RangeUnknown}
}

func closedPos(id, strategy string) Position {
	return Position{ID: id, Strategy: strategy, IsActive: false, Status: "closed", RangeStatus: RangeUnknown}
}

func TestMergeNewPositions(t *testing.T) {
	p := &Portfolio{}
	stats := p.Merge(&Batch{
		Long:    []Position{activePos("l1", StrategyLong)},
		Neutral: []Position{activePos("n1", StrategyNeutral)},
	})

	if stats.NewPositions != 2 {
		t.Errorf("NewPositions = %d, want 2", stats.NewPositions)
	}
	if len(p.Long) != 1 || len(p.Neutral) != 1 || len(p.Closed) != 0 {
		t.Errorf("stores = %d/%d/%d, want 1/1/0", len(p.Long), len(p.Neutral), len(p.Closed))
	}
}

func TestMergeIdempotence(t *testing.T) {
	p := &Portfolio{}
	batch := &Batch{Neutral: []Position{activePos("n1", StrategyNeutral)}}

	p.Merge(batch)
	stats := p.Merge(batch)

	if len(p.Neutral) != 1 {
		t.Fatalf("re-merging the same position left %d records, want 1", len(p.Neutral))
	}
	if stats.NewPositions != 0 || stats.UpdatedPositions != 1 {
		t.Errorf("stats = %+v, want 0 new, 1 updated", stats)
	}
}

func TestMergeCarriesEnrichmentForward(t *testing.T) {
	p := &Portfolio{}
	p.Merge(&Batch{Neutral: []Position{activePos("n1", StrategyNeutral)}})

	// Enrichment annotates the stored record.
	p.Neutral[0].CurrentPrice = floatPtr(98.5)
	p.Neutral[0].RangeStatus = RangeIn

	// A re-import parses the row fresh, with enrichment reset.
	p.Merge(&Batch{Neutral: []Position{activePos("n1", StrategyNeutral)}})

	got := p.Neutral[0]
	if got.CurrentPrice == nil || *got.CurrentPrice != 98.5 {
		t.Errorf("CurrentPrice = %v, want carried-forward 98.5", got.CurrentPrice)
	}
	if got.RangeStatus != RangeIn {
		t.Errorf("RangeStatus = %q, want carried-forward in_range", got.RangeStatus)
	}
}

func TestMergeMovesToClosed(t *testing.T) {
	p := &Portfolio{}
	p.Merge(&Batch{Neutral: []Position{activePos("n1", StrategyNeutral)}})

	stats := p.Merge(&Batch{Neutral: []Position{closedPos("n1", StrategyNeutral)}})
	if stats.MovedToClosed != 1 {
		t.Errorf("MovedToClosed = %d, want 1", stats.MovedToClosed)
	}
	if len(p.Neutral) != 0 || len(p.Closed) != 1 {
		t.Errorf("stores = neutral %d, closed %d; want 0, 1", len(p.Neutral), len(p.Closed))
	}
}

func TestMergeClosedIsTerminal(t *testing.T) {
	p := &Portfolio{}
	p.Merge(&Batch{Neutral: []Position{closedPos("n1", StrategyNeutral)}})

	// The same ID arriving active again must not resurrect.
	stats := p.Merge(&Batch{Neutral: []Position{activePos("n1", StrategyNeutral)}})
	if stats.NewPositions != 0 {
		t.Errorf("NewPositions = %d, want 0", stats.NewPositions)
	}
	if len(p.Neutral) != 0 {
		t.Errorf("closed position resurrected into neutral (%d records)", len(p.Neutral))
	}
	if len(p.Closed) != 1 {
		t.Errorf("closed store has %d records, want 1", len(p.Closed))
	}
}

func TestMergeNeverDuplicatesAcrossStores(t *testing.T) {
	p := &Portfolio{}
	p.Merge(&Batch{Long: []Position{activePos("x1", StrategyLong)}})
	p.Merge(&Batch{Long: []Position{closedPos("x1", StrategyLong)}})
	p.Merge(&Batch{Long: []Position{closedPos("x1", StrategyLong)}})

	seen := 0
	for _, store := range [][]Position{p.Long, p.Neutral, p.Closed} {
		for _, pos := range store {
			if pos.ID == "x1" {
				seen++
			}
		}
	}
	if seen != 1 {
		t.Errorf("position appears %d times across stores, want exactly 1", seen)
	}
}

func TestMergeTransactionDedup(t *testing.T) {
	p := &Portfolio{}
	txs := []Transaction{{ID: "t1"}, {ID: "t2"}, {ID: "t1"}}

	stats := p.Merge(&Batch{Transactions: txs})
	if stats.NewTransactions != 2 || stats.DuplicateTx != 1 {
		t.Errorf("stats = %+v, want 2 new, 1 duplicate", stats)
	}

	stats = p.Merge(&Batch{Transactions: []Transaction{{ID: "t2"}}})
	if stats.NewTransactions != 0 || stats.DuplicateTx != 1 {
		t.Errorf("re-import stats = %+v, want 0 new, 1 duplicate", stats)
	}
	if len(p.Transactions) != 2 {
		t.Errorf("persisted %d transactions, want 2", len(p.Transactions))
	}
}

func TestMergeBalancesReplaceByID(t *testing.T) {
	p := &Portfolio{}
	p.Merge(&Batch{Balances: []Balance{{ID: "b1", CurrentBalance: floatPtr(100)}}})

	stats := p.Merge(&Batch{Balances: []Balance{
		{ID: "b1", CurrentBalance: floatPtr(250)},
		{ID: "b2", CurrentBalance: floatPtr(10)},
	}})
	if stats.NewBalances != 1 || stats.UpdatedBalances != 1 {
		t.Errorf("stats = %+v, want 1 new, 1 updated", stats)
	}
	if len(p.Balances) != 2 {
		t.Fatalf("persisted %d balances, want 2", len(p.Balances))
	}
	if *p.Balances[0].CurrentBalance != 250 {
		t.Errorf("balance b1 = %v, want replaced value 250", *p.Balances[0].CurrentBalance)
	}
}
