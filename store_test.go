package clmfolio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFilesIsEmpty(t *testing.T) {
	s := NewStore(t.TempDir())
	p, err := s.Load()
	if err != nil {
		t.Fatalf("Load() on empty dir: %v", err)
	}
	if len(p.Long)+len(p.Neutral)+len(p.Closed)+len(p.Transactions)+len(p.Balances) != 0 {
		t.Errorf("Load() on empty dir = %+v, want all empty", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	exit := "2024-03-01"
	want := &Portfolio{
		Long:    []Position{{ID: "l1", Strategy: StrategyLong, IsActive: true, EntryValue: floatPtr(5000)}},
		Neutral: []Position{{ID: "n1", Strategy: StrategyNeutral, IsActive: true}},
		Closed:  []Position{{ID: "c1", IsActive: false, ExitDate: &exit}},
		Transactions: []Transaction{{
			ID: "t1", TxHash: "0xabc", RawData: map[string]string{"Amount": "1"},
		}},
		Balances: []Balance{{ID: "b1", CurrentBalance: floatPtr(42)}},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if len(got.Long) != 1 || got.Long[0].ID != "l1" || *got.Long[0].EntryValue != 5000 {
		t.Errorf("Long round trip = %+v", got.Long)
	}
	if len(got.Closed) != 1 || got.Closed[0].ExitDate == nil || *got.Closed[0].ExitDate != exit {
		t.Errorf("Closed round trip = %+v", got.Closed)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].RawData["Amount"] != "1" {
		t.Errorf("Transactions round trip = %+v", got.Transactions)
	}
	if len(got.Balances) != 1 || *got.Balances[0].CurrentBalance != 42 {
		t.Errorf("Balances round trip = %+v", got.Balances)
	}
}

func TestSaveWritesEmptyArrays(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.Save(&Portfolio{}); err != nil {
		t.Fatalf("Save(empty): %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "JSON_out", "clm_long.json"))
	if err != nil {
		t.Fatalf("reading store file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty store persisted as %q, want []", data)
	}
}

func TestSaveTransactionsOnly(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.SaveTransactions([]Transaction{{ID: "t1"}}); err != nil {
		t.Fatalf("SaveTransactions(): %v", err)
	}
	p, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Transactions) != 1 {
		t.Errorf("loaded %d transactions, want 1", len(p.Transactions))
	}
	// Position stores stay absent.
	if _, err := os.Stat(filepath.Join(dir, "JSON_out", "clm_long.json")); !os.IsNotExist(err) {
		t.Error("SaveTransactions touched the position stores")
	}
}
