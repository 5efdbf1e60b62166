package clmfolio

import (
	"strings"
	"testing"
)

func TestDecodeRows(t *testing.T) {
	input := `Position Details, Platform,Chain
"CLM | SOL + USD",Orca,Solana
"DLMM | ETH + USD",Meteora
`
	rows, err := DecodeRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeRows() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("DecodeRows() = %d rows, want 2", len(rows))
	}
	if v, _ := rows[0].Get("Platform"); v != "Orca" {
		t.Errorf("Platform = %q, want Orca (header should be trimmed)", v)
	}
	// Short records read as absent trailing columns.
	if rows[1].HasColumn("Chain") && rows[1].Has("Chain") {
		t.Error("short record grew a Chain value")
	}
}

func TestDecodeRowsEmpty(t *testing.T) {
	rows, err := DecodeRows(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeRows(empty) error: %v", err)
	}
	if rows != nil {
		t.Errorf("DecodeRows(empty) = %v, want nil", rows)
	}
}

func TestClean(t *testing.T) {
	input := `Position Details,Platform
Data format: text,ignored
How to get: copy from the app,ignored
"CLM | SOL + USD",Orca
,blank identifier
"DLMM | ETH + USD",Meteora
`
	rows, err := DecodeRows(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	cleaned := Clean(rows)
	if len(cleaned) != 2 {
		t.Fatalf("Clean() kept %d rows, want 2", len(cleaned))
	}
	if v, _ := cleaned[0].Get("Position Details"); v != "CLM | SOL + USD" {
		t.Errorf("first kept row = %q", v)
	}
}

func TestCleanNoIdentifierColumn(t *testing.T) {
	rows, err := DecodeRows(strings.NewReader("Foo,Bar\n,\nData format,x\n"))
	if err != nil {
		t.Fatal(err)
	}
	// Without a recognizable identifier the cleaner must not guess.
	if got := Clean(rows); len(got) != 2 {
		t.Errorf("Clean() kept %d rows, want all 2 untouched", len(got))
	}
}
