package clmfolio

import "testing"

func TestResolve(t *testing.T) {
	row := NewRow(
		[]string{"Position", "Protocol", "Blockchain", "Entry Value (cash in)"},
		[]string{"CLM | SOL + USD", "Orca", "Solana", "$10,000.00"},
	)

	testCases := []struct {
		field string
		want  string
	}{
		{FieldPosition, "CLM | SOL + USD"},
		{FieldPlatform, "Orca"},
		{FieldChain, "Solana"},
		{FieldEntryValue, "$10,000.00"},
		{FieldWallet, ""},
	}
	for _, tc := range testCases {
		if got := row.Resolve(tc.field); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.field, got, tc.want)
		}
	}
}

func TestResolvePrefersFirstAlias(t *testing.T) {
	row := NewRow(
		[]string{"Position Details", "Position"},
		[]string{"primary", "secondary"},
	)
	if got := row.Resolve(FieldPosition); got != "primary" {
		t.Errorf("Resolve(position) = %q, want primary", got)
	}

	// A blank first alias falls through to the next.
	row = NewRow(
		[]string{"Position Details", "Position"},
		[]string{"  ", "secondary"},
	)
	if got := row.Resolve(FieldPosition); got != "secondary" {
		t.Errorf("Resolve(position) = %q, want secondary", got)
	}
}

func TestResolveOr(t *testing.T) {
	row := NewRow([]string{"Chain"}, []string{""})
	if got := row.ResolveOr(FieldChain, "Unknown"); got != "Unknown" {
		t.Errorf("ResolveOr(chain) = %q, want Unknown", got)
	}
	row = NewRow([]string{"Chain"}, []string{" Solana "})
	if got := row.ResolveOr(FieldChain, "Unknown"); got != "Solana" {
		t.Errorf("ResolveOr(chain) = %q, want trimmed Solana", got)
	}
}

func TestRowID(t *testing.T) {
	headers := []string{"Transaction ID", "Amount"}
	a := NewRow(headers, []string{"0xabc", "100"})
	b := NewRow(headers, []string{"0xabc", "100"})
	if RowID(a) != RowID(b) {
		t.Error("identical rows produced different IDs")
	}
	if len(RowID(a)) != 12 {
		t.Errorf("RowID length = %d, want 12", len(RowID(a)))
	}

	// Same cells under reordered headers is a different row identity.
	c := NewRow([]string{"Amount", "Transaction ID"}, []string{"100", "0xabc"})
	if RowID(a) == RowID(c) {
		t.Error("reordered columns produced the same ID")
	}

	// Any cell change produces a different identity.
	d := NewRow(headers, []string{"0xabc", "101"})
	if RowID(a) == RowID(d) {
		t.Error("changed cell produced the same ID")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	row := NewRow([]string{"A", "B", "C"}, []string{"", "  ", "value"})
	if got := row.FirstNonEmpty(); got != "value" {
		t.Errorf("FirstNonEmpty() = %q, want value", got)
	}
	empty := NewRow([]string{"A"}, []string{" "})
	if got := empty.FirstNonEmpty(); got != "" {
		t.Errorf("FirstNonEmpty() = %q, want empty", got)
	}
}
