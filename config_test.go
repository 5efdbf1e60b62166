package clmfolio

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. Stand-in for t.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") with no file: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want data", cfg.DataDir)
	}
	if cfg.DefiLlamaIDs["SOL"] != "coingecko:solana" {
		t.Errorf("built-in DefiLlama IDs missing: %v", cfg.DefiLlamaIDs["SOL"])
	}
}

func TestLoadConfigExplicitMissingFails(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() with an explicit missing path succeeded")
	}
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clmfolio.yaml")
	content := `
data_dir: /srv/clm
defillama_ids:
  BONK: coingecko:bonk
wallets:
  - address: DKGQ3gqf
    chain: solana
    strategy: long
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(): %v", err)
	}
	if cfg.DataDir != "/srv/clm" {
		t.Errorf("DataDir = %q, want /srv/clm", cfg.DataDir)
	}
	if cfg.DefiLlamaIDs["BONK"] != "coingecko:bonk" {
		t.Errorf("BONK id = %q, want merged entry", cfg.DefiLlamaIDs["BONK"])
	}
	if cfg.DefiLlamaIDs["SOL"] != "coingecko:solana" {
		t.Error("merging wiped the built-in IDs")
	}
	if len(cfg.Wallets) != 1 || cfg.Wallets[0].Address != "DKGQ3gqf" {
		t.Errorf("Wallets = %+v", cfg.Wallets)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CLMFOLIO_DATA_DIR", "/env/dir")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/env/dir" {
		t.Errorf("DataDir = %q, want env override", cfg.DataDir)
	}
}

func TestStrategyWallets(t *testing.T) {
	cfg := &Config{Wallets: []WalletMapping{
		{Address: "a", Chain: "solana", Strategy: "long"},
		{Address: "b", Chain: "solana", Strategy: "neutral"},
		{Address: "c", Chain: "base", Strategy: "long"},
	}}
	m := cfg.StrategyWallets()
	if m["solana"]["long"] != "a" || m["solana"]["neutral"] != "b" || m["base"]["long"] != "c" {
		t.Errorf("StrategyWallets() = %v", m)
	}
}
