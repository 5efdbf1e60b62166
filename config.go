package clmfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// config path is given.
const DefaultConfigFile = "clmfolio.yaml"

// WalletMapping ties a known wallet address to its chain and the strategy
// it trades. Wallet inference maps guessed strategies back to addresses
// through these.
type WalletMapping struct {
	Address  string `yaml:"address"`
	Chain    string `yaml:"chain"`
	Strategy string `yaml:"strategy"`
}

// Config is the optional YAML configuration. Every field has a usable
// default; the file only overrides.
type Config struct {
	DataDir string `yaml:"data_dir"`

	// Token symbol to price-source ID maps. Entries here extend or
	// override the built-in maps.
	DefiLlamaIDs map[string]string `yaml:"defillama_ids"`
	CoinGeckoIDs map[string]string `yaml:"coingecko_ids"`

	Wallets []WalletMapping `yaml:"wallets"`
}

// builtinDefiLlamaIDs covers the tokens the tracked positions actually use.
// JLP has no CoinGecko listing usable through DefiLlama, so it is priced by
// its Solana mint address.
var builtinDefiLlamaIDs = map[string]string{
	"SOL":   "coingecko:solana",
	"ORCA":  "coingecko:orca",
	"RAY":   "coingecko:raydium",
	"JLP":   "solana:27G8MtK7VtTcCHkpASjSDdkWWYfoqT6ggEuKidVJidD4",
	"USDC":  "coingecko:usd-coin",
	"ETH":   "coingecko:ethereum",
	"BTC":   "coingecko:bitcoin",
	"SUI":   "coingecko:sui",
	"WETH":  "coingecko:ethereum",
	"WBTC":  "coingecko:wrapped-bitcoin",
	"CBBTC": "coingecko:coinbase-wrapped-btc",
	"WHETH": "coingecko:ethereum",
	"USDT":  "coingecko:tether",
}

var builtinCoinGeckoIDs = map[string]string{
	"SOL":  "solana",
	"USDC": "usd-coin",
	"ETH":  "ethereum",
	"BTC":  "bitcoin",
	"SUI":  "sui",
	"ORCA": "orca",
	"RAY":  "raydium",
	"JLP":  "jupiter-exchange-solana",
	"WETH": "ethereum",
	"USDT": "tether",
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      "data",
		DefiLlamaIDs: cloneMap(builtinDefiLlamaIDs),
		CoinGeckoIDs: cloneMap(builtinCoinGeckoIDs),
	}
}

// LoadConfig reads the YAML config at path, merged over the defaults.
// A missing file (or an empty path with no clmfolio.yaml around) is not an
// error: the defaults apply. The CLMFOLIO_DATA_DIR environment variable
// overrides the data directory last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("cannot read config %q: %w", path, err)
	default:
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("cannot parse config %q: %w", path, err)
		}
		if file.DataDir != "" {
			cfg.DataDir = file.DataDir
		}
		for token, id := range file.DefiLlamaIDs {
			cfg.DefiLlamaIDs[token] = id
		}
		for token, id := range file.CoinGeckoIDs {
			cfg.CoinGeckoIDs[token] = id
		}
		cfg.Wallets = file.Wallets
	}

	if dir := os.Getenv("CLMFOLIO_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// StrategyWallets indexes the configured wallets as chain → strategy →
// address for the inference heuristics.
func (c *Config) StrategyWallets() map[string]map[string]string {
	m := make(map[string]map[string]string)
	for _, w := range c.Wallets {
		if m[w.Chain] == nil {
			m[w.Chain] = make(map[string]string)
		}
		m[w.Chain][w.Strategy] = w.Address
	}
	return m
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
