package clmfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is the file-backed repository for the tracker's persisted state.
// Everything lives under one data directory: CSV drops at the top level,
// JSON stores under JSON_out/. Files are read in full and rewritten in
// full; there is no locking, so concurrent invocations against the same
// directory are unsafe by design.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Dir returns the data directory the store is rooted at.
func (s *Store) Dir() string { return s.dir }

func (s *Store) outDir() string { return filepath.Join(s.dir, "JSON_out") }

func (s *Store) longPath() string         { return filepath.Join(s.outDir(), "clm_long.json") }
func (s *Store) neutralPath() string      { return filepath.Join(s.outDir(), "clm_neutral.json") }
func (s *Store) closedPath() string       { return filepath.Join(s.outDir(), "clm_closed.json") }
func (s *Store) transactionsPath() string { return filepath.Join(s.outDir(), "clm_transactions.json") }
func (s *Store) balancesPath() string     { return filepath.Join(s.outDir(), "clm_balances.json") }
func (s *Store) trackingPath() string     { return filepath.Join(s.outDir(), "clm_csv_tracking.json") }

// Portfolio is the full in-memory state mirrored by the JSON stores.
type Portfolio struct {
	Long         []Position
	Neutral      []Position
	Closed       []Position
	Transactions []Transaction
	Balances     []Balance
}

// ActivePositions returns long and neutral positions combined.
func (p *Portfolio) ActivePositions() []Position {
	all := make([]Position, 0, len(p.Long)+len(p.Neutral))
	all = append(all, p.Long...)
	all = append(all, p.Neutral...)
	return all
}

// ByStrategy returns the store matching the strategy, or nil for anything
// but long, neutral and closed.
func (p *Portfolio) ByStrategy(strategy string) []Position {
	switch strategy {
	case StrategyLong:
		return p.Long
	case StrategyNeutral:
		return p.Neutral
	case "closed":
		return p.Closed
	}
	return nil
}

// readArray loads a JSON array file. A missing file is an empty store, not
// an error.
func readArray[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", path, err)
	}
	return items, nil
}

// writeArray rewrites a JSON array file in full, 2-space indented, creating
// the directory on demand. A nil slice is persisted as [].
func writeArray[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create directory for %q: %w", path, err)
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return nil
}

// Load reads the whole portfolio state. Missing files load as empty lists.
func (s *Store) Load() (*Portfolio, error) {
	p := &Portfolio{}
	var err error
	if p.Long, err = readArray[Position](s.longPath()); err != nil {
		return nil, err
	}
	if p.Neutral, err = readArray[Position](s.neutralPath()); err != nil {
		return nil, err
	}
	if p.Closed, err = readArray[Position](s.closedPath()); err != nil {
		return nil, err
	}
	if p.Transactions, err = readArray[Transaction](s.transactionsPath()); err != nil {
		return nil, err
	}
	if p.Balances, err = readArray[Balance](s.balancesPath()); err != nil {
		return nil, err
	}
	return p, nil
}

// Save rewrites every store file from the portfolio state.
func (s *Store) Save(p *Portfolio) error {
	if err := writeArray(s.longPath(), p.Long); err != nil {
		return err
	}
	if err := writeArray(s.neutralPath(), p.Neutral); err != nil {
		return err
	}
	if err := writeArray(s.closedPath(), p.Closed); err != nil {
		return err
	}
	if err := writeArray(s.transactionsPath(), p.Transactions); err != nil {
		return err
	}
	return writeArray(s.balancesPath(), p.Balances)
}

// SavePositions rewrites only the three position stores. The refresh cycle
// uses it to persist enrichment without touching transactions.
func (s *Store) SavePositions(p *Portfolio) error {
	if err := writeArray(s.longPath(), p.Long); err != nil {
		return err
	}
	if err := writeArray(s.neutralPath(), p.Neutral); err != nil {
		return err
	}
	return writeArray(s.closedPath(), p.Closed)
}

// SaveTransactions rewrites only the transaction store. Used by wallet
// inference to backfill wallets in place.
func (s *Store) SaveTransactions(txs []Transaction) error {
	return writeArray(s.transactionsPath(), txs)
}
