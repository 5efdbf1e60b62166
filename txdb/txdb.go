// Package txdb maintains a queryable SQLite index of the imported
// transactions. The JSON store stays the source of truth; the index is
// rebuilt from it on demand and only exists so large transaction sets
// can be filtered without loading everything.
package txdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clmfolio"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository wraps the SQLite transaction index.
type Repository struct {
	db *sql.DB
}

// Open opens (creating if necessary) the index database at path.
func Open(path string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("cannot create directory for %q: %w", path, err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot ping database %q: %w", path, err)
	}
	// The driver benefits from a single connection; SQLite serializes
	// writers anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	r := &Repository{db: db}
	if err := r.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize schema: %w", err)
	}
	return r, nil
}

func (r *Repository) initSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		tx_hash TEXT NOT NULL DEFAULT '',
		wallet TEXT NOT NULL DEFAULT '',
		chain TEXT NOT NULL DEFAULT '',
		platform TEXT NOT NULL DEFAULT '',
		timestamp TEXT NOT NULL DEFAULT '',
		gas_fees REAL DEFAULT NULL,
		block_number TEXT NOT NULL DEFAULT '',
		contract_address TEXT NOT NULL DEFAULT '',
		imported_at TEXT NOT NULL DEFAULT '',
		raw_data TEXT NOT NULL DEFAULT '{}'
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_wallet ON transactions (wallet);
	CREATE INDEX IF NOT EXISTS idx_transactions_chain_timestamp ON transactions (chain, timestamp);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("cannot execute schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Sync inserts the given transactions, skipping IDs already indexed.
// It returns how many rows were actually inserted.
func (r *Repository) Sync(ctx context.Context, txs []clmfolio.Transaction) (int, error) {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	stmt, err := dbtx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions
		(id, tx_hash, wallet, chain, platform, timestamp, gas_fees,
		 block_number, contract_address, imported_at, raw_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, tx := range txs {
		raw, err := json.Marshal(tx.RawData)
		if err != nil {
			return inserted, fmt.Errorf("cannot encode raw data for %q: %w", tx.ID, err)
		}
		res, err := stmt.ExecContext(ctx,
			tx.ID, tx.TxHash, tx.Wallet, tx.Chain, tx.Platform,
			tx.Timestamp, tx.GasFees, tx.BlockNumber, tx.ContractAddress,
			tx.ImportedAt, string(raw))
		if err != nil {
			return inserted, fmt.Errorf("cannot insert transaction %q: %w", tx.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	if err := dbtx.Commit(); err != nil {
		return inserted, fmt.Errorf("cannot commit: %w", err)
	}
	return inserted, nil
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Wallet string
	Chain  string
	Limit  int
}

// List returns indexed transactions matching the filter, newest first.
func (r *Repository) List(ctx context.Context, f Filter) ([]clmfolio.Transaction, error) {
	query := `
		SELECT id, tx_hash, wallet, chain, platform, timestamp, gas_fees,
		       block_number, contract_address, imported_at, raw_data
		FROM transactions WHERE 1=1`
	var args []any
	if f.Wallet != "" {
		query += " AND wallet = ?"
		args = append(args, f.Wallet)
	}
	if f.Chain != "" {
		query += " AND chain = ?"
		args = append(args, f.Chain)
	}
	query += " ORDER BY timestamp DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("cannot query transactions: %w", err)
	}
	defer rows.Close()

	var txs []clmfolio.Transaction
	for rows.Next() {
		var tx clmfolio.Transaction
		var gas sql.NullFloat64
		var raw string
		if err := rows.Scan(&tx.ID, &tx.TxHash, &tx.Wallet, &tx.Chain,
			&tx.Platform, &tx.Timestamp, &gas, &tx.BlockNumber,
			&tx.ContractAddress, &tx.ImportedAt, &raw); err != nil {
			return nil, fmt.Errorf("cannot scan transaction: %w", err)
		}
		if gas.Valid {
			tx.GasFees = &gas.Float64
		}
		if err := json.Unmarshal([]byte(raw), &tx.RawData); err != nil {
			return nil, fmt.Errorf("cannot decode raw data for %q: %w", tx.ID, err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// Summary aggregates the indexed transactions.
type Summary struct {
	Total      int
	ByChain    map[string]int
	ByPlatform map[string]int
	Earliest   string
	Latest     string
}

// Summarize computes totals, per-chain and per-platform counts, and the
// timestamp span of the index.
func (r *Repository) Summarize(ctx context.Context) (*Summary, error) {
	s := &Summary{ByChain: make(map[string]int), ByPlatform: make(map[string]int)}

	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(MIN(NULLIF(timestamp, '')), ''),
		       COALESCE(MAX(NULLIF(timestamp, '')), '')
		FROM transactions`)
	if err := row.Scan(&s.Total, &s.Earliest, &s.Latest); err != nil {
		return nil, fmt.Errorf("cannot summarize transactions: %w", err)
	}

	for col, dest := range map[string]map[string]int{
		"chain":    s.ByChain,
		"platform": s.ByPlatform,
	} {
		rows, err := r.db.QueryContext(ctx,
			fmt.Sprintf("SELECT %s, COUNT(*) FROM transactions GROUP BY %s", col, col))
		if err != nil {
			return nil, fmt.Errorf("cannot group by %s: %w", col, err)
		}
		for rows.Next() {
			var key string
			var count int
			if err := rows.Scan(&key, &count); err != nil {
				rows.Close()
				return nil, fmt.Errorf("cannot scan %s group: %w", col, err)
			}
			dest[key] = count
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return s, nil
}
