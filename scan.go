package clmfolio

import (
	"crypto/md5"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CSV file kinds recognized by the scanner.
const (
	kindPositionsLong    = "positions_long"
	kindPositionsNeutral = "positions_neutral"
	kindPositionsCombo   = "positions_combined"
	kindTransactions     = "transactions"
	kindBalances         = "balances"
	kindUnknown          = "unknown"
)

// fileRecord tracks one processed CSV so unchanged files are skipped on the
// next scan.
type fileRecord struct {
	Hash          string `json:"hash"`
	LastProcessed string `json:"last_processed"`
	FileType      string `json:"file_type"`
}

type tracking struct {
	ProcessedFiles map[string]fileRecord `json:"processed_files"`
	LastScan       string                `json:"last_scan"`
}

// ScanResult is the outcome of one pass over the data directory.
type ScanResult struct {
	Batch          Batch
	NewFiles       []string
	UpdatedFiles   []string
	UnchangedFiles []string
}

// fileHash returns the md5 of the file contents, or "" when unreadable.
func fileHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", md5.Sum(data))
}

// classify decides what a CSV file contains, first from its filename, then
// from its headers. Position files without a strategy hint default to
// neutral, matching how hand-dropped exports were historically treated.
func classify(path string, rows []Row) string {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "long"):
		return kindPositionsLong
	case strings.Contains(name, "neutral"):
		return kindPositionsNeutral
	case strings.Contains(name, "transaction") || strings.Contains(name, "tx"):
		return kindTransactions
	case strings.Contains(name, "balance"):
		return kindBalances
	}

	if len(rows) == 0 {
		return kindUnknown
	}
	head := rows[0]
	hasPosition := head.HasColumn("Position Details") || head.HasColumn("Position")
	switch {
	case hasPosition && head.HasColumn("Strategy"):
		return kindPositionsCombo
	case hasPosition:
		return kindPositionsNeutral
	case head.HasColumn("Transaction ID") || head.HasColumn("Tx Hash"):
		return kindTransactions
	case head.HasColumn("Current Balance") || head.HasColumn("Token A Balance"):
		return kindBalances
	}
	return kindUnknown
}

// parseFile parses one classified CSV into a partial batch.
func parseFile(path, kind string) (Batch, error) {
	var batch Batch
	rows, err := ReadRows(path)
	if err != nil {
		return batch, err
	}
	rows = Clean(rows)

	switch kind {
	case kindPositionsLong:
		for _, row := range rows {
			batch.Long = append(batch.Long, ParsePosition(row, StrategyLong))
		}
	case kindPositionsNeutral:
		for _, row := range rows {
			batch.Neutral = append(batch.Neutral, ParsePosition(row, StrategyNeutral))
		}
	case kindPositionsCombo:
		for _, row := range rows {
			pos := ParsePosition(row, kindUnknown)
			switch pos.Strategy {
			case StrategyLong:
				batch.Long = append(batch.Long, pos)
			case StrategyNeutral:
				batch.Neutral = append(batch.Neutral, pos)
			default:
				// Ambiguous strategy is not guessable; the row is
				// reported and dropped rather than misfiled.
				log.Printf("warning: unknown strategy %q in row %q, dropping", pos.Strategy, pos.PositionDetails)
			}
		}
	case kindTransactions:
		for _, row := range rows {
			batch.Transactions = append(batch.Transactions, ParseTransaction(row, ""))
		}
	case kindBalances:
		for _, row := range rows {
			batch.Balances = append(batch.Balances, ParseBalance(row))
		}
	}
	return batch, nil
}

// merge appends another partial batch into b.
func (b *Batch) merge(other Batch) {
	b.Long = append(b.Long, other.Long...)
	b.Neutral = append(b.Neutral, other.Neutral...)
	b.Transactions = append(b.Transactions, other.Transactions...)
	b.Balances = append(b.Balances, other.Balances...)
	b.Errors = append(b.Errors, other.Errors...)
}

// Scan walks the data directory for CSV files, parses the new and changed
// ones into a batch, and records their hashes so the next scan skips them.
// A failure on one file is recorded in the batch errors and never aborts
// the scan.
func (s *Store) Scan() (*ScanResult, error) {
	track, err := readTracking(s.trackingPath())
	if err != nil {
		return nil, err
	}

	result := &ScanResult{}
	walkErr := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// JSON stores live under the data dir but are not inputs.
			if d.Name() == "JSON_out" {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}

		hash := fileHash(path)
		if hash == "" {
			return nil
		}
		prev := track.ProcessedFiles[path]
		if hash == prev.Hash {
			result.UnchangedFiles = append(result.UnchangedFiles, path)
			return nil
		}

		rows, err := ReadRows(path)
		if err != nil {
			result.Batch.Errors = append(result.Batch.Errors, fmt.Sprintf("%s: %v", path, err))
			return nil
		}
		kind := classify(path, rows)
		if kind == kindUnknown {
			log.Printf("warning: cannot classify %s, skipping", path)
			return nil
		}

		partial, err := parseFile(path, kind)
		if err != nil {
			result.Batch.Errors = append(result.Batch.Errors, fmt.Sprintf("%s: %v", path, err))
			return nil
		}
		result.Batch.merge(partial)

		if prev.Hash == "" {
			result.NewFiles = append(result.NewFiles, path)
		} else {
			result.UpdatedFiles = append(result.UpdatedFiles, path)
		}
		track.ProcessedFiles[path] = fileRecord{
			Hash:          hash,
			LastProcessed: time.Now().Format(time.RFC3339),
			FileType:      kind,
		}
		return nil
	})
	if walkErr != nil && !os.IsNotExist(walkErr) {
		return nil, fmt.Errorf("cannot scan %q: %w", s.dir, walkErr)
	}

	track.LastScan = time.Now().Format(time.RFC3339)
	if err := writeTracking(s.trackingPath(), track); err != nil {
		return nil, err
	}
	return result, nil
}
