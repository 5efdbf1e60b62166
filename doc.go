// Package clmfolio provides the parsing, reconciliation and enrichment
// logic behind a personal DeFi portfolio tracker. It is local-first: all
// state lives in plain JSON files under a single data directory, rebuilt
// from spreadsheet CSV exports on every import.
//
// The core functionalities include:
//   - CSV Ingestion: Discovering and classifying heterogeneous exports
//     (position sheets, wallet transaction dumps, balance snapshots),
//     stripping template decoration rows, and resolving their varying
//     column names onto canonical semantic fields.
//   - Canonical Records: Parsing each row into a Position, Transaction or
//     Balance with a stable content-derived identity, so re-imports of
//     the same data are recognized instead of duplicated.
//   - Incremental Merge: Reconciling parsed records against the persisted
//     long/neutral/closed stores with one-way close transitions, exact-ID
//     transaction dedup, and replace-by-ID balance snapshots.
//   - Price Enrichment: Fetching spot prices (DefiLlama, then CoinGecko)
//     and FX rates to annotate active positions with their current price
//     and range status.
//
// This package serves as the foundational logic for the `clm` command-line
// tool.
package clmfolio
