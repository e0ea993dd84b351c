// Package cashflowr implements a local-first personal finance tracker: a
// multi-currency transaction ledger with filtering, currency-aware
// aggregation, a savings goal, and CSV/JSON import/export.
//
// The core functionalities include:
//   - Ledger Management: recording income and expense transactions, each
//     tagged with its own currency, partitioned per account (or the guest
//     partition) on disk.
//   - Currency Conversion: converting amounts between supported currencies
//     through a USD pivot, using a cached snapshot of exchange rates fetched
//     from an external source.
//   - Aggregation: currency-normalized totals, per-category expense
//     breakdowns, and savings-goal progress.
//   - Import/Export: appending transactions from CSV or JSON files with
//     per-record validation, and exporting the full ledger.
//
// All monetary arithmetic is exact, based on decimal numbers; rounding only
// happens for display.
package cashflowr
