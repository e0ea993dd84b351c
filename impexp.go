package cashflowr

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// This file contains the user-facing import/export formats (CSV and JSON).
// Both imports support partial success: structurally valid files with some
// bad rows append the good rows and report the bad ones. Only a malformed
// container aborts the whole operation.

// ParseError reports a malformed CSV or JSON structure. It aborts the import
// operation entirely, unlike per-record validation failures.
type ParseError struct {
	Format string // "csv" or "json"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s ledger: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ImportResult reports the outcome of an import: appended records and the
// per-record failures of the skipped ones.
type ImportResult struct {
	Added  int
	Errors []error
}

// Skipped returns the number of records rejected.
func (r ImportResult) Skipped() int { return len(r.Errors) }

// csvHeader is the required CSV column set, in order. The Currency column is
// optional on import and always present on export.
var csvHeader = []string{"Date", "Description", "Type", "Category", "Amount"}

// importDateFormats are the date layouts accepted by imports, tried in order.
var importDateFormats = []string{
	time.RFC3339,
	"2006-01-02",
	"1/2/2006",
}

func parseImportDate(s string) (time.Time, error) {
	for _, layout := range importDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ImportCSV appends transactions from r into the ledger. Rows missing the
// Currency column get defaultCurrency. Invalid rows are skipped and
// reported; a malformed header or unreadable CSV structure aborts with a
// *ParseError and leaves the ledger untouched.
func ImportCSV(l *Ledger, r io.Reader, defaultCurrency string) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row arity is validated per record

	header, err := cr.Read()
	if err != nil {
		return ImportResult{}, &ParseError{Format: "csv", Err: fmt.Errorf("missing header row: %w", err)}
	}
	if len(header) < len(csvHeader) {
		return ImportResult{}, &ParseError{Format: "csv", Err: fmt.Errorf("expected header %v, got %v", csvHeader, header)}
	}
	for i, want := range csvHeader {
		if header[i] != want {
			return ImportResult{}, &ParseError{Format: "csv", Err: fmt.Errorf("expected header %v, got %v", csvHeader, header)}
		}
	}
	hasCurrency := len(header) > len(csvHeader) && header[len(csvHeader)] == "Currency"

	wantFields := len(csvHeader)
	if hasCurrency {
		wantFields++
	}

	var txs []Transaction
	var rowErrs []error
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a structurally broken row (stray quote) is a record failure,
			// not a reason to drop the rows already parsed
			rowErrs = append(rowErrs, fmt.Errorf("row %d: %w", row, err))
			continue
		}
		if len(record) != wantFields {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: expected %d columns, got %d", row, wantFields, len(record)))
			continue
		}

		date, err := parseImportDate(record[0])
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: %w", row, err))
			continue
		}
		amount, err := decimal.NewFromString(record[4])
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: invalid amount %q", row, record[4]))
			continue
		}
		currency := defaultCurrency
		if hasCurrency && record[5] != "" {
			currency = record[5]
		}
		txs = append(txs, Transaction{
			Date:        date,
			Description: record[1],
			Type:        Type(record[2]),
			Category:    record[3],
			Amount:      amount,
			Currency:    currency,
		})
	}

	bulk := l.BulkAppend(txs)
	return ImportResult{Added: bulk.Added, Errors: append(rowErrs, bulk.Errors...)}, nil
}

// jsonRecord is the transaction shape of the JSON ledger format.
type jsonRecord struct {
	ID       int64           `json:"id,omitempty"`
	Desc     string          `json:"desc"`
	Type     string          `json:"type"`
	Category string          `json:"category,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
	Date     string          `json:"date"`
}

// jsonLedger is the container shape of the JSON ledger format. Everything
// but transactions is optional.
type jsonLedger struct {
	Transactions    []jsonRecord               `json:"transactions"`
	SavingsGoal     decimal.Decimal            `json:"savingsGoal,omitempty"`
	DefaultCurrency string                     `json:"defaultCurrency,omitempty"`
	ExchangeRates   map[string]decimal.Decimal `json:"exchangeRates,omitempty"`
	LastRatesUpdate time.Time                  `json:"lastRatesUpdate,omitzero"`
}

// JSONImport is the outcome of a JSON import: the per-record result plus the
// optional settings the file carried, for the caller to apply.
type JSONImport struct {
	ImportResult
	DefaultCurrency string        // "" when the file carried none
	Rates           *RateSnapshot // nil when the file carried none
	GoalImported    bool
}

// ImportJSON appends transactions from r into the ledger. A savings goal in
// the file overwrites the ledger's goal; default currency and exchange rates
// are returned for the session to apply. A malformed JSON container or a
// missing transactions array aborts with a *ParseError.
func ImportJSON(l *Ledger, r io.Reader) (JSONImport, error) {
	var payload jsonLedger
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return JSONImport{}, &ParseError{Format: "json", Err: err}
	}
	if payload.Transactions == nil {
		return JSONImport{}, &ParseError{Format: "json", Err: fmt.Errorf("missing transactions array")}
	}

	// records without a currency inherit the file's default, not ours
	fileCurrency := payload.DefaultCurrency
	if fileCurrency == "" {
		fileCurrency = DefaultCurrency
	}

	var txs []Transaction
	var recErrs []error
	for i, rec := range payload.Transactions {
		date, err := parseImportDate(rec.Date)
		if err != nil {
			recErrs = append(recErrs, fmt.Errorf("transaction %d: %w", i+1, err))
			continue
		}
		currency := rec.Currency
		if currency == "" {
			currency = fileCurrency
		}
		txs = append(txs, Transaction{
			Description: rec.Desc,
			Type:        Type(rec.Type),
			Category:    rec.Category,
			Amount:      rec.Amount,
			Currency:    currency,
			Date:        date,
		})
	}
	bulk := l.BulkAppend(txs)

	out := JSONImport{
		ImportResult:    ImportResult{Added: bulk.Added, Errors: append(recErrs, bulk.Errors...)},
		DefaultCurrency: payload.DefaultCurrency,
	}
	if payload.SavingsGoal.IsPositive() {
		if err := l.SetGoal(payload.SavingsGoal, fileCurrency); err == nil {
			out.GoalImported = true
		}
	}
	if len(payload.ExchangeRates) > 0 {
		out.Rates = &RateSnapshot{Rates: payload.ExchangeRates, FetchedAt: payload.LastRatesUpdate}
	}
	return out, nil
}

// ExportCSV writes the ledger's transactions as CSV. The Currency column is
// always included.
func ExportCSV(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, csvHeader...), "Currency")); err != nil {
		return err
	}
	for _, tx := range l.Transactions() {
		record := []string{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			string(tx.Type),
			tx.Category,
			tx.Amount.String(),
			tx.Currency,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes the full ledger in the JSON ledger format, including the
// savings goal, the default currency and the cached rates.
func ExportJSON(w io.Writer, l *Ledger, defaultCurrency string, snap *RateSnapshot) error {
	records := make([]jsonRecord, 0, l.Len())
	for _, tx := range l.Transactions() {
		records = append(records, jsonRecord{
			ID:       tx.ID,
			Desc:     tx.Description,
			Type:     string(tx.Type),
			Category: tx.Category,
			Amount:   tx.Amount,
			Currency: tx.Currency,
			Date:     tx.Date.Format(time.RFC3339),
		})
	}

	var jw jsonObjectWriter
	jw.Append("appName", "Cashflowr")
	jw.Append("version", "1.0")
	jw.Append("exportDate", time.Now().Format(time.RFC3339))
	jw.Append("transactions", records)
	if goal := l.Goal(); goal.IsSet() {
		jw.Append("savingsGoal", goal.Amount)
	}
	jw.Append("totalTransactions", l.Len())
	jw.Append("defaultCurrency", defaultCurrency)
	if snap != nil {
		jw.Append("exchangeRates", snap.Rates)
		jw.Append("lastRatesUpdate", snap.FetchedAt.Format(time.RFC3339))
	}

	data, err := json.Marshal(&jw)
	if err != nil {
		return err
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return err
	}
	indented.WriteByte('\n')
	_, err = w.Write(indented.Bytes())
	return err
}
