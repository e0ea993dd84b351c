package cashflowr

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger is persisted as JSONL: one JSON object per line, identified by
// its "command" property. Transactions use their flow type as command
// ("income", "expense"); the savings goal is a single "goal" line.

type lineCommand string

const (
	cmdIncome  lineCommand = lineCommand(Income)
	cmdExpense lineCommand = lineCommand(Expense)
	cmdGoal    lineCommand = "goal"
)

// txLine is a specialized struct for decoding transaction lines.
type txLine struct {
	Command     lineCommand     `json:"command"`
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
}

func (t txLine) Transaction() Transaction {
	return Transaction{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        Type(t.Command),
		Category:    t.Category,
		Currency:    t.Currency,
		Date:        t.Date,
	}
}

// goalLine is a specialized struct for decoding the goal line.
type goalLine struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// EncodeLedger writes the ledger in its canonical JSONL form: the goal line
// first if set, then every transaction in insertion order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	if goal := l.Goal(); goal.IsSet() {
		var jw jsonObjectWriter
		jw.Append("command", cmdGoal)
		jw.Append("amount", goal.Amount)
		jw.Append("currency", goal.Currency)
		if err := writeLine(w, &jw); err != nil {
			return err
		}
	}
	for _, tx := range l.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	var jw jsonObjectWriter
	jw.Append("command", lineCommand(tx.Type))
	jw.Append("id", tx.ID)
	jw.Append("description", tx.Description)
	jw.Append("amount", tx.Amount)
	jw.Optional("category", tx.Category)
	jw.Append("currency", tx.Currency)
	jw.Append("date", tx.Date.Format(time.RFC3339))
	return writeLine(w, &jw)
}

func writeLine(w io.Writer, jw *jsonObjectWriter) error {
	data, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// DecodeLedger decodes a ledger from a stream of JSONL data. Unknown
// commands are an error: the on-disk ledger is not a lenient format.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command lineCommand `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		switch identifier.Command {
		case cmdIncome, cmdExpense:
			var line txLine
			if err := json.Unmarshal(lineBytes, &line); err != nil {
				return nil, fmt.Errorf("could not decode transaction line %q: %w", string(lineBytes), err)
			}
			ledger.append(line.Transaction())
		case cmdGoal:
			var line goalLine
			if err := json.Unmarshal(lineBytes, &line); err != nil {
				return nil, fmt.Errorf("could not decode goal line %q: %w", string(lineBytes), err)
			}
			ledger.goal = SavingsGoal{Amount: line.Amount, Currency: line.Currency}
		default:
			return nil, fmt.Errorf("unknown command %q in ledger", identifier.Command)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ledger, nil
}

// EncodeRates writes a rate snapshot as a single JSON object.
func EncodeRates(w io.Writer, s *RateSnapshot) error {
	var jw jsonObjectWriter
	jw.Append("rates", s.Rates)
	jw.Append("fetchedAt", s.FetchedAt.Format(time.RFC3339))
	data, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// DecodeRates reads a rate snapshot written by EncodeRates.
func DecodeRates(r io.Reader) (*RateSnapshot, error) {
	var payload struct {
		Rates     map[string]decimal.Decimal `json:"rates"`
		FetchedAt time.Time                  `json:"fetchedAt"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("could not decode rate snapshot: %w", err)
	}
	return &RateSnapshot{Rates: payload.Rates, FetchedAt: payload.FetchedAt}, nil
}
