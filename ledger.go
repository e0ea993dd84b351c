package cashflowr

import (
	"errors"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a single target amount the user saves toward. It is
// overwritten, never accumulated. The currency is captured at set-time from
// the session's default currency.
type SavingsGoal struct {
	Amount   decimal.Decimal
	Currency string
}

// IsSet reports whether a goal has been set.
func (g SavingsGoal) IsSet() bool { return g.Amount.IsPositive() }

// Money returns the goal as a monetary value.
func (g SavingsGoal) Money() Money { return M(g.Amount, g.Currency) }

// Ledger is an ordered collection of transactions plus the savings goal for
// one identity partition.
//
// Insertion order is the canonical display order; IDs are assigned
// monotonically and are collision-free within a ledger.
type Ledger struct {
	name         string
	transactions []Transaction
	goal         SavingsGoal
	nextID       int64
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		nextID:       1,
	}
}

// Name returns the ledger's partition name (empty until loaded or saved).
func (l *Ledger) Name() string { return l.name }

// SetName renames the ledger's partition.
func (l *Ledger) SetName(name string) { l.name = name }

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Add validates the transaction, assigns it a fresh unique ID if absent, and
// appends it. It returns the recorded transaction or a *ValidationError.
func (l *Ledger) Add(tx Transaction) (Transaction, error) {
	tx, err := tx.Validate()
	if err != nil {
		return tx, err
	}
	l.append(tx)
	return l.transactions[len(l.transactions)-1], nil
}

// append records a validated transaction, assigning or reserving its ID.
func (l *Ledger) append(tx Transaction) {
	if tx.ID == 0 {
		tx.ID = l.nextID
	}
	if tx.ID >= l.nextID {
		l.nextID = tx.ID + 1
	}
	l.transactions = append(l.transactions, tx)
}

// Remove removes the transaction with the given id. Removing an absent id is
// a no-op, not an error.
func (l *Ledger) Remove(id int64) {
	for i, tx := range l.transactions {
		if tx.ID == id {
			l.transactions = slices.Delete(l.transactions, i, i+1)
			return
		}
	}
}

// BulkResult reports the outcome of a bulk append: how many records were
// appended and the per-record validation failures of the ones skipped.
type BulkResult struct {
	Added  int
	Errors []error
}

// Err joins the per-record errors into one, or returns nil when all records
// were appended.
func (r BulkResult) Err() error { return errors.Join(r.Errors...) }

// BulkAppend validates each record independently and appends the valid ones,
// assigning fresh IDs. Invalid records are skipped and reported; the batch
// never aborts.
func (l *Ledger) BulkAppend(txs []Transaction) BulkResult {
	var res BulkResult
	for _, tx := range txs {
		tx.ID = 0 // imported records never keep foreign IDs
		tx, err := tx.Validate()
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		l.append(tx)
		res.Added++
	}
	return res
}

// Transactions returns an iterator that yields each transaction in insertion
// order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// All returns a snapshot copy of the transactions in insertion order.
func (l *Ledger) All() []Transaction {
	return slices.Clone(l.transactions)
}

// Get returns the transaction with the given id.
func (l *Ledger) Get(id int64) (Transaction, bool) {
	for _, tx := range l.transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// SetGoal overwrites the savings goal. A non-positive amount is rejected.
func (l *Ledger) SetGoal(amount decimal.Decimal, currency string) error {
	if !amount.IsPositive() {
		return validationErrorf("goal amount must be positive, got %s", amount)
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if !KnownCurrency(currency) {
		return validationErrorf("unknown currency %q", currency)
	}
	l.goal = SavingsGoal{Amount: amount, Currency: currency}
	return nil
}

// Goal returns the current savings goal; IsSet is false when none was set.
func (l *Ledger) Goal() SavingsGoal { return l.goal }

// AllCategories iterates over the distinct categories that appear in the
// ledger's expenses, in first-encountered order.
func (l *Ledger) AllCategories() iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, tx := range l.transactions {
			if tx.Type != Expense || tx.Category == "" {
				continue
			}
			if _, ok := visited[tx.Category]; ok {
				continue
			}
			visited[tx.Category] = struct{}{}
			if !yield(tx.Category) {
				return
			}
		}
	}
}

// AllCurrencies iterates over the distinct currencies that appear in the
// ledger's transactions, in first-encountered order.
func (l *Ledger) AllCurrencies() iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, tx := range l.transactions {
			if _, ok := visited[tx.Currency]; ok {
				continue
			}
			visited[tx.Currency] = struct{}{}
			if !yield(tx.Currency) {
				return
			}
		}
	}
}
