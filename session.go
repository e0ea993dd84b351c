package cashflowr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Session is the explicit context of all ledger operations: the active
// identity partition, its ledger and default currency, and the shared rate
// cache. Nothing in the package is ambient state; each core operation goes
// through the session that owns it.
//
// A session is owned by a single logical thread of control. The only
// suspending operation is RefreshRates, which is guarded against concurrent
// refreshes by the cache itself.
type Session struct {
	dataDir  string
	identity string
	ledger   *Ledger
	rates    *RateCache
	currency string
}

// sessionSettings is the persisted per-identity settings blob.
type sessionSettings struct {
	DefaultCurrency string    `json:"defaultCurrency"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

func settingsFile(path, name string) string {
	return filepath.Join(path, name+".settings.json")
}

// OpenSession loads the partition of the given identity from the data
// directory. An empty identity opens the guest partition. The persisted rate
// snapshot, if any, is restored into the cache.
func OpenSession(dataDir, identity string, source RateSource) (*Session, error) {
	if identity == "" {
		identity = GuestPartition
	}
	ledger, err := LoadLedger(dataDir, identity)
	if err != nil {
		return nil, err
	}

	s := &Session{
		dataDir:  dataDir,
		identity: identity,
		ledger:   ledger,
		rates:    NewRateCache(source),
		currency: DefaultCurrency,
	}

	snap, err := LoadRates(dataDir)
	if err != nil {
		return nil, err
	}
	s.rates.Restore(snap)

	if err := s.loadSettings(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) loadSettings() error {
	data, err := os.ReadFile(settingsFile(s.dataDir, s.identity))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read settings for %q: %w", s.identity, err)
	}
	var settings sessionSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("could not decode settings for %q: %w", s.identity, err)
	}
	if KnownCurrency(settings.DefaultCurrency) {
		s.currency = settings.DefaultCurrency
	}
	return nil
}

// Identity returns the partition key the session operates on.
func (s *Session) Identity() string { return s.identity }

// Ledger returns the active partition's ledger.
func (s *Session) Ledger() *Ledger { return s.ledger }

// DefaultCurrency returns the session's reporting currency.
func (s *Session) DefaultCurrency() string { return s.currency }

// SetDefaultCurrency switches the reporting currency. Stored amounts are
// never mutated; aggregates simply convert into the new currency from now
// on. The savings goal keeps the currency it was set in.
func (s *Session) SetDefaultCurrency(code string) error {
	if !KnownCurrency(code) {
		return fmt.Errorf("unknown currency %q", code)
	}
	s.currency = code
	return nil
}

// Snapshot returns the cached rate snapshot, or nil when rates were never
// fetched.
func (s *Session) Snapshot() *RateSnapshot { return s.rates.Current() }

// RestoreRates installs an imported snapshot (from a JSON ledger file).
func (s *Session) RestoreRates(snap *RateSnapshot) { s.rates.Restore(snap) }

// RefreshRates fetches a fresh snapshot from the rate source and persists
// it. On failure the cache and the persisted snapshot are left untouched.
func (s *Session) RefreshRates(ctx context.Context) (*RateSnapshot, error) {
	snap, err := s.rates.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if err := SaveRates(s.dataDir, snap); err != nil {
		return snap, err
	}
	return snap, nil
}

// Save persists the ledger and the session settings, overwriting both blobs.
func (s *Session) Save() error {
	if err := SaveLedger(s.dataDir, s.ledger); err != nil {
		return err
	}
	settings := sessionSettings{DefaultCurrency: s.currency, LastUpdated: time.Now()}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(settingsFile(s.dataDir, s.identity), append(data, '\n'), 0644)
}

// TotalIncome returns the ledger's income total in the reporting currency.
func (s *Session) TotalIncome() Money {
	return TotalByType(s.ledger.All(), Income, s.currency, s.Snapshot())
}

// TotalExpense returns the ledger's expense total in the reporting currency.
func (s *Session) TotalExpense() Money {
	return TotalByType(s.ledger.All(), Expense, s.currency, s.Snapshot())
}

// Balance returns income minus expense in the reporting currency.
func (s *Session) Balance() Money {
	return Balance(s.ledger.All(), s.currency, s.Snapshot())
}

// Breakdown returns the expense-by-category breakdown in the reporting
// currency.
func (s *Session) Breakdown() []CategoryTotal {
	return CategoryBreakdown(s.ledger.All(), s.currency, s.Snapshot())
}

// Progress reconciles the savings goal against the current balance.
func (s *Session) Progress() GoalProgress {
	return ProgressTowards(s.Balance(), s.ledger.Goal(), s.Snapshot())
}

// Filtered returns the ledger's transactions matching the criteria.
func (s *Session) Filtered(c Criteria) []Transaction {
	return Filter(s.ledger.All(), c)
}
