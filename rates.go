package cashflowr

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ErrRateFetchFailed signals that contacting the external rate source
// failed. The cached snapshot is left untouched.
var ErrRateFetchFailed = errors.New("exchange rate fetch failed")

// ErrRefreshInFlight signals that a refresh was requested while another one
// is still outstanding.
var ErrRefreshInFlight = errors.New("exchange rate refresh already in flight")

// RateSnapshot is an immutable, wholesale-replaceable capture of exchange
// rates at a point in time. Rates are expressed relative to the pivot
// currency, which is always present at value 1.
type RateSnapshot struct {
	Rates     map[string]decimal.Decimal
	FetchedAt time.Time
}

// Rate returns the pivot-relative rate for a currency code.
func (s *RateSnapshot) Rate(code string) (decimal.Decimal, bool) {
	if s == nil {
		return decimal.Zero, false
	}
	r, ok := s.Rates[code]
	return r, ok
}

// Covers reports whether the snapshot has a usable rate for every given code.
func (s *RateSnapshot) Covers(codes ...string) bool {
	for _, code := range codes {
		r, ok := s.Rate(code)
		if !ok || !r.IsPositive() {
			return false
		}
	}
	return true
}

// RateSource is the external exchange-rate provider contract: one network
// call yielding a full pivot-based snapshot.
type RateSource interface {
	FetchRates(ctx context.Context) (*RateSnapshot, error)
}

// RateCache holds the most recent rate snapshot, or none on first run.
//
// Staleness is informational only: a stale snapshot remains usable until
// explicitly replaced by a successful refresh. At most one refresh is in
// flight at a time; concurrent requests are rejected with
// ErrRefreshInFlight rather than racing to replace the snapshot.
type RateCache struct {
	source RateSource

	mu         sync.Mutex
	snapshot   *RateSnapshot
	refreshing bool
}

// NewRateCache creates an empty cache backed by the given source.
func NewRateCache(source RateSource) *RateCache {
	return &RateCache{source: source}
}

// Current returns the cached snapshot, or nil if none exists yet.
func (c *RateCache) Current() *RateSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Restore installs a previously persisted snapshot without contacting the
// source. A nil snapshot is ignored.
func (c *RateCache) Restore(s *RateSnapshot) {
	if s == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = s
}

// Refresh contacts the rate source and, on success, replaces the cached
// snapshot wholesale. On failure the existing snapshot is left untouched and
// the returned error wraps ErrRateFetchFailed. A refresh requested while
// another is outstanding returns ErrRefreshInFlight without touching the
// network.
func (c *RateCache) Refresh(ctx context.Context) (*RateSnapshot, error) {
	c.mu.Lock()
	if c.refreshing {
		c.mu.Unlock()
		return nil, ErrRefreshInFlight
	}
	c.refreshing = true
	c.mu.Unlock()

	snapshot, err := c.source.FetchRates(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshing = false
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateFetchFailed, err)
	}
	c.snapshot = snapshot
	return snapshot, nil
}
