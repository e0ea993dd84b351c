package cashflowr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// fakeRateSource is a scriptable RateSource for cache tests.
type fakeRateSource struct {
	snapshot *RateSnapshot
	err      error
	calls    atomic.Int32
	started  chan struct{} // when set, closed on first call
	block    chan struct{} // when set, FetchRates waits until it is closed
}

func (f *fakeRateSource) FetchRates(ctx context.Context) (*RateSnapshot, error) {
	if f.calls.Add(1) == 1 && f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.snapshot, f.err
}

func TestRateCache_Refresh(t *testing.T) {
	src := &fakeRateSource{snapshot: testSnapshot()}
	cache := NewRateCache(src)

	if cache.Current() != nil {
		t.Fatal("fresh cache should have no snapshot")
	}

	snap, err := cache.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if snap != cache.Current() {
		t.Error("Refresh() result and Current() disagree")
	}
	if !snap.Covers("PHP", "USD", "EUR", "JPY") {
		t.Errorf("snapshot does not cover all supported currencies: %v", snap.Rates)
	}
}

func TestRateCache_FailureLeavesSnapshotUntouched(t *testing.T) {
	src := &fakeRateSource{snapshot: testSnapshot()}
	cache := NewRateCache(src)
	if _, err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("priming Refresh() error: %v", err)
	}
	before := cache.Current()

	src.snapshot = nil
	src.err = fmt.Errorf("connection refused")
	_, err := cache.Refresh(context.Background())
	if !errors.Is(err, ErrRateFetchFailed) {
		t.Errorf("error = %v, want ErrRateFetchFailed", err)
	}
	if cache.Current() != before {
		t.Error("failed refresh replaced the cached snapshot")
	}

	// the next refresh is allowed again after the failure
	src.snapshot, src.err = testSnapshot(), nil
	if _, err := cache.Refresh(context.Background()); err != nil {
		t.Errorf("refresh after failure: %v", err)
	}
}

func TestRateCache_SingleFlight(t *testing.T) {
	src := &fakeRateSource{
		snapshot: testSnapshot(),
		started:  make(chan struct{}),
		block:    make(chan struct{}),
	}
	cache := NewRateCache(src)

	done := make(chan error, 1)
	go func() {
		_, err := cache.Refresh(context.Background())
		done <- err
	}()

	select {
	case <-src.started:
	case <-time.After(time.Second):
		t.Fatal("first refresh never reached the source")
	}

	if _, err := cache.Refresh(context.Background()); !errors.Is(err, ErrRefreshInFlight) {
		t.Errorf("concurrent refresh error = %v, want ErrRefreshInFlight", err)
	}

	close(src.block)
	if err := <-done; err != nil {
		t.Errorf("first refresh error: %v", err)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source was called %d times, want 1", got)
	}
}

func TestRateCache_Restore(t *testing.T) {
	cache := NewRateCache(&fakeRateSource{})
	cache.Restore(nil)
	if cache.Current() != nil {
		t.Error("restoring nil installed a snapshot")
	}
	snap := testSnapshot()
	cache.Restore(snap)
	if cache.Current() != snap {
		t.Error("restored snapshot is not current")
	}
}

func TestExchangeRateAPI_FetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base":"USD","date":"2025-06-01","rates":{"PHP":56.04,"EUR":0.92,"JPY":150.3,"USD":1}}`)
	}))
	defer srv.Close()

	api := &ExchangeRateAPI{URL: srv.URL, Client: srv.Client()}
	snap, err := api.FetchRates(context.Background())
	if err != nil {
		t.Fatalf("FetchRates() error: %v", err)
	}
	testCases := []struct {
		code string
		want decimal.Decimal
	}{
		{"USD", d("1")},
		{"PHP", d("56.04")},
		{"EUR", d("0.92")},
		{"JPY", d("150.3")},
	}
	for _, tc := range testCases {
		got, ok := snap.Rate(tc.code)
		if !ok || !got.Equal(tc.want) {
			t.Errorf("Rate(%s) = %s, want %s", tc.code, got, tc.want)
		}
	}
	if snap.FetchedAt.IsZero() {
		t.Error("FetchedAt was not stamped")
	}
}

func TestExchangeRateAPI_MissingCodeDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rates":{"PHP":56.04}}`)
	}))
	defer srv.Close()

	api := &ExchangeRateAPI{URL: srv.URL, Client: srv.Client()}
	snap, err := api.FetchRates(context.Background())
	if err != nil {
		t.Fatalf("FetchRates() error: %v", err)
	}
	if !snap.Covers("PHP", "USD") {
		t.Error("snapshot should still cover the pivot and the served code")
	}
	if snap.Covers("EUR") {
		t.Error("snapshot claims to cover a code the source did not serve")
	}
}

func TestExchangeRateAPI_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	api := &ExchangeRateAPI{URL: srv.URL, Client: srv.Client()}
	if _, err := api.FetchRates(context.Background()); err == nil {
		t.Error("FetchRates() succeeded against a failing server")
	}
}
