package cashflowr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file contains the ExchangeRate-API client, the single external rate
// source. It serves, for the fixed USD pivot, the exchange value of every
// supported currency.

// DefaultRateSourceURL is the public ExchangeRate-API endpoint.
const DefaultRateSourceURL = "https://api.exchangerate-api.com/v4/latest/" + PivotCurrency

// ExchangeRateAPI fetches pivot-based rates over HTTP.
type ExchangeRateAPI struct {
	// URL of the latest-rates endpoint. Defaults to DefaultRateSourceURL.
	URL string
	// Client used for requests. Defaults to a client with a short timeout,
	// the call is user-triggered and must not hang the session.
	Client *http.Client
}

var _ RateSource = (*ExchangeRateAPI)(nil)

// FetchRates requests the latest snapshot from the rate source.
func (a *ExchangeRateAPI) FetchRates(ctx context.Context) (*RateSnapshot, error) {
	addr := a.URL
	if addr == "" {
		addr = DefaultRateSourceURL
	}
	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	var jobj any
	if err := jwget(ctx, client, addr, &jobj); err != nil {
		return nil, err
	}

	rates := make(map[string]decimal.Decimal, len(supportedCurrencies))
	rates[PivotCurrency] = decimal.NewFromInt(1)
	for _, code := range supportedCurrencies {
		if code == PivotCurrency {
			continue
		}
		path := "$.rates." + code
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			// A missing code degrades conversion to identity for that
			// currency; the snapshot stays usable for the others.
			log.Printf("rate source has no %s rate: %v", code, err)
			continue
		}
		// because jsonpath is never clear about whether it returns a list of
		// 1 answer, or a single answer: keep the first one if any.
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		val, ok := jval.(float64)
		if !ok {
			return nil, fmt.Errorf("unexpected %s rate payload %T", code, jval)
		}
		rates[code] = decimal.NewFromFloat(val)
	}

	return &RateSnapshot{Rates: rates, FetchedAt: time.Now()}, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
