package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"saga-be/pkg/metrics"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
)

const defaultRequestTimeout = 15 * time.Second

// ErrUpstreamStatus wraps non-2xx answers from a catalog API.
var ErrUpstreamStatus = errors.New("catalog upstream returned non-success status")

// fetcher is the shared GET-and-decode path for all catalog clients: one
// breaker per upstream, bounded per-request timeout, metrics.
type fetcher struct {
	name    string
	http    *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func newFetcher(name string, httpClient *http.Client) *fetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &fetcher{
		name:    name,
		http:    httpClient,
		timeout: defaultRequestTimeout,
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.SetCircuitBreakerState(name, float64(to))
			},
		}),
	}
}

func (f *fetcher) getJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	raw, err := f.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := f.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%w: %s %d", ErrUpstreamStatus, f.name, resp.StatusCode)
		}
		return body, nil
	})
	if err != nil {
		outcome := metrics.OutcomeError
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			outcome = metrics.OutcomeOpen
		case errors.Is(err, context.DeadlineExceeded):
			outcome = metrics.OutcomeTimeout
		}
		metrics.RecordUpstream(f.name, outcome, time.Since(start))
		return err
	}
	metrics.RecordUpstream(f.name, metrics.OutcomeSuccess, time.Since(start))

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s decode: %w", f.name, err)
	}
	return nil
}
