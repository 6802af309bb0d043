package semantic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"saga-be/internal/pkg/logger"
	"saga-be/pkg/metrics"

	"github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker/v2"
)

const (
	SearchTimeout    = 30 * time.Second
	IndexTimeout     = 120 * time.Second
	HealthTimeout    = 10 * time.Second
	IdentifyTimeout  = 3 * time.Minute
	ChatTimeout      = 120 * time.Second
	ChatMaxTokens    = 500
	healthCacheTTL   = 30 * time.Second
	healthCacheKey   = "healthy"
	metricsUpstream  = "semantic_gateway"
	maxErrorBodySize = 512
)

type Config struct {
	BaseURL string
	// HTTPClient is optional; per-call deadlines come from the context.
	HTTPClient *http.Client
	// FailureThreshold consecutive failures open the breaker (default 5).
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open (default 30s).
	OpenTimeout time.Duration
}

// Client talks to the semantic gateway. Every method returns a Result and
// never retries.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	health  *cache.Cache
	logger  logger.ILogger
}

func NewClient(cfg Config, log logger.ILogger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		health:  cache.New(healthCacheTTL, time.Minute),
		logger:  log,
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        metricsUpstream,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// 4xx and caller cancellation say nothing about gateway health
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var gwErr *GatewayError
			if errors.As(err, &gwErr) && gwErr.Kind == ErrStatus {
				return gwErr.StatusCode < 500
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, float64(to))
			log.Warn("SEMANTIC", "Circuit breaker state changed", map[string]interface{}{
				"from": from.String(),
				"to":   to.String(),
			})
		},
	})

	return c
}

// Search runs a semantic query. kind is the database spelling or nil.
func (c *Client) Search(ctx context.Context, query string, limit int, kind *string) Result[[]Match] {
	var resp searchResponse
	if err := c.call(ctx, "search", http.MethodPost, "/search", SearchTimeout,
		searchRequest{Query: query, Limit: limit, Kind: kind}, &resp); err != nil {
		return fail[[]Match](err)
	}
	if resp.Results == nil {
		resp.Results = []Match{}
	}
	return ok(resp.Results)
}

func (c *Client) Index(ctx context.Context, docs []IndexDocument) Result[int] {
	if err := c.call(ctx, "index", http.MethodPost, "/index", IndexTimeout,
		indexRequest{Contents: docs}, nil); err != nil {
		return fail[int](err)
	}
	return ok(len(docs))
}

// Healthy probes GET / and caches a positive or negative answer for 30s.
// Cancelled probes are not cached.
func (c *Client) Healthy(ctx context.Context) Result[bool] {
	if v, found := c.health.Get(healthCacheKey); found {
		return ok(v.(bool))
	}
	err := c.call(ctx, "health", http.MethodGet, "/", HealthTimeout, nil, nil)
	// A caller hanging up says nothing about the gateway.
	if err == nil || !(errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)) {
		c.health.Set(healthCacheKey, err == nil, cache.DefaultExpiration)
	}
	if err != nil {
		return fail[bool](err)
	}
	return ok(true)
}

func (c *Client) Identify(ctx context.Context, description string, kind *string) Result[IdentifyResult] {
	var resp IdentifyResult
	if err := c.call(ctx, "identify", http.MethodPost, "/identify", IdentifyTimeout,
		identifyRequest{Description: description, Kind: kind}, &resp); err != nil {
		return fail[IdentifyResult](err)
	}
	return ok(resp)
}

func (c *Client) Chat(ctx context.Context, turns []ChatTurn, chatContext *string) Result[ChatResult] {
	var resp ChatResult
	if err := c.call(ctx, "chat", http.MethodPost, "/chat", ChatTimeout,
		chatRequest{Messages: turns, Context: chatContext, MaxTokens: ChatMaxTokens}, &resp); err != nil {
		return fail[ChatResult](err)
	}
	return ok(resp)
}

func (c *Client) AskAboutContent(ctx context.Context, title, contentType, question string, description *string) Result[ContentAnswer] {
	var resp ContentAnswer
	req := contentQuestionRequest{
		ContentTitle:       title,
		ContentType:        contentType,
		ContentDescription: description,
		Question:           question,
	}
	if err := c.call(ctx, "content-question", http.MethodPost, "/content-question", ChatTimeout, req, &resp); err != nil {
		return fail[ContentAnswer](err)
	}
	return ok(resp)
}

func (c *Client) Assistant(ctx context.Context, query string, currentPage *string, userContext interface{}, history []ChatTurn) Result[AssistantResult] {
	var resp AssistantResult
	req := assistantRequest{
		Query:       query,
		CurrentPage: currentPage,
		UserContext: userContext,
		ChatHistory: history,
	}
	if err := c.call(ctx, "assistant", http.MethodPost, "/assistant", ChatTimeout, req, &resp); err != nil {
		return fail[AssistantResult](err)
	}
	return ok(resp)
}

func (c *Client) Summarize(ctx context.Context, title, contentType string, spoilerFree bool) Result[SummaryResult] {
	q := url.Values{}
	q.Set("content_title", title)
	q.Set("content_type", contentType)
	q.Set("spoiler_free", strconv.FormatBool(spoilerFree))

	var resp SummaryResult
	if err := c.call(ctx, "summarize", http.MethodPost, "/summarize?"+q.Encode(), ChatTimeout, nil, &resp); err != nil {
		return fail[SummaryResult](err)
	}
	return ok(resp)
}

// call performs one request through the breaker. out may be nil when only
// the status matters.
func (c *Client) call(ctx context.Context, op, method, path string, timeout time.Duration, body, out interface{}) *GatewayError {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	raw, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, op, method, path, body)
	})
	if err != nil {
		gwErr := c.classify(ctx, op, err)
		metrics.RecordUpstream(metricsUpstream, outcomeOf(gwErr), time.Since(start))
		c.logger.Warn("SEMANTIC", "Gateway call failed", map[string]interface{}{
			"op":     op,
			"kind":   string(gwErr.Kind),
			"status": gwErr.StatusCode,
			"error":  err.Error(),
		})
		return gwErr
	}
	metrics.RecordUpstream(metricsUpstream, metrics.OutcomeSuccess, time.Since(start))

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("SEMANTIC", "Gateway response could not be decoded", map[string]interface{}{
			"op":    op,
			"error": err.Error(),
		})
		return &GatewayError{Kind: ErrDecode, Op: op, Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &GatewayError{Kind: ErrDecode, Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &GatewayError{Kind: ErrUnavailable, Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := raw
		if len(snippet) > maxErrorBodySize {
			snippet = snippet[:maxErrorBodySize]
		}
		return nil, &GatewayError{Kind: ErrStatus, Op: op, StatusCode: resp.StatusCode, Err: errors.New(string(snippet))}
	}
	return raw, nil
}

func (c *Client) classify(ctx context.Context, op string, err error) *GatewayError {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &GatewayError{Kind: ErrUnavailable, Op: op, Err: err}
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &GatewayError{Kind: ErrTimeout, Op: op, Err: err}
	}
	return &GatewayError{Kind: ErrUnavailable, Op: op, Err: err}
}

func outcomeOf(err *GatewayError) string {
	switch {
	case errors.Is(err.Err, gobreaker.ErrOpenState), errors.Is(err.Err, gobreaker.ErrTooManyRequests):
		return metrics.OutcomeOpen
	case err.Kind == ErrTimeout:
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeError
	}
}
