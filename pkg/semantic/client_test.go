package semantic

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", FailureThreshold: 3, OpenTimeout: time.Minute}, nil), srv
}

func TestSearch_DecodesMatches(t *testing.T) {
	var got searchRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"results":[{"id":7,"baslik":"Interstellar","tur":"film","aciklama":"uzay","yil":2014,"score":0.91,"neden":"tema"}],"query":"uzay","total":1}`))
	})

	kind := "film"
	res := c.Search(context.Background(), "uzay", 5, &kind)

	require.True(t, res.Ok())
	require.Len(t, res.Value, 1)
	assert.Equal(t, int64(7), res.Value[0].Id)
	assert.Equal(t, "Interstellar", res.Value[0].Title)
	assert.Equal(t, 2014, *res.Value[0].Year)
	assert.InDelta(t, 0.91, res.Value[0].Score, 1e-9)
	assert.Equal(t, "uzay", got.Query)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, "film", *got.Kind)
}

func TestSearch_EmptyResultsIsOk(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query":"x","total":0}`))
	})

	res := c.Search(context.Background(), "x", 5, nil)

	require.True(t, res.Ok())
	assert.Empty(t, res.Value)
	assert.NotNil(t, res.Value)
}

func TestCall_FailureKinds(t *testing.T) {
	t.Run("non-2xx is a status error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		res := c.Search(context.Background(), "x", 5, nil)
		require.False(t, res.Ok())
		assert.Equal(t, ErrStatus, res.Err.Kind)
		assert.Equal(t, http.StatusServiceUnavailable, res.Err.StatusCode)
	})

	t.Run("malformed body is a decode error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results": [`))
		})
		res := c.Identify(context.Background(), "a film about dreams", nil)
		require.False(t, res.Ok())
		assert.Equal(t, ErrDecode, res.Err.Kind)
	})

	t.Run("unreachable host is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		c := NewClient(Config{BaseURL: base}, nil)
		res := c.Search(context.Background(), "x", 5, nil)
		require.False(t, res.Ok())
		assert.Equal(t, ErrUnavailable, res.Err.Kind)
	})

	t.Run("deadline is a timeout", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		res := c.Search(ctx, "x", 5, nil)
		require.False(t, res.Ok())
		assert.Equal(t, ErrTimeout, res.Err.Kind)
	})
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 3; i++ {
		res := c.Search(context.Background(), "x", 5, nil)
		require.Equal(t, ErrStatus, res.Err.Kind)
	}

	res := c.Search(context.Background(), "x", 5, nil)
	require.False(t, res.Ok())
	assert.Equal(t, ErrUnavailable, res.Err.Kind)
	assert.Equal(t, int32(3), hits.Load(), "open breaker must not reach the gateway")
}

func TestBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	for i := 0; i < 5; i++ {
		res := c.Search(context.Background(), "x", 5, nil)
		require.Equal(t, ErrStatus, res.Err.Kind)
	}
	assert.Equal(t, int32(5), hits.Load())
}

func TestHealthy_CachesAnswer(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	assert.True(t, c.Healthy(context.Background()).Value)
	assert.True(t, c.Healthy(context.Background()).Value)
	assert.Equal(t, int32(1), hits.Load())
}

func TestHealthy_CancelledCallerIsNotCached(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, c.Healthy(ctx).Ok())

	res := c.Healthy(context.Background())
	require.True(t, res.Ok())
	assert.True(t, res.Value)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSummarize_SendsQueryParameters(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summarize", r.URL.Path)
		assert.Equal(t, "Dune", r.URL.Query().Get("content_title"))
		assert.Equal(t, "kitap", r.URL.Query().Get("content_type"))
		assert.Equal(t, "true", r.URL.Query().Get("spoiler_free"))
		_, _ = w.Write([]byte(`{"summary":"Çöl gezegeni.","spoiler_free":true}`))
	})

	res := c.Summarize(context.Background(), "Dune", "kitap", true)
	require.True(t, res.Ok())
	assert.Equal(t, "Çöl gezegeni.", res.Value.Summary)
}

func TestChat_SendsMaxTokens(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, ChatMaxTokens, req.MaxTokens)
		assert.Len(t, req.Messages, 2)
		_, _ = w.Write([]byte(`{"message":"Merhaba!","suggestions":["Bir film öner"]}`))
	})

	res := c.Chat(context.Background(), []ChatTurn{{Role: "user", Content: "selam"}, {Role: "assistant", Content: "selam"}}, nil)
	require.True(t, res.Ok())
	assert.Equal(t, "Merhaba!", res.Value.Message)
}

func TestApologies(t *testing.T) {
	statusErr := &GatewayError{Kind: ErrStatus, StatusCode: 502}
	transportErr := &GatewayError{Kind: ErrUnavailable}

	assert.Equal(t, ChatUnavailable, ChatOrApology(Result[ChatResult]{Err: statusErr}).Message)
	assert.Equal(t, ChatFailed, ChatOrApology(Result[ChatResult]{Err: transportErr}).Message)
	assert.Equal(t, NoAnswer, ChatOrApology(Result[ChatResult]{}).Message)

	assert.Equal(t, ContentUnavailable, AnswerOrApology(Result[ContentAnswer]{Err: statusErr}).Answer)
	assert.Equal(t, GenericFailure, AnswerOrApology(Result[ContentAnswer]{Err: transportErr}).Answer)

	assert.Equal(t, AssistantUnavailable, AssistantOrApology(Result[AssistantResult]{Err: statusErr}).Message)
	assert.Equal(t, SummaryUnavailable, SummaryOrApology(Result[SummaryResult]{Err: statusErr}, true).Summary)
	assert.Equal(t, SummaryMissing, SummaryOrApology(Result[SummaryResult]{}, true).Summary)

	passthrough := Result[ChatResult]{Value: ChatResult{Message: "tamam"}}
	assert.Equal(t, "tamam", ChatOrApology(passthrough).Message)
}
