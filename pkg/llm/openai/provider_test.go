package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"saga-be/pkg/llm"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_RequestShapeAndFirstChoice(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Harika bir yıl!  "}},{"message":{"content":"ikinci"}}]}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{Name: "groq", APIKey: "gsk-test", BaseURL: srv.URL + "/", Model: "llama", Temperature: 0.7, MaxTokens: 500})
	out, err := p.Chat(context.Background(), []llm.Message{llm.System("sys"), llm.User("merhaba")})

	require.NoError(t, err)
	assert.Equal(t, "Harika bir yıl!", out)
	assert.Equal(t, "llama", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 500, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
}

func TestChat_OptionsOverrideDefaults(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL, Model: "phi-3-mini", Temperature: 0.9, MaxTokens: 100})
	_, err := p.Chat(context.Background(), []llm.Message{llm.User("x")}, llm.WithTemperature(0.2), llm.WithMaxTokens(400))

	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, 0.2, got.Temperature)
	assert.Equal(t, 400, got.MaxTokens)
}

func TestChat_Failures(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		body   string
		empty  bool
	}{
		{"non-2xx", http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`, false},
		{"error object", http.StatusOK, `{"error":{"message":"bad model"}}`, false},
		{"no choices", http.StatusOK, `{"choices":[]}`, true},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewProvider(Config{BaseURL: srv.URL}).Generate(context.Background(), "x")
			require.Error(t, err)
			assert.Equal(t, tc.empty, err == llm.ErrEmptyCompletion)
		})
	}
}
