package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"saga-be/internal/bootstrap"
	"saga-be/internal/config"
	"saga-be/internal/controller"
	"saga-be/internal/pkg/logger"
	"saga-be/internal/pkg/serverutils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingController struct {
	controller.IAiController
}

func (pingController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })
	r.Post("/identify", func(ctx *fiber.Ctx) error {
		var seen map[string]bool
		seen["wolverine"] = true
		return nil
	})
}

func newTestServer(rateLimit int) *Server {
	cfg := &config.Config{App: config.AppConfig{CorsAllowedOrigins: "http://localhost:5173", AiRateLimit: rateLimit}}
	return New(cfg, &bootstrap.Container{AiController: pingController{}, Logger: logger.NewNopLogger()})
}

func TestMetricsEndpoint(t *testing.T) {
	resp, err := newTestServer(0).GetApp().Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestAiRateLimit(t *testing.T) {
	app := newTestServer(2).GetApp()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ai/health", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
		resp.Body.Close()
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestPanicBecomesInternalError(t *testing.T) {
	app := newTestServer(0).GetApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/ai/identify", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var env serverutils.BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.False(t, env.Success)
	assert.Equal(t, "Internal server error", env.Message)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/ai/health", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
