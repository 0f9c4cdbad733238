package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tuanona/kasir-bot/internal/catalog"
	"github.com/tuanona/kasir-bot/internal/config"
	"github.com/tuanona/kasir-bot/internal/ledger"
	"github.com/tuanona/kasir-bot/internal/middleware"
	"github.com/tuanona/kasir-bot/internal/service"
	"github.com/tuanona/kasir-bot/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "router-test-secret"

func newEngine(limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: "test", JWTSecret: secret}
	svc := service.NewCashierService(catalog.Default(), session.NewMemoryStore(), ledger.NewMemoryLedger(),
		service.NewPolicy(nil, []int64{9}), nil)
	return New(cfg, Deps{Cashier: svc, Limiter: middleware.NewRateLimiter(limit, time.Minute)})
}

func postStart(t *testing.T, r *gin.Engine, tok string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/actions", bytes.NewReader([]byte(`{"kind":"start"}`)))
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r := newEngine(10)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_ActionsProtected(t *testing.T) {
	r := newEngine(10)
	assert.Equal(t, http.StatusUnauthorized, postStart(t, r, "").Code)

	tok, err := middleware.IssueToken(secret, 9, time.Hour)
	require.NoError(t, err)
	w := postStart(t, r, tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"view":"welcome"`)
}

func TestRouter_RateLimitedPerOperator(t *testing.T) {
	r := newEngine(1)
	tok, _ := middleware.IssueToken(secret, 9, time.Hour)

	assert.Equal(t, http.StatusOK, postStart(t, r, tok).Code)
	assert.Equal(t, http.StatusTooManyRequests, postStart(t, r, tok).Code)
}
