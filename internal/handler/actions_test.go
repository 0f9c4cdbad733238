package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tuanona/kasir-bot/internal/catalog"
	"github.com/tuanona/kasir-bot/internal/dto"
	"github.com/tuanona/kasir-bot/internal/ledger"
	"github.com/tuanona/kasir-bot/internal/middleware"
	"github.com/tuanona/kasir-bot/internal/model"
	"github.com/tuanona/kasir-bot/internal/service"
	"github.com/tuanona/kasir-bot/internal/session"
	"github.com/tuanona/kasir-bot/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret       = "test-secret-key"
	adminID    int64 = 100
	cashierID  int64 = 200
	strangerID int64 = 300
)

// ── Stub dispatcher ──────────────────────────────────────────────────────────

type stubJobs struct {
	receipts []model.Sale
	closings []worker.ClosingJobPayload
	err      error
}

func (s *stubJobs) EnqueueReceipt(_ context.Context, sale model.Sale) error {
	s.receipts = append(s.receipts, sale)
	return s.err
}

func (s *stubJobs) EnqueueClosing(_ context.Context, p worker.ClosingJobPayload) error {
	s.closings = append(s.closings, p)
	return s.err
}

var _ JobDispatcher = (*stubJobs)(nil)
var _ JobDispatcher = (*worker.Dispatcher)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

type env struct {
	router *gin.Engine
	jobs   *stubJobs
	ledger *ledger.MemoryLedger
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	led := ledger.NewMemoryLedger()
	svc := service.NewCashierService(catalog.Default(), session.NewMemoryStore(), led,
		service.NewPolicy([]int64{adminID}, []int64{cashierID}), nil)
	jobs := &stubJobs{}

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	h := NewActionsHandler(svc, jobs)
	r.POST("/v1/actions", middleware.JWTAuth(testSecret), h.Handle)
	return &env{router: r, jobs: jobs, ledger: led}
}

func (e *env) post(t *testing.T, operatorID int64, body any) *httptest.ResponseRecorder {
	t.Helper()
	tok, err := middleware.IssueToken(testSecret, operatorID, time.Hour)
	require.NoError(t, err)

	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/actions", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) act(t *testing.T, operatorID int64, req dto.ActionRequest) dto.ActionResponse {
	t.Helper()
	w := e.post(t, operatorID, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.ActionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func signal(name string) dto.ActionRequest { return dto.ActionRequest{Kind: "signal", Signal: name} }

// ── Tests ────────────────────────────────────────────────────────────────────

func TestActions_RequiresToken(t *testing.T) {
	e := newEnv(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/actions", bytes.NewReader([]byte(`{"kind":"start"}`)))
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestActions_ValidationErrors(t *testing.T) {
	e := newEnv(t)

	w := e.post(t, cashierID, map[string]string{"kind": "dance"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Kind")

	w = e.post(t, cashierID, map[string]string{"kind": "signal"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Signal")

	w = httptest.NewRecorder()
	tok, _ := middleware.IssueToken(testSecret, cashierID, time.Hour)
	req, _ := http.NewRequest(http.MethodPost, "/v1/actions", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Authorization", "Bearer "+tok)
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActions_UnknownSignalIsValidationNotice(t *testing.T) {
	e := newEnv(t)
	e.act(t, cashierID, dto.ActionRequest{Kind: "start"})

	resp := e.act(t, cashierID, signal("teleport"))
	assert.Equal(t, model.ErrValidation, resp.Render.Error)
	assert.NotEmpty(t, resp.Render.Notice)
}

func TestActions_UnauthorizedOperator(t *testing.T) {
	e := newEnv(t)
	resp := e.act(t, strangerID, dto.ActionRequest{Kind: "start"})
	assert.Equal(t, model.ErrUnauthorized, resp.Render.Error)
	assert.Equal(t, strangerID, resp.OperatorID)
}

func TestActions_CashSaleEnqueuesReceipt(t *testing.T) {
	e := newEnv(t)
	item := "🍵 Matcha OG"

	e.act(t, cashierID, dto.ActionRequest{Kind: "start"})
	e.act(t, cashierID, signal("begin_order"))
	resp := e.act(t, cashierID, dto.ActionRequest{Kind: "text", Text: "Budi"})
	assert.Equal(t, model.ViewMenu, resp.Render.View)

	e.act(t, cashierID, dto.ActionRequest{Kind: "signal", Signal: "select_item", Item: item})
	e.act(t, cashierID, dto.ActionRequest{Kind: "signal", Signal: "increment", Item: item})
	e.act(t, cashierID, dto.ActionRequest{Kind: "signal", Signal: "increment", Item: item})
	e.act(t, cashierID, signal("back_to_menu"))
	resp = e.act(t, cashierID, signal("checkout"))
	assert.Equal(t, model.ViewCheckout, resp.Render.View)
	assert.Contains(t, resp.Render.Text, "Rp28.000")

	e.act(t, cashierID, signal("pay_cash"))
	resp = e.act(t, cashierID, dto.ActionRequest{Kind: "text", Text: "Rp30.000"})

	assert.Equal(t, model.ViewPostTransaction, resp.Render.View)
	require.NotNil(t, resp.SaleID)
	require.Len(t, e.jobs.receipts, 1)
	assert.Equal(t, *resp.SaleID, e.jobs.receipts[0].ID.String())
	assert.Equal(t, "2000", e.jobs.receipts[0].Change.String())
	assert.Equal(t, 1, e.ledger.Len())
}

func TestActions_EnqueueFailureDoesNotFailRequest(t *testing.T) {
	e := newEnv(t)
	e.jobs.err = errors.New("redis down")
	item := "🍵 Matcha OG"

	e.act(t, cashierID, dto.ActionRequest{Kind: "start"})
	e.act(t, cashierID, signal("begin_order"))
	e.act(t, cashierID, dto.ActionRequest{Kind: "text", Text: "Sari"})
	e.act(t, cashierID, dto.ActionRequest{Kind: "signal", Signal: "select_item", Item: item})
	e.act(t, cashierID, dto.ActionRequest{Kind: "signal", Signal: "increment", Item: item})
	e.act(t, cashierID, signal("back_to_menu"))
	e.act(t, cashierID, signal("checkout"))
	e.act(t, cashierID, signal("pay_qris"))
	resp := e.act(t, cashierID, signal("qris_done"))

	require.NotNil(t, resp.SaleID)
	assert.Equal(t, 1, e.ledger.Len())
}

func TestActions_AdminResetEnqueuesClosing(t *testing.T) {
	e := newEnv(t)
	item := "🍵 Matcha OG"

	e.act(t, adminID, dto.ActionRequest{Kind: "start"})
	e.act(t, adminID, signal("begin_order"))
	e.act(t, adminID, dto.ActionRequest{Kind: "text", Text: "Dewi"})
	e.act(t, adminID, dto.ActionRequest{Kind: "signal", Signal: "select_item", Item: item})
	e.act(t, adminID, dto.ActionRequest{Kind: "signal", Signal: "increment", Item: item})
	e.act(t, adminID, signal("back_to_menu"))
	e.act(t, adminID, signal("checkout"))
	e.act(t, adminID, signal("pay_qris"))
	e.act(t, adminID, signal("qris_done"))

	e.act(t, adminID, dto.ActionRequest{Kind: "start"})
	e.act(t, adminID, signal("open_admin"))
	resp := e.act(t, adminID, signal("admin_reset"))

	assert.Equal(t, model.ViewAdminPanel, resp.Render.View)
	assert.Equal(t, 0, e.ledger.Len())
	require.Len(t, e.jobs.closings, 1)
	assert.Equal(t, 1, e.jobs.closings[0].Report.Transactions)
	assert.Equal(t, adminID, e.jobs.closings[0].OperatorID)

	// Resetting an empty ledger has nothing to export.
	e.act(t, adminID, signal("admin_reset"))
	assert.Len(t, e.jobs.closings, 1)
}

func TestActions_NilDispatcher(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewCashierService(catalog.Default(), session.NewMemoryStore(), ledger.NewMemoryLedger(),
		service.NewPolicy(nil, []int64{cashierID}), nil)
	h := NewActionsHandler(svc, nil)
	assert.NotPanics(t, func() { h.enqueue(context.Background(), cashierID, service.Result{}) })
}

func TestHealth_RedisDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", Health(nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"redis":"disabled"}`, w.Body.String())
}
