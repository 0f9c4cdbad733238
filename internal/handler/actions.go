package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/tuanona/kasir-bot/internal/dto"
	"github.com/tuanona/kasir-bot/internal/middleware"
	"github.com/tuanona/kasir-bot/internal/model"
	"github.com/tuanona/kasir-bot/internal/service"
	"github.com/tuanona/kasir-bot/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// JobDispatcher enqueues follow-up work for completed sales and ledger
// resets. *worker.Dispatcher satisfies it.
type JobDispatcher interface {
	EnqueueReceipt(ctx context.Context, sale model.Sale) error
	EnqueueClosing(ctx context.Context, p worker.ClosingJobPayload) error
}

type ActionsHandler struct {
	svc  service.CashierService
	jobs JobDispatcher
	now  func() time.Time
}

// NewActionsHandler wires the handler. jobs may be nil when Redis is off.
func NewActionsHandler(svc service.CashierService, jobs JobDispatcher) *ActionsHandler {
	return &ActionsHandler{svc: svc, jobs: jobs, now: time.Now}
}

// Handle feeds one operator action into the cashier state machine.
// POST /v1/actions. Every outcome of the state machine, including access
// denied, is a 200 carrying the render request.
func (h *ActionsHandler) Handle(c *gin.Context) {
	var req dto.ActionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	action, err := req.ToAction()
	if err != nil {
		_ = c.Error(err)
		return
	}

	operatorID := middleware.GetClaims(c).OperatorID
	res := h.svc.HandleAction(operatorID, action)

	resp := dto.ActionResponse{OperatorID: operatorID, Render: res.Render}
	if res.Sale != nil {
		id := res.Sale.ID.String()
		resp.SaleID = &id
	}
	h.enqueue(c.Request.Context(), operatorID, res)

	c.JSON(http.StatusOK, resp)
}

// enqueue runs after the state change is committed; failures are logged
// and never change the response.
func (h *ActionsHandler) enqueue(ctx context.Context, operatorID int64, res service.Result) {
	if h.jobs == nil {
		return
	}
	if res.Sale != nil {
		if err := h.jobs.EnqueueReceipt(ctx, *res.Sale); err != nil {
			log.Error().Err(err).Str("sale_id", res.Sale.ID.String()).Msg("failed to enqueue receipt")
		}
	}
	if res.Cleared != nil && !res.Cleared.Empty() {
		p := worker.ClosingJobPayload{Report: *res.Cleared, ClosedAt: h.now(), OperatorID: operatorID}
		if err := h.jobs.EnqueueClosing(ctx, p); err != nil {
			log.Error().Err(err).Int64("operator_id", operatorID).Msg("failed to enqueue closing report")
		}
	}
}
