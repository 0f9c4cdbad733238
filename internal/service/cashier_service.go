package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tuanona/kasir-bot/internal/catalog"
	"github.com/tuanona/kasir-bot/internal/ledger"
	"github.com/tuanona/kasir-bot/internal/model"
	"github.com/tuanona/kasir-bot/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CashierService is the per-operator conversation controller. It never
// performs I/O: the caller delivers the render request and handles any
// follow-up work for a completed sale or a ledger reset.
type CashierService interface {
	HandleAction(operatorID int64, action model.Action) Result
}

// Result is the outcome of one action. Sale is set when the action
// completed a payment; Cleared is set when an administrator reset the
// ledger and holds the report of the cleared entries.
type Result struct {
	Render  model.RenderRequest
	Sale    *model.Sale
	Cleared *ledger.Report
}

type cashierService struct {
	catalog *catalog.Catalog
	store   session.Store
	ledger  ledger.Ledger
	policy  *Policy
	now     func() time.Time
}

// NewCashierService wires the state machine. A nil clock means time.Now.
func NewCashierService(cat *catalog.Catalog, store session.Store, led ledger.Ledger, policy *Policy, clock func() time.Time) CashierService {
	if clock == nil {
		clock = time.Now
	}
	return &cashierService{catalog: cat, store: store, ledger: led, policy: policy, now: clock}
}

func (s *cashierService) HandleAction(operatorID int64, action model.Action) Result {
	role := s.policy.Classify(operatorID)
	if !role.IsOperator() {
		log.Warn().Int64("operator_id", operatorID).Msg("access denied")
		return Result{Render: model.RenderRequest{Text: textAccessDenied, Error: model.ErrUnauthorized}}
	}

	var res Result
	s.store.Update(operatorID, func(sess *model.Session) {
		t := &turn{svc: s, operatorID: operatorID, role: role, sess: sess}
		res = t.handle(action)
	})
	return res
}

// turn carries the state of a single action while the operator's session
// is locked.
type turn struct {
	svc        *cashierService
	operatorID int64
	role       Role
	sess       *model.Session
}

func (t *turn) handle(a model.Action) Result {
	switch a.Kind {
	case model.ActionStart:
		t.sess.ResetFull()
		return t.show(renderWelcome(t.role))
	case model.ActionText:
		return t.onText(strings.TrimSpace(a.Text))
	case model.ActionSignal:
		if a.Signal.AdminOnly() && !t.role.IsAdmin() {
			log.Warn().Int64("operator_id", t.operatorID).Stringer("signal", a.Signal).Msg("admin action ignored")
			return Result{Render: model.RenderRequest{View: t.sess.View, Error: model.ErrForbidden}}
		}
		return t.onSignal(a)
	}
	return t.notice(model.ErrValidation, textUnknownAction)
}

// ── Free text ─────────────────────────────────────────────────────────────────

func (t *turn) onText(text string) Result {
	switch t.sess.View {
	case model.ViewGettingName:
		n := utf8.RuneCountInString(text)
		if n < minCustomerNameLen || n > maxCustomerNameLen {
			return t.reply(model.ErrValidation, textInvalidName)
		}
		t.sess.CustomerName = text
		return t.toMenu()

	case model.ViewWaitingCash:
		cash, ok := ParseCash(text)
		if !ok {
			return t.reply(model.ErrValidation,
				"❌ Format tidak valid. Masukkan angka saja.\nTotal: "+catalog.FormatRupiah(t.sess.Total))
		}
		if cash.LessThan(t.sess.Total) {
			short := t.sess.Total.Sub(cash)
			return t.reply(model.ErrValidation,
				"💰 Uang kurang. Dibutuhkan "+catalog.FormatRupiah(short)+" lagi.")
		}
		return t.completeSale(model.PaymentCash, cash)
	}
	return t.reply(model.ErrValidation, textUseButtons)
}

// ── Signals ───────────────────────────────────────────────────────────────────

func (t *turn) onSignal(a model.Action) Result {
	cat := t.svc.catalog
	view := t.sess.View

	switch a.Signal {
	case model.SignalBeginOrder:
		if view == model.ViewWelcome {
			t.sess.ResetOrder()
			t.sess.View = model.ViewGettingName
			return t.show(renderAskName(textAskName))
		}

	case model.SignalOpenAdmin:
		if view == model.ViewWelcome || view == model.ViewMenu || view == model.ViewAdminRekap {
			t.sess.View = model.ViewAdminPanel
			return t.show(renderAdminPanel(textAdminPanel))
		}

	case model.SignalSelectItem:
		if view == model.ViewMenu {
			if !cat.Has(a.Item) {
				return t.notice(model.ErrValidation, textUnknownItem)
			}
			t.sess.DetailItem = a.Item
			t.sess.View = model.ViewItemDetail
			return t.show(renderItemDetail(cat, t.sess))
		}

	case model.SignalIncrement, model.SignalDecrement:
		if view == model.ViewItemDetail {
			item := a.Item
			if item == "" {
				item = t.sess.DetailItem
			}
			if item != t.sess.DetailItem {
				return t.notice(model.ErrValidation, textUnknownItem)
			}
			delta := 1
			if a.Signal == model.SignalDecrement {
				delta = -1
			}
			t.sess.Cart = catalog.ApplyDelta(t.sess.Cart, item, delta)
			return t.show(renderItemDetail(cat, t.sess))
		}

	case model.SignalBackToMenu:
		if view == model.ViewItemDetail || view == model.ViewCheckout {
			return t.toMenu()
		}

	case model.SignalCheckout:
		if view == model.ViewMenu {
			if t.sess.Cart.Empty() {
				return t.notice(model.ErrEmptyCart, textEmptyCart)
			}
			t.sess.Total = cat.Total(t.sess.Cart)
			return t.toCheckout()
		}

	case model.SignalPayCash:
		if view == model.ViewCheckout {
			t.sess.View = model.ViewWaitingCash
			return t.show(renderWaitingCash(t.sess))
		}

	case model.SignalPayQRIS:
		if view == model.ViewCheckout {
			t.sess.View = model.ViewQRIS
			return t.show(renderQRIS(t.sess))
		}

	case model.SignalQRISDone:
		if view == model.ViewQRIS {
			return t.completeSale(model.PaymentQRIS, decimal.Zero)
		}

	case model.SignalBackToCheckout:
		if view == model.ViewQRIS || view == model.ViewWaitingCash {
			return t.toCheckout()
		}

	case model.SignalNewCustomer:
		if view == model.ViewPostTransaction {
			t.sess.ResetOrder()
			t.sess.View = model.ViewGettingName
			return t.show(renderAskName(textAskNextName))
		}

	case model.SignalContinueSameCustomer:
		if view == model.ViewPostTransaction {
			return t.toMenu()
		}

	case model.SignalEndSession:
		if view == model.ViewPostTransaction || view == model.ViewAdminPanel {
			t.sess.ResetFull()
			return t.show(renderWelcome(t.role))
		}

	case model.SignalAdminReport:
		if view == model.ViewAdminPanel {
			t.sess.View = model.ViewAdminRekap
			return t.show(renderRekap(t.svc.ledger.Report()))
		}

	case model.SignalAdminReset:
		if view == model.ViewAdminPanel {
			cleared := t.svc.ledger.ResetAll()
			log.Info().
				Int64("operator_id", t.operatorID).
				Int("transactions", cleared.Transactions).
				Str("grand_total", cleared.GrandTotal.String()).
				Msg("sales ledger reset by admin")
			return Result{Render: renderAdminPanel(textLedgerReset), Cleared: &cleared}
		}
	}
	return t.notice(model.ErrValidation, textUnknownAction)
}

// ── Transitions ───────────────────────────────────────────────────────────────

func (t *turn) toMenu() Result {
	t.sess.View = model.ViewMenu
	return t.show(renderMenu(t.svc.catalog, t.sess, t.role))
}

func (t *turn) toCheckout() Result {
	t.sess.View = model.ViewCheckout
	return t.show(renderCheckout(t.svc.catalog, t.sess))
}

// completeSale records the sale against the total captured at checkout.
// The ledger append is committed before the receipt is rendered.
func (t *turn) completeSale(method model.PaymentMethod, cash decimal.Decimal) Result {
	sale := model.Sale{
		ID:           uuid.New(),
		Timestamp:    t.svc.now(),
		OperatorID:   t.operatorID,
		CustomerName: t.sess.CustomerName,
		Items:        t.sess.Cart.Clone(),
		Total:        t.sess.Total,
		Method:       method,
		CashReceived: decimal.Zero,
		Change:       decimal.Zero,
	}
	if method == model.PaymentCash {
		sale.CashReceived = cash
		sale.Change = cash.Sub(t.sess.Total)
	}
	t.svc.ledger.Append(sale)
	log.Info().
		Int64("operator_id", t.operatorID).
		Str("sale_id", sale.ID.String()).
		Str("customer", sale.CustomerName).
		Str("method", string(method)).
		Str("total", sale.Total.String()).
		Msg("transaction saved")

	t.sess.View = model.ViewPostTransaction
	return Result{Render: renderReceipt(t.svc.catalog, sale), Sale: &sale}
}

// ── Rejections ────────────────────────────────────────────────────────────────

func (t *turn) show(r model.RenderRequest) Result { return Result{Render: r} }

// reply answers with a message and keeps the current view's choices on offer.
func (t *turn) reply(kind model.ErrorKind, text string) Result {
	return Result{Render: model.RenderRequest{
		View:    t.sess.View,
		Text:    text,
		Choices: t.current().Choices,
		Error:   kind,
	}}
}

// notice answers with a short alert; the transport keeps the previous message.
func (t *turn) notice(kind model.ErrorKind, text string) Result {
	return Result{Render: model.RenderRequest{View: t.sess.View, Notice: text, Error: kind}}
}

// current re-renders the session's view without changing it.
func (t *turn) current() model.RenderRequest {
	cat := t.svc.catalog
	switch t.sess.View {
	case model.ViewGettingName:
		return renderAskName(textAskName)
	case model.ViewMenu:
		return renderMenu(cat, t.sess, t.role)
	case model.ViewItemDetail:
		return renderItemDetail(cat, t.sess)
	case model.ViewCheckout:
		return renderCheckout(cat, t.sess)
	case model.ViewWaitingCash:
		return renderWaitingCash(t.sess)
	case model.ViewQRIS:
		return renderQRIS(t.sess)
	case model.ViewPostTransaction:
		return renderPostTransaction()
	case model.ViewAdminPanel:
		return renderAdminPanel(textAdminPanel)
	case model.ViewAdminRekap:
		return renderRekap(t.svc.ledger.Report())
	default:
		return renderWelcome(t.role)
	}
}
