package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tuanona/kasir-bot/internal/catalog"
	"github.com/tuanona/kasir-bot/internal/infra"
	"github.com/tuanona/kasir-bot/internal/ledger"
	"github.com/tuanona/kasir-bot/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

type stubSender struct {
	calls    int
	to       string
	fileName string
	body     string
	xlsx     []byte
	err      error
}

func (s *stubSender) SendReport(to, _, body, fileName string, xlsx []byte) error {
	s.calls++
	s.to, s.body, s.fileName, s.xlsx = to, body, fileName, xlsx
	return s.err
}

var _ ReportSender = (*stubSender)(nil)
var _ ReportSender = (*infra.Mailer)(nil)
var _ Processor = (*ReceiptWorker)(nil)
var _ Processor = (*ClosingWorker)(nil)

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func sampleSale() model.Sale {
	return model.Sale{
		ID:           uuid.New(),
		Timestamp:    time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC),
		OperatorID:   7,
		CustomerName: "Sari",
		Items:        model.Cart{{Item: "🍵 Matcha OG", Qty: 2}},
		Total:        decimal.NewFromInt(28000),
		Method:       model.PaymentQRIS,
	}
}

func sampleClosing() ClosingJobPayload {
	return ClosingJobPayload{
		Report: ledger.Report{
			Transactions: 1,
			Items:        []ledger.ItemQuantity{{Item: "🍵 Matcha OG", Qty: 2}},
			QRIS:         decimal.NewFromInt(28000),
			GrandTotal:   decimal.NewFromInt(28000),
		},
		ClosedAt:   time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC),
		OperatorID: 1,
	}
}

func summaryText(r ledger.Report) string { return fmt.Sprintf("transaksi: %d", r.Transactions) }

// ── Receipt worker ───────────────────────────────────────────────────────────

func TestReceiptWorker_WritesPDF(t *testing.T) {
	dir := t.TempDir()
	w := NewReceiptWorker(catalog.Default(), "Matcha Kasir", dir)
	sale := sampleSale()

	require.NoError(t, w.Process(context.Background(), mustJSON(t, sale)))

	_, err := os.Stat(filepath.Join(dir, infra.ReceiptFileName(sale)))
	assert.NoError(t, err)
}

func TestReceiptWorker_InvalidPayloadIsPermanent(t *testing.T) {
	w := NewReceiptWorker(catalog.Default(), "Matcha Kasir", t.TempDir())

	err := w.Process(context.Background(), json.RawMessage(`"nope"`))
	var perm *PermanentError
	assert.ErrorAs(t, err, &perm)

	err = w.Process(context.Background(), mustJSON(t, model.Sale{ID: uuid.New()}))
	assert.ErrorAs(t, err, &perm)
}

// ── Closing worker ───────────────────────────────────────────────────────────

func TestClosingWorker_SendsWorkbook(t *testing.T) {
	sender := &stubSender{}
	w := NewClosingWorker(sender, infra.NewCircuitBreaker(infra.DefaultCBConfig()), "owner@shop.id", summaryText)

	require.NoError(t, w.Process(context.Background(), mustJSON(t, sampleClosing())))

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "owner@shop.id", sender.to)
	assert.Equal(t, "rekap_20240501_2200.xlsx", sender.fileName)
	assert.Equal(t, "transaksi: 1", sender.body)
	assert.NotEmpty(t, sender.xlsx)
}

func TestClosingWorker_SendFailureIsRetryable(t *testing.T) {
	sender := &stubSender{err: errors.New("smtp down")}
	w := NewClosingWorker(sender, infra.NewCircuitBreaker(infra.DefaultCBConfig()), "owner@shop.id", summaryText)

	err := w.Process(context.Background(), mustJSON(t, sampleClosing()))
	require.Error(t, err)
	var perm *PermanentError
	assert.False(t, errors.As(err, &perm))
}

func TestClosingWorker_OpenCircuitSkipsSend(t *testing.T) {
	sender := &stubSender{err: errors.New("smtp down")}
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Hour})
	w := NewClosingWorker(sender, cb, "owner@shop.id", summaryText)
	payload := mustJSON(t, sampleClosing())

	_ = w.Process(context.Background(), payload)
	err := w.Process(context.Background(), payload)

	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
	assert.Equal(t, 1, sender.calls)
}

func TestProcessorFunc(t *testing.T) {
	var got string
	p := ProcessorFunc(func(_ context.Context, raw json.RawMessage) error {
		got = string(raw)
		return nil
	})
	require.NoError(t, p.Process(context.Background(), json.RawMessage(`{}`)))
	assert.Equal(t, "{}", got)
}
