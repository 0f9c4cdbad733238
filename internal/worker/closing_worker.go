package worker

// closing_worker.go
// Exports the ledger cleared by an administrator reset as an XLSX workbook
// and mails it to the shop owner.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tuanona/kasir-bot/internal/infra"
	"github.com/tuanona/kasir-bot/internal/ledger"

	"github.com/rs/zerolog/log"
)

// ReportSender delivers a closing workbook. *infra.Mailer satisfies it.
type ReportSender interface {
	SendReport(to, subject, body, fileName string, xlsx []byte) error
}

type ClosingWorker struct {
	sender  ReportSender
	cb      *infra.CircuitBreaker
	to      string
	summary func(ledger.Report) string
}

// NewClosingWorker wires the mailer behind cb. summary renders the mail body.
func NewClosingWorker(sender ReportSender, cb *infra.CircuitBreaker, to string, summary func(ledger.Report) string) *ClosingWorker {
	return &ClosingWorker{sender: sender, cb: cb, to: to, summary: summary}
}

func (w *ClosingWorker) Process(_ context.Context, raw json.RawMessage) error {
	var p ClosingJobPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return permanent(fmt.Errorf("closing_worker: invalid payload: %w", err))
	}

	xlsx, err := infra.BuildReportXLSX(p.Report, p.ClosedAt)
	if err != nil {
		return permanent(err)
	}

	subject := fmt.Sprintf("Rekap penjualan %s", p.ClosedAt.Format("02/01/2006 15:04"))
	err = w.cb.Execute(func() error {
		return w.sender.SendReport(w.to, subject, w.summary(p.Report), infra.ReportFileName(p.ClosedAt), xlsx)
	})
	if err != nil {
		return fmt.Errorf("closing_worker: send report: %w", err)
	}

	log.Info().
		Int("transactions", p.Report.Transactions).
		Str("grand_total", p.Report.GrandTotal.String()).
		Str("to", w.to).
		Msg("closing_worker: report sent")
	return nil
}
