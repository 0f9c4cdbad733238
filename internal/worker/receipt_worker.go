package worker

// receipt_worker.go
// Renders a PDF receipt for every completed sale from QueueReceipt.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tuanona/kasir-bot/internal/catalog"
	"github.com/tuanona/kasir-bot/internal/infra"
	"github.com/tuanona/kasir-bot/internal/model"

	"github.com/rs/zerolog/log"
)

type ReceiptWorker struct {
	catalog     *catalog.Catalog
	shopName    string
	storagePath string
}

func NewReceiptWorker(cat *catalog.Catalog, shopName, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{catalog: cat, shopName: shopName, storagePath: storagePath}
}

// Process decodes a model.Sale and writes its receipt.
func (w *ReceiptWorker) Process(_ context.Context, raw json.RawMessage) error {
	var sale model.Sale
	if err := json.Unmarshal(raw, &sale); err != nil {
		return permanent(fmt.Errorf("receipt_worker: invalid payload: %w", err))
	}
	if len(sale.Items) == 0 {
		return permanent(fmt.Errorf("receipt_worker: sale %s has no items", sale.ID))
	}

	path, err := infra.GenerateReceiptPDF(sale, w.catalog, w.shopName, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().
		Str("sale_id", sale.ID.String()).
		Int64("operator_id", sale.OperatorID).
		Str("path", path).
		Msg("receipt_worker: receipt written")
	return nil
}
