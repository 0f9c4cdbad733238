package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod: "Cash" | "QRIS"
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentQRIS PaymentMethod = "QRIS"
)

// Sale is an immutable ledger entry for one completed transaction.
// CashReceived and Change are zero for QRIS payments.
type Sale struct {
	ID           uuid.UUID       `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	OperatorID   int64           `json:"operator_id"`
	CustomerName string          `json:"customer_name"`
	Items        Cart            `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Method       PaymentMethod   `json:"payment_method"`
	CashReceived decimal.Decimal `json:"cash_received"`
	Change       decimal.Decimal `json:"change"`
}
