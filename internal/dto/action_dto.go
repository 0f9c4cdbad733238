package dto

import (
	"fmt"

	"github.com/tuanona/kasir-bot/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ActionRequest is one operator input forwarded by the chat gateway.
type ActionRequest struct {
	Kind   string `json:"kind"   validate:"required,oneof=start text signal"`
	Text   string `json:"text"   validate:"max=500"`
	Signal string `json:"signal" validate:"required_if=Kind signal"`
	Item   string `json:"item"   validate:"max=100"`
}

// ToAction decodes the wire request into a model.Action. Signal names are
// resolved here so the state machine only ever sees closed enums; an
// unrecognised name becomes SignalNone and is answered by the state machine
// with a validation notice.
func (r ActionRequest) ToAction() (model.Action, error) {
	switch r.Kind {
	case "start":
		return model.Start(), nil
	case "text":
		return model.Text(r.Text), nil
	case "signal":
		sig, err := model.ParseSignal(r.Signal)
		if err != nil {
			sig = model.SignalNone
		}
		return model.PressItem(sig, r.Item), nil
	}
	return model.Action{}, fmt.Errorf("kind tidak dikenal: %q", r.Kind)
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ActionResponse struct {
	OperatorID int64               `json:"operator_id"`
	Render     model.RenderRequest `json:"render"`
	SaleID     *string             `json:"sale_id,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
