package model

import "fmt"

// Signal is a discrete operator choice (a button press on the chat side).
type Signal int

const (
	SignalNone Signal = iota
	SignalBeginOrder
	SignalOpenAdmin
	SignalSelectItem
	SignalIncrement
	SignalDecrement
	SignalBackToMenu
	SignalCheckout
	SignalPayCash
	SignalPayQRIS
	SignalQRISDone
	SignalBackToCheckout
	SignalNewCustomer
	SignalContinueSameCustomer
	SignalEndSession
	SignalAdminReport
	SignalAdminReset
)

var signalNames = [...]string{
	SignalNone:                 "",
	SignalBeginOrder:           "begin_order",
	SignalOpenAdmin:            "open_admin",
	SignalSelectItem:           "select_item",
	SignalIncrement:            "increment",
	SignalDecrement:            "decrement",
	SignalBackToMenu:           "back_to_menu",
	SignalCheckout:             "checkout",
	SignalPayCash:              "pay_cash",
	SignalPayQRIS:              "pay_qris",
	SignalQRISDone:             "qris_done",
	SignalBackToCheckout:       "back_to_checkout",
	SignalNewCustomer:          "new_customer",
	SignalContinueSameCustomer: "continue_same_customer",
	SignalEndSession:           "end_session",
	SignalAdminReport:          "admin_report",
	SignalAdminReset:           "admin_reset",
}

func (s Signal) String() string {
	if s < 0 || int(s) >= len(signalNames) {
		return "unknown"
	}
	return signalNames[s]
}

func (s Signal) MarshalText() ([]byte, error) {
	if s <= SignalNone || int(s) >= len(signalNames) {
		return nil, fmt.Errorf("model: unknown signal %d", int(s))
	}
	return []byte(signalNames[s]), nil
}

// ParseSignal maps a wire identifier back to its Signal.
func ParseSignal(name string) (Signal, error) {
	for i, n := range signalNames {
		if i > 0 && n == name {
			return Signal(i), nil
		}
	}
	return SignalNone, fmt.Errorf("model: unknown signal %q", name)
}

func (s *Signal) UnmarshalText(b []byte) error {
	sig, err := ParseSignal(string(b))
	if err != nil {
		return err
	}
	*s = sig
	return nil
}

// AdminOnly reports whether the signal requires an administrator.
func (s Signal) AdminOnly() bool {
	switch s {
	case SignalOpenAdmin, SignalAdminReport, SignalAdminReset:
		return true
	}
	return false
}

// ActionKind distinguishes the three shapes of inbound operator input.
type ActionKind int

const (
	ActionStart ActionKind = iota
	ActionText
	ActionSignal
)

// Action is one decoded operator input. Item is only meaningful for
// item-scoped signals (select, increment, decrement).
type Action struct {
	Kind   ActionKind
	Text   string
	Signal Signal
	Item   string
}

func Start() Action { return Action{Kind: ActionStart} }

func Text(s string) Action { return Action{Kind: ActionText, Text: s} }

func Press(s Signal) Action { return Action{Kind: ActionSignal, Signal: s} }

func PressItem(s Signal, item string) Action {
	return Action{Kind: ActionSignal, Signal: s, Item: item}
}
