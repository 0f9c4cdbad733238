package model

import "fmt"

// View is the conversational state an operator's session is parked in.
type View int

const (
	ViewWelcome View = iota
	ViewGettingName
	ViewMenu
	ViewItemDetail
	ViewCheckout
	ViewWaitingCash
	ViewQRIS
	ViewPostTransaction
	ViewAdminPanel
	ViewAdminRekap
)

var viewNames = [...]string{
	ViewWelcome:         "welcome",
	ViewGettingName:     "getting_name",
	ViewMenu:            "menu",
	ViewItemDetail:      "item_detail",
	ViewCheckout:        "checkout",
	ViewWaitingCash:     "waiting_cash",
	ViewQRIS:            "qris",
	ViewPostTransaction: "post_transaction",
	ViewAdminPanel:      "admin_panel",
	ViewAdminRekap:      "admin_rekap",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[v]
}

// MarshalText renders the view by name so JSON payloads stay readable.
func (v View) MarshalText() ([]byte, error) {
	if v < 0 || int(v) >= len(viewNames) {
		return nil, fmt.Errorf("model: unknown view %d", int(v))
	}
	return []byte(viewNames[v]), nil
}

func (v *View) UnmarshalText(b []byte) error {
	for i, n := range viewNames {
		if n == string(b) {
			*v = View(i)
			return nil
		}
	}
	return fmt.Errorf("model: unknown view %q", string(b))
}
