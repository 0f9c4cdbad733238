package model

import "github.com/shopspring/decimal"

// CartLine is one item of an in-progress order. Qty is always >= 1.
type CartLine struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

// Cart keeps lines in insertion order; an item absent from the cart has
// quantity zero.
type Cart []CartLine

// Qty returns the quantity of item, or 0 when it is not in the cart.
func (c Cart) Qty(item string) int {
	for _, l := range c {
		if l.Item == item {
			return l.Qty
		}
	}
	return 0
}

func (c Cart) Empty() bool { return len(c) == 0 }

// Clone returns an independent copy; sales keep clones so later cart
// edits never leak into the ledger.
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Session is the mutable per-operator conversation record.
type Session struct {
	CustomerName string
	Cart         Cart
	View         View
	// DetailItem is the item shown while View == ViewItemDetail.
	DetailItem string
	// Total is the cart total captured at checkout; payment is compared
	// against it, not against the live cart.
	Total decimal.Decimal
}

// NewSession returns the default record for an operator seen for the first time.
func NewSession() Session {
	return Session{View: ViewWelcome, Total: decimal.Zero}
}

// ResetOrder clears the order fields. The caller sets the next view.
func (s *Session) ResetOrder() {
	s.CustomerName = ""
	s.Cart = nil
	s.DetailItem = ""
	s.Total = decimal.Zero
}

// ResetFull clears the order and returns the session to the welcome view.
func (s *Session) ResetFull() {
	s.ResetOrder()
	s.View = ViewWelcome
}
