package catalog

import (
	"fmt"
	"iter"

	"github.com/tuanona/kasir-bot/internal/model"

	"github.com/shopspring/decimal"
)

// EmptyCartLine is the single summary line of a cart with nothing in it.
const EmptyCartLine = "Keranjang kosong."

// ApplyDelta returns a new cart with item's quantity moved by delta.
// +1 always adds; -1 is clamped at zero and a line that reaches zero is
// removed. Any other delta leaves the quantities untouched.
func ApplyDelta(cart model.Cart, item string, delta int) model.Cart {
	out := cart.Clone()
	idx := -1
	for i, l := range out {
		if l.Item == item {
			idx = i
			break
		}
	}

	switch delta {
	case 1:
		if idx < 0 {
			return append(out, model.CartLine{Item: item, Qty: 1})
		}
		out[idx].Qty++
	case -1:
		if idx < 0 {
			return out
		}
		out[idx].Qty--
		if out[idx].Qty <= 0 {
			out = append(out[:idx], out[idx+1:]...)
		}
	}
	return out
}

// Total is Σ PriceOf(item) × qty over the cart.
func (c *Catalog) Total(cart model.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, l := range cart {
		total = total.Add(c.Subtotal(l))
	}
	return total
}

func (c *Catalog) Subtotal(l model.CartLine) decimal.Decimal {
	return c.PriceOf(l.Item).Mul(decimal.NewFromInt(int64(l.Qty)))
}

// SummaryLines yields one "• item xN = RpX" line per cart line, in cart
// order, or EmptyCartLine once for an empty cart.
func (c *Catalog) SummaryLines(cart model.Cart) iter.Seq[string] {
	return func(yield func(string) bool) {
		if cart.Empty() {
			yield(EmptyCartLine)
			return
		}
		for _, l := range cart {
			if !yield(fmt.Sprintf("• %s x%d = %s", l.Item, l.Qty, FormatRupiah(c.Subtotal(l)))) {
				return
			}
		}
	}
}
