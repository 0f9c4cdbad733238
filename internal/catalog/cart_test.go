package catalog

import (
	"slices"
	"testing"

	"github.com/tuanona/kasir-bot/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return New(
		Entry{"A", decimal.NewFromInt(1000)},
		Entry{"B", decimal.NewFromInt(2000)},
		Entry{"X", decimal.NewFromInt(14000)},
	)
}

func TestPriceOfUnknownItemIsZero(t *testing.T) {
	c := testCatalog()
	assert.True(t, c.PriceOf("A").Equal(decimal.NewFromInt(1000)))
	assert.True(t, c.PriceOf("nope").IsZero())
	assert.False(t, c.Has("nope"))
}

func TestDefaultCatalogOrder(t *testing.T) {
	items := Default().Items()
	require.Len(t, items, 8)
	assert.Equal(t, "🍵 Matcha OG", items[0].Name)
	assert.Equal(t, "🍊 Orange Matcha", items[7].Name)
	assert.True(t, items[2].Price.Equal(decimal.NewFromInt(17000)))
}

func TestApplyDeltaIncrementAndDecrement(t *testing.T) {
	var cart model.Cart
	cart = ApplyDelta(cart, "A", 1)
	cart = ApplyDelta(cart, "B", 1)
	cart = ApplyDelta(cart, "A", 1)
	assert.Equal(t, model.Cart{{Item: "A", Qty: 2}, {Item: "B", Qty: 1}}, cart)

	cart = ApplyDelta(cart, "B", -1)
	assert.Equal(t, model.Cart{{Item: "A", Qty: 2}}, cart)
	assert.Equal(t, 0, cart.Qty("B"))
}

func TestApplyDeltaNeverLeavesZeroOrNegative(t *testing.T) {
	cart := model.Cart{{Item: "A", Qty: 1}}
	for i := 0; i < 5; i++ {
		cart = ApplyDelta(cart, "A", -1)
		for _, l := range cart {
			assert.Greater(t, l.Qty, 0)
		}
	}
	assert.True(t, cart.Empty())
}

func TestApplyDeltaDecrementAbsentIsNoop(t *testing.T) {
	cart := model.Cart{{Item: "A", Qty: 3}}
	out := ApplyDelta(cart, "B", -1)
	assert.Equal(t, cart, out)
}

func TestApplyDeltaDoesNotMutateInput(t *testing.T) {
	cart := model.Cart{{Item: "A", Qty: 1}}
	_ = ApplyDelta(cart, "A", 1)
	_ = ApplyDelta(cart, "A", -1)
	assert.Equal(t, model.Cart{{Item: "A", Qty: 1}}, cart)
}

func TestTotal(t *testing.T) {
	c := testCatalog()
	assert.True(t, c.Total(nil).IsZero())

	cart := model.Cart{{Item: "A", Qty: 2}, {Item: "B", Qty: 1}, {Item: "ghost", Qty: 4}}
	assert.True(t, c.Total(cart).Equal(decimal.NewFromInt(4000)), "got %s", c.Total(cart))
}

func TestSummaryLines(t *testing.T) {
	c := testCatalog()

	assert.Equal(t, []string{EmptyCartLine}, slices.Collect(c.SummaryLines(nil)))

	cart := model.Cart{{Item: "X", Qty: 2}, {Item: "A", Qty: 1}}
	assert.Equal(t, []string{
		"• X x2 = Rp28.000",
		"• A x1 = Rp1.000",
	}, slices.Collect(c.SummaryLines(cart)))
}

func TestSummaryLinesStopsEarly(t *testing.T) {
	c := testCatalog()
	cart := model.Cart{{Item: "X", Qty: 1}, {Item: "A", Qty: 1}}
	var got []string
	for line := range c.SummaryLines(cart) {
		got = append(got, line)
		break
	}
	assert.Len(t, got, 1)
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp0", FormatRupiah(decimal.Zero))
	assert.Equal(t, "Rp14.000", FormatRupiah(decimal.NewFromInt(14000)))
	assert.Equal(t, "Rp1.250.000", FormatRupiah(decimal.NewFromInt(1250000)))
}
