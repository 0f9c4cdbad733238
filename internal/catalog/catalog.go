// Package catalog holds the fixed price list and the pure cart arithmetic
// built on it.
package catalog

import (
	"github.com/shopspring/decimal"
)

// Entry is one sellable item and its unit price.
type Entry struct {
	Name  string
	Price decimal.Decimal
}

// Catalog is an immutable name→price mapping that remembers display order.
type Catalog struct {
	entries []Entry
	prices  map[string]decimal.Decimal
}

// New builds a catalog. Later duplicates of a name override the price but
// keep the first position.
func New(entries ...Entry) *Catalog {
	c := &Catalog{prices: make(map[string]decimal.Decimal, len(entries))}
	for _, e := range entries {
		if _, seen := c.prices[e.Name]; !seen {
			c.entries = append(c.entries, e)
		} else {
			for i := range c.entries {
				if c.entries[i].Name == e.Name {
					c.entries[i].Price = e.Price
				}
			}
		}
		c.prices[e.Name] = e.Price
	}
	return c
}

// Default is the matcha bar menu the bot ships with.
func Default() *Catalog {
	return New(
		Entry{"🍵 Matcha OG", decimal.NewFromInt(14000)},
		Entry{"🍓 Strawberry Matcha", decimal.NewFromInt(16000)},
		Entry{"🍪 Matcha Cookies", decimal.NewFromInt(17000)},
		Entry{"🍫 Choco Matcha", decimal.NewFromInt(16000)},
		Entry{"☁️ Matcha Cloud", decimal.NewFromInt(15000)},
		Entry{"🍯 Honey Matcha", decimal.NewFromInt(15000)},
		Entry{"🥥 Coconut Matcha", decimal.NewFromInt(15000)},
		Entry{"🍊 Orange Matcha", decimal.NewFromInt(14000)},
	)
}

// PriceOf returns the unit price, or zero for an unknown item.
func (c *Catalog) PriceOf(item string) decimal.Decimal {
	if p, ok := c.prices[item]; ok {
		return p
	}
	return decimal.Zero
}

func (c *Catalog) Has(item string) bool {
	_, ok := c.prices[item]
	return ok
}

// Items returns the entries in display order.
func (c *Catalog) Items() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
