// Package ledger keeps the completed sales of the current process lifetime.
package ledger

import (
	"sort"
	"sync"

	"github.com/tuanona/kasir-bot/internal/model"

	"github.com/shopspring/decimal"
)

// Ledger is the append-only sales store. Entries are only ever removed in
// bulk by ResetAll.
type Ledger interface {
	Append(sale model.Sale)
	Report() Report
	// ResetAll clears every entry and returns the report of what was cleared.
	ResetAll() Report
	Len() int
}

// ItemQuantity is the aggregated quantity sold of one item.
type ItemQuantity struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

// Report aggregates the ledger. Items are sorted by name.
type Report struct {
	Transactions int             `json:"transactions"`
	Items        []ItemQuantity  `json:"items"`
	Cash         decimal.Decimal `json:"cash"`
	QRIS         decimal.Decimal `json:"qris"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

func (r Report) Empty() bool { return r.Transactions == 0 }

// Qty returns the aggregated quantity of item.
func (r Report) Qty(item string) int {
	for _, iq := range r.Items {
		if iq.Item == item {
			return iq.Qty
		}
	}
	return 0
}

// Aggregate builds a report over sales.
func Aggregate(sales []model.Sale) Report {
	r := Report{
		Transactions: len(sales),
		Cash:         decimal.Zero,
		QRIS:         decimal.Zero,
		GrandTotal:   decimal.Zero,
	}
	qty := make(map[string]int)
	for _, s := range sales {
		r.GrandTotal = r.GrandTotal.Add(s.Total)
		if s.Method == model.PaymentCash {
			r.Cash = r.Cash.Add(s.Total)
		} else {
			r.QRIS = r.QRIS.Add(s.Total)
		}
		for _, l := range s.Items {
			qty[l.Item] += l.Qty
		}
	}
	for item, n := range qty {
		r.Items = append(r.Items, ItemQuantity{Item: item, Qty: n})
	}
	sort.Slice(r.Items, func(i, j int) bool { return r.Items[i].Item < r.Items[j].Item })
	return r
}

// MemoryLedger is a mutex-guarded in-process Ledger.
type MemoryLedger struct {
	mu    sync.RWMutex
	sales []model.Sale
}

func NewMemoryLedger() *MemoryLedger { return &MemoryLedger{} }

func (l *MemoryLedger) Append(sale model.Sale) {
	sale.Items = sale.Items.Clone()
	l.mu.Lock()
	l.sales = append(l.sales, sale)
	l.mu.Unlock()
}

func (l *MemoryLedger) Report() Report {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Aggregate(l.sales)
}

func (l *MemoryLedger) ResetAll() Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := Aggregate(l.sales)
	l.sales = nil
	return r
}

func (l *MemoryLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sales)
}

// Sales returns a copy of the entries in append order.
func (l *MemoryLedger) Sales() []model.Sale {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Sale, len(l.sales))
	copy(out, l.sales)
	return out
}

var _ Ledger = (*MemoryLedger)(nil)
