package catalog

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders whole rupiah with Indonesian grouping: Rp14.000.
func FormatRupiah(amount decimal.Decimal) string {
	return idPrinter.Sprintf("Rp%d", amount.IntPart())
}
