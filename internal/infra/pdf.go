package infra

// pdf.go: thermal-style receipt for a completed sale (go-pdf/fpdf).
// Output: storagePath/receipt_{yyyymmdd}_{id8}.pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tuanona/kasir-bot/internal/catalog"
	"github.com/tuanona/kasir-bot/internal/model"

	"github.com/go-pdf/fpdf"
)

// ReceiptFileName is the file name GenerateReceiptPDF writes for sale.
func ReceiptFileName(sale model.Sale) string {
	return fmt.Sprintf("receipt_%s_%s.pdf", sale.Timestamp.Format("20060102"), sale.ID.String()[:8])
}

// GenerateReceiptPDF renders sale as a 58mm-wide receipt and returns the
// path of the written file. storagePath is created if needed.
func GenerateReceiptPDF(sale model.Sale, cat *catalog.Catalog, shopName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, ReceiptFileName(sale))

	// Height grows with the number of lines.
	height := 80 + float64(len(sale.Items))*5
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 58, Ht: height},
	})
	pdf.SetMargins(3, 3, 3)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 6

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, printable(shopName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Struk Pembayaran", "", 1, "C", false, 0, "")
	pdf.Ln(1)

	pdf.CellFormat(contentW, 4, "Pelanggan: "+printable(sale.CustomerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, sale.Timestamp.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Metode: "+string(sale.Method), "", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.Line(3, pdf.GetY(), pageW-3, pdf.GetY())
	pdf.Ln(1)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.50
	col2 := contentW * 0.14
	col3 := contentW * 0.36

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 4, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 4, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 4, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, line := range sale.Items {
		name := printable(line.Item)
		if r := []rune(name); len(r) > 20 {
			name = string(r[:19]) + "."
		}
		pdf.CellFormat(col1, 4, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, fmt.Sprintf("x%d", line.Qty), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 4, catalog.FormatRupiah(cat.Subtotal(line)), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(3, pdf.GetY(), pageW-3, pdf.GetY())
	pdf.Ln(1)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 5, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, catalog.FormatRupiah(sale.Total), "", 1, "R", false, 0, "")

	if sale.Method == model.PaymentCash {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(col1+col2, 4, "Tunai", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, catalog.FormatRupiah(sale.CashReceived), "", 1, "R", false, 0, "")
		pdf.CellFormat(col1+col2, 4, "Kembalian", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, catalog.FormatRupiah(sale.Change), "", 1, "R", false, 0, "")
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 4, "LUNAS", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Terima kasih!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// printable keeps the ASCII subset the core fonts encode; item names carry emoji.
func printable(s string) string {
	out := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || (r != ' ' && !unicode.IsPrint(r)) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(out)
}
