package infra

import (
	"fmt"
	"time"

	"github.com/tuanona/kasir-bot/internal/ledger"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary = "Ringkasan"
	sheetItems   = "Item"
)

// ReportFileName is the attachment name for a closing report taken at t.
func ReportFileName(t time.Time) string {
	return fmt.Sprintf("rekap_%s.xlsx", t.Format("20060102_1504"))
}

// BuildReportXLSX renders a closing report as a two-sheet workbook: the
// totals by payment method and the quantities sold per item.
func BuildReportXLSX(r ledger.Report, closedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetItems); err != nil {
		return nil, fmt.Errorf("xlsx: new sheet: %w", err)
	}

	// ── Summary ──────────────────────────────────────────────────────────────
	rows := [][]interface{}{
		{"Keterangan", "Nilai"},
		{"Ditutup", closedAt.Format("02/01/2006 15:04")},
		{"Transaksi", r.Transactions},
		{"Cash", r.Cash.IntPart()},
		{"QRIS", r.QRIS.IntPart()},
		{"Grand Total", r.GrandTotal.IntPart()},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(sheetSummary, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: set %s: %w", cell, err)
			}
		}
	}
	_ = f.SetCellStyle(sheetSummary, "A1", "B1", headerStyle)
	_ = f.SetCellStyle(sheetSummary, "B4", "B6", moneyStyle)
	_ = f.SetColWidth(sheetSummary, "A", "B", 18)

	// ── Items ────────────────────────────────────────────────────────────────
	for i, h := range []string{"Item", "Qty"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetItems, cell, h)
		_ = f.SetCellStyle(sheetItems, cell, cell, headerStyle)
	}
	for i, iq := range r.Items {
		row := i + 2
		_ = f.SetCellValue(sheetItems, fmt.Sprintf("A%d", row), iq.Item)
		_ = f.SetCellValue(sheetItems, fmt.Sprintf("B%d", row), iq.Qty)
	}
	_ = f.SetColWidth(sheetItems, "A", "A", 26)
	_ = f.SetPanes(sheetItems, &excelize.Panes{Freeze: true, Split: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
