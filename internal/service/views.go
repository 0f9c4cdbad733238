package service

import (
	"fmt"
	"strings"

	"github.com/tuanona/kasir-bot/internal/catalog"
	"github.com/tuanona/kasir-bot/internal/ledger"
	"github.com/tuanona/kasir-bot/internal/model"
)

// ── Texts ─────────────────────────────────────────────────────────────────────

const (
	textAccessDenied    = "🚫 Akses Ditolak. Anda tidak terdaftar."
	textWelcome         = "🍵 Selamat Datang di Matcha Kasir Bot!\n\nSilakan mulai sesi untuk mencatat transaksi."
	textAskName         = "👤 Silakan masukkan nama pelanggan:"
	textAskNextName     = "👤 Silakan masukkan nama pelanggan berikutnya:"
	textInvalidName     = "❌ Nama tidak valid (min 2, maks 50 karakter). Coba lagi:"
	textUseButtons      = "ℹ️ Silakan gunakan tombol yang tersedia atau /start untuk memulai ulang."
	textUnknownAction   = "⚠️ Aksi tidak tersedia di tampilan ini."
	textUnknownItem     = "⚠️ Item tidak ada di menu."
	textEmptyCart       = "🛒 Keranjang kosong!"
	textNextStep        = "Pilih langkah selanjutnya:"
	textAdminPanel      = "🔧 Panel Admin"
	textLedgerReset     = "🗑️ Data Penjualan Harian Berhasil Direset"
	textEmptyReport     = "📊 Rekap Penjualan\n\nBelum ada transaksi hari ini."
	receiptRule         = "========================="
	receiptTimeLayout   = "02/01/2006 15:04:05"
	minCustomerNameLen  = 2
	maxCustomerNameLen  = 50
)

// ── Choices ───────────────────────────────────────────────────────────────────

func choice(s model.Signal, label string) model.Choice {
	return model.Choice{Signal: s, Label: label}
}

func itemChoice(s model.Signal, item, label string) model.Choice {
	return model.Choice{Signal: s, Item: item, Label: label}
}

var (
	choiceBeginOrder   = choice(model.SignalBeginOrder, "✅ Mulai Sesi Transaksi")
	choiceAdminPanel   = choice(model.SignalOpenAdmin, "🔧 Admin Panel")
	choiceCheckout     = choice(model.SignalCheckout, "🛒 Checkout")
	choiceBackToMenu   = choice(model.SignalBackToMenu, "⬅️ Kembali ke Menu")
	choicePayCash      = choice(model.SignalPayCash, "💵 Cash")
	choicePayQRIS      = choice(model.SignalPayQRIS, "📱 QRIS")
	choiceQRISDone     = choice(model.SignalQRISDone, "✅ Pembayaran Selesai")
	choiceCancel       = choice(model.SignalBackToCheckout, "❌ Batal")
	choiceNewCustomer  = choice(model.SignalNewCustomer, "👤 Pelanggan Baru")
	choiceSameCustomer = choice(model.SignalContinueSameCustomer, "➕ Tambah Item (Pelanggan Sama)")
	choiceCloseShop    = choice(model.SignalEndSession, "🚪 Selesai Sesi (Tutup Toko)")
	choiceAdminReport  = choice(model.SignalAdminReport, "📊 Rekap Penjualan")
	choiceAdminReset   = choice(model.SignalAdminReset, "🗑️ Reset Data Harian")
	choiceHome         = choice(model.SignalEndSession, "🔙 Halaman Utama")
	choiceBackToAdmin  = choice(model.SignalOpenAdmin, "🔙 Kembali")
)

// ── Renderers ─────────────────────────────────────────────────────────────────
// Each renderer only reads the session; transitions set View before calling.

func renderWelcome(role Role) model.RenderRequest {
	choices := []model.Choice{choiceBeginOrder}
	if role.IsAdmin() {
		choices = append(choices, choiceAdminPanel)
	}
	return model.RenderRequest{View: model.ViewWelcome, Text: textWelcome, Choices: choices}
}

func renderAskName(text string) model.RenderRequest {
	return model.RenderRequest{View: model.ViewGettingName, Text: text}
}

func renderMenu(cat *catalog.Catalog, s *model.Session, role Role) model.RenderRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "👤 Pelanggan: %s\n\n", s.CustomerName)
	b.WriteString("🛒 Keranjang Saat Ini:\n")
	writeLines(&b, cat, s.Cart)
	fmt.Fprintf(&b, "\n\n💰 Total Sementara: %s\n\n", catalog.FormatRupiah(cat.Total(s.Cart)))
	b.WriteString("Silakan pilih item:")

	items := cat.Items()
	choices := make([]model.Choice, 0, len(items)+2)
	for _, e := range items {
		choices = append(choices, itemChoice(model.SignalSelectItem, e.Name, e.Name))
	}
	choices = append(choices, choiceCheckout)
	if role.IsAdmin() {
		choices = append(choices, choiceAdminPanel)
	}
	return model.RenderRequest{View: model.ViewMenu, Text: b.String(), Choices: choices}
}

func renderItemDetail(cat *catalog.Catalog, s *model.Session) model.RenderRequest {
	item := s.DetailItem
	price := cat.PriceOf(item)
	line := model.CartLine{Item: item, Qty: s.Cart.Qty(item)}
	text := fmt.Sprintf("🛍️ %s\n\n💰 Harga: %s\n🔢 Jumlah: %d\n💵 Subtotal: %s",
		item, catalog.FormatRupiah(price), line.Qty, catalog.FormatRupiah(cat.Subtotal(line)))
	return model.RenderRequest{
		View: model.ViewItemDetail,
		Text: text,
		Choices: []model.Choice{
			itemChoice(model.SignalDecrement, item, "➖"),
			itemChoice(model.SignalIncrement, item, "➕"),
			choiceBackToMenu,
		},
	}
}

// renderCheckout is shared by the checkout transition and every path that
// returns to the payment choice.
func renderCheckout(cat *catalog.Catalog, s *model.Session) model.RenderRequest {
	var b strings.Builder
	b.WriteString("🧾 Ringkasan Pesanan\n\n")
	fmt.Fprintf(&b, "👤 Pelanggan: %s\n\n", s.CustomerName)
	b.WriteString("🛍️ Items:\n")
	writeLines(&b, cat, s.Cart)
	fmt.Fprintf(&b, "\n\n💰 Total: %s\n\n", catalog.FormatRupiah(s.Total))
	b.WriteString("Pilih metode pembayaran:")
	return model.RenderRequest{
		View:    model.ViewCheckout,
		Text:    b.String(),
		Choices: []model.Choice{choicePayCash, choicePayQRIS, choiceBackToMenu},
	}
}

func renderWaitingCash(s *model.Session) model.RenderRequest {
	return model.RenderRequest{
		View:    model.ViewWaitingCash,
		Text:    fmt.Sprintf("💵 Pembayaran Tunai\n\n💰 Total: %s\n\nKetik nominal uang yang diterima:", catalog.FormatRupiah(s.Total)),
		Choices: []model.Choice{choiceCancel},
	}
}

func renderQRIS(s *model.Session) model.RenderRequest {
	return model.RenderRequest{
		View:    model.ViewQRIS,
		Text:    fmt.Sprintf("📱 Pembayaran QRIS\n\n💰 Total: %s\n\n🔲 Silakan scan QRIS dan konfirmasi pembayaran.", catalog.FormatRupiah(s.Total)),
		Choices: []model.Choice{choiceQRISDone, choiceCancel},
	}
}

var postTransactionChoices = []model.Choice{choiceNewCustomer, choiceSameCustomer, choiceCloseShop}

func renderReceipt(cat *catalog.Catalog, sale model.Sale) model.RenderRequest {
	var b strings.Builder
	b.WriteString("🧾 STRUK PEMBAYARAN\n" + receiptRule + "\n")
	fmt.Fprintf(&b, "👤 Pelanggan: %s\n", sale.CustomerName)
	fmt.Fprintf(&b, "📅 Waktu: %s\n", sale.Timestamp.Format(receiptTimeLayout))
	fmt.Fprintf(&b, "💳 Metode: %s\n\n", sale.Method)
	b.WriteString("🛍️ Pesanan:\n")
	writeLines(&b, cat, sale.Items)
	fmt.Fprintf(&b, "\n\n💰 Total: %s", catalog.FormatRupiah(sale.Total))
	if sale.Method == model.PaymentCash {
		fmt.Fprintf(&b, "\n💵 Tunai: %s\n💸 Kembalian: %s",
			catalog.FormatRupiah(sale.CashReceived), catalog.FormatRupiah(sale.Change))
	}
	b.WriteString("\n\n✅ LUNAS\n" + receiptRule + "\n\n" + textNextStep)
	return model.RenderRequest{View: model.ViewPostTransaction, Text: b.String(), Choices: postTransactionChoices}
}

func renderPostTransaction() model.RenderRequest {
	return model.RenderRequest{View: model.ViewPostTransaction, Text: textNextStep, Choices: postTransactionChoices}
}

func renderAdminPanel(text string) model.RenderRequest {
	return model.RenderRequest{
		View:    model.ViewAdminPanel,
		Text:    text,
		Choices: []model.Choice{choiceAdminReport, choiceAdminReset, choiceHome},
	}
}

func renderRekap(r ledger.Report) model.RenderRequest {
	return model.RenderRequest{
		View:    model.ViewAdminRekap,
		Text:    ReportText(r),
		Choices: []model.Choice{choiceBackToAdmin},
	}
}

// ReportText formats an aggregate report for display.
func ReportText(r ledger.Report) string {
	if r.Empty() {
		return textEmptyReport
	}
	var b strings.Builder
	b.WriteString("📊 Rekap Penjualan Hari Ini\n\nPenjualan Item:\n")
	for i, iq := range r.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "• %s x%d", iq.Item, iq.Qty)
	}
	fmt.Fprintf(&b, "\n\n📈 Total Transaksi: %d\n", r.Transactions)
	fmt.Fprintf(&b, "💵 Cash: %s\n", catalog.FormatRupiah(r.Cash))
	fmt.Fprintf(&b, "📱 QRIS: %s\n", catalog.FormatRupiah(r.QRIS))
	fmt.Fprintf(&b, "💰 Total Omzet: %s", catalog.FormatRupiah(r.GrandTotal))
	return b.String()
}

func writeLines(b *strings.Builder, cat *catalog.Catalog, cart model.Cart) {
	first := true
	for line := range cat.SummaryLines(cart) {
		if !first {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		first = false
	}
}
