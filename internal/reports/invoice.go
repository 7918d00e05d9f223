package reports

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"storefront-service/internal/models"
)

// PDFContentType is the MIME type of generated invoices
const PDFContentType = "application/pdf"

// Invoice renders an order as a PDF invoice
func Invoice(order models.Order, settings models.StoreSettings) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)
	symbol := currencySymbol(settings.Currency)

	addInvoiceHeader(m, order, settings)
	addInvoiceAddresses(m, order)
	addInvoiceItems(m, order, symbol)
	addInvoiceTotals(m, order, symbol)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addInvoiceHeader(m core.Maroto, order models.Order, settings models.StoreSettings) {
	m.AddRow(24,
		col.New(6).Add(
			text.New(settings.StoreName, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Left}),
			text.New(settings.StoreEmail, props.Text{Size: 9, Top: 8, Align: align.Left}),
		),
		col.New(6).Add(
			text.New("INVOICE", props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Right}),
			text.New(order.OrderNumber, props.Text{Size: 10, Top: 8, Align: align.Right}),
		),
	)
	m.AddRow(5, line.NewCol(12))
	m.AddRow(14,
		col.New(6).Add(
			text.New(fmt.Sprintf("Date: %s", order.CreatedAt.Format("Jan 02, 2006")), props.Text{Size: 9, Align: align.Left}),
			text.New(fmt.Sprintf("Payment method: %s", order.PaymentMethod), props.Text{Size: 9, Top: 5, Align: align.Left}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Status: %s", order.Status), props.Text{Size: 9, Align: align.Right}),
			text.New(fmt.Sprintf("Payment: %s", order.PaymentStatus), props.Text{Size: 9, Top: 5, Align: align.Right}),
		),
	)
}

func addInvoiceAddresses(m core.Maroto, order models.Order) {
	m.AddRow(30,
		col.New(6).Add(
			text.New("BILL TO:", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
			text.New(order.Customer.FullName(), props.Text{Size: 9, Top: 6, Align: align.Left}),
			text.New(order.Customer.Email, props.Text{Size: 9, Top: 11, Align: align.Left}),
			text.New(formatAddress(order.BillingAddress), props.Text{Size: 9, Top: 16, Align: align.Left}),
		),
		col.New(6).Add(
			text.New("SHIP TO:", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
			text.New(formatAddress(order.ShippingAddress), props.Text{Size: 9, Top: 6, Align: align.Left}),
		),
	)
	m.AddRow(5, line.NewCol(12))
}

func addInvoiceItems(m core.Maroto, order models.Order, symbol string) {
	header := props.Text{Size: 10, Style: fontstyle.Bold}
	m.AddRow(8,
		col.New(5).Add(text.New("Item", withAlign(header, align.Left))),
		col.New(2).Add(text.New("SKU", withAlign(header, align.Center))),
		col.New(1).Add(text.New("Qty", withAlign(header, align.Center))),
		col.New(2).Add(text.New("Price", withAlign(header, align.Right))),
		col.New(2).Add(text.New("Total", withAlign(header, align.Right))),
	)
	m.AddRow(2, line.NewCol(12))

	cell := props.Text{Size: 9}
	for _, item := range order.Items {
		m.AddRow(8,
			col.New(5).Add(text.New(item.Name, withAlign(cell, align.Left))),
			col.New(2).Add(text.New(item.SKU, withAlign(cell, align.Center))),
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.Quantity), withAlign(cell, align.Center))),
			col.New(2).Add(text.New(formatCurrency(item.Price, symbol), withAlign(cell, align.Right))),
			col.New(2).Add(text.New(formatCurrency(item.Total, symbol), withAlign(cell, align.Right))),
		)
	}
	m.AddRow(3, line.NewCol(12))
}

func addInvoiceTotals(m core.Maroto, order models.Order, symbol string) {
	lines := []struct {
		label  string
		amount float64
		show   bool
	}{
		{"Subtotal:", order.Subtotal, true},
		{"Tax:", order.Tax, order.Tax > 0},
		{"Shipping:", order.Shipping, true},
		{"Discount:", -order.Discount, order.Discount > 0},
	}
	for _, l := range lines {
		if !l.show {
			continue
		}
		m.AddRow(6,
			col.New(8),
			col.New(2).Add(text.New(l.label, props.Text{Size: 9, Align: align.Right})),
			col.New(2).Add(text.New(formatCurrency(l.amount, symbol), props.Text{Size: 9, Align: align.Right})),
		)
	}
	m.AddRow(8,
		col.New(8),
		col.New(2).Add(text.New("Total:", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New(formatCurrency(order.Total, symbol), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
	)
}

func withAlign(p props.Text, a align.Type) props.Text {
	p.Align = a
	return p
}

func formatAddress(a models.Address) string {
	parts := []string{strings.TrimSpace(a.FirstName + " " + a.LastName), a.Address1}
	if a.Address2 != nil && *a.Address2 != "" {
		parts = append(parts, *a.Address2)
	}
	parts = append(parts, strings.TrimSpace(a.City+" "+a.Province+" "+a.Zip), a.Country)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// currencySymbol only maps symbols the built-in PDF fonts can render
func currencySymbol(currency string) string {
	switch strings.ToUpper(currency) {
	case "", "USD", "CAD", "AUD":
		return "$"
	default:
		return strings.ToUpper(currency) + " "
	}
}

func formatCurrency(amount float64, symbol string) string {
	if amount < 0 {
		return fmt.Sprintf("-%s%.2f", symbol, -amount)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
