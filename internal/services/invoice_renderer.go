package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/pkg/utils"
)

const notAvailable = "N/A"

// InvoiceData is the resolved content of one invoice.
type InvoiceData struct {
	// InvoiceRef names the file: the invoice id, or the row id without one.
	InvoiceRef    string
	InvoiceID     string
	InvoiceDate   string
	TransactionID string
	CustomerName  string
	CustomerEmail string
	ProductID     string
	UserID        string
	Product       string
	Description   string
	Period        string
	PaymentMethod string
	PaymentSource string
	Currency      string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
}

func (d InvoiceData) Total() decimal.Decimal {
	return d.Subtotal.Add(d.Tax)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func NewInvoiceData(l db_models.PaymentLog, email string, name *string, loc *time.Location) InvoiceData {
	d := InvoiceData{
		InvoiceRef:    l.InvoiceID,
		InvoiceID:     orNA(l.InvoiceID),
		InvoiceDate:   utils.FormatTimestamp(l.AddedOn, loc),
		TransactionID: orNA(l.TransactionID),
		CustomerName:  notAvailable,
		CustomerEmail: email,
		ProductID:     orNA(l.ProductID),
		UserID:        orNA(l.UserID),
		Product:       orNA(l.ProductName),
		Description:   orNA(l.Description),
		Period:        orNA(l.SubscriptionPeriod),
		PaymentMethod: orNA(l.PaymentMethod),
		PaymentSource: orNA(l.PaymentSource),
		Currency:      l.Currency,
		Subtotal:      l.Amount().Decimal,
		Tax:           l.TaxAmount.Decimal,
	}
	if d.InvoiceRef == "" {
		d.InvoiceRef = fmt.Sprint(l.ID)
	}
	if name != nil {
		d.CustomerName = *name
	}
	if d.Currency == "" {
		d.Currency = "USD"
	}
	return d
}

type InvoiceRenderer struct{}

func NewInvoiceRenderer() *InvoiceRenderer {
	return &InvoiceRenderer{}
}

const invoiceWidth = 80

// Text renders the fixed-width plain-text invoice.
func (r *InvoiceRenderer) Text(d InvoiceData) string {
	heavy := strings.Repeat("=", invoiceWidth)
	light := strings.Repeat("-", invoiceWidth)

	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%-21s%s\n", label, value)
	}
	section := func(title string) {
		b.WriteString("\n" + light + "\n")
		b.WriteString(strings.Repeat(" ", 30) + title + "\n")
		b.WriteString(light + "\n\n")
	}
	money := func(v decimal.Decimal) string {
		return d.Currency + " " + v.StringFixed(2)
	}

	b.WriteString("\n" + heavy + "\n")
	b.WriteString(strings.Repeat(" ", 36) + "INVOICE\n")
	b.WriteString(heavy + "\n\n")
	field("Invoice ID:", d.InvoiceID)
	field("Invoice Date:", d.InvoiceDate)
	field("Transaction ID:", d.TransactionID)

	section("CUSTOMER DETAILS")
	field("Customer Name:", d.CustomerName)
	field("Customer Email:", d.CustomerEmail)
	field("Product ID:", d.ProductID)
	field("User ID:", d.UserID)

	section("ORDER DETAILS")
	field("Product:", d.Product)
	field("Description:", d.Description)
	field("Subscription Period:", d.Period)
	field("Payment Method:", d.PaymentMethod)
	field("Payment Source:", d.PaymentSource)

	section("PAYMENT SUMMARY")
	field("Subtotal:", money(d.Subtotal))
	field("Tax:", money(d.Tax))
	b.WriteString(strings.Repeat(" ", 20) + strings.Repeat("-", 37) + "\n")
	field("Total:", money(d.Total()))

	b.WriteString("\n" + heavy + "\n")
	b.WriteString(strings.Repeat(" ", 26) + "Thank you for your business!\n")
	b.WriteString(heavy + "\n")
	return b.String()
}

// PDF renders the same invoice as a single-page PDF.
func (r *InvoiceRenderer) PDF(d InvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "INVOICE", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	heading := func(title string) {
		m.AddRow(4, line.NewCol(12))
		m.AddRow(9, text.NewCol(12, title, props.Text{Size: 11, Style: fontstyle.Bold, Top: 2}))
	}
	pair := func(label, value string) {
		m.AddRow(6,
			text.NewCol(4, label, props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(8, value, props.Text{Size: 9}),
		)
	}
	amount := func(label, value string, style fontstyle.Type) {
		m.AddRow(6,
			col.New(6),
			text.NewCol(3, label, props.Text{Size: 9, Style: style}),
			text.NewCol(3, value, props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}

	pair("Invoice ID", d.InvoiceID)
	pair("Invoice Date", d.InvoiceDate)
	pair("Transaction ID", d.TransactionID)

	heading("Customer details")
	pair("Customer Name", d.CustomerName)
	pair("Customer Email", d.CustomerEmail)
	pair("Product ID", d.ProductID)
	pair("User ID", d.UserID)

	heading("Order details")
	pair("Product", d.Product)
	pair("Description", d.Description)
	pair("Subscription Period", d.Period)
	pair("Payment Method", d.PaymentMethod)
	pair("Payment Source", d.PaymentSource)

	heading("Payment summary")
	amount("Subtotal", d.Currency+" "+d.Subtotal.StringFixed(2), fontstyle.Normal)
	amount("Tax", d.Currency+" "+d.Tax.StringFixed(2), fontstyle.Normal)
	amount("Total", d.Currency+" "+d.Total().StringFixed(2), fontstyle.Bold)

	m.AddRow(12, text.NewCol(12, "Thank you for your business!", props.Text{
		Size:  10,
		Align: align.Center,
		Top:   6,
	}))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
