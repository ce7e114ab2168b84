package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"checkoutdash/internal/models/request_models"
	"checkoutdash/internal/models/response_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/pkg/clock"
	"checkoutdash/pkg/utils"
)

const (
	FormatText = "text"
	FormatPDF  = "pdf"
)

// Attachment is a rendered file sent with Content-Disposition: attachment.
type Attachment struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportServiceInterface interface {
	ExportCSV(ctx context.Context, filter request_models.PaymentLogFilter) (*Attachment, error)
	Invoice(ctx context.Context, id uint, format string) (*Attachment, error)
}

type ExportService struct {
	repo     repositories.PaymentLogRepository
	enricher *Enricher
	invoices *InvoiceRenderer
	loc      *time.Location
	clock    clock.Clock
}

func NewExportService(
	repo repositories.PaymentLogRepository,
	enricher *Enricher,
	invoices *InvoiceRenderer,
	loc *time.Location,
	clk clock.Clock,
) ExportServiceInterface {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportService{repo: repo, enricher: enricher, invoices: invoices, loc: loc, clock: clk}
}

var csvHeader = []string{
	"S.No", "App ID", "App Name", "Email", "Message", "Payment Period",
	"Amount", "Currency", "Tax Amount", "Invoice ID", "Transaction ID",
	"Payment Mode", "Payment Source", "Refund Status",
	"IP Address", "Last Payment Date", "Claim To", "Subscription Type",
	"Product Name", "Product ID",
}

// ExportCSV renders every matching payment log, newest first.
func (s *ExportService) ExportCSV(ctx context.Context, filter request_models.PaymentLogFilter) (*Attachment, error) {
	filters, err := repositories.BuildPaymentLogFilters(filter, s.loc)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	rows := make([]response_models.PaymentLogRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, toPaymentLogRow(l, s.loc))
	}
	s.enricher.Enrich(ctx, rows)

	return &Attachment{
		Filename:    "payment-logs-" + s.clock.Now().UTC().Format(utils.DateLayout) + ".csv",
		ContentType: "text/csv",
		Body:        RenderCSV(rows),
	}, nil
}

// RenderCSV writes the export layout. Text cells are always quoted;
// numeric cells never are.
func RenderCSV(rows []response_models.PaymentLogRow) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(csvHeader, ","))
	buf.WriteByte('\n')

	for i, r := range rows {
		claim := ""
		if r.ClaimTo != nil {
			claim = *r.ClaimTo
		}
		currency := r.Currency
		if currency == "" {
			currency = "USD"
		}
		refund := r.RefundStatus
		if refund == "" {
			refund = "No"
		}

		cells := []string{
			strconv.Itoa(i + 1),
			quote(r.AppID),
			quote(r.AppName),
			quote(r.Email),
			quote(r.Message),
			quote(r.PaymentPeriod),
			number(r.Amount),
			quote(currency),
			number(r.TaxAmount),
			quote(r.InvoiceID),
			quote(r.TransactionID),
			quote(r.PaymentMode),
			quote(r.PaymentSource),
			quote(refund),
			quote(r.IPAddress),
			quote(r.LastPaymentDate),
			quote(claim),
			quote(r.SubscriptionType),
			quote(r.ProductName),
			quote(r.ProductID),
		}
		buf.WriteString(strings.Join(cells, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func number(d decimal.NullDecimal) string {
	if !d.Valid {
		return "0"
	}
	return d.Decimal.StringFixed(2)
}

// Invoice renders one payment log as a plain-text or PDF invoice.
func (s *ExportService) Invoice(ctx context.Context, id uint, format string) (*Attachment, error) {
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatPDF {
		return nil, utils.NewFieldError("format", "must be text or pdf")
	}

	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, utils.ErrPaymentLogNotFound
	}

	email, name := s.enricher.Lookup(ctx, log.UserID, log.ProductID)
	data := NewInvoiceData(*log, email, name, s.loc)

	base := "invoice-" + data.InvoiceRef
	if format == FormatPDF {
		body, err := s.invoices.PDF(data)
		if err != nil {
			return nil, fmt.Errorf("render invoice pdf: %w", err)
		}
		return &Attachment{Filename: base + ".pdf", ContentType: "application/pdf", Body: body}, nil
	}
	return &Attachment{Filename: base + ".txt", ContentType: "text/plain", Body: []byte(s.invoices.Text(data))}, nil
}
