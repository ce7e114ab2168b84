package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"checkoutdash/internal/models/request_models"
	"checkoutdash/internal/models/response_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/internal/testutil"
	"checkoutdash/pkg/clock"
	"checkoutdash/pkg/utils"
)

func newExportService(db *gorm.DB) ExportServiceInterface {
	return NewExportService(
		repositories.NewPaymentLogRepository(db),
		NewEnricher(repositories.NewBillingAddressRepository(db), "appypie.com"),
		NewInvoiceRenderer(),
		nil,
		clock.Fixed(anchor),
	)
}

const csvHeaderLine = `S.No,App ID,App Name,Email,Message,Payment Period,Amount,Currency,Tax Amount,Invoice ID,Transaction ID,Payment Mode,Payment Source,Refund Status,IP Address,Last Payment Date,Claim To,Subscription Type,Product Name,Product ID`

func TestExportCSV(t *testing.T) {
	db := testutil.NewDB(t)
	seedReportData(t, db)
	svc := newExportService(db)

	t.Run("single row layout", func(t *testing.T) {
		att, err := svc.ExportCSV(context.Background(), request_models.PaymentLogFilter{SearchByAppID: "app-1"})
		require.NoError(t, err)

		assert.Equal(t, "payment-logs-2024-03-05.csv", att.Filename)
		assert.Equal(t, "text/csv", att.ContentType)
		assert.Equal(t, csvHeaderLine+"\n"+
			`1,"app-1","Builder","ada@example.com","Plan ""Gold""","monthly",19.99,"USD",2.00,"INV-1","txn-1","stripe","web","No","1.2.3.4","05 Mar 2024, 10:00 AM","","New","Builder","app-1"`+"\n",
			string(att.Body))
	})

	t.Run("all rows newest first", func(t *testing.T) {
		att, err := svc.ExportCSV(context.Background(), request_models.PaymentLogFilter{})
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSuffix(string(att.Body), "\n"), "\n")
		require.Len(t, lines, 5)
		assert.True(t, strings.HasPrefix(lines[1], `1,"app-4"`))
		assert.Equal(t,
			`3,"app-2","Chatbot","grace@example.com","","",10.50,"USD",0,"","","paypal","","Yes","","-","alice","Renewal","Chatbot","app-2"`,
			lines[3])
		assert.Contains(t, lines[1], `"user10@appypie.com"`)
		assert.Contains(t, lines[1], `"Legacy"`)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.ExportCSV(context.Background(), request_models.PaymentLogFilter{SearchDate: "yesterday"})
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
	})
}

func TestInvoiceText(t *testing.T) {
	db := testutil.NewDB(t)
	seedReportData(t, db)
	svc := newExportService(db)

	att, err := svc.Invoice(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-1.txt", att.Filename)
	assert.Equal(t, "text/plain", att.ContentType)

	body := string(att.Body)
	heavy := strings.Repeat("=", 80)
	assert.True(t, strings.HasPrefix(body, "\n"+heavy+"\n"+strings.Repeat(" ", 36)+"INVOICE\n"+heavy+"\n\n"))
	for _, line := range []string{
		"Invoice ID:          INV-1\n",
		"Invoice Date:        05 Mar 2024, 10:00 AM\n",
		"Customer Name:       Ada Lovelace\n",
		"Customer Email:      ada@example.com\n",
		"Description:         Plan \"Gold\"\n",
		"Subtotal:            USD 19.99\n",
		"Tax:                 USD 2.00\n",
		strings.Repeat(" ", 20) + strings.Repeat("-", 37) + "\n",
		"Total:               USD 21.99\n",
		strings.Repeat(" ", 30) + "PAYMENT SUMMARY\n",
		strings.Repeat(" ", 26) + "Thank you for your business!\n",
	} {
		assert.Contains(t, body, line)
	}
	assert.True(t, strings.HasSuffix(body, heavy+"\n"))
}

func TestInvoiceFallbacks(t *testing.T) {
	db := testutil.NewDB(t)
	seedReportData(t, db)
	svc := newExportService(db)

	att, err := svc.Invoice(context.Background(), 2, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "invoice-2.txt", att.Filename)

	body := string(att.Body)
	assert.Contains(t, body, "Invoice ID:          N/A\n")
	assert.Contains(t, body, "Invoice Date:        -\n")
	assert.Contains(t, body, "Customer Name:       N/A\n")
	assert.Contains(t, body, "Customer Email:      grace@example.com\n")
	assert.Contains(t, body, "Subtotal:            USD 10.50\n")
	assert.Contains(t, body, "Tax:                 USD 0.00\n")
}

func TestInvoicePDF(t *testing.T) {
	db := testutil.NewDB(t)
	seedReportData(t, db)
	svc := newExportService(db)

	att, err := svc.Invoice(context.Background(), 1, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-1.pdf", att.Filename)
	assert.Equal(t, "application/pdf", att.ContentType)
	assert.True(t, bytes.HasPrefix(att.Body, []byte("%PDF")))
}

func TestInvoiceErrors(t *testing.T) {
	db := testutil.NewDB(t)
	seedReportData(t, db)
	svc := newExportService(db)

	_, err := svc.Invoice(context.Background(), 99, FormatText)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = svc.Invoice(context.Background(), 1, "docx")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestRenderCSVParsesAsRFC4180(t *testing.T) {
	rows := []response_models.PaymentLogRow{
		{AppID: "app-1", Message: `He said "hi", then left`, Amount: money("5.5")},
		{AppID: "app-2", Message: "line one\nline two", RefundStatus: "Yes"},
	}

	records, err := csv.NewReader(bytes.NewReader(RenderCSV(rows))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Len(t, records[0], 20)
	assert.Equal(t, `He said "hi", then left`, records[1][4])
	assert.Equal(t, "5.50", records[1][6])
	assert.Equal(t, "USD", records[1][7])
	assert.Equal(t, "0", records[1][8])
	assert.Equal(t, "line one\nline two", records[2][4])
	assert.Equal(t, "Yes", records[2][13])
}
