package metrics

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sjperalta/clientpulse-api/internal/models"
)

// summaryPaymentLimit caps the example payments listed in a summary
const summaryPaymentLimit = 3

// DefaultCurrencySymbol is used when no symbol is configured
const DefaultCurrencySymbol = "$"

// FormatCurrency renders an amount with thousands separators and two decimals, e.g. "$1,234.50"
func FormatCurrency(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	p := message.NewPrinter(language.English)
	f := amount.Round(2).InexactFloat64()
	if f < 0 {
		return "-" + symbol + p.Sprintf("%.2f", -f)
	}
	return symbol + p.Sprintf("%.2f", f)
}

// FormatSummary renders metrics as a shareable multi-line text block
func FormatSummary(m models.PeriodMetrics, currencySymbol string) string {
	var b strings.Builder
	p := message.NewPrinter(language.English)

	title := "Monthly Summary"
	if m.End.Sub(m.Start).Hours() < 8*24 {
		title = "Weekly Summary"
	}
	p.Fprintf(&b, "%s (%s - %s)\n\n", title, m.Start.Format("Jan 2"), m.End.Format("Jan 2, 2006"))

	p.Fprintf(&b, "New clients: %d\n", m.NewClients)
	p.Fprintf(&b, "Business visits: %d\n", m.BusinessVisits)
	p.Fprintf(&b, "Goals completed: %d\n", m.GoalsCompleted)
	p.Fprintf(&b, "Payments received: %d\n", m.PaymentsReceived)
	p.Fprintf(&b, "Total revenue: %s\n", FormatCurrency(m.TotalRevenue, currencySymbol))
	p.Fprintf(&b, "Average payment: %s\n", FormatCurrency(m.AveragePayment, currencySymbol))

	if len(m.PaymentDetails) == 0 {
		b.WriteString("\nNo payments recorded.")
		return b.String()
	}

	b.WriteString("\nRecent payments:")
	for i, d := range m.PaymentDetails {
		if i == summaryPaymentLimit {
			break
		}
		p.Fprintf(&b, "\n- %s: %s on %s", d.ClientName, FormatCurrency(d.Amount, currencySymbol), d.Date.Format("Jan 2"))
	}
	if extra := len(m.PaymentDetails) - summaryPaymentLimit; extra > 0 {
		p.Fprintf(&b, "\n...and %d more", extra)
	}

	return b.String()
}
