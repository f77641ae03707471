package reports

import (
	"github.com/shopspring/decimal"

	"github.com/invoza/invoza/internal/models"
)

// MonthlyVAT is one row of the monthly VAT rollup.
type MonthlyVAT struct {
	Month    string
	Subtotal decimal.Decimal
	VAT      decimal.Decimal
	Total    decimal.Decimal
	Count    int
}

// VATReport breaks the collected VAT down over the filtered invoices.
// Paid/pending follow the invoice status, same as the sales report.
type VATReport struct {
	TotalExclVAT decimal.Decimal
	TotalVAT     decimal.Decimal
	PaidVAT      decimal.Decimal
	PendingVAT   decimal.Decimal
	Monthly      []MonthlyVAT
}

// VAT computes the VAT breakdown for invoices in the date range.
func VAT(documents []models.Document, opts ReportOptions) VATReport {
	invoices := filterInvoices(documents, "", opts.From, opts.To, false)

	r := VATReport{
		TotalExclVAT: decimal.Zero,
		TotalVAT:     decimal.Zero,
		PaidVAT:      decimal.Zero,
		PendingVAT:   decimal.Zero,
	}

	perMonth := make(map[string]*MonthlyVAT)
	var monthOrder []string

	for _, inv := range invoices {
		subtotal := decimal.NewFromFloat(inv.Subtotal)
		vat := decimal.NewFromFloat(inv.TaxAmount)
		r.TotalExclVAT = r.TotalExclVAT.Add(subtotal)
		r.TotalVAT = r.TotalVAT.Add(vat)
		if inv.IsPaid() {
			r.PaidVAT = r.PaidVAT.Add(vat)
		} else {
			r.PendingVAT = r.PendingVAT.Add(vat)
		}

		if issued, err := models.ParseDate(inv.IssueDate); err == nil {
			label := issued.Format(monthLabelLayout)
			row, ok := perMonth[label]
			if !ok {
				row = &MonthlyVAT{Month: label, Subtotal: decimal.Zero, VAT: decimal.Zero, Total: decimal.Zero}
				perMonth[label] = row
				monthOrder = append(monthOrder, label)
			}
			row.Subtotal = row.Subtotal.Add(subtotal)
			row.VAT = row.VAT.Add(vat)
			row.Total = row.Total.Add(decimal.NewFromFloat(inv.Total))
			row.Count++
		}
	}

	sortMonthLabels(monthOrder)
	for _, label := range monthOrder {
		r.Monthly = append(r.Monthly, *perMonth[label])
	}
	return r
}

// Summary is the dashboard rollup over all collections: record counts,
// revenue from paid invoices and the amount still pending.
type Summary struct {
	Customers int
	Invoices  int
	Quotes    int
	Revenue   decimal.Decimal
	Pending   decimal.Decimal
}

// Summarize derives the dashboard numbers from the full collections.
func Summarize(customers []models.Customer, documents []models.Document) Summary {
	s := Summary{
		Customers: len(customers),
		Revenue:   decimal.Zero,
		Pending:   decimal.Zero,
	}
	for _, d := range documents {
		switch d.Type {
		case models.TypeQuote:
			s.Quotes++
		case models.TypeInvoice:
			s.Invoices++
			total := decimal.NewFromFloat(d.Total)
			if d.IsPaid() {
				s.Revenue = s.Revenue.Add(total)
			} else {
				s.Pending = s.Pending.Add(total)
			}
		}
	}
	return s
}
