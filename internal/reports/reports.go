// Package reports derives the monetary and status aggregates shown on
// statements, aging snapshots and the sales/VAT reports. Every function is
// pure: collections in, aggregates out, nothing mutated. Sums accumulate as
// decimals and are only rounded when rendered.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoza/invoza/internal/models"
)

// StatementOptions filter a customer statement. From and To are inclusive
// calendar-date strings matched against the invoice issue date; To covers
// the whole day. Empty strings leave the bound open.
type StatementOptions struct {
	From       string
	To         string
	UnpaidOnly bool
}

// StatementLine is one invoice row on a customer statement.
type StatementLine struct {
	Number      string
	IssueDate   string
	DueDate     string
	Status      models.DocumentStatus
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	Outstanding decimal.Decimal
}

// StatementSummary aggregates a customer's invoices under the given filters.
type StatementSummary struct {
	Customer         models.Customer
	Lines            []StatementLine
	TotalInvoiced    decimal.Decimal
	TotalPaid        decimal.Decimal
	TotalOutstanding decimal.Decimal
	Aging            AgingBuckets
}

// Statement selects the customer's invoices, applies the filters and
// computes the invoiced/paid/outstanding totals plus the aging snapshot as
// of today.
func Statement(customer models.Customer, documents []models.Document, opts StatementOptions, today time.Time) StatementSummary {
	invoices := filterInvoices(documents, customer.ID, opts.From, opts.To, opts.UnpaidOnly)

	s := StatementSummary{
		Customer:         customer,
		TotalInvoiced:    decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}
	for _, inv := range invoices {
		total := decimal.NewFromFloat(inv.Total)
		s.TotalInvoiced = s.TotalInvoiced.Add(total)
		outstanding := decimal.Zero
		if inv.IsPaid() {
			s.TotalPaid = s.TotalPaid.Add(total)
		} else {
			s.TotalOutstanding = s.TotalOutstanding.Add(total)
			outstanding = total
		}
		s.Lines = append(s.Lines, StatementLine{
			Number:      inv.Number,
			IssueDate:   inv.IssueDate,
			DueDate:     inv.DueDate,
			Status:      inv.Status,
			Subtotal:    decimal.NewFromFloat(inv.Subtotal),
			Tax:         decimal.NewFromFloat(inv.TaxAmount),
			Total:       total,
			Outstanding: outstanding,
		})
	}
	s.Aging = Aging(invoices, today)
	return s
}

// AgingBuckets summarize unpaid invoice exposure by days overdue. Invoices
// without a due date, or not yet due, land in Current. The buckets partition
// the unpaid set: their sum equals the outstanding total of the input.
type AgingBuckets struct {
	Current    decimal.Decimal
	Days1to30  decimal.Decimal
	Days31to60 decimal.Decimal
	Days61to90 decimal.Decimal
	Over90     decimal.Decimal
}

// Total sums all buckets.
func (b AgingBuckets) Total() decimal.Decimal {
	return b.Current.Add(b.Days1to30).Add(b.Days31to60).Add(b.Days61to90).Add(b.Over90)
}

// Aging buckets the unpaid invoices of the given set as a snapshot at today.
// Days overdue is the whole number of calendar days since the due date.
func Aging(invoices []models.Document, today time.Time) AgingBuckets {
	b := AgingBuckets{
		Current:    decimal.Zero,
		Days1to30:  decimal.Zero,
		Days31to60: decimal.Zero,
		Days61to90: decimal.Zero,
		Over90:     decimal.Zero,
	}
	day := startOfDay(today)
	for _, inv := range invoices {
		if inv.IsPaid() {
			continue
		}
		total := decimal.NewFromFloat(inv.Total)
		due, err := models.ParseDate(inv.DueDate)
		if inv.DueDate == "" || err != nil {
			b.Current = b.Current.Add(total)
			continue
		}
		daysOverdue := int(day.Sub(due).Hours() / 24)
		switch {
		case daysOverdue <= 0:
			b.Current = b.Current.Add(total)
		case daysOverdue <= 30:
			b.Days1to30 = b.Days1to30.Add(total)
		case daysOverdue <= 60:
			b.Days31to60 = b.Days31to60.Add(total)
		case daysOverdue <= 90:
			b.Days61to90 = b.Days61to90.Add(total)
		default:
			b.Over90 = b.Over90.Add(total)
		}
	}
	return b
}

// filterInvoices selects invoices, optionally for one customer, within the
// inclusive issue-date range, optionally unpaid only.
func filterInvoices(documents []models.Document, customerID, from, to string, unpaidOnly bool) []models.Document {
	var out []models.Document
	for _, d := range documents {
		if d.Type != models.TypeInvoice {
			continue
		}
		if customerID != "" && d.CustomerID != customerID {
			continue
		}
		if !inDateRange(d.IssueDate, from, to) {
			continue
		}
		if unpaidOnly && d.IsPaid() {
			continue
		}
		out = append(out, d)
	}
	return out
}

// inDateRange checks from <= date <= to on the calendar-date component. An
// unparseable issue date only passes when no bounds are set.
func inDateRange(date, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	d, err := models.ParseDate(date)
	if err != nil {
		return false
	}
	if from != "" {
		if f, err := models.ParseDate(from); err == nil && d.Before(f) {
			return false
		}
	}
	if to != "" {
		if t, err := models.ParseDate(to); err == nil && d.After(t) {
			return false
		}
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
