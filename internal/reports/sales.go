package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoza/invoza/internal/models"
)

// ReportOptions filter a sales or VAT report by invoice issue date,
// inclusive on both bounds.
type ReportOptions struct {
	From string
	To   string
}

// CustomerSales is one row of the by-customer rollup.
type CustomerSales struct {
	CustomerID string
	Name       string
	Company    string
	Total      decimal.Decimal
	Count      int
}

// MonthlySales is one row of the by-month rollup. Month is a display label
// ("January 2006"); rows are ordered chronologically.
type MonthlySales struct {
	Month string
	Total decimal.Decimal
	Count int
}

// SalesReport is the revenue breakdown over the filtered invoices.
type SalesReport struct {
	TotalRevenue   decimal.Decimal
	PaidRevenue    decimal.Decimal
	PendingRevenue decimal.Decimal
	TopCustomers   []CustomerSales
	Monthly        []MonthlySales
}

const monthLabelLayout = "January 2006"

// Sales computes total/paid/pending revenue, the top five customers by
// invoiced amount, and the monthly totals for invoices in the date range.
// Invoices whose customer has since been deleted still count toward the
// totals but cannot appear in the by-customer rollup.
func Sales(documents []models.Document, customers []models.Customer, opts ReportOptions) SalesReport {
	invoices := filterInvoices(documents, "", opts.From, opts.To, false)

	r := SalesReport{
		TotalRevenue:   decimal.Zero,
		PaidRevenue:    decimal.Zero,
		PendingRevenue: decimal.Zero,
	}

	byID := make(map[string]models.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	perCustomer := make(map[string]*CustomerSales)
	var customerOrder []string
	perMonth := make(map[string]*MonthlySales)
	var monthOrder []string

	for _, inv := range invoices {
		total := decimal.NewFromFloat(inv.Total)
		r.TotalRevenue = r.TotalRevenue.Add(total)
		if inv.IsPaid() {
			r.PaidRevenue = r.PaidRevenue.Add(total)
		} else {
			r.PendingRevenue = r.PendingRevenue.Add(total)
		}

		if c, ok := byID[inv.CustomerID]; ok {
			row, ok := perCustomer[c.ID]
			if !ok {
				row = &CustomerSales{CustomerID: c.ID, Name: c.Name, Company: c.Company, Total: decimal.Zero}
				perCustomer[c.ID] = row
				customerOrder = append(customerOrder, c.ID)
			}
			row.Total = row.Total.Add(total)
			row.Count++
		}

		if issued, err := models.ParseDate(inv.IssueDate); err == nil {
			label := issued.Format(monthLabelLayout)
			row, ok := perMonth[label]
			if !ok {
				row = &MonthlySales{Month: label, Total: decimal.Zero}
				perMonth[label] = row
				monthOrder = append(monthOrder, label)
			}
			row.Total = row.Total.Add(total)
			row.Count++
		}
	}

	for _, id := range customerOrder {
		r.TopCustomers = append(r.TopCustomers, *perCustomer[id])
	}
	sort.SliceStable(r.TopCustomers, func(i, j int) bool {
		return r.TopCustomers[i].Total.GreaterThan(r.TopCustomers[j].Total)
	})
	if len(r.TopCustomers) > 5 {
		r.TopCustomers = r.TopCustomers[:5]
	}

	sortMonthLabels(monthOrder)
	for _, label := range monthOrder {
		r.Monthly = append(r.Monthly, *perMonth[label])
	}
	return r
}

// sortMonthLabels orders "January 2006" style labels chronologically.
func sortMonthLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		ti, erri := time.Parse(monthLabelLayout, labels[i])
		tj, errj := time.Parse(monthLabelLayout, labels[j])
		if erri != nil || errj != nil {
			return false
		}
		return ti.Before(tj)
	})
}
