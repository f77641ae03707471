package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/invoza/invoza/internal/config"
	"github.com/invoza/invoza/internal/models"
	"github.com/invoza/invoza/internal/reports"
	"github.com/invoza/invoza/validation"
)

// renderer turns core outputs into terminal text. Amounts are rounded to
// two decimals here and nowhere earlier.
type renderer struct {
	currency string

	title  lipgloss.Style
	header lipgloss.Style
	dim    lipgloss.Style
	alert  lipgloss.Style
}

func newRenderer(cfg *config.Config) *renderer {
	r := &renderer{
		currency: cfg.Currency,
		title:    lipgloss.NewStyle(),
		header:   lipgloss.NewStyle(),
		dim:      lipgloss.NewStyle(),
		alert:    lipgloss.NewStyle(),
	}
	if !cfg.NoColor {
		r.title = r.title.Bold(true).Foreground(lipgloss.Color("#1E40AF"))
		r.header = r.header.Bold(true)
		r.dim = r.dim.Foreground(lipgloss.Color("#6B7280"))
		r.alert = r.alert.Foreground(lipgloss.Color("#DC2626"))
	}
	return r
}

// Money renders a decimal amount with the configured currency symbol,
// rounded to two decimal places.
func (r *renderer) Money(d decimal.Decimal) string {
	return r.currency + " " + d.StringFixed(2)
}

// MoneyFloat renders a stored float amount.
func (r *renderer) MoneyFloat(f float64) string {
	return r.Money(decimal.NewFromFloat(f))
}

// Violations renders field errors, one per line, sorted for stable output.
func (r *renderer) Violations(v validation.Violations) string {
	var b strings.Builder
	for _, field := range sortedKeys(v) {
		fmt.Fprintf(&b, "%s: %s\n", r.alert.Render(field), v[field])
	}
	return b.String()
}

func (r *renderer) CustomersTable(customers []models.Customer) string {
	if len(customers) == 0 {
		return r.dim.Render("no customers yet") + "\n"
	}
	var b strings.Builder
	b.WriteString(r.header.Render(fmt.Sprintf("%-9s %-24s %-24s %-28s", "NUMBER", "NAME", "COMPANY", "EMAIL")) + "\n")
	for _, c := range customers {
		fmt.Fprintf(&b, "%-9s %-24s %-24s %-28s\n", c.CustomerNumber, clip(c.Name, 24), clip(c.Company, 24), clip(c.Email, 28))
	}
	return b.String()
}

func (r *renderer) Customer(c models.Customer) string {
	var b strings.Builder
	b.WriteString(r.title.Render(c.CustomerNumber+"  "+c.DisplayName()) + "\n")
	fmt.Fprintf(&b, "Name:    %s\n", c.Name)
	fmt.Fprintf(&b, "Company: %s\n", c.Company)
	fmt.Fprintf(&b, "Email:   %s\n", c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", c.Phone)
	}
	if c.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", c.Address)
	}
	if c.VATNumber != "" {
		fmt.Fprintf(&b, "VAT:     %s\n", c.VATNumber)
	}
	if c.CompanyRegistration != "" {
		fmt.Fprintf(&b, "Reg:     %s\n", c.CompanyRegistration)
	}
	return b.String()
}

func (r *renderer) DocumentsTable(documents []models.Document) string {
	if len(documents) == 0 {
		return r.dim.Render("nothing here yet") + "\n"
	}
	var b strings.Builder
	b.WriteString(r.header.Render(fmt.Sprintf("%-9s %-24s %-11s %-11s %-9s %12s", "NUMBER", "CUSTOMER", "ISSUED", "DUE", "STATUS", "TOTAL")) + "\n")
	for _, d := range documents {
		name := d.CustomerID
		if d.Customer != nil {
			name = d.Customer.DisplayName()
		}
		due := d.DueDate
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(&b, "%-9s %-24s %-11s %-11s %-9s %12s\n",
			d.Number, clip(name, 24), d.IssueDate, due, d.Status, r.MoneyFloat(d.Total))
	}
	return b.String()
}

func (r *renderer) Document(d models.Document) string {
	var b strings.Builder
	b.WriteString(r.title.Render(fmt.Sprintf("%s (%s)", d.Number, d.Status)) + "\n")
	if d.Customer != nil {
		fmt.Fprintf(&b, "Customer: %s (%s)\n", d.Customer.DisplayName(), d.Customer.CustomerNumber)
	}
	fmt.Fprintf(&b, "Issued:   %s\n", d.IssueDate)
	if d.DueDate != "" {
		fmt.Fprintf(&b, "Due:      %s\n", d.DueDate)
	}
	b.WriteString("\n")
	b.WriteString(r.header.Render(fmt.Sprintf("%-40s %8s %12s %12s", "DESCRIPTION", "QTY", "RATE", "AMOUNT")) + "\n")
	for _, it := range d.Items {
		fmt.Fprintf(&b, "%-40s %8.2f %12s %12s\n", clip(it.Description, 40), it.Quantity, r.MoneyFloat(it.Rate), r.MoneyFloat(it.Amount))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%62s %12s\n", "Subtotal:", r.MoneyFloat(d.Subtotal))
	fmt.Fprintf(&b, "%62s %12s\n", fmt.Sprintf("Tax (%.2f%%):", d.TaxRate), r.MoneyFloat(d.TaxAmount))
	fmt.Fprintf(&b, "%62s %12s\n", "Total:", r.MoneyFloat(d.Total))
	if d.Notes != "" {
		b.WriteString("\n" + r.dim.Render(d.Notes) + "\n")
	}
	return b.String()
}

func (r *renderer) Statement(s reports.StatementSummary) string {
	var b strings.Builder
	b.WriteString(r.title.Render("Customer Statement - "+s.Customer.DisplayName()) + "\n\n")
	fmt.Fprintf(&b, "Total Invoiced: %s\n", r.Money(s.TotalInvoiced))
	fmt.Fprintf(&b, "Total Paid:     %s\n", r.Money(s.TotalPaid))
	fmt.Fprintf(&b, "Outstanding:    %s\n\n", r.Money(s.TotalOutstanding))

	if len(s.Lines) == 0 {
		b.WriteString(r.dim.Render("No invoices for this customer.") + "\n")
		return b.String()
	}
	b.WriteString(r.header.Render(fmt.Sprintf("%-9s %-11s %-11s %-9s %12s %12s %12s %12s",
		"NUMBER", "ISSUED", "DUE", "STATUS", "SUBTOTAL", "VAT", "TOTAL", "OUTSTANDING")) + "\n")
	for _, line := range s.Lines {
		due := line.DueDate
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(&b, "%-9s %-11s %-11s %-9s %12s %12s %12s %12s\n",
			line.Number, line.IssueDate, due, line.Status,
			r.Money(line.Subtotal), r.Money(line.Tax), r.Money(line.Total), r.Money(line.Outstanding))
	}

	b.WriteString("\n" + r.header.Render("Aging") + "\n")
	a := s.Aging
	b.WriteString(r.header.Render(fmt.Sprintf("%12s %12s %12s %12s %12s %12s",
		"CURRENT", "1-30", "31-60", "61-90", "90+", "TOTAL")) + "\n")
	fmt.Fprintf(&b, "%12s %12s %12s %12s %12s %12s\n",
		r.Money(a.Current), r.Money(a.Days1to30), r.Money(a.Days31to60),
		r.Money(a.Days61to90), r.Money(a.Over90), r.Money(a.Total()))
	return b.String()
}

func (r *renderer) SalesReport(s reports.SalesReport) string {
	var b strings.Builder
	b.WriteString(r.title.Render("Sales Report") + "\n\n")
	fmt.Fprintf(&b, "Total Revenue:   %s\n", r.Money(s.TotalRevenue))
	fmt.Fprintf(&b, "Paid Revenue:    %s\n", r.Money(s.PaidRevenue))
	fmt.Fprintf(&b, "Pending Revenue: %s\n", r.Money(s.PendingRevenue))

	if len(s.TopCustomers) > 0 {
		b.WriteString("\n" + r.header.Render("Top Customers") + "\n")
		for _, row := range s.TopCustomers {
			name := row.Company
			if name == "" {
				name = row.Name
			}
			fmt.Fprintf(&b, "%-30s %12s  (%d invoices)\n", clip(name, 30), r.Money(row.Total), row.Count)
		}
	}
	if len(s.Monthly) > 0 {
		b.WriteString("\n" + r.header.Render("By Month") + "\n")
		for _, row := range s.Monthly {
			fmt.Fprintf(&b, "%-16s %12s  (%d invoices)\n", row.Month, r.Money(row.Total), row.Count)
		}
	}
	return b.String()
}

func (r *renderer) VATReport(v reports.VATReport) string {
	var b strings.Builder
	b.WriteString(r.title.Render("VAT Report") + "\n\n")
	fmt.Fprintf(&b, "Total excl. VAT: %s\n", r.Money(v.TotalExclVAT))
	fmt.Fprintf(&b, "Total VAT:       %s\n", r.Money(v.TotalVAT))
	fmt.Fprintf(&b, "VAT Paid:        %s\n", r.Money(v.PaidVAT))
	fmt.Fprintf(&b, "VAT Pending:     %s\n", r.Money(v.PendingVAT))

	if len(v.Monthly) > 0 {
		b.WriteString("\n" + r.header.Render(fmt.Sprintf("%-16s %12s %12s %12s %9s", "MONTH", "SUBTOTAL", "VAT", "TOTAL", "COUNT")) + "\n")
		for _, row := range v.Monthly {
			fmt.Fprintf(&b, "%-16s %12s %12s %12s %9d\n",
				row.Month, r.Money(row.Subtotal), r.Money(row.VAT), r.Money(row.Total), row.Count)
		}
	}
	return b.String()
}

func (r *renderer) Summary(s reports.Summary) string {
	var b strings.Builder
	b.WriteString(r.title.Render("Invoza") + "\n\n")
	fmt.Fprintf(&b, "Customers: %d\n", s.Customers)
	fmt.Fprintf(&b, "Invoices:  %d\n", s.Invoices)
	fmt.Fprintf(&b, "Quotes:    %d\n", s.Quotes)
	fmt.Fprintf(&b, "Revenue:   %s\n", r.Money(s.Revenue))
	fmt.Fprintf(&b, "Pending:   %s\n", r.Money(s.Pending))
	return b.String()
}

func (r *renderer) Settings(s *models.BusinessSettings) string {
	if s == nil {
		return r.dim.Render("no business settings saved yet") + "\n"
	}
	var b strings.Builder
	b.WriteString(r.title.Render(s.BusinessName) + "\n")
	fmt.Fprintf(&b, "Address: %s\n", s.Address)
	fmt.Fprintf(&b, "Email:   %s\n", s.Email)
	fmt.Fprintf(&b, "Phone:   %s\n", s.Phone)
	fmt.Fprintf(&b, "VAT:     %s\n", s.VATNumber)
	fmt.Fprintf(&b, "Reg:     %s\n", s.CompanyRegistration)
	if s.HasBanking() {
		b.WriteString(r.header.Render("Banking") + "\n")
		fmt.Fprintf(&b, "Bank:           %s\n", s.BankName)
		fmt.Fprintf(&b, "Account Holder: %s\n", s.AccountHolder)
		fmt.Fprintf(&b, "Account:        %s\n", s.AccountNumber)
		fmt.Fprintf(&b, "Branch Code:    %s\n", s.BranchCode)
	}
	return b.String()
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

func sortedKeys(v validation.Violations) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
