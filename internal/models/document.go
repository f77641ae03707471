package models

import "time"

// DocumentType distinguishes invoices from quotes. Each type has its own
// numbering space (INV-NNN / QUO-NNN) and its own status set.
type DocumentType string

const (
	TypeInvoice DocumentType = "invoice"
	TypeQuote   DocumentType = "quote"
)

// NumberPrefix returns the identifier prefix for the type.
func (t DocumentType) NumberPrefix() string {
	if t == TypeQuote {
		return "QUO"
	}
	return "INV"
}

// DocumentStatus is an operator-set state. There are no automatic
// transitions; any allowed status may be set at any time, including reverts.
type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "draft"
	StatusSent     DocumentStatus = "sent"
	StatusPaid     DocumentStatus = "paid"
	StatusOverdue  DocumentStatus = "overdue"
	StatusAccepted DocumentStatus = "accepted"
	StatusRejected DocumentStatus = "rejected"
)

// AllowedStatuses returns the statuses valid for documents of this type.
func (t DocumentType) AllowedStatuses() []DocumentStatus {
	if t == TypeQuote {
		return []DocumentStatus{StatusDraft, StatusSent, StatusAccepted, StatusRejected}
	}
	return []DocumentStatus{StatusDraft, StatusSent, StatusPaid, StatusOverdue}
}

// AllowsStatus reports whether s is valid for documents of this type.
func (t DocumentType) AllowsStatus(s DocumentStatus) bool {
	for _, allowed := range t.AllowedStatuses() {
		if s == allowed {
			return true
		}
	}
	return false
}

// Document is an invoice or a quote.
//
// Customer is a denormalized snapshot taken when the document is created;
// later edits to the live customer do not change it. Subtotal, TaxAmount and
// Total are derived from Items and recomputed on every edit. IssueDate and
// DueDate are calendar-date strings (YYYY-MM-DD); only the date component
// participates in filtering and aging.
type Document struct {
	ID         string         `json:"id"`
	Type       DocumentType   `json:"type"`
	Number     string         `json:"number"`
	CustomerID string         `json:"customerId"`
	Customer   *Customer      `json:"customer,omitempty"`
	Items      []DocumentItem `json:"items"`
	Subtotal   float64        `json:"subtotal"`
	TaxRate    float64        `json:"taxRate"`
	TaxAmount  float64        `json:"taxAmount"`
	Total      float64        `json:"total"`
	Status     DocumentStatus `json:"status"`
	IssueDate  string         `json:"issueDate"`
	DueDate    string         `json:"dueDate,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// IsPaid reports whether the document has been marked paid.
func (d Document) IsPaid() bool {
	return d.Status == StatusPaid
}

// Outstanding returns the amount still owed: zero when paid, the full total
// otherwise. Draft and sent invoices count as outstanding for reporting.
func (d Document) Outstanding() float64 {
	if d.IsPaid() {
		return 0
	}
	return d.Total
}

// DocumentItem is one line on a document. Amount is Quantity × Rate, kept in
// sync by the service on every edit.
type DocumentItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// LineAmount computes Quantity × Rate.
func (it DocumentItem) LineAmount() float64 {
	return it.Quantity * it.Rate
}

// DateLayout is the calendar-date wire format used everywhere dates cross a
// boundary.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar-date string to a UTC midnight instant.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
