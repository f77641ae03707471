package models

import (
	"testing"
)

func TestDocumentItem_LineAmount(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		rate     float64
		want     float64
	}{
		{"2 × 100", 2, 100, 200},
		{"1 × 50", 1, 50, 50},
		{"fractional quantity", 2.5, 10, 25},
		{"zero rate", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := DocumentItem{Quantity: tt.quantity, Rate: tt.rate}
			if got := it.LineAmount(); got != tt.want {
				t.Errorf("LineAmount() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDocument_Outstanding(t *testing.T) {
	tests := []struct {
		name   string
		status DocumentStatus
		total  float64
		want   float64
	}{
		{"paid owes nothing", StatusPaid, 150, 0},
		{"sent owes total", StatusSent, 150, 150},
		{"draft owes total", StatusDraft, 150, 150},
		{"overdue owes total", StatusOverdue, 150, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Document{Status: tt.status, Total: tt.total}
			if got := d.Outstanding(); got != tt.want {
				t.Errorf("Outstanding() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDocumentType_AllowsStatus(t *testing.T) {
	tests := []struct {
		typ    DocumentType
		status DocumentStatus
		want   bool
	}{
		{TypeInvoice, StatusDraft, true},
		{TypeInvoice, StatusSent, true},
		{TypeInvoice, StatusPaid, true},
		{TypeInvoice, StatusOverdue, true},
		{TypeInvoice, StatusAccepted, false},
		{TypeInvoice, StatusRejected, false},
		{TypeQuote, StatusDraft, true},
		{TypeQuote, StatusSent, true},
		{TypeQuote, StatusAccepted, true},
		{TypeQuote, StatusRejected, true},
		{TypeQuote, StatusPaid, false},
		{TypeQuote, StatusOverdue, false},
	}
	for _, tt := range tests {
		if got := tt.typ.AllowsStatus(tt.status); got != tt.want {
			t.Errorf("%s.AllowsStatus(%s) = %v, want %v", tt.typ, tt.status, got, tt.want)
		}
	}
}

func TestDocumentType_NumberPrefix(t *testing.T) {
	if got := TypeInvoice.NumberPrefix(); got != "INV" {
		t.Errorf("invoice prefix = %q, want INV", got)
	}
	if got := TypeQuote.NumberPrefix(); got != "QUO" {
		t.Errorf("quote prefix = %q, want QUO", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-29")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2026 || d.Month() != 8 || d.Day() != 29 {
		t.Errorf("ParseDate = %v", d)
	}
	if _, err := ParseDate("29/08/2026"); err == nil {
		t.Error("ParseDate accepted non-calendar format")
	}
}

func TestCustomer_DisplayName(t *testing.T) {
	c := Customer{Name: "Jane", Company: "Acme"}
	if got := c.DisplayName(); got != "Acme" {
		t.Errorf("DisplayName() = %q, want Acme", got)
	}
	c.Company = ""
	if got := c.DisplayName(); got != "Jane" {
		t.Errorf("DisplayName() = %q, want Jane", got)
	}
}
