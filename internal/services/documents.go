package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoza/invoza/internal/models"
	"github.com/invoza/invoza/internal/numbering"
	"github.com/invoza/invoza/validation"
)

// ItemInput is one line item as entered.
type ItemInput struct {
	Description string
	Quantity    float64
	Rate        float64
}

// DocumentInput carries the editable document fields. Number, status and
// the derived totals are never part of the input.
type DocumentInput struct {
	Type       models.DocumentType
	CustomerID string
	Items      []ItemInput
	TaxRate    float64
	IssueDate  string
	DueDate    string
	Notes      string
}

func validateDocument(in DocumentInput) validation.Violations {
	v := make(validation.Violations)
	validation.Required("customerId", in.CustomerID, "Customer is required", v)
	validation.Required("issueDate", in.IssueDate, "Issue date is required", v)
	if in.DueDate != "" && in.IssueDate != "" {
		due, dueErr := models.ParseDate(in.DueDate)
		issue, issueErr := models.ParseDate(in.IssueDate)
		if dueErr == nil && issueErr == nil && due.Before(issue) {
			v["dueDate"] = "Due date cannot be before issue date"
		}
	}
	validation.NonNegativeFloat("taxRate", in.TaxRate, "Tax rate cannot be negative", v)
	if len(in.Items) == 0 {
		v["items"] = "At least one item is required"
	}
	for i, item := range in.Items {
		validation.Required(fmt.Sprintf("items[%d].description", i), item.Description, "Description required", v)
		validation.PositiveFloat(fmt.Sprintf("items[%d].quantity", i), item.Quantity, "Qty must be > 0", v)
		validation.NonNegativeFloat(fmt.Sprintf("items[%d].rate", i), item.Rate, "Rate cannot be negative", v)
	}
	return v
}

// ComputeTotals derives the line amounts and the document subtotal, tax and
// total from the items and tax rate. Accumulation is decimal; nothing is
// rounded here.
func ComputeTotals(items []models.DocumentItem, taxRate float64) (subtotal, taxAmount, total float64) {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Amount))
	}
	tax := sum.Mul(decimal.NewFromFloat(taxRate)).Div(decimal.NewFromInt(100))
	return sum.InexactFloat64(), tax.InexactFloat64(), sum.Add(tax).InexactFloat64()
}

func buildItems(inputs []ItemInput) []models.DocumentItem {
	items := make([]models.DocumentItem, 0, len(inputs))
	for _, in := range inputs {
		amount := decimal.NewFromFloat(in.Quantity).Mul(decimal.NewFromFloat(in.Rate))
		items = append(items, models.DocumentItem{
			ID:          uuid.NewString(),
			Description: in.Description,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
			Amount:      amount.InexactFloat64(),
		})
	}
	return items
}

// AddDocument validates the input, allocates the next free number in the
// type's numbering space, snapshots the customer profile onto the document
// and persists the grown collection. New documents always start as draft.
func (a *App) AddDocument(in DocumentInput) (models.Document, validation.Violations, error) {
	v := validateDocument(in)
	customer, found := a.CustomerByID(in.CustomerID)
	if in.CustomerID != "" && !found {
		v["customerId"] = "Customer is required"
	}
	if !v.Empty() {
		return models.Document{}, v, nil
	}

	items := buildItems(in.Items)
	subtotal, taxAmount, total := ComputeTotals(items, in.TaxRate)
	snapshot := customer

	now := time.Now().UTC()
	doc := models.Document{
		ID:         uuid.NewString(),
		Type:       in.Type,
		Number:     numbering.NextDocumentNumber(a.documents, in.Type),
		CustomerID: in.CustomerID,
		Customer:   &snapshot,
		Items:      items,
		Subtotal:   subtotal,
		TaxRate:    in.TaxRate,
		TaxAmount:  taxAmount,
		Total:      total,
		Status:     models.StatusDraft,
		IssueDate:  in.IssueDate,
		DueDate:    in.DueDate,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	a.documents = append(a.documents, doc)
	return doc, nil, a.persistDocuments()
}

// UpdateDocument replaces the editable fields of an existing document and
// recomputes every derived amount. The number, type, status and the
// customer snapshot are untouched: snapshots are fixed at creation time.
func (a *App) UpdateDocument(id string, in DocumentInput) (models.Document, validation.Violations, error) {
	v := validateDocument(in)
	if in.CustomerID != "" {
		if _, found := a.CustomerByID(in.CustomerID); !found {
			v["customerId"] = "Customer is required"
		}
	}
	if !v.Empty() {
		return models.Document{}, v, nil
	}

	for i := range a.documents {
		if a.documents[i].ID != id {
			continue
		}
		d := &a.documents[i]
		d.CustomerID = in.CustomerID
		d.Items = buildItems(in.Items)
		d.TaxRate = in.TaxRate
		d.Subtotal, d.TaxAmount, d.Total = ComputeTotals(d.Items, in.TaxRate)
		d.IssueDate = in.IssueDate
		d.DueDate = in.DueDate
		d.Notes = in.Notes
		d.UpdatedAt = time.Now().UTC()
		return *d, nil, a.persistDocuments()
	}
	return models.Document{}, nil, ErrNotFound
}

// DeleteDocument removes a document; its number becomes allocatable again.
func (a *App) DeleteDocument(id string) error {
	for i := range a.documents {
		if a.documents[i].ID == id {
			a.documents = append(a.documents[:i], a.documents[i+1:]...)
			return a.persistDocuments()
		}
	}
	return ErrNotFound
}

// SetStatus sets an operator-chosen status. Any status allowed for the
// document's type may be set at any time, reverts included; a status from
// the other type's set is rejected.
func (a *App) SetStatus(id string, status models.DocumentStatus) (models.Document, error) {
	for i := range a.documents {
		if a.documents[i].ID != id {
			continue
		}
		d := &a.documents[i]
		if !d.Type.AllowsStatus(status) {
			return models.Document{}, fmt.Errorf("status %q not allowed for %s", status, d.Type)
		}
		d.Status = status
		d.UpdatedAt = time.Now().UTC()
		return *d, a.persistDocuments()
	}
	return models.Document{}, ErrNotFound
}

// DocumentByID looks a document up by record id.
func (a *App) DocumentByID(id string) (models.Document, bool) {
	for _, d := range a.documents {
		if d.ID == id {
			return d, true
		}
	}
	return models.Document{}, false
}

// DocumentByNumber looks a document up by its INV-NNN / QUO-NNN identifier.
func (a *App) DocumentByNumber(number string) (models.Document, bool) {
	for _, d := range a.documents {
		if d.Number == number {
			return d, true
		}
	}
	return models.Document{}, false
}
