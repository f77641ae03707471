package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invoza/invoza/internal/models"
	"github.com/invoza/invoza/internal/store"
)

// memKV is a map-backed store.KV for tests.
type memKV struct {
	data map[string]string
}

func (m *memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

// failingKV accepts reads but rejects every write.
type failingKV struct {
	memKV
}

func (f *failingKV) Set(key, value string) error {
	return errors.New("disk full")
}

func newTestApp(t *testing.T, kv store.KV) *App {
	t.Helper()
	app := NewApp(store.NewCollections(kv, zap.NewNop().Sugar()), zap.NewNop().Sugar())
	require.NoError(t, app.Load())
	return app
}

func emptyKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func validCustomer() CustomerInput {
	return CustomerInput{Name: "Jane", Email: "jane@acme.test", Company: "Acme"}
}

func TestAddCustomer_AllocatesGapFillingNumbers(t *testing.T) {
	app := newTestApp(t, emptyKV())

	first, v, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)
	require.True(t, v.Empty())
	assert.Equal(t, "CUS-001", first.CustomerNumber)

	second, _, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)
	assert.Equal(t, "CUS-002", second.CustomerNumber)

	// deleting the first frees CUS-001 for the next creation
	require.NoError(t, app.DeleteCustomer(first.ID))
	third, _, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)
	assert.Equal(t, "CUS-001", third.CustomerNumber)
}

func TestAddCustomer_Validation(t *testing.T) {
	app := newTestApp(t, emptyKV())

	tests := []struct {
		name  string
		in    CustomerInput
		field string
		msg   string
	}{
		{"missing name", CustomerInput{Email: "a@b.test", Company: "Acme"}, "name", "Name is required"},
		{"missing email", CustomerInput{Name: "Jane", Company: "Acme"}, "email", "Email is required"},
		{"bad email", CustomerInput{Name: "Jane", Email: "jane@acme", Company: "Acme"}, "email", "Invalid email"},
		{"missing company", CustomerInput{Name: "Jane", Email: "a@b.test"}, "company", "Company is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, v, err := app.AddCustomer(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, v[tt.field])
			assert.Empty(t, app.Customers(), "rejected input must not be added")
		})
	}
}

func TestUpdateCustomer_KeepsNumber(t *testing.T) {
	app := newTestApp(t, emptyKV())
	c, _, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)

	in := validCustomer()
	in.Name = "Jane Updated"
	updated, v, err := app.UpdateCustomer(c.ID, in)
	require.NoError(t, err)
	require.True(t, v.Empty())
	assert.Equal(t, "Jane Updated", updated.Name)
	assert.Equal(t, c.CustomerNumber, updated.CustomerNumber)
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	app := newTestApp(t, emptyKV())

	_, _, err := app.UpdateCustomer("missing", validCustomer())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComputeTotals(t *testing.T) {
	items := []models.DocumentItem{
		{Quantity: 2, Rate: 100, Amount: 200},
		{Quantity: 1, Rate: 50, Amount: 50},
	}

	subtotal, taxAmount, total := ComputeTotals(items, 15)

	assert.Equal(t, 250.0, subtotal)
	assert.Equal(t, 37.5, taxAmount)
	assert.Equal(t, 287.5, total)
}

func TestComputeTotals_ZeroRate(t *testing.T) {
	items := []models.DocumentItem{{Quantity: 3, Rate: 10, Amount: 30}}

	subtotal, taxAmount, total := ComputeTotals(items, 0)

	assert.Equal(t, 30.0, subtotal)
	assert.Equal(t, 0.0, taxAmount)
	assert.Equal(t, 30.0, total)
}

func docInput(typ models.DocumentType, customerID string) DocumentInput {
	return DocumentInput{
		Type:       typ,
		CustomerID: customerID,
		Items:      []ItemInput{{Description: "Work", Quantity: 2, Rate: 100}},
		TaxRate:    15,
		IssueDate:  "2026-01-10",
		DueDate:    "2026-02-10",
	}
}

func TestAddDocument(t *testing.T) {
	app := newTestApp(t, emptyKV())
	c, _, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)

	doc, v, err := app.AddDocument(docInput(models.TypeInvoice, c.ID))
	require.NoError(t, err)
	require.True(t, v.Empty())

	assert.Equal(t, "INV-001", doc.Number)
	assert.Equal(t, models.StatusDraft, doc.Status)
	assert.Equal(t, 200.0, doc.Subtotal)
	assert.Equal(t, 30.0, doc.TaxAmount)
	assert.Equal(t, 230.0, doc.Total)
	require.NotNil(t, doc.Customer)
	assert.Equal(t, c.Name, doc.Customer.Name)

	quote, _, err := app.AddDocument(docInput(models.TypeQuote, c.ID))
	require.NoError(t, err)
	assert.Equal(t, "QUO-001", quote.Number, "quotes number independently of invoices")
}

func TestAddDocument_SnapshotSurvivesCustomerEdit(t *testing.T) {
	app := newTestApp(t, emptyKV())
	c, _, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)

	doc, _, err := app.AddDocument(docInput(models.TypeInvoice, c.ID))
	require.NoError(t, err)

	in := validCustomer()
	in.Name = "Renamed"
	_, _, err = app.UpdateCustomer(c.ID, in)
	require.NoError(t, err)

	stored, ok := app.DocumentByID(doc.ID)
	require.True(t, ok)
	assert.Equal(t, "Jane", stored.Customer.Name)
}

func TestAddDocument_Validation(t *testing.T) {
	app := newTestApp(t, emptyKV())
	c, _, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*DocumentInput)
		field  string
		msg    string
	}{
		{"missing customer", func(in *DocumentInput) { in.CustomerID = "" }, "customerId", "Customer is required"},
		{"unknown customer", func(in *DocumentInput) { in.CustomerID = "ghost" }, "customerId", "Customer is required"},
		{"missing issue date", func(in *DocumentInput) { in.IssueDate = "" }, "issueDate", "Issue date is required"},
		{"due before issue", func(in *DocumentInput) { in.DueDate = "2026-01-01" }, "dueDate", "Due date cannot be before issue date"},
		{"negative tax", func(in *DocumentInput) { in.TaxRate = -1 }, "taxRate", "Tax rate cannot be negative"},
		{"no items", func(in *DocumentInput) { in.Items = nil }, "items", "At least one item is required"},
		{"blank description", func(in *DocumentInput) { in.Items[0].Description = "" }, "items[0].description", "Description required"},
		{"zero quantity", func(in *DocumentInput) { in.Items[0].Quantity = 0 }, "items[0].quantity", "Qty must be > 0"},
		{"negative rate", func(in *DocumentInput) { in.Items[0].Rate = -5 }, "items[0].rate", "Rate cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := docInput(models.TypeInvoice, c.ID)
			tt.mutate(&in)
			_, v, err := app.AddDocument(in)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, v[tt.field])
			assert.Empty(t, app.Documents(), "rejected input must not be added")
		})
	}
}

func TestUpdateDocument_RecomputesTotalsKeepsIdentity(t *testing.T) {
	app := newTestApp(t, emptyKV())
	c, _, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)
	doc, _, err := app.AddDocument(docInput(models.TypeInvoice, c.ID))
	require.NoError(t, err)
	_, err = app.SetStatus(doc.ID, models.StatusSent)
	require.NoError(t, err)

	in := docInput(models.TypeInvoice, c.ID)
	in.Items = []ItemInput{{Description: "More work", Quantity: 1, Rate: 500}}
	updated, v, err := app.UpdateDocument(doc.ID, in)
	require.NoError(t, err)
	require.True(t, v.Empty())

	assert.Equal(t, doc.Number, updated.Number)
	assert.Equal(t, models.StatusSent, updated.Status, "edits must not reset the status")
	assert.Equal(t, 500.0, updated.Subtotal)
	assert.Equal(t, 75.0, updated.TaxAmount)
	assert.Equal(t, 575.0, updated.Total)
}

func TestDeleteDocument_FreesNumber(t *testing.T) {
	app := newTestApp(t, emptyKV())
	c, _, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)
	first, _, err := app.AddDocument(docInput(models.TypeInvoice, c.ID))
	require.NoError(t, err)
	_, _, err = app.AddDocument(docInput(models.TypeInvoice, c.ID))
	require.NoError(t, err)

	require.NoError(t, app.DeleteDocument(first.ID))

	third, _, err := app.AddDocument(docInput(models.TypeInvoice, c.ID))
	require.NoError(t, err)
	assert.Equal(t, "INV-001", third.Number)
}

func TestSetStatus(t *testing.T) {
	app := newTestApp(t, emptyKV())
	c, _, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)
	inv, _, err := app.AddDocument(docInput(models.TypeInvoice, c.ID))
	require.NoError(t, err)
	quo, _, err := app.AddDocument(docInput(models.TypeQuote, c.ID))
	require.NoError(t, err)

	got, err := app.SetStatus(inv.ID, models.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, got.Status)

	// reverts are allowed
	got, err = app.SetStatus(inv.ID, models.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, got.Status)

	_, err = app.SetStatus(inv.ID, models.StatusAccepted)
	assert.Error(t, err, "accepted is a quote status")

	_, err = app.SetStatus(quo.ID, models.StatusPaid)
	assert.Error(t, err, "paid is an invoice status")

	_, err = app.SetStatus("missing", models.StatusSent)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_NormalizesAndPersistsRepairs(t *testing.T) {
	kv := emptyKV()
	kv.data["customers"] = `[{"id":"c1","customerNumber":"1700000000000","name":"Jane"}]`
	kv.data["documents"] = `[{"id":"d1","type":"invoice","number":""},{"id":"d2","type":"quote","number":"QUO-001"}]`

	app := newTestApp(t, kv)

	assert.Equal(t, "CUS-001", app.Customers()[0].CustomerNumber)
	docs := app.Documents()
	assert.Equal(t, "INV-001", docs[0].Number)
	assert.Equal(t, "QUO-001", docs[1].Number)

	// the repair was written back
	assert.Contains(t, kv.data["customers"], "CUS-001")
	assert.Contains(t, kv.data["documents"], "INV-001")
}

func TestLoad_CleanDataNotRewritten(t *testing.T) {
	kv := emptyKV()
	kv.data["customers"] = `[{"id":"c1","customerNumber":"CUS-001","name":"Jane"}]`
	before := kv.data["customers"]

	_ = newTestApp(t, kv)

	assert.Equal(t, before, kv.data["customers"], "valid collections must not be written on load")
}

func TestMutations_OptimisticOnPersistFailure(t *testing.T) {
	app := newTestApp(t, &failingKV{memKV{data: map[string]string{}}})

	c, v, err := app.AddCustomer(validCustomer())
	require.Error(t, err)
	require.True(t, v.Empty())

	// the in-memory change stays despite the failed write
	stored, ok := app.CustomerByID(c.ID)
	assert.True(t, ok)
	assert.Equal(t, "CUS-001", stored.CustomerNumber)
}

func TestSaveSettings(t *testing.T) {
	app := newTestApp(t, emptyKV())
	assert.Nil(t, app.Settings())

	v, err := app.SaveSettings(models.BusinessSettings{})
	require.NoError(t, err)
	assert.Equal(t, "Business name is required", v["businessName"])
	assert.Equal(t, "Email is required", v["email"])

	s := models.BusinessSettings{
		BusinessName:        "Acme Trading",
		Email:               "billing@acme.test",
		Phone:               "555-0100",
		Address:             "1 Main Rd",
		VATNumber:           "VAT123",
		CompanyRegistration: "REG456",
	}
	v, err = app.SaveSettings(s)
	require.NoError(t, err)
	assert.True(t, v.Empty())
	require.NotNil(t, app.Settings())
	assert.Equal(t, "Acme Trading", app.Settings().BusinessName)
}

func TestLookups(t *testing.T) {
	app := newTestApp(t, emptyKV())
	c, _, err := app.AddCustomer(validCustomer())
	require.NoError(t, err)
	doc, _, err := app.AddDocument(docInput(models.TypeInvoice, c.ID))
	require.NoError(t, err)

	byNum, ok := app.CustomerByNumber("CUS-001")
	require.True(t, ok)
	assert.Equal(t, c.ID, byNum.ID)

	byDocNum, ok := app.DocumentByNumber("INV-001")
	require.True(t, ok)
	assert.Equal(t, doc.ID, byDocNum.ID)

	_, ok = app.CustomerByNumber("CUS-999")
	assert.False(t, ok)
}
