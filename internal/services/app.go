// Package services owns the in-memory collections for the session and the
// persistence round-trip. Mutations are applied optimistically: the
// in-memory change stays even when the store write fails, the error is
// logged and handed back for user notification, and the next load repairs
// any divergence.
package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/invoza/invoza/internal/models"
	"github.com/invoza/invoza/internal/numbering"
	"github.com/invoza/invoza/internal/store"
)

// ErrNotFound is returned when a record id does not exist in the session.
var ErrNotFound = errors.New("record not found")

// App holds the single in-memory copy of all collections.
type App struct {
	store *store.Collections
	log   *zap.SugaredLogger

	customers []models.Customer
	documents []models.Document
	settings  *models.BusinessSettings
}

func NewApp(store *store.Collections, log *zap.SugaredLogger) *App {
	return &App{store: store, log: log}
}

// Load reads all collections from the store and runs the normalization
// pass over identifiers. Repaired collections are written back so the
// repair survives the session.
func (a *App) Load() error {
	customers, err := a.store.LoadCustomers()
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}
	documents, err := a.store.LoadDocuments()
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	settings, err := a.store.LoadSettings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	normalizedCustomers, changed := numbering.NormalizeCustomers(customers)
	a.customers = normalizedCustomers
	if changed {
		a.logRepairs(customers, nil, normalizedCustomers, nil)
		if err := a.store.SaveCustomers(a.customers); err != nil {
			return fmt.Errorf("persist repaired customers: %w", err)
		}
	}

	normalizedDocuments, changed := numbering.NormalizeDocuments(documents)
	a.documents = normalizedDocuments
	if changed {
		a.logRepairs(nil, documents, nil, normalizedDocuments)
		if err := a.store.SaveDocuments(a.documents); err != nil {
			return fmt.Errorf("persist repaired documents: %w", err)
		}
	}

	a.settings = settings
	return nil
}

// Customers returns the in-memory customer collection. Callers must treat
// it as read-only; mutations go through the Add/Update/Delete operations.
func (a *App) Customers() []models.Customer { return a.customers }

// Documents returns the in-memory document collection, read-only.
func (a *App) Documents() []models.Document { return a.documents }

// DocumentsByType returns the documents of one type, read-only.
func (a *App) DocumentsByType(typ models.DocumentType) []models.Document {
	var out []models.Document
	for _, d := range a.documents {
		if d.Type == typ {
			out = append(out, d)
		}
	}
	return out
}

func (a *App) logRepairs(oldCustomers []models.Customer, oldDocuments []models.Document, newCustomers []models.Customer, newDocuments []models.Document) {
	for i := range newCustomers {
		if oldCustomers[i].CustomerNumber != newCustomers[i].CustomerNumber {
			a.log.Warnw("repaired customer number",
				"id", newCustomers[i].ID,
				"from", oldCustomers[i].CustomerNumber,
				"to", newCustomers[i].CustomerNumber)
		}
	}
	for i := range newDocuments {
		if oldDocuments[i].Number != newDocuments[i].Number {
			a.log.Warnw("repaired document number",
				"id", newDocuments[i].ID,
				"type", newDocuments[i].Type,
				"from", oldDocuments[i].Number,
				"to", newDocuments[i].Number)
		}
	}
}

func (a *App) persistCustomers() error {
	if err := a.store.SaveCustomers(a.customers); err != nil {
		a.log.Errorw("persist customers failed", "error", err)
		return err
	}
	return nil
}

func (a *App) persistDocuments() error {
	if err := a.store.SaveDocuments(a.documents); err != nil {
		a.log.Errorw("persist documents failed", "error", err)
		return err
	}
	return nil
}
