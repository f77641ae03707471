package store

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/invoza/invoza/internal/models"
)

// Fixed storage keys, one per collection.
const (
	keyCustomers = "customers"
	keyDocuments = "documents"
	keySettings  = "businessSettings"
)

// Collections reads and writes whole collections through a KV store. A
// stored value that fails to parse is treated as absent, never as a fatal
// error: the repair path for bad data is the normalization pass, not a
// crash.
type Collections struct {
	kv  KV
	log *zap.SugaredLogger
}

func NewCollections(kv KV, log *zap.SugaredLogger) *Collections {
	return &Collections{kv: kv, log: log}
}

// LoadCustomers returns the stored customer collection, or nil when absent
// or unparseable.
func (c *Collections) LoadCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.load(keyCustomers, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Collections) SaveCustomers(customers []models.Customer) error {
	return c.save(keyCustomers, customers)
}

// LoadDocuments returns the stored document collection, or nil when absent
// or unparseable.
func (c *Collections) LoadDocuments() ([]models.Document, error) {
	var documents []models.Document
	if err := c.load(keyDocuments, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}

func (c *Collections) SaveDocuments(documents []models.Document) error {
	return c.save(keyDocuments, documents)
}

// LoadSettings returns the stored business settings, or nil when none have
// been saved yet.
func (c *Collections) LoadSettings() (*models.BusinessSettings, error) {
	var settings *models.BusinessSettings
	if err := c.load(keySettings, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *Collections) SaveSettings(settings models.BusinessSettings) error {
	return c.save(keySettings, settings)
}

func (c *Collections) load(key string, out any) error {
	raw, ok, err := c.kv.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.log.Warnw("stored collection unparseable, treating as empty", "key", key, "error", err)
		return nil
	}
	return nil
}

func (c *Collections) save(key string, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.kv.Set(key, string(raw))
}
