// Package store is the durable owner of the application data across
// sessions. Collections are persisted whole, as JSON strings in a local
// key-value table: the core always reads and writes an entire collection,
// never partial records, so last-writer-wins is the consistency model.
package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KV is the persistence interface the core consumes. Get reports ok=false
// when the key has never been written.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Entry is one stored key-value pair.
type Entry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable regardless of struct renames.
func (Entry) TableName() string { return "kv_entries" }

// DB is the sqlite-backed KV implementation.
type DB struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite database at path and migrates the
// key-value table.
func Open(path string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return &DB{db: db}, nil
}

// OpenGorm wraps an existing gorm connection, migrating the key-value
// table. Tests use this with an in-memory sqlite database.
func OpenGorm(db *gorm.DB) (*DB, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Get(key string) (string, bool, error) {
	var e Entry
	err := d.db.First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return e.Value, true, nil
}

func (d *DB) Set(key, value string) error {
	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Entry{Key: key, Value: value, UpdatedAt: time.Now()}).Error
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
