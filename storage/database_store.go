package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is a single key-value row
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:128"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for the KVEntry model
func (KVEntry) TableName() string {
	return "kv_entries"
}

// DatabaseStore keeps collections in a single SQL table through gorm.
// Works with both PostgreSQL and SQLite.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore migrates the kv table and returns a store bound to db
func NewDatabaseStore(db *gorm.DB) (*DatabaseStore, error) {
	if db == nil {
		return nil, errors.New("database is not connected")
	}
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv table: %w", err)
	}
	return &DatabaseStore{db: db}, nil
}

// Get returns the value stored under key
func (s *DatabaseStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Set inserts or overwrites the value stored under key
func (s *DatabaseStore) Set(ctx context.Context, key string, value []byte) error {
	entry := KVEntry{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Ping verifies the database connection
func (s *DatabaseStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
