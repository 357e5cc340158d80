package store

import (
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"homestead/server/internal/models"
)

// Store wraps the gorm handle and exposes the collection-style queries
// the workflows need. All status transitions are conditional updates on
// the current status so that two coincident requests for the same row
// cannot both win.
type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Migrate creates or updates the schema for all collections.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.Party{},
		&models.Property{},
		&models.Application{},
		&models.Contract{},
	)
}

// Transaction runs fn against a transactional view of the store,
// committing when fn returns nil.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsNotFound reports whether err is the database's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
