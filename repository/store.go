package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps the database handle behind entity-level methods so the service
// layer never builds queries itself. Transaction hands callers a Store bound
// to the transaction, giving unit-of-work semantics across entities.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// locked applies a row lock on dialects that support it. sqlite, used by the
// tests, has no FOR UPDATE; its single-writer connection covers the same races.
func (s *Store) locked() *gorm.DB {
	if s.db.Dialector.Name() == "sqlite" {
		return s.db
	}
	return s.db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a uniqueness violation from the storage
// layer, the last line of defense behind the in-transaction checks.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
