package repository

import (
	"errors"
	"fmt"

	"go-collector-ledger/internal/apperr"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction. Every
// multi-step mutation (recording or reversing a sale, purchasing a supply
// batch) goes through one Transaction call so that no partial state is ever
// observable.
type TxManager interface {
	Transaction(fn func(tx *gorm.DB) error) error
}

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) Transaction(fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}

// storageErr translates driver errors into the domain taxonomy.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return fmt.Errorf("%w: %v", apperr.ErrStorageFailure, err)
}
