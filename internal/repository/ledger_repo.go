package repository

import (
	"go-collector-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerRepository interface {
	// Create inserts an entry; tx may be the base connection or an open
	// transaction (supply purchases post their entry transactionally).
	Create(tx *gorm.DB, entry *model.LedgerEntry) error
	FindAll() ([]model.LedgerEntry, error)
	Delete(id uuid.UUID) error
}

type ledgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepository {
	return &ledgerRepo{db}
}

func (r *ledgerRepo) Create(tx *gorm.DB, entry *model.LedgerEntry) error {
	if tx == nil {
		tx = r.db
	}
	return storageErr(tx.Create(entry).Error)
}

func (r *ledgerRepo) FindAll() ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := r.db.Order("entry_date DESC, id DESC").Find(&entries).Error
	return entries, storageErr(err)
}

func (r *ledgerRepo) Delete(id uuid.UUID) error {
	return storageErr(r.db.Delete(&model.LedgerEntry{}, "id = ?", id).Error)
}
