package repository

import (
	"fmt"
	"time"

	"go-collector-ledger/internal/apperr"
	"go-collector-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository interface {
	Create(card *model.Card) error
	FindAll() ([]model.Card, error)
	FindByID(id uuid.UUID) (*model.Card, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Card, error)
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	BulkUpdate(filters, updates map[string]interface{}) (int64, error)
	Delete(id uuid.UUID) error
	AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) error
}

type cardRepo struct {
	db *gorm.DB
}

func NewCardRepo(db *gorm.DB) CardRepository {
	return &cardRepo{db}
}

func (r *cardRepo) Create(card *model.Card) error {
	return storageErr(r.db.Create(card).Error)
}

func (r *cardRepo) FindAll() ([]model.Card, error) {
	var cards []model.Card
	err := r.db.
		Order("LOWER(name), set_code NULLS LAST, collector_number NULLS LAST").
		Find(&cards).Error
	return cards, storageErr(err)
}

func (r *cardRepo) FindByID(id uuid.UUID) (*model.Card, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *cardRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := tx.First(&card, "id = ?", id).Error; err != nil {
		return nil, storageErr(err)
	}
	return &card, nil
}

func (r *cardRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&model.Card{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: card %s", apperr.ErrNotFound, id)
	}
	return nil
}

func (r *cardRepo) BulkUpdate(filters, updates map[string]interface{}) (int64, error) {
	res := r.db.Model(&model.Card{}).Where(filters).Updates(updates)
	if res.Error != nil {
		return 0, storageErr(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *cardRepo) Delete(id uuid.UUID) error {
	return storageErr(r.db.Delete(&model.Card{}, "id = ?", id).Error)
}

// AdjustQuantity applies a quantity delta as a single guarded UPDATE so two
// concurrent sales against the same card cannot both pass a non-negativity
// check and drive the quantity below zero.
func (r *cardRepo) AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) error {
	res := tx.Model(&model.Card{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		UpdateColumns(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.Card{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return storageErr(err)
		}
		if count == 0 {
			return fmt.Errorf("%w: card %s", apperr.ErrNotFound, id)
		}
		return fmt.Errorf("%w: card %s", apperr.ErrInsufficientInventory, id)
	}
	return nil
}
