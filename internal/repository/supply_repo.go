package repository

import (
	"fmt"
	"time"

	"go-collector-ledger/internal/apperr"
	"go-collector-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SupplyRepository interface {
	Create(tx *gorm.DB, batch *model.SupplyBatch) error
	FindAll() ([]model.SupplyBatch, error)
	FindByID(id uuid.UUID) (*model.SupplyBatch, error)
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	Consume(tx *gorm.DB, id uuid.UUID, qty int) (decimal.Decimal, error)
	Restock(tx *gorm.DB, id uuid.UUID, qty int) error
}

type supplyRepo struct {
	db *gorm.DB
}

func NewSupplyRepo(db *gorm.DB) SupplyRepository {
	return &supplyRepo{db}
}

func (r *supplyRepo) Create(tx *gorm.DB, batch *model.SupplyBatch) error {
	return storageErr(tx.Create(batch).Error)
}

func (r *supplyRepo) FindAll() ([]model.SupplyBatch, error) {
	var batches []model.SupplyBatch
	err := r.db.Order("purchased_at DESC, id DESC").Find(&batches).Error
	return batches, storageErr(err)
}

func (r *supplyRepo) FindByID(id uuid.UUID) (*model.SupplyBatch, error) {
	var batch model.SupplyBatch
	if err := r.db.First(&batch, "id = ?", id).Error; err != nil {
		return nil, storageErr(err)
	}
	return &batch, nil
}

func (r *supplyRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&model.SupplyBatch{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: supply batch %s", apperr.ErrNotFound, id)
	}
	return nil
}

func (r *supplyRepo) Delete(id uuid.UUID) error {
	return storageErr(r.db.Delete(&model.SupplyBatch{}, "id = ?", id).Error)
}

// Consume decrements quantity_available by qty with a guarded UPDATE and
// returns the total cost of the consumed units at the batch's unit cost.
func (r *supplyRepo) Consume(tx *gorm.DB, id uuid.UUID, qty int) (decimal.Decimal, error) {
	res := tx.Model(&model.SupplyBatch{}).
		Where("id = ? AND quantity_available >= ?", id, qty).
		UpdateColumns(map[string]interface{}{
			"quantity_available": gorm.Expr("quantity_available - ?", qty),
			"updated_at":         time.Now().UTC(),
		})
	if res.Error != nil {
		return decimal.Zero, storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.SupplyBatch{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return decimal.Zero, storageErr(err)
		}
		if count == 0 {
			return decimal.Zero, fmt.Errorf("%w: supply batch %s", apperr.ErrNotFound, id)
		}
		return decimal.Zero, fmt.Errorf("%w: supply batch %s", apperr.ErrInsufficientSupply, id)
	}

	var batch model.SupplyBatch
	if err := tx.Select("unit_cost").First(&batch, "id = ?", id).Error; err != nil {
		return decimal.Zero, storageErr(err)
	}
	return batch.UnitCost.Mul(decimal.NewFromInt(int64(qty))), nil
}

// Restock increments quantity_available by qty, guarded so the result can
// never exceed quantity_purchased. Exceeding it means a sale reversal is
// trying to return more units than the batch ever held, which signals
// corrupted history rather than a user mistake.
func (r *supplyRepo) Restock(tx *gorm.DB, id uuid.UUID, qty int) error {
	res := tx.Model(&model.SupplyBatch{}).
		Where("id = ? AND quantity_available + ? <= quantity_purchased", id, qty).
		UpdateColumns(map[string]interface{}{
			"quantity_available": gorm.Expr("quantity_available + ?", qty),
			"updated_at":         time.Now().UTC(),
		})
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.SupplyBatch{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return storageErr(err)
		}
		if count == 0 {
			return fmt.Errorf("%w: supply batch %s", apperr.ErrNotFound, id)
		}
		return fmt.Errorf("%w: supply batch %s", apperr.ErrCorruption, id)
	}
	return nil
}
