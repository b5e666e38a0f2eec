package repository

import (
	"fmt"
	"time"

	"go-collector-ledger/internal/apperr"
	"go-collector-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SealedRepository interface {
	Create(product *model.SealedProduct) error
	FindAll() ([]model.SealedProduct, error)
	FindByID(id uuid.UUID) (*model.SealedProduct, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.SealedProduct, error)
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	BulkUpdate(filters, updates map[string]interface{}) (int64, error)
	Delete(id uuid.UUID) error
	AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) error
}

type sealedRepo struct {
	db *gorm.DB
}

func NewSealedRepo(db *gorm.DB) SealedRepository {
	return &sealedRepo{db}
}

func (r *sealedRepo) Create(product *model.SealedProduct) error {
	return storageErr(r.db.Create(product).Error)
}

func (r *sealedRepo) FindAll() ([]model.SealedProduct, error) {
	var products []model.SealedProduct
	err := r.db.Order("LOWER(name)").Find(&products).Error
	return products, storageErr(err)
}

func (r *sealedRepo) FindByID(id uuid.UUID) (*model.SealedProduct, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *sealedRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.SealedProduct, error) {
	var product model.SealedProduct
	if err := tx.First(&product, "id = ?", id).Error; err != nil {
		return nil, storageErr(err)
	}
	return &product, nil
}

func (r *sealedRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&model.SealedProduct{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: sealed product %s", apperr.ErrNotFound, id)
	}
	return nil
}

func (r *sealedRepo) BulkUpdate(filters, updates map[string]interface{}) (int64, error) {
	res := r.db.Model(&model.SealedProduct{}).Where(filters).Updates(updates)
	if res.Error != nil {
		return 0, storageErr(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *sealedRepo) Delete(id uuid.UUID) error {
	return storageErr(r.db.Delete(&model.SealedProduct{}, "id = ?", id).Error)
}

// AdjustQuantity mirrors cardRepo.AdjustQuantity: a single guarded UPDATE
// enforcing the non-negative quantity invariant.
func (r *sealedRepo) AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) error {
	res := tx.Model(&model.SealedProduct{}).
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
		if err := tx.Model(&model.SealedProduct{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return storageErr(err)
		}
		if count == 0 {
			return fmt.Errorf("%w: sealed product %s", apperr.ErrNotFound, id)
		}
		return fmt.Errorf("%w: sealed product %s", apperr.ErrInsufficientInventory, id)
	}
	return nil
}
