package repository

import (
	"fmt"

	"go-collector-ledger/internal/apperr"
	"go-collector-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateEvent(tx *gorm.DB, event *model.SaleEvent) error
	CreateItem(tx *gorm.DB, item *model.SaleItem) error
	CreateSupplyUsage(tx *gorm.DB, usage *model.SaleSupplyUsage) error
	FindAll() ([]model.SaleEvent, error)
	FindByID(id uuid.UUID) (*model.SaleEvent, error)
	ItemsForEvent(tx *gorm.DB, eventID uuid.UUID) ([]model.SaleItem, error)
	SuppliesForEvent(tx *gorm.DB, eventID uuid.UUID) ([]model.SaleSupplyUsage, error)
	DeleteEvent(tx *gorm.DB, id uuid.UUID) error
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) CreateEvent(tx *gorm.DB, event *model.SaleEvent) error {
	return storageErr(tx.Create(event).Error)
}

func (r *saleRepo) CreateItem(tx *gorm.DB, item *model.SaleItem) error {
	return storageErr(tx.Create(item).Error)
}

func (r *saleRepo) CreateSupplyUsage(tx *gorm.DB, usage *model.SaleSupplyUsage) error {
	return storageErr(tx.Create(usage).Error)
}

func (r *saleRepo) FindAll() ([]model.SaleEvent, error) {
	var events []model.SaleEvent
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("Supplies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Order("sale_date DESC, id DESC").
		Find(&events).Error
	return events, storageErr(err)
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.SaleEvent, error) {
	var event model.SaleEvent
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("Supplies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return &event, nil
}

func (r *saleRepo) ItemsForEvent(tx *gorm.DB, eventID uuid.UUID) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := tx.Where("sale_event_id = ?", eventID).Order("created_at, id").Find(&items).Error
	return items, storageErr(err)
}

func (r *saleRepo) SuppliesForEvent(tx *gorm.DB, eventID uuid.UUID) ([]model.SaleSupplyUsage, error) {
	var supplies []model.SaleSupplyUsage
	err := tx.Where("sale_event_id = ?", eventID).Order("created_at, id").Find(&supplies).Error
	return supplies, storageErr(err)
}

// DeleteEvent removes the sale header; sale_items and sale_supplies rows are
// cascade-deleted by the foreign key constraint.
func (r *saleRepo) DeleteEvent(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Delete(&model.SaleEvent{}, "id = ?", id)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: sale event %s", apperr.ErrNotFound, id)
	}
	return nil
}
