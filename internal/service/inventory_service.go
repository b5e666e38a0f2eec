package service

import (
	"fmt"

	"go-collector-ledger/internal/apperr"
	"go-collector-ledger/internal/model"
	"go-collector-ledger/internal/repository"
	"go-collector-ledger/internal/ws"
	"go-collector-ledger/pkg/parse"
	"go-collector-ledger/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CardInput carries the raw values for adding a single card. Money and date
// fields arrive as string literals and are coerced here.
type CardInput struct {
	Name             string `json:"name" validate:"required"`
	SetCode          string `json:"set_code"`
	CollectorNumber  string `json:"collector_number"`
	Condition        string `json:"condition"`
	Language         string `json:"language"`
	IsFoil           bool   `json:"is_foil"`
	AcquisitionPrice string `json:"acquisition_price"`
	MarketPrice      string `json:"market_price"`
	Quantity         int    `json:"quantity" validate:"gte=0"`
	AcquiredAt       string `json:"acquired_at"`
	Notes            string `json:"notes"`
}

// SealedProductInput carries the raw values for adding a sealed product.
type SealedProductInput struct {
	Name             string `json:"name" validate:"required"`
	SetCode          string `json:"set_code"`
	ProductType      string `json:"product_type"`
	AcquisitionPrice string `json:"acquisition_price"`
	MarketPrice      string `json:"market_price"`
	Quantity         int    `json:"quantity" validate:"gte=0"`
	AcquiredAt       string `json:"acquired_at"`
	Notes            string `json:"notes"`
}

type InventoryService interface {
	ListCards() ([]model.Card, error)
	AddCard(input *CardInput) (uuid.UUID, error)
	UpdateCard(id uuid.UUID, patch map[string]interface{}) error
	BulkUpdateCards(filters, updates map[string]interface{}) (int64, error)
	DeleteCard(id uuid.UUID) error

	ListSealed() ([]model.SealedProduct, error)
	AddSealed(input *SealedProductInput) (uuid.UUID, error)
	UpdateSealed(id uuid.UUID, patch map[string]interface{}) error
	BulkUpdateSealed(filters, updates map[string]interface{}) (int64, error)
	DeleteSealed(id uuid.UUID) error

	AdjustQuantity(invType model.InventoryType, id uuid.UUID, delta int) error
}

type inventoryService struct {
	cards  repository.CardRepository
	sealed repository.SealedRepository
	txm    repository.TxManager
	hub    *ws.Hub
	log    *zap.Logger
}

func NewInventoryService(cards repository.CardRepository, sealed repository.SealedRepository, txm repository.TxManager, hub *ws.Hub, log *zap.Logger) InventoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &inventoryService{
		cards:  cards,
		sealed: sealed,
		txm:    txm,
		hub:    hub,
		log:    log,
	}
}

func validationErr(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("%w: field %s failed on %s", apperr.ErrInvalidInput, first.FailedField, first.Tag)
}

func (s *inventoryService) ListCards() ([]model.Card, error) {
	return s.cards.FindAll()
}

func (s *inventoryService) AddCard(input *CardInput) (uuid.UUID, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return uuid.Nil, validationErr(errs)
	}

	acquisition, err := parse.NonNegativeMoney(input.AcquisitionPrice)
	if err != nil {
		return uuid.Nil, err
	}
	market, err := parse.NonNegativeMoney(input.MarketPrice)
	if err != nil {
		return uuid.Nil, err
	}
	acquiredAt, err := parse.Date(input.AcquiredAt)
	if err != nil {
		return uuid.Nil, err
	}

	card := &model.Card{
		Name:             input.Name,
		SetCode:          input.SetCode,
		CollectorNumber:  input.CollectorNumber,
		Condition:        input.Condition,
		Language:         input.Language,
		IsFoil:           input.IsFoil,
		AcquisitionPrice: acquisition,
		MarketPrice:      market,
		Quantity:         input.Quantity,
		AcquiredAt:       acquiredAt,
		Notes:            input.Notes,
	}
	if err := s.cards.Create(card); err != nil {
		return uuid.Nil, err
	}

	s.log.Info("card added", zap.String("id", card.ID.String()), zap.String("name", card.Name))
	return card.ID, nil
}

func (s *inventoryService) UpdateCard(id uuid.UUID, patch map[string]interface{}) error {
	fields, err := cardFields.coerce(patch, false)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return s.cards.UpdateFields(id, fields)
}

func (s *inventoryService) BulkUpdateCards(filters, updates map[string]interface{}) (int64, error) {
	return s.bulkUpdate(cardFields, filters, updates, s.cards.BulkUpdate)
}

func (s *inventoryService) DeleteCard(id uuid.UUID) error {
	return s.cards.Delete(id)
}

func (s *inventoryService) ListSealed() ([]model.SealedProduct, error) {
	return s.sealed.FindAll()
}

func (s *inventoryService) AddSealed(input *SealedProductInput) (uuid.UUID, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return uuid.Nil, validationErr(errs)
	}

	acquisition, err := parse.NonNegativeMoney(input.AcquisitionPrice)
	if err != nil {
		return uuid.Nil, err
	}
	market, err := parse.NonNegativeMoney(input.MarketPrice)
	if err != nil {
		return uuid.Nil, err
	}
	acquiredAt, err := parse.Date(input.AcquiredAt)
	if err != nil {
		return uuid.Nil, err
	}

	product := &model.SealedProduct{
		Name:             input.Name,
		SetCode:          input.SetCode,
		ProductType:      input.ProductType,
		AcquisitionPrice: acquisition,
		MarketPrice:      market,
		Quantity:         input.Quantity,
		AcquiredAt:       acquiredAt,
		Notes:            input.Notes,
	}
	if err := s.sealed.Create(product); err != nil {
		return uuid.Nil, err
	}

	s.log.Info("sealed product added", zap.String("id", product.ID.String()), zap.String("name", product.Name))
	return product.ID, nil
}

func (s *inventoryService) UpdateSealed(id uuid.UUID, patch map[string]interface{}) error {
	fields, err := sealedFields.coerce(patch, false)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return s.sealed.UpdateFields(id, fields)
}

func (s *inventoryService) BulkUpdateSealed(filters, updates map[string]interface{}) (int64, error) {
	return s.bulkUpdate(sealedFields, filters, updates, s.sealed.BulkUpdate)
}

func (s *inventoryService) DeleteSealed(id uuid.UUID) error {
	return s.sealed.Delete(id)
}

// bulkUpdate coerces filter and update maps strictly against the schema and
// applies one multi-row UPDATE. An empty update set performs zero writes and
// reports zero rows, which is not an error.
func (s *inventoryService) bulkUpdate(schema fieldSchema, filters, updates map[string]interface{}, apply func(filters, updates map[string]interface{}) (int64, error)) (int64, error) {
	coercedFilters, err := schema.coerce(filters, true)
	if err != nil {
		return 0, err
	}
	coercedUpdates, err := schema.coerce(updates, true)
	if err != nil {
		return 0, err
	}
	if len(coercedUpdates) == 0 {
		return 0, nil
	}
	return apply(coercedFilters, coercedUpdates)
}

// AdjustQuantity applies a quantity delta to one inventory record. This is
// the only mutation path the sale engine uses.
func (s *inventoryService) AdjustQuantity(invType model.InventoryType, id uuid.UUID, delta int) error {
	err := s.txm.Transaction(func(tx *gorm.DB) error {
		switch invType {
		case model.InventorySingle:
			return s.cards.AdjustQuantity(tx, id, delta)
		case model.InventorySealed:
			return s.sealed.AdjustQuantity(tx, id, delta)
		default:
			return fmt.Errorf("%w: unknown inventory type %q", apperr.ErrInvalidInput, invType)
		}
	})
	if err != nil {
		return err
	}

	go s.hub.Publish(map[string]interface{}{
		"type":           "stock_update",
		"action":         "quantity_adjusted",
		"inventory_type": invType,
		"inventory_id":   id,
		"delta":          delta,
	})
	return nil
}
