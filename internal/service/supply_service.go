package service

import (
	"fmt"

	"go-collector-ledger/internal/apperr"
	"go-collector-ledger/internal/model"
	"go-collector-ledger/internal/repository"
	"go-collector-ledger/pkg/parse"
	"go-collector-ledger/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SupplyBatchInput carries the raw values for purchasing a supply batch.
type SupplyBatchInput struct {
	Description       string `json:"description" validate:"required"`
	Supplier          string `json:"supplier"`
	UnitCost          string `json:"unit_cost"`
	QuantityPurchased int    `json:"quantity_purchased" validate:"gte=0"`
	PurchasedAt       string `json:"purchased_at"`
	Notes             string `json:"notes"`
}

type SupplyService interface {
	List() ([]model.SupplyBatch, error)
	Add(input *SupplyBatchInput) (uuid.UUID, error)
	Update(id uuid.UUID, patch map[string]interface{}) error
	Delete(id uuid.UUID) error
	Consume(id uuid.UUID, qty int) (decimal.Decimal, error)
	Restock(id uuid.UUID, qty int) error
}

type supplyService struct {
	supplies repository.SupplyRepository
	ledger   repository.LedgerRepository
	txm      repository.TxManager
	log      *zap.Logger
}

func NewSupplyService(supplies repository.SupplyRepository, ledger repository.LedgerRepository, txm repository.TxManager, log *zap.Logger) SupplyService {
	if log == nil {
		log = zap.NewNop()
	}
	return &supplyService{
		supplies: supplies,
		ledger:   ledger,
		txm:      txm,
		log:      log,
	}
}

func (s *supplyService) List() ([]model.SupplyBatch, error) {
	return s.supplies.FindAll()
}

// Add creates the batch with quantity_available = quantity_purchased and, in
// the same transaction, posts the negative ledger entry for the purchase. A
// supply purchase always has an accounting side effect.
func (s *supplyService) Add(input *SupplyBatchInput) (uuid.UUID, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return uuid.Nil, validationErr(errs)
	}

	unitCost, err := parse.NonNegativeMoney(input.UnitCost)
	if err != nil {
		return uuid.Nil, err
	}
	purchasedAt, err := parse.DateOrToday(input.PurchasedAt)
	if err != nil {
		return uuid.Nil, err
	}

	batch := &model.SupplyBatch{
		Description:       input.Description,
		Supplier:          input.Supplier,
		UnitCost:          unitCost,
		QuantityPurchased: input.QuantityPurchased,
		QuantityAvailable: input.QuantityPurchased,
		PurchasedAt:       purchasedAt,
		Notes:             input.Notes,
	}

	totalCost := unitCost.Mul(decimal.NewFromInt(int64(input.QuantityPurchased)))

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		if err := s.supplies.Create(tx, batch); err != nil {
			return err
		}
		entry := &model.LedgerEntry{
			EntryDate:   purchasedAt,
			Description: fmt.Sprintf("Shipping supplies: %s", input.Description),
			Amount:      totalCost.Neg(),
			Category:    model.CategoryShippingSupplies,
		}
		return s.ledger.Create(tx, entry)
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.Info("supply batch purchased",
		zap.String("id", batch.ID.String()),
		zap.Int("quantity", batch.QuantityPurchased),
		zap.String("total_cost", totalCost.String()),
	)
	return batch.ID, nil
}

func (s *supplyService) Update(id uuid.UUID, patch map[string]interface{}) error {
	fields, err := supplyFields.coerce(patch, false)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return s.supplies.UpdateFields(id, fields)
}

func (s *supplyService) Delete(id uuid.UUID) error {
	return s.supplies.Delete(id)
}

func (s *supplyService) Consume(id uuid.UUID, qty int) (decimal.Decimal, error) {
	if qty <= 0 {
		return decimal.Zero, fmt.Errorf("%w: consume quantity must be positive", apperr.ErrInvalidInput)
	}
	var cost decimal.Decimal
	err := s.txm.Transaction(func(tx *gorm.DB) error {
		var err error
		cost, err = s.supplies.Consume(tx, id, qty)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return cost, nil
}

func (s *supplyService) Restock(id uuid.UUID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: restock quantity must be positive", apperr.ErrInvalidInput)
	}
	return s.txm.Transaction(func(tx *gorm.DB) error {
		return s.supplies.Restock(tx, id, qty)
	})
}
