package service

import (
	"errors"
	"fmt"

	"go-collector-ledger/internal/apperr"
	"go-collector-ledger/internal/model"
	"go-collector-ledger/internal/repository"
	"go-collector-ledger/internal/ws"
	"go-collector-ledger/pkg/parse"
	"go-collector-ledger/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SaleItemInput is one line of a sale payload.
type SaleItemInput struct {
	InventoryType    string    `json:"inventory_type" validate:"required,oneof=single sealed"`
	InventoryID      uuid.UUID `json:"inventory_id" validate:"uuid_required"`
	Quantity         int       `json:"quantity" validate:"gt=0"`
	SalePricePerUnit string    `json:"sale_price_per_unit"`
}

// SaleSupplyInput is one supply usage of a sale payload. Zero quantities are
// skipped; negative quantities are rejected.
type SaleSupplyInput struct {
	SupplyBatchID uuid.UUID `json:"supply_batch_id" validate:"uuid_required"`
	QuantityUsed  int       `json:"quantity_used"`
}

// SaleInput is the full payload for recording a sale.
type SaleInput struct {
	SaleDate                string            `json:"sale_date"`
	Platform                string            `json:"platform"`
	Items                   []SaleItemInput   `json:"items" validate:"min=1,dive"`
	Supplies                []SaleSupplyInput `json:"supplies" validate:"dive"`
	CustomerShippingCharged string            `json:"customer_shipping_charged"`
	ActualPostageCost       string            `json:"actual_postage_cost"`
	PlatformFees            string            `json:"platform_fees"`
	Notes                   string            `json:"notes"`
}

// SaleService is the sale transaction engine. RecordSale and DeleteSale each
// run as one atomic unit of work across inventory, supplies and sale history:
// either every adjustment lands or none do.
type SaleService interface {
	RecordSale(input *SaleInput) (uuid.UUID, error)
	DeleteSale(id uuid.UUID) error
	List() ([]model.SaleEvent, error)
	Get(id uuid.UUID) (*model.SaleEvent, error)
}

type saleService struct {
	cards    repository.CardRepository
	sealed   repository.SealedRepository
	supplies repository.SupplyRepository
	sales    repository.SaleRepository
	txm      repository.TxManager
	hub      *ws.Hub
	log      *zap.Logger
}

func NewSaleService(
	cards repository.CardRepository,
	sealed repository.SealedRepository,
	supplies repository.SupplyRepository,
	sales repository.SaleRepository,
	txm repository.TxManager,
	hub *ws.Hub,
	log *zap.Logger,
) SaleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &saleService{
		cards:    cards,
		sealed:   sealed,
		supplies: supplies,
		sales:    sales,
		txm:      txm,
		hub:      hub,
		log:      log,
	}
}

// itemSnapshot captures the inventory record's state at sale time. The
// acquisition price recorded on the sale item is this snapshot, never a
// recomputation from a later-edited inventory record.
type itemSnapshot struct {
	invType          model.InventoryType
	invID            uuid.UUID
	name             string
	setCode          string
	quantity         int
	salePricePerUnit decimal.Decimal
	acquisitionPrice decimal.Decimal
}

func (s *saleService) RecordSale(input *SaleInput) (uuid.UUID, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return uuid.Nil, validationErr(errs)
	}

	saleDate, err := parse.DateOrToday(input.SaleDate)
	if err != nil {
		return uuid.Nil, err
	}
	shippingCharged, err := parse.NonNegativeMoney(input.CustomerShippingCharged)
	if err != nil {
		return uuid.Nil, err
	}
	postageCost, err := parse.NonNegativeMoney(input.ActualPostageCost)
	if err != nil {
		return uuid.Nil, err
	}
	platformFees, err := parse.NonNegativeMoney(input.PlatformFees)
	if err != nil {
		return uuid.Nil, err
	}
	for _, supply := range input.Supplies {
		if supply.QuantityUsed < 0 {
			return uuid.Nil, fmt.Errorf("%w: supply quantity_used must not be negative", apperr.ErrInvalidInput)
		}
	}

	var eventID uuid.UUID
	err = s.txm.Transaction(func(tx *gorm.DB) error {
		snapshots := make([]itemSnapshot, 0, len(input.Items))
		totalSaleAmount := decimal.Zero
		totalCostOfGoods := decimal.Zero

		for _, item := range input.Items {
			salePrice, err := parse.NonNegativeMoney(item.SalePricePerUnit)
			if err != nil {
				return err
			}
			snap, err := s.snapshotInventory(tx, model.InventoryType(item.InventoryType), item.InventoryID)
			if err != nil {
				return err
			}
			snap.quantity = item.Quantity
			snap.salePricePerUnit = salePrice

			qty := decimal.NewFromInt(int64(item.Quantity))
			totalSaleAmount = totalSaleAmount.Add(salePrice.Mul(qty))
			totalCostOfGoods = totalCostOfGoods.Add(snap.acquisitionPrice.Mul(qty))
			snapshots = append(snapshots, snap)
		}

		totalSuppliesCost := decimal.Zero
		usages := make([]model.SaleSupplyUsage, 0, len(input.Supplies))
		for _, supply := range input.Supplies {
			if supply.QuantityUsed == 0 {
				continue
			}
			cost, err := s.supplies.Consume(tx, supply.SupplyBatchID, supply.QuantityUsed)
			if err != nil {
				return err
			}
			unitCost := cost.Div(decimal.NewFromInt(int64(supply.QuantityUsed)))
			totalSuppliesCost = totalSuppliesCost.Add(cost)
			usages = append(usages, model.SaleSupplyUsage{
				SupplyBatchID: supply.SupplyBatchID,
				QuantityUsed:  supply.QuantityUsed,
				UnitCost:      unitCost,
				TotalCost:     cost,
			})
		}

		totalSaleAmount = totalSaleAmount.Add(shippingCharged)
		totalProfit := totalSaleAmount.
			Sub(totalCostOfGoods).
			Sub(postageCost).
			Sub(platformFees).
			Sub(totalSuppliesCost)

		event := &model.SaleEvent{
			SaleDate:                 saleDate,
			Platform:                 input.Platform,
			CustomerShippingCharged:  shippingCharged,
			ActualPostageCost:        postageCost,
			PlatformFees:             platformFees,
			TotalSaleAmount:          totalSaleAmount,
			TotalCostOfGoods:         totalCostOfGoods,
			TotalSuppliesCostForSale: totalSuppliesCost,
			TotalProfitLoss:          totalProfit,
			Notes:                    input.Notes,
		}
		if err := s.sales.CreateEvent(tx, event); err != nil {
			return err
		}

		for _, snap := range snapshots {
			if err := s.adjustInventory(tx, snap.invType, snap.invID, -snap.quantity); err != nil {
				return err
			}
			qty := decimal.NewFromInt(int64(snap.quantity))
			item := &model.SaleItem{
				SaleEventID:             event.ID,
				InventoryType:           snap.invType,
				InventoryID:             snap.invID,
				ItemName:                snap.name,
				SetCode:                 snap.setCode,
				Quantity:                snap.quantity,
				SalePricePerUnit:        snap.salePricePerUnit,
				AcquisitionPricePerUnit: snap.acquisitionPrice,
				ProfitLoss:              snap.salePricePerUnit.Sub(snap.acquisitionPrice).Mul(qty),
			}
			if err := s.sales.CreateItem(tx, item); err != nil {
				return err
			}
		}

		for i := range usages {
			usages[i].SaleEventID = event.ID
			if err := s.sales.CreateSupplyUsage(tx, &usages[i]); err != nil {
				return err
			}
		}

		eventID = event.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.Info("sale recorded",
		zap.String("sale_event_id", eventID.String()),
		zap.Int("items", len(input.Items)),
	)
	go s.hub.Publish(map[string]interface{}{
		"type":          "stock_update",
		"action":        "sale_recorded",
		"sale_event_id": eventID,
	})
	return eventID, nil
}

// DeleteSale reverses a recorded sale: every sold quantity is returned to its
// inventory record and every consumed supply unit to its batch, then the
// event and its child rows are removed. The reversal is exact; afterwards
// every touched quantity equals its pre-sale value.
func (s *saleService) DeleteSale(id uuid.UUID) error {
	err := s.txm.Transaction(func(tx *gorm.DB) error {
		items, err := s.sales.ItemsForEvent(tx, id)
		if err != nil {
			return err
		}
		supplies, err := s.sales.SuppliesForEvent(tx, id)
		if err != nil {
			return err
		}

		for _, item := range items {
			err := s.adjustInventory(tx, item.InventoryType, item.InventoryID, item.Quantity)
			if errors.Is(err, apperr.ErrNotFound) {
				// The inventory record was deleted after the sale; the row is
				// historical, so the restock is skipped rather than fatal.
				s.log.Warn("skipping restock of deleted inventory record",
					zap.String("inventory_id", item.InventoryID.String()),
					zap.String("inventory_type", string(item.InventoryType)),
				)
				continue
			}
			if err != nil {
				return err
			}
		}

		for _, supply := range supplies {
			if err := s.supplies.Restock(tx, supply.SupplyBatchID, supply.QuantityUsed); err != nil {
				return err
			}
		}

		return s.sales.DeleteEvent(tx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("sale reversed", zap.String("sale_event_id", id.String()))
	go s.hub.Publish(map[string]interface{}{
		"type":          "stock_update",
		"action":        "sale_reversed",
		"sale_event_id": id,
	})
	return nil
}

func (s *saleService) List() ([]model.SaleEvent, error) {
	return s.sales.FindAll()
}

func (s *saleService) Get(id uuid.UUID) (*model.SaleEvent, error) {
	return s.sales.FindByID(id)
}

func (s *saleService) snapshotInventory(tx *gorm.DB, invType model.InventoryType, id uuid.UUID) (itemSnapshot, error) {
	switch invType {
	case model.InventorySingle:
		card, err := s.cards.FindByIDTx(tx, id)
		if err != nil {
			return itemSnapshot{}, err
		}
		return itemSnapshot{
			invType:          invType,
			invID:            card.ID,
			name:             card.Name,
			setCode:          card.SetCode,
			acquisitionPrice: card.AcquisitionPrice,
		}, nil
	case model.InventorySealed:
		product, err := s.sealed.FindByIDTx(tx, id)
		if err != nil {
			return itemSnapshot{}, err
		}
		return itemSnapshot{
			invType:          invType,
			invID:            product.ID,
			name:             product.Name,
			setCode:          product.SetCode,
			acquisitionPrice: product.AcquisitionPrice,
		}, nil
	default:
		return itemSnapshot{}, fmt.Errorf("%w: unknown inventory type %q", apperr.ErrInvalidInput, invType)
	}
}

func (s *saleService) adjustInventory(tx *gorm.DB, invType model.InventoryType, id uuid.UUID, delta int) error {
	switch invType {
	case model.InventorySingle:
		return s.cards.AdjustQuantity(tx, id, delta)
	case model.InventorySealed:
		return s.sealed.AdjustQuantity(tx, id, delta)
	default:
		return fmt.Errorf("%w: unknown inventory type %q", apperr.ErrInvalidInput, invType)
	}
}
