package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleEvent is one checkout transaction covering one or more inventory items
// and zero or more supply usages. All totals are computed once when the sale
// is recorded and stored; they are never recomputed from later inventory
// edits.
type SaleEvent struct {
	BaseModel
	SaleDate                 time.Time       `gorm:"type:date;not null" json:"sale_date"`
	Platform                 string          `gorm:"type:text" json:"platform"`
	CustomerShippingCharged  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"customer_shipping_charged"`
	ActualPostageCost        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"actual_postage_cost"`
	PlatformFees             decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"platform_fees"`
	TotalSaleAmount          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_sale_amount"`
	TotalCostOfGoods         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_cost_of_goods"`
	TotalSuppliesCostForSale decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_supplies_cost_for_sale"`
	TotalProfitLoss          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_profit_loss"`
	Notes                    string          `gorm:"type:text" json:"notes"`

	Items    []SaleItem        `gorm:"foreignKey:SaleEventID;constraint:OnDelete:CASCADE" json:"items"`
	Supplies []SaleSupplyUsage `gorm:"foreignKey:SaleEventID;constraint:OnDelete:CASCADE" json:"supplies"`
}

func (SaleEvent) TableName() string { return "sale_events" }

// SaleItem is one line of a sale. InventoryType/InventoryID reference the
// inventory record that was sold; ItemName, SetCode and
// AcquisitionPricePerUnit are snapshots taken at sale time so the row stays
// meaningful after the inventory record is edited or deleted.
type SaleItem struct {
	BaseModel
	SaleEventID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_event_id"`
	InventoryType           InventoryType   `gorm:"type:varchar(10);not null" json:"inventory_type"`
	InventoryID             uuid.UUID       `gorm:"type:uuid" json:"inventory_id"`
	ItemName                string          `gorm:"type:text;not null" json:"item_name"`
	SetCode                 string          `gorm:"type:text" json:"set_code"`
	Quantity                int             `gorm:"not null" json:"quantity"`
	SalePricePerUnit        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"sale_price_per_unit"`
	AcquisitionPricePerUnit decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"acquisition_price_per_unit"`
	ProfitLoss              decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"profit_loss"`
}

func (SaleItem) TableName() string { return "sale_items" }

// SaleSupplyUsage records consumption of a supply batch by a sale. UnitCost
// is a snapshot of the batch's unit cost at sale time.
type SaleSupplyUsage struct {
	BaseModel
	SaleEventID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_event_id"`
	SupplyBatchID uuid.UUID       `gorm:"type:uuid;not null" json:"supply_batch_id"`
	SupplyBatch   *SupplyBatch    `gorm:"foreignKey:SupplyBatchID" json:"-"`
	QuantityUsed  int             `gorm:"not null" json:"quantity_used"`
	UnitCost      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_cost"`
	TotalCost     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_cost"`
}

func (SaleSupplyUsage) TableName() string { return "sale_supplies" }
