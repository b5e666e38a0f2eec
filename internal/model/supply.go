package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplyBatch is a purchased lot of shipping materials. QuantityPurchased is
// fixed at creation; QuantityAvailable depletes as sales consume supplies and
// must stay within [0, QuantityPurchased].
type SupplyBatch struct {
	BaseModel
	Description       string          `gorm:"type:text;not null" json:"description" validate:"required"`
	Supplier          string          `gorm:"type:text" json:"supplier"`
	UnitCost          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_cost"`
	QuantityPurchased int             `gorm:"not null" json:"quantity_purchased"`
	QuantityAvailable int             `gorm:"not null" json:"quantity_available"`
	PurchasedAt       time.Time       `gorm:"type:date;not null" json:"purchased_at"`
	Notes             string          `gorm:"type:text" json:"notes"`
}

func (SupplyBatch) TableName() string { return "shipping_supply_batches" }
