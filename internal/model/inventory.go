package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryType tags which of the two inventory collections a sale item
// references.
type InventoryType string

const (
	InventorySingle InventoryType = "single"
	InventorySealed InventoryType = "sealed"
)

// Card is an individual card in inventory.
type Card struct {
	BaseModel
	Name             string          `gorm:"type:text;not null" json:"name" validate:"required"`
	SetCode          string          `gorm:"type:text" json:"set_code"`
	CollectorNumber  string          `gorm:"type:text" json:"collector_number"`
	Condition        string          `gorm:"type:text" json:"condition"`
	Language         string          `gorm:"type:text" json:"language"`
	IsFoil           bool            `gorm:"default:false" json:"is_foil"`
	AcquisitionPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"acquisition_price"`
	MarketPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"market_price"`
	Quantity         int             `gorm:"not null;default:0" json:"quantity"`
	AcquiredAt       *time.Time      `gorm:"type:date" json:"acquired_at"`
	Notes            string          `gorm:"type:text" json:"notes"`
}

func (Card) TableName() string { return "inventory_cards" }

// SealedProduct is a sealed product (booster box, bundle, ...) in inventory.
type SealedProduct struct {
	BaseModel
	Name             string          `gorm:"type:text;not null" json:"name" validate:"required"`
	SetCode          string          `gorm:"type:text" json:"set_code"`
	ProductType      string          `gorm:"type:text" json:"product_type"`
	AcquisitionPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"acquisition_price"`
	MarketPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"market_price"`
	Quantity         int             `gorm:"not null;default:0" json:"quantity"`
	AcquiredAt       *time.Time      `gorm:"type:date" json:"acquired_at"`
	Notes            string          `gorm:"type:text" json:"notes"`
}

func (SealedProduct) TableName() string { return "sealed_products" }
