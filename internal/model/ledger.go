package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a signed cash-flow record. Entries are immutable once
// created except by deletion. Supply batch purchases post one automatically.
type LedgerEntry struct {
	BaseModel
	EntryDate   time.Time       `gorm:"type:date;not null" json:"entry_date"`
	Description string          `gorm:"type:text;not null" json:"description" validate:"required"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Category    string          `gorm:"type:text" json:"category"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }

// CategoryShippingSupplies is the category of the ledger entry posted
// automatically when a supply batch is purchased.
const CategoryShippingSupplies = "Shipping Supplies"
