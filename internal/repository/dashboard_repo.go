package repository

import (
	"go-collector-ledger/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryMetrics aggregates one inventory collection.
type InventoryMetrics struct {
	TotalBuyCost     decimal.Decimal `json:"total_buy_cost"`
	TotalMarketValue decimal.Decimal `json:"total_market_value"`
	TotalQuantity    int64           `json:"total_quantity"`
}

// SaleMetrics aggregates sale events, all-time and current calendar month.
type SaleMetrics struct {
	GrossSales           decimal.Decimal `json:"gross_sales"`
	TotalCogs            decimal.Decimal `json:"total_cogs"`
	TotalProfit          decimal.Decimal `json:"total_profit"`
	SuppliesCost         decimal.Decimal `json:"supplies_cost"`
	CurrentMonthSales    decimal.Decimal `json:"current_month_sales"`
	CurrentMonthCogs     decimal.Decimal `json:"current_month_cogs"`
	CurrentMonthProfit   decimal.Decimal `json:"current_month_profit"`
	CurrentMonthSupplies decimal.Decimal `json:"current_month_supplies"`
}

type DashboardRepository interface {
	CardMetrics() (*InventoryMetrics, error)
	SealedMetrics() (*InventoryMetrics, error)
	SaleMetrics() (*SaleMetrics, error)
	LedgerTotal() (decimal.Decimal, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) CardMetrics() (*InventoryMetrics, error) {
	return r.inventoryMetrics(&model.Card{})
}

func (r *dashboardRepo) SealedMetrics() (*InventoryMetrics, error) {
	return r.inventoryMetrics(&model.SealedProduct{})
}

func (r *dashboardRepo) inventoryMetrics(m interface{}) (*InventoryMetrics, error) {
	var metrics InventoryMetrics
	err := r.db.Model(m).
		Select(`
			COALESCE(SUM(acquisition_price * quantity), 0) AS total_buy_cost,
			COALESCE(SUM(market_price * quantity), 0) AS total_market_value,
			COALESCE(SUM(quantity), 0) AS total_quantity
		`).
		Scan(&metrics).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return &metrics, nil
}

func (r *dashboardRepo) SaleMetrics() (*SaleMetrics, error) {
	var metrics SaleMetrics
	err := r.db.Model(&model.SaleEvent{}).
		Select(`
			COALESCE(SUM(total_sale_amount), 0) AS gross_sales,
			COALESCE(SUM(total_cost_of_goods), 0) AS total_cogs,
			COALESCE(SUM(total_profit_loss), 0) AS total_profit,
			COALESCE(SUM(total_supplies_cost_for_sale), 0) AS supplies_cost,
			COALESCE(SUM(
				CASE WHEN date_trunc('month', sale_date) = date_trunc('month', CURRENT_DATE)
				     THEN total_sale_amount ELSE 0 END
			), 0) AS current_month_sales,
			COALESCE(SUM(
				CASE WHEN date_trunc('month', sale_date) = date_trunc('month', CURRENT_DATE)
				     THEN total_cost_of_goods ELSE 0 END
			), 0) AS current_month_cogs,
			COALESCE(SUM(
				CASE WHEN date_trunc('month', sale_date) = date_trunc('month', CURRENT_DATE)
				     THEN total_profit_loss ELSE 0 END
			), 0) AS current_month_profit,
			COALESCE(SUM(
				CASE WHEN date_trunc('month', sale_date) = date_trunc('month', CURRENT_DATE)
				     THEN total_supplies_cost_for_sale ELSE 0 END
			), 0) AS current_month_supplies
		`).
		Scan(&metrics).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return &metrics, nil
}

func (r *dashboardRepo) LedgerTotal() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.LedgerEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, storageErr(err)
	}
	return total, nil
}
