package service

import (
	"go-collector-ledger/internal/repository"

	"github.com/shopspring/decimal"
)

// Summary is the aggregated dashboard record computed from inventory, sale
// history and the cash ledger.
type Summary struct {
	SingleCardBuyCost     decimal.Decimal `json:"single_card_buy_cost"`
	SingleCardMarketValue decimal.Decimal `json:"single_card_market_value"`
	SingleCardQuantity    int64           `json:"single_card_quantity"`
	SealedBuyCost         decimal.Decimal `json:"sealed_buy_cost"`
	SealedMarketValue     decimal.Decimal `json:"sealed_market_value"`
	SealedQuantity        int64           `json:"sealed_quantity"`
	GrossSales            decimal.Decimal `json:"gross_sales"`
	TotalCogs             decimal.Decimal `json:"total_cogs"`
	TotalProfit           decimal.Decimal `json:"total_profit"`
	TotalSuppliesCost     decimal.Decimal `json:"total_supplies_cost"`
	CurrentMonthSales     decimal.Decimal `json:"current_month_sales"`
	CurrentMonthCogs      decimal.Decimal `json:"current_month_cogs"`
	CurrentMonthProfit    decimal.Decimal `json:"current_month_profit"`
	CurrentMonthSupplies  decimal.Decimal `json:"current_month_supplies"`
	LedgerTotal           decimal.Decimal `json:"ledger_total"`
	NetBusinessPL         decimal.Decimal `json:"net_business_pl"`
}

type DashboardService interface {
	FetchSummary() (*Summary, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) FetchSummary() (*Summary, error) {
	cardMetrics, err := s.repo.CardMetrics()
	if err != nil {
		return nil, err
	}
	sealedMetrics, err := s.repo.SealedMetrics()
	if err != nil {
		return nil, err
	}
	saleMetrics, err := s.repo.SaleMetrics()
	if err != nil {
		return nil, err
	}
	ledgerTotal, err := s.repo.LedgerTotal()
	if err != nil {
		return nil, err
	}

	// Supplies cost is subtracted once inside each sale's profit figure and
	// once more in the ledger via the automatic purchase posting, so it is
	// added back here. Keep this formula exactly as written.
	netBusinessPL := ledgerTotal.
		Add(saleMetrics.TotalProfit).
		Add(saleMetrics.SuppliesCost)

	return &Summary{
		SingleCardBuyCost:     cardMetrics.TotalBuyCost,
		SingleCardMarketValue: cardMetrics.TotalMarketValue,
		SingleCardQuantity:    cardMetrics.TotalQuantity,
		SealedBuyCost:         sealedMetrics.TotalBuyCost,
		SealedMarketValue:     sealedMetrics.TotalMarketValue,
		SealedQuantity:        sealedMetrics.TotalQuantity,
		GrossSales:            saleMetrics.GrossSales,
		TotalCogs:             saleMetrics.TotalCogs,
		TotalProfit:           saleMetrics.TotalProfit,
		TotalSuppliesCost:     saleMetrics.SuppliesCost,
		CurrentMonthSales:     saleMetrics.CurrentMonthSales,
		CurrentMonthCogs:      saleMetrics.CurrentMonthCogs,
		CurrentMonthProfit:    saleMetrics.CurrentMonthProfit,
		CurrentMonthSupplies:  saleMetrics.CurrentMonthSupplies,
		LedgerTotal:           ledgerTotal,
		NetBusinessPL:         netBusinessPL,
	}, nil
}
