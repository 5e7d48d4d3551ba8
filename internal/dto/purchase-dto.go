package dto

import "sport-inventory/internal/entities"

type SetBoughtDTO struct {
	Bought *bool `json:"bought" validate:"required"`
}

type PurchaseChartRowDTO struct {
	Name      string  `json:"name"`
	Total     float64 `json:"total"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type PurchaseSummaryDTO struct {
	Purchases []entities.RequestDetails `json:"purchases"`
	TotalCost float64                   `json:"total_cost"`
	Chart     []PurchaseChartRowDTO     `json:"chart"`
}

type MarketplaceLinkDTO struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
