package dto

import "sport-inventory/internal/entities"

type EquipmentCountsDTO struct {
	Total  int `json:"total"`
	New    int `json:"new"`
	InUse  int `json:"in_use"`
	Broken int `json:"broken"`
}

type DashboardDTO struct {
	EquipmentCountsDTO
	RecentItems     []entities.EquipmentWithCategory `json:"recent_items"`
	BrokenItems     []entities.EquipmentWithCategory `json:"broken_items"`
	RecentPurchases []entities.RequestDetails        `json:"recent_purchases"`
}
