package dto

import (
	"github.com/google/uuid"

	"sport-inventory/internal/entities"
)

// EquipmentDTO используется и для создания, и для полного обновления записи.
type EquipmentDTO struct {
	Name        string     `json:"name" validate:"required,notblank"`
	Quantity    *int       `json:"quantity" validate:"required,gte=0"`
	Status      string     `json:"status" validate:"required,equipment_status"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Description string     `json:"description"`
	Owner       string     `json:"owner"`
}

// EquipmentGroupDTO: оборудование одной категории на странице склада.
type EquipmentGroupDTO struct {
	CategoryID   uuid.NullUUID                    `json:"category_id"`
	CategoryName string                           `json:"category_name"`
	Items        []entities.EquipmentWithCategory `json:"items"`
}
