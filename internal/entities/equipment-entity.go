package entities

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/types"
)

type Equipment struct {
	ID          uuid.UUID                 `json:"id" db:"id"`
	Name        string                    `json:"name" db:"name"`
	Quantity    int                       `json:"quantity" db:"quantity"`
	Status      constants.EquipmentStatus `json:"status" db:"status"`
	CategoryID  uuid.NullUUID             `json:"category_id" db:"category_id"`
	Description null.String               `json:"description" db:"description"`
	Owner       null.String               `json:"owner" db:"owner"`

	types.BaseEntity
}

// EquipmentWithCategory: строка оборудования вместе с названием категории (LEFT JOIN).
type EquipmentWithCategory struct {
	Equipment
	CategoryName null.String `json:"category_name" db:"category_name"`
}
