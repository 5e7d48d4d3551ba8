package entities

import (
	"github.com/google/uuid"

	"sport-inventory/pkg/types"
)

type Category struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`

	types.BaseEntity
}

type CategoryWithCount struct {
	Category
	ItemCount int `json:"item_count" db:"item_count"`
}
