package entities

import (
	"time"

	"github.com/google/uuid"
)

type PriceHistory struct {
	ID         uuid.UUID `json:"id" db:"id"`
	RequestID  uuid.UUID `json:"request_id" db:"request_id"`
	Price      float64   `json:"price" db:"price"`
	Seller     string    `json:"seller" db:"seller"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}
