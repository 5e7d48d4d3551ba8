package dto

import (
	"github.com/google/uuid"

	"sport-inventory/internal/entities"
)

type CreateRequestDTO struct {
	Type        string     `json:"type" validate:"required,request_type"`
	Name        string     `json:"name" validate:"max=255"`
	Description string     `json:"description"`
	Quantity    *int       `json:"quantity" validate:"omitempty,gte=1"`
	CategoryID  *uuid.UUID `json:"category_id"`
	EquipmentID *uuid.UUID `json:"equipment_id"`
	BestPrice   *float64   `json:"best_price" validate:"omitempty,gt=0"`
	Seller      string     `json:"seller"`
	PurchaseURL string     `json:"purchase_url" validate:"omitempty,url"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required,request_status"`
}

// RequestViewDTO: заявка пользователя; для обработанных заявок указано,
// через сколько секунд она исчезнет.
type RequestViewDTO struct {
	entities.RequestDetails
	ExpiresInSeconds *int `json:"expires_in_seconds,omitempty"`
}

type MyRequestsDTO struct {
	Requests      []RequestViewDTO        `json:"requests"`
	Notifications []entities.Notification `json:"notifications"`
}

type AdminRequestDTO struct {
	entities.RequestDetails
	CanApprove bool `json:"can_approve"`
}
