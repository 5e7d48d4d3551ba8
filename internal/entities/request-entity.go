package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
)

// Request: строка таблицы requests. Поля, зависящие от типа, хранятся в одной строке;
// для бизнес-логики строка приводится к конкретному варианту через Variant().
type Request struct {
	ID          uuid.UUID               `json:"id" db:"id"`
	Type        constants.RequestType   `json:"type" db:"type"`
	Name        string                  `json:"name" db:"name"`
	Description null.String             `json:"description" db:"description"`
	Quantity    null.Int                `json:"quantity" db:"quantity"`
	CategoryID  uuid.NullUUID           `json:"category_id" db:"category_id"`
	EquipmentID uuid.NullUUID           `json:"equipment_id" db:"equipment_id"`
	Status      constants.RequestStatus `json:"status" db:"status"`
	UserID      uuid.UUID               `json:"user_id" db:"user_id"`
	BestPrice   null.Float64            `json:"best_price" db:"best_price"`
	Seller      null.String             `json:"seller" db:"seller"`
	PurchaseURL null.String             `json:"purchase_url" db:"purchase_url"`
	Bought      bool                    `json:"bought" db:"bought"`
	CreatedAt   time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at" db:"updated_at"`
}

// RequestDetails: заявка со связанными данными для списков.
type RequestDetails struct {
	Request
	CategoryName      null.String `json:"category_name" db:"category_name"`
	EquipmentName     null.String `json:"equipment_name" db:"equipment_name"`
	EquipmentQuantity null.Int    `json:"equipment_quantity" db:"equipment_quantity"`
}

// RequestVariant: один из четырёх типов заявки с обязательными для него полями.
// Ссылки на категорию и оборудование слабые: после удаления категории или
// оборудования они обнуляются, а заявка остаётся рассматриваемой.
type RequestVariant interface {
	Kind() constants.RequestType
}

type ItemRequest struct {
	Name        string
	Description string
	Quantity    int
	CategoryID  uuid.NullUUID
}

type RepairRequest struct {
	EquipmentID uuid.NullUUID
	Name        string
	Description string
	Quantity    int
}

type PurchaseRequest struct {
	Name        string
	Description string
	Quantity    int
	CategoryID  uuid.NullUUID
	BestPrice   float64
	Seller      string
	PurchaseURL string
	Bought      bool
}

type CategoryRequest struct {
	Name        string
	Description string
}

func (ItemRequest) Kind() constants.RequestType     { return constants.RequestTypeItem }
func (RepairRequest) Kind() constants.RequestType   { return constants.RequestTypeRepair }
func (PurchaseRequest) Kind() constants.RequestType { return constants.RequestTypePurchase }
func (CategoryRequest) Kind() constants.RequestType { return constants.RequestTypeCategory }

func (r *Request) Resolved() bool {
	return r.Status.Resolved()
}

// Variant приводит строку к конкретному варианту. Строка без обязательных
// для своего типа полей даёт ErrInvalidRequestVariant.
func (r *Request) Variant() (RequestVariant, error) {
	invalid := func(field string) error {
		return fmt.Errorf("%w: тип %s, поле %s", apperrors.ErrInvalidRequestVariant, r.Type, field)
	}
	if strings.TrimSpace(r.Name) == "" && r.Type != constants.RequestTypeRepair {
		return nil, invalid("name")
	}

	switch r.Type {
	case constants.RequestTypeItem:
		return ItemRequest{
			Name:        r.Name,
			Description: r.Description.String,
			Quantity:    quantityOrOne(r.Quantity),
			CategoryID:  r.CategoryID,
		}, nil

	case constants.RequestTypeRepair:
		if !r.Quantity.Valid || r.Quantity.Int < 1 {
			return nil, invalid("quantity")
		}
		return RepairRequest{
			EquipmentID: r.EquipmentID,
			Name:        r.Name,
			Description: r.Description.String,
			Quantity:    r.Quantity.Int,
		}, nil

	case constants.RequestTypePurchase:
		if !r.BestPrice.Valid || r.BestPrice.Float64 <= 0 {
			return nil, invalid("best_price")
		}
		if strings.TrimSpace(r.Seller.String) == "" {
			return nil, invalid("seller")
		}
		return PurchaseRequest{
			Name:        r.Name,
			Description: r.Description.String,
			Quantity:    quantityOrOne(r.Quantity),
			CategoryID:  r.CategoryID,
			BestPrice:   r.BestPrice.Float64,
			Seller:      r.Seller.String,
			PurchaseURL: r.PurchaseURL.String,
			Bought:      r.Bought,
		}, nil

	case constants.RequestTypeCategory:
		return CategoryRequest{Name: r.Name, Description: r.Description.String}, nil
	}

	return nil, invalid("type")
}

// NewPendingRequest собирает строку для вставки из варианта.
func NewPendingRequest(userID uuid.UUID, v RequestVariant) *Request {
	r := &Request{
		ID:     uuid.New(),
		Type:   v.Kind(),
		Status: constants.RequestStatusPending,
		UserID: userID,
	}

	switch t := v.(type) {
	case ItemRequest:
		r.Name = t.Name
		r.Description = optionalString(t.Description)
		r.Quantity = null.IntFrom(t.Quantity)
		r.CategoryID = t.CategoryID
	case RepairRequest:
		r.Name = t.Name
		r.Description = optionalString(t.Description)
		r.Quantity = null.IntFrom(t.Quantity)
		r.EquipmentID = t.EquipmentID
	case PurchaseRequest:
		r.Name = t.Name
		r.Description = optionalString(t.Description)
		r.Quantity = null.IntFrom(t.Quantity)
		r.CategoryID = t.CategoryID
		r.BestPrice = null.Float64From(t.BestPrice)
		r.Seller = null.StringFrom(t.Seller)
		r.PurchaseURL = optionalString(t.PurchaseURL)
	case CategoryRequest:
		r.Name = t.Name
		r.Description = optionalString(t.Description)
	}
	return r
}

// LineTotal: стоимость позиции закупки: цена × количество (количество по умолчанию 1).
func (r *Request) LineTotal() float64 {
	if !r.BestPrice.Valid {
		return 0
	}
	return r.BestPrice.Float64 * float64(quantityOrOne(r.Quantity))
}

func quantityOrOne(q null.Int) int {
	if !q.Valid || q.Int < 1 {
		return 1
	}
	return q.Int
}

func optionalString(s string) null.String {
	if strings.TrimSpace(s) == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
