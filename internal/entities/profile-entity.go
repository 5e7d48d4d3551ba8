package entities

import (
	"github.com/google/uuid"

	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/types"
)

// Profile хранит роль пользователя; id совпадает с id пользователя.
type Profile struct {
	ID   uuid.UUID      `json:"id" db:"id"`
	Role constants.Role `json:"role" db:"role"`

	types.BaseEntity
}

type ProfileWithEmail struct {
	Profile
	Email string `json:"email" db:"email"`
}
