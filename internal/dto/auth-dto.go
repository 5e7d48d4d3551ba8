package dto

import (
	"github.com/google/uuid"

	"sport-inventory/internal/entities"
	"sport-inventory/pkg/constants"
)

type RegisterDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	Session      SessionDTO `json:"session"`
}

type SessionUserDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// SessionDTO: состояние аутентификации для клиента.
type SessionDTO struct {
	User      SessionUserDTO `json:"user"`
	Role      constants.Role `json:"role"`
	IsAdmin   bool           `json:"isAdmin"`
	IsBlocked bool           `json:"isBlocked"`
}

func NewSessionDTO(s *entities.Session) SessionDTO {
	return SessionDTO{
		User:      SessionUserDTO{ID: s.UserID, Email: s.Email},
		Role:      s.Role,
		IsAdmin:   s.IsAdmin,
		IsBlocked: s.IsBlocked,
	}
}
