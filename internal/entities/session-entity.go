package entities

import (
	"github.com/google/uuid"

	"sport-inventory/pkg/constants"
)

// Session: явный контекст аутентифицированного пользователя для одного запроса.
type Session struct {
	UserID    uuid.UUID      `json:"user_id"`
	Email     string         `json:"email"`
	SessionID string         `json:"-"`
	Role      constants.Role `json:"role"`
	IsAdmin   bool           `json:"is_admin"`
	IsBlocked bool           `json:"is_blocked"`
}

func NewSession(userID uuid.UUID, email, sessionID string, role constants.Role) *Session {
	return &Session{
		UserID:    userID,
		Email:     email,
		SessionID: sessionID,
		Role:      role,
		IsAdmin:   role == constants.RoleAdmin,
		IsBlocked: role == constants.RoleBlocked,
	}
}
