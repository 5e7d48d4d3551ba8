package events

import (
	"github.com/google/uuid"

	"sport-inventory/pkg/constants"
)

const (
	ProfileRoleChanged = "profile.role.changed"
	SignedOut          = "auth.signed_out"
)

// ProfileRoleChangedEvent возникает после смены роли пользователя администратором.
type ProfileRoleChangedEvent struct {
	UserID uuid.UUID
	Role   constants.Role
}

func (e ProfileRoleChangedEvent) Name() string { return ProfileRoleChanged }

type SignedOutEvent struct {
	UserID    uuid.UUID
	SessionID string
}

func (e SignedOutEvent) Name() string { return SignedOut }
