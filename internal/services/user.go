package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/internal/events"
	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/eventbus"
	"sport-inventory/pkg/types"
)

type UserServiceInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.ProfileWithEmail, error)
	UpdateRole(ctx context.Context, actor *entities.Session, userID uuid.UUID, role constants.Role) (*entities.Profile, error)
}

type UserService struct {
	profileRepo repositories.ProfileRepositoryInterface
	bus         *eventbus.Bus
	logger      *zap.Logger
}

func NewUserService(profileRepo repositories.ProfileRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) UserServiceInterface {
	return &UserService{profileRepo: profileRepo, bus: bus, logger: logger}
}

func (s *UserService) List(ctx context.Context, filter types.Filter) ([]entities.ProfileWithEmail, error) {
	return s.profileRepo.List(ctx, filter)
}

func (s *UserService) UpdateRole(ctx context.Context, actor *entities.Session, userID uuid.UUID, role constants.Role) (*entities.Profile, error) {
	if actor.UserID == userID {
		return nil, apperrors.ErrCannotChangeOwnRole
	}
	if !role.Valid() {
		return nil, apperrors.NewInvalidInputError("Недопустимая роль: %s", role)
	}

	profile, err := s.profileRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Роль пользователя изменена",
		zap.String("userID", userID.String()),
		zap.String("role", string(role)),
		zap.String("actor", actor.UserID.String()),
	)
	s.bus.Publish(ctx, events.ProfileRoleChangedEvent{UserID: userID, Role: role})
	return profile, nil
}
