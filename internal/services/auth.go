package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sport-inventory/internal/dto"
	"sport-inventory/internal/entities"
	"sport-inventory/internal/events"
	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/config"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/eventbus"
	"sport-inventory/pkg/service"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
	Logout(ctx context.Context, session *entities.Session) error
}

type AuthService struct {
	txManager   repositories.TxManagerInterface
	userRepo    repositories.UserRepositoryInterface
	profileRepo repositories.ProfileRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	sessions    SessionStoreInterface
	resolver    SessionResolverInterface
	jwtService  service.JWTService
	bus         *eventbus.Bus
	cfg         config.AuthConfig
	logger      *zap.Logger
}

func NewAuthService(
	txManager repositories.TxManagerInterface,
	userRepo repositories.UserRepositoryInterface,
	profileRepo repositories.ProfileRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	sessions SessionStoreInterface,
	resolver SessionResolverInterface,
	jwtService service.JWTService,
	bus *eventbus.Bus,
	cfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		txManager:   txManager,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		cacheRepo:   cacheRepo,
		sessions:    sessions,
		resolver:    resolver,
		jwtService:  jwtService,
		bus:         bus,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("не удалось захешировать пароль: %w", err)
	}
	user := &entities.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.userRepo.CreateInTx(ctx, tx, user); err != nil {
			return err
		}
		return s.profileRepo.EnsureInTx(ctx, tx, user.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Зарегистрирован пользователь", zap.String("userID", user.ID.String()))
	return s.issue(ctx, user.ID)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	logger := s.logger.With(zap.String("email", email))

	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, email)
	if raw, err := s.cacheRepo.Get(ctx, attemptsKey); err == nil {
		if attempts, _ := strconv.Atoi(raw); attempts >= s.cfg.MaxLoginAttempts {
			logger.Warn("Вход временно заблокирован")
			return nil, apperrors.ErrTooManyAttempts
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.registerFailure(ctx, attemptsKey)
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.registerFailure(ctx, attemptsKey)
		logger.Warn("Неверный пароль")
		return nil, apperrors.ErrInvalidCredentials
	}
	_ = s.cacheRepo.Del(ctx, attemptsKey)

	return s.issue(ctx, user.ID)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}
	session, err := s.resolver.Resolve(ctx, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, err
	}
	return s.tokens(session)
}

func (s *AuthService) Logout(ctx context.Context, session *entities.Session) error {
	if err := s.sessions.Revoke(ctx, session.UserID, session.SessionID); err != nil {
		return err
	}
	s.bus.Publish(ctx, events.SignedOutEvent{UserID: session.UserID, SessionID: session.SessionID})
	return nil
}

// issue открывает новую сессию. Для заблокированного пользователя сессия сразу закрывается.
func (s *AuthService) issue(ctx context.Context, userID uuid.UUID) (*dto.AuthResponseDTO, error) {
	sessionID, err := s.sessions.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	session, err := s.resolver.Resolve(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.tokens(session)
}

func (s *AuthService) tokens(session *entities.Session) (*dto.AuthResponseDTO, error) {
	access, refresh, err := s.jwtService.GenerateTokens(session.UserID, session.SessionID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		Session:      dto.NewSessionDTO(session),
	}, nil
}

func (s *AuthService) registerFailure(ctx context.Context, key string) {
	n, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("Не удалось учесть неудачную попытку входа", zap.Error(err))
		return
	}
	if n == 1 {
		_, _ = s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration)
	}
}
