package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sport-inventory/internal/dto"
	"sport-inventory/internal/entities"
	"sport-inventory/internal/testutil/cachemock"
	"sport-inventory/internal/testutil/repomock"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/service"
)

type authFixture struct {
	cache    *cachemock.Cache
	users    *repomock.UserRepo
	profiles *repomock.ProfileRepo
	sessions SessionStoreInterface
	jwt      service.JWTService
	service  AuthServiceInterface
}

func newAuthFixture(t *testing.T, password string) (*authFixture, *entities.User) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "coach@school.ru", PasswordHash: string(hash)}

	cache := cachemock.New()
	f := &authFixture{
		cache: cache,
		users: &repomock.UserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
				if email != user.Email {
					return nil, apperrors.ErrNotFound
				}
				return user, nil
			},
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.User, error) {
				return user, nil
			},
		},
		profiles: &repomock.ProfileRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
				return &entities.Profile{ID: id, Role: constants.RoleUser}, nil
			},
		},
		sessions: NewSessionStore(cache, time.Hour, zap.NewNop()),
		jwt:      service.NewJWTService("test-secret", time.Minute, time.Hour, zap.NewNop()),
	}
	resolver := NewSessionResolver(f.users, f.profiles, f.sessions, cache, testAuthConfig(), zap.NewNop())
	f.service = NewAuthService(&repomock.TxManager{}, f.users, f.profiles, cache, f.sessions, resolver, f.jwt,
		newTestBus(), testAuthConfig(), zap.NewNop())
	return f, user
}

func TestAuthService_LoginIssuesSession(t *testing.T) {
	f, user := newAuthFixture(t, "secret123")

	resp, err := f.service.Login(context.Background(), dto.LoginDTO{Email: " Coach@School.ru ", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.Session.User.ID)
	assert.Equal(t, constants.RoleUser, resp.Session.Role)
	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	ok, err := f.sessions.Exists(context.Background(), user.ID, claims.SessionID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthService_LoginThrottle(t *testing.T) {
	f, _ := newAuthFixture(t, "secret123")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.service.Login(ctx, dto.LoginDTO{Email: "coach@school.ru", Password: "wrong"})
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	_, err := f.service.Login(ctx, dto.LoginDTO{Email: "coach@school.ru", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)
}

func TestAuthService_LogoutRevokesSession(t *testing.T) {
	f, user := newAuthFixture(t, "secret123")
	ctx := context.Background()

	resp, err := f.service.Login(ctx, dto.LoginDTO{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(resp.RefreshToken)
	require.NoError(t, err)

	session := entities.NewSession(user.ID, user.Email, claims.SessionID, constants.RoleUser)
	require.NoError(t, f.service.Logout(ctx, session))

	_, err = f.service.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	f, user := newAuthFixture(t, "secret123")

	resp, err := f.service.Login(context.Background(), dto.LoginDTO{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)

	_, err = f.service.Refresh(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}
