package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/service"
	"sport-inventory/pkg/utils"
)

type resolverFunc func(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.Session, error)

func (f resolverFunc) Resolve(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.Session, error) {
	return f(ctx, userID, sessionID)
}

func newTestMiddleware(t *testing.T, resolver SessionResolver) (*AuthMiddleware, service.JWTService) {
	t.Helper()
	jwtSvc := service.NewJWTService("test-secret", time.Minute, time.Hour, zap.NewNop())
	return NewAuthMiddleware(jwtSvc, resolver, zap.NewNop()), jwtSvc
}

func serve(m *AuthMiddleware, handler echo.HandlerFunc, header string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = m.Auth(handler)(c)
	return rec
}

func TestAuth_PutsSessionIntoContext(t *testing.T) {
	userID := uuid.New()
	m, jwtSvc := newTestMiddleware(t, resolverFunc(func(ctx context.Context, id uuid.UUID, sid string) (*entities.Session, error) {
		assert.Equal(t, userID, id)
		assert.Equal(t, "sid-1", sid)
		return entities.NewSession(id, "coach@school.ru", sid, constants.RoleAdmin), nil
	}))
	access, _, err := jwtSvc.GenerateTokens(userID, "sid-1")
	require.NoError(t, err)

	var got *entities.Session
	rec := serve(m, func(c echo.Context) error {
		got, err = utils.GetSessionFromCtx(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}, "Bearer "+access)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
}

func TestAuth_Rejections(t *testing.T) {
	userID := uuid.New()
	blocked := resolverFunc(func(ctx context.Context, id uuid.UUID, sid string) (*entities.Session, error) {
		return nil, apperrors.ErrAccountBlocked
	})
	m, jwtSvc := newTestMiddleware(t, blocked)
	access, refresh, err := jwtSvc.GenerateTokens(userID, "sid-1")
	require.NoError(t, err)

	next := func(c echo.Context) error {
		t.Error("обработчик не должен вызываться")
		return nil
	}

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"без заголовка", "", http.StatusUnauthorized},
		{"неверный формат", "Token abc", http.StatusUnauthorized},
		{"refresh вместо access", "Bearer " + refresh, http.StatusUnauthorized},
		{"заблокирован", "Bearer " + access, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(m, next, tt.header)
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	rec := serve(m, next, "Bearer "+access)
	assert.Contains(t, rec.Body.String(), "Ваш аккаунт заблокирован. Обратитесь к администратору.")
}

func TestAdminOnly(t *testing.T) {
	m, _ := newTestMiddleware(t, nil)
	e := echo.New()

	for _, tc := range []struct {
		role constants.Role
		code int
	}{
		{constants.RoleAdmin, http.StatusOK},
		{constants.RoleUser, http.StatusForbidden},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		session := entities.NewSession(uuid.New(), "u@school.ru", "sid", tc.role)
		req = req.WithContext(utils.WithSession(req.Context(), session))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = m.AdminOnly(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
		assert.Equal(t, tc.code, rec.Code, string(tc.role))
	}
}
