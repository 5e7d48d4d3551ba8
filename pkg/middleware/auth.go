package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/service"
	"sport-inventory/pkg/utils"
)

// SessionResolver восстанавливает сессию с ролью по данным из токена.
type SessionResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.Session, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	resolver   SessionResolver
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, resolver SessionResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		resolver:   resolver,
		logger:     logger,
	}
}

// Auth проверяет access-токен и кладёт сессию пользователя в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			m.logger.Debug("AuthMiddleware: заголовок Authorization не прошёл проверку", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("AuthMiddleware: ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}
		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		session, err := m.resolver.Resolve(c.Request().Context(), claims.UserID, claims.SessionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrAccountBlocked) {
				m.logger.Info("AuthMiddleware: заблокированный пользователь", zap.String("userID", claims.UserID.String()))
			}
			return utils.ErrorResponse(c, err, m.logger)
		}

		c.SetRequest(c.Request().WithContext(utils.WithSession(c.Request().Context(), session)))
		return next(c)
	}
}

// AdminOnly пропускает только администраторов. Используется после Auth.
func (m *AuthMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := utils.GetSessionFromCtx(c.Request().Context())
		if err != nil {
			return utils.ErrorResponse(c, err, m.logger)
		}
		if !session.IsAdmin {
			return utils.ErrorResponse(c, apperrors.NewHttpError(
				http.StatusForbidden,
				"Доступ только для администратора",
				apperrors.ErrForbidden,
				nil,
			), m.logger)
		}
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		// Браузерный WebSocket не умеет ставить заголовки.
		if token := c.QueryParam("token"); token != "" && isWebSocketUpgrade(c) {
			return token, nil
		}
		return "", apperrors.ErrEmptyAuthHeader
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrInvalidAuthHeader
	}
	return parts[1], nil
}

func isWebSocketUpgrade(c echo.Context) bool {
	return strings.EqualFold(c.Request().Header.Get(echo.HeaderUpgrade), "websocket")
}
