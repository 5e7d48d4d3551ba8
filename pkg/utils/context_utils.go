// Файл: pkg/utils/context_utils.go

package utils

import (
	"context"

	"sport-inventory/internal/entities"
	"sport-inventory/pkg/contextkeys"
	apperrors "sport-inventory/pkg/errors"
)

func GetSessionFromCtx(ctx context.Context) (*entities.Session, error) {
	session, ok := ctx.Value(contextkeys.SessionKey).(*entities.Session)
	if !ok || session == nil {
		return nil, apperrors.ErrSessionNotFoundInContext
	}
	return session, nil
}

func WithSession(ctx context.Context, session *entities.Session) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, session.UserID)
	return context.WithValue(ctx, contextkeys.SessionKey, session)
}
