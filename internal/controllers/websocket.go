package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sport-inventory/internal/services"
	"sport-inventory/pkg/utils"
	appwebsocket "sport-inventory/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketController подключает пользователя к хабу уведомлений.
// Аутентификация выполняется AuthMiddleware до апгрейда соединения.
type WebSocketController struct {
	hub      *appwebsocket.Hub
	notifier services.NotificationServiceInterface
	logger   *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, notifier services.NotificationServiceInterface, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, notifier: notifier, logger: logger}
}

func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	session, err := utils.GetSessionFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: не удалось установить соединение", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, session.UserID)
	c.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	// Уведомления, пришедшие до подключения, ещё могут быть живы.
	pending, err := c.notifier.Pending(ctx.Request().Context(), session.UserID)
	if err != nil {
		c.logger.Warn("WebSocket: не удалось получить уведомления", zap.Error(err))
	}
	for _, n := range pending {
		_ = c.hub.SendMessageToUser(session.UserID, n, appwebsocket.MessageTypeNotification)
	}

	c.logger.Info("WebSocket: клиент подключен", zap.String("userID", session.UserID.String()))
	return nil
}
