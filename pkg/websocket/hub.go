package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub управляет подключениями и рассылкой сообщений по пользователям.
type Hub struct {
	userClients map[uuid.UUID]map[*Client]struct{}
	register    chan *Client
	unregister  chan *Client
	mu          sync.RWMutex
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		userClients: make(map[uuid.UUID]map[*Client]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      logger,
	}
}

// Run обслуживает регистрацию клиентов до отмены контекста.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.userClients[client.UserID] == nil {
				h.userClients[client.UserID] = make(map[*Client]struct{})
			}
			h.userClients[client.UserID][client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("Клиент зарегистрирован", zap.String("userID", client.UserID.String()))
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) Register(c *Client) { h.register <- c }

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.userClients[client.UserID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.userClients, client.UserID)
	}
	h.logger.Debug("Клиент отсоединен", zap.String("userID", client.UserID.String()))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clients := range h.userClients {
		for c := range clients {
			close(c.Send)
		}
		delete(h.userClients, userID)
	}
}

// ConnectedCount возвращает число открытых соединений пользователя.
func (h *Hub) ConnectedCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients[userID])
}

// SendMessageToUser отправляет сообщение во все соединения пользователя.
// Медленные клиенты с переполненным буфером пропускаются.
func (h *Hub) SendMessageToUser(userID uuid.UUID, payload interface{}, messageType string) error {
	envelope := Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Ошибка сериализации сообщения для WebSocket", zap.Error(err))
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.userClients[userID]
	if len(clients) == 0 {
		h.logger.Debug("Нет активных соединений", zap.String("userID", userID.String()))
		return nil
	}
	for client := range clients {
		select {
		case client.Send <- messageBytes:
		default:
			h.logger.Warn("Буфер клиента переполнен, сообщение пропущено", zap.String("userID", userID.String()))
		}
	}
	return nil
}
