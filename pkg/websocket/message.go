package websocket

import "time"

// Envelope: общий конверт для всех сообщений по WebSocket.
// Он содержит тип сообщения, что позволяет фронтенду понять, что делать.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	MessageTypeNotification = "request.notification"
	MessageTypeInvalidate   = "cache.invalidate"
)
