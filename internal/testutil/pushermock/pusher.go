package pushermock

import (
	"sync"

	"github.com/google/uuid"
)

type Message struct {
	UserID  uuid.UUID
	Payload interface{}
	Type    string
}

// Pusher запоминает отправленные сообщения.
type Pusher struct {
	mu   sync.Mutex
	Sent []Message
	Err  error
}

func (p *Pusher) SendMessageToUser(userID uuid.UUID, payload interface{}, messageType string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, Message{UserID: userID, Payload: payload, Type: messageType})
	return p.Err
}

func (p *Pusher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Sent)
}
