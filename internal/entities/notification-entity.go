package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"sport-inventory/pkg/constants"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification: одноразовое уведомление о решении по заявке, живёт ограниченное время.
type Notification struct {
	ID        string           `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	RequestID uuid.UUID        `json:"request_id"`
	Kind      NotificationKind `json:"type"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// NotificationID строится из id заявки и статуса, чтобы одно решение не уведомлялось дважды.
func NotificationID(requestID uuid.UUID, status constants.RequestStatus) string {
	return fmt.Sprintf("%s-%s", requestID, status)
}

func NewResolutionNotification(req *Request, now time.Time, ttl time.Duration) Notification {
	n := Notification{
		ID:        NotificationID(req.ID, req.Status),
		UserID:    req.UserID,
		RequestID: req.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if req.Status == constants.RequestStatusApproved {
		n.Kind = NotificationSuccess
		n.Message = fmt.Sprintf("Ваша заявка \"%s\" была одобрена!", req.Name)
	} else {
		n.Kind = NotificationError
		n.Message = fmt.Sprintf("Ваша заявка \"%s\" была отклонена.", req.Name)
	}
	return n
}

func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}
