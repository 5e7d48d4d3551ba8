package events

import "sport-inventory/internal/entities"

const RequestResolved = "request.resolved"

// RequestResolvedEvent возникает после коммита решения по заявке.
type RequestResolvedEvent struct {
	Request entities.Request
}

func (e RequestResolvedEvent) Name() string { return RequestResolved }
