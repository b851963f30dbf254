package events

import (
	platformevents "exterior_chat_backend/platform/events"
	"exterior_chat_backend/platform/logger"
)

// InMemoryBus aliases the platform bus so modules only import internal/events.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates the in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
