// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"exterior_chat_backend/internal/events"
	"exterior_chat_backend/platform/config"
	"exterior_chat_backend/platform/logger"
)

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Env is the runtime environment name (development, production).
	Env string
	// Config holds the HTTP server settings.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
