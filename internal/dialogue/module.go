// Package dialogue provides the qualification chat bounded context module.
// This file defines the module that encapsulates setup and route registration.
package dialogue

import (
	"exterior_chat_backend/internal/dialogue/engine"
	"exterior_chat_backend/internal/dialogue/handler"
	"exterior_chat_backend/internal/dialogue/session"
	"exterior_chat_backend/internal/events"
	apphttp "exterior_chat_backend/internal/http"
	"exterior_chat_backend/platform/config"
	"exterior_chat_backend/platform/logger"
)

// ModuleConfig combines the config interfaces the dialogue module needs.
type ModuleConfig interface {
	config.WebhookConfig
	config.DialogueConfig
}

// Module is the dialogue bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the dialogue module with all its
// dependencies.
func NewModule(cfg ModuleConfig, store session.Store, sender Sender, bus events.Bus, log *logger.Logger) (*Module, error) {
	area, err := engine.LoadServiceArea(cfg.GetServiceAreaFile())
	if err != nil {
		return nil, err
	}

	eng := engine.New(area, cfg.GetBookingURL(), cfg.GetBookingLabel())
	svc := NewService(eng, store, sender, bus, log)

	return &Module{
		handler: handler.New(svc, cfg, log),
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dialogue"
}

// RegisterRoutes mounts the Messenger webhook on the root router.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	webhook := ctx.Root.Group("/webhook")
	webhook.Use(ctx.WebhookRateLimiter.Middleware())
	m.handler.RegisterRoutes(webhook)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
