package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"pos-kiosk-demo/config"
	"pos-kiosk-demo/internal/handoff"
	"pos-kiosk-demo/internal/notification"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	handoff  *handoff.Service
	registry *notification.Registry
	webpush  *webpush.Options
	links    handoff.Links
	appIDs   []string
	aasaPath string
}

// NewHandler creates a new API handler. webpushOptions is nil when push is disabled.
func NewHandler(svc *handoff.Service, registry *notification.Registry, webpushOptions *webpush.Options, cfg *config.Config) *Handler {
	return &Handler{
		handoff:  svc,
		registry: registry,
		webpush:  webpushOptions,
		links:    handoff.NewLinks(cfg.Server, cfg.Links),
		appIDs:   cfg.Links.AppIDs,
		aasaPath: cfg.Links.AASAPath,
	}
}
