package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"pos-kiosk-demo/config"
	"pos-kiosk-demo/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(landingTemplates())

	if cfg.Server.RateLimitPerSec > 0 {
		r.Use(mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
	}

	ttl := cfg.Server.CacheTTL()
	caching := mw.Cache(cache.New(ttl, 2*ttl), ttl)

	r.GET("/.well-known/apple-app-site-association", caching, handler.GetAppSiteAssociation)
	r.GET("/test", handler.Test)

	r.POST("/register-session", handler.RegisterSession)
	r.POST("/app-ready/:sessionId", handler.AppReady)
	r.POST("/handoff-complete/:sessionId", handler.HandoffComplete)
	r.GET("/status/:sessionId", handler.GetStatus)

	// QR entry points; each one marks the session scanned.
	r.GET("/scan/:sessionId", handler.Scan)
	r.GET("/direct/:sessionId", handler.Direct)
	r.GET("/applink/:sessionId", handler.AppLink)
	r.GET("/ul/:sessionId", handler.UniversalLink)

	r.PUT("/subscriptions/:sessionId", handler.PutSubscription)
	r.DELETE("/subscriptions/:sessionId", handler.DeleteSubscription)
	r.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

	return r
}
