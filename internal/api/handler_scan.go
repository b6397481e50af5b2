package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// landingTemplates parses the phone-facing landing pages.
func landingTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// landingPage is the data every landing template receives.
type landingPage struct {
	SessionID     string
	UniversalLink string
	AppURL        template.URL
	AppStoreID    string
}

func (h *Handler) markScanned(c *gin.Context) (landingPage, bool) {
	sessionID := c.Param("sessionId")
	if _, err := h.handoff.MarkScanned(c.Request.Context(), sessionID); err != nil {
		h.internalError(c, err)
		return landingPage{}, false
	}
	return landingPage{
		SessionID:     sessionID,
		UniversalLink: h.links.UniversalLink(sessionID),
		AppURL:        template.URL(h.links.AppURL(sessionID)),
		AppStoreID:    h.links.AppStoreID,
	}, true
}

// Scan handles GET /scan/:sessionId with a universal-link redirect page.
func (h *Handler) Scan(c *gin.Context) {
	if page, ok := h.markScanned(c); ok {
		c.HTML(http.StatusOK, "scan.html", page)
	}
}

// Direct handles GET /direct/:sessionId with a meta-refresh to the custom scheme.
func (h *Handler) Direct(c *gin.Context) {
	if page, ok := h.markScanned(c); ok {
		c.HTML(http.StatusOK, "direct.html", page)
	}
}

// AppLink handles GET /applink/:sessionId with a Smart App Banner page.
func (h *Handler) AppLink(c *gin.Context) {
	if page, ok := h.markScanned(c); ok {
		c.HTML(http.StatusOK, "applink.html", page)
	}
}

// UniversalLink handles GET /ul/:sessionId with a plain HTTP redirect.
func (h *Handler) UniversalLink(c *gin.Context) {
	if page, ok := h.markScanned(c); ok {
		c.Redirect(http.StatusFound, page.UniversalLink)
	}
}
