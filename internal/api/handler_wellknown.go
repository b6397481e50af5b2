package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type aasaDetail struct {
	AppID string   `json:"appID"`
	Paths []string `json:"paths"`
}

type aasaDocument struct {
	AppLinks struct {
		Apps    []string     `json:"apps"`
		Details []aasaDetail `json:"details"`
	} `json:"applinks"`
}

// GetAppSiteAssociation serves the Universal Links configuration.
func (h *Handler) GetAppSiteAssociation(c *gin.Context) {
	if h.aasaPath != "" {
		c.Header("Content-Type", "application/json")
		c.File(h.aasaPath)
		return
	}

	var doc aasaDocument
	doc.AppLinks.Apps = []string{}
	doc.AppLinks.Details = make([]aasaDetail, 0, len(h.appIDs))
	for _, id := range h.appIDs {
		doc.AppLinks.Details = append(doc.AppLinks.Details, aasaDetail{AppID: id, Paths: h.links.UniversalLinkPaths()})
	}
	c.JSON(http.StatusOK, doc)
}

// Test is a liveness check.
func (h *Handler) Test(c *gin.Context) {
	c.String(http.StatusOK, "Server is running")
}
