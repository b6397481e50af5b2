package handoff

import (
	"fmt"
	"net/url"
	"strings"

	"pos-kiosk-demo/config"
)

// Links builds the URLs a kiosk QR code and its landing pages point at.
type Links struct {
	PublicBaseURL     string
	AppScheme         string
	UniversalLinkBase string
	AppStoreID        string
}

// NewLinks derives Links from configuration.
func NewLinks(server config.ServerConfig, links config.LinksConfig) Links {
	return Links{
		PublicBaseURL:     server.PublicBaseURL,
		AppScheme:         links.AppScheme,
		UniversalLinkBase: links.UniversalLinkBase,
		AppStoreID:        links.AppStoreID,
	}
}

// ScanURL is the URL encoded in the kiosk QR code.
func (l Links) ScanURL(sessionID string) string {
	return ScanURL(l.PublicBaseURL, sessionID)
}

// ScanURL joins a server base URL and the scan entry point for sessionID.
func ScanURL(baseURL, sessionID string) string {
	return strings.TrimRight(baseURL, "/") + "/scan/" + url.PathEscape(sessionID)
}

// UniversalLink opens the app when installed and falls back to the website.
func (l Links) UniversalLink(sessionID string) string {
	return strings.TrimRight(l.UniversalLinkBase, "/") + "/" + url.PathEscape(sessionID)
}

// AppURL is the custom-scheme deep link.
func (l Links) AppURL(sessionID string) string {
	return fmt.Sprintf("%s://handoff?session=%s", l.AppScheme, url.QueryEscape(sessionID))
}

// UniversalLinkPaths is the path pattern the app claims in apple-app-site-association.
func (l Links) UniversalLinkPaths() []string {
	path := "/"
	if u, err := url.Parse(l.UniversalLinkBase); err == nil && u.Path != "" {
		path = strings.TrimRight(u.Path, "/") + "/"
	}
	return []string{path + "*"}
}
