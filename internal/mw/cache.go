package mw

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// snapshot is a finished response kept for replay.
type snapshot struct {
	status int
	header http.Header
	body   []byte
}

// recordingWriter tees the response body into buf.
type recordingWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache replays successful GET responses for ttl. Responses marked
// Cache-Control: no-store are never kept. Mount it only on routes whose
// output does not depend on session state, such as the app-site-association
// document.
func Cache(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.Path
		if v, ok := store.Get(key); ok {
			snap := v.(snapshot)
			h := c.Writer.Header()
			for name, values := range snap.header {
				h[name] = values
			}
			h.Set("X-Cache", "HIT")
			c.Writer.WriteHeader(snap.status)
			_, _ = c.Writer.Write(snap.body)
			c.Abort()
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		rec.Header().Set("X-Cache", "MISS")

		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		if strings.Contains(rec.Header().Get("Cache-Control"), "no-store") {
			return
		}
		header := rec.Header().Clone()
		header.Del("X-Cache")
		store.Set(key, snapshot{status: status, header: header, body: bytes.Clone(rec.buf.Bytes())}, ttl)
	}
}
