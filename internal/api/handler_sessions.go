package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-kiosk-demo/internal/handoff"
	"pos-kiosk-demo/internal/parse"
)

// jsonAmount accepts either a JSON number or a numeric string.
type jsonAmount float64

func (a *jsonAmount) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		if n < 0 || n >= parse.MaxAmount {
			return fmt.Errorf("amount %v is out of range", n)
		}
		*a = jsonAmount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := parse.ParseAmount(s)
	if !ok {
		return fmt.Errorf("amount %q is not a number", s)
	}
	*a = jsonAmount(v)
	return nil
}

type registerSessionRequest struct {
	SessionID string      `json:"sessionId" binding:"required"`
	Amount    *jsonAmount `json:"amount" binding:"required"`
}

// RegisterSession handles POST /register-session.
func (h *Handler) RegisterSession(c *gin.Context) {
	var req registerSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "sessionId and amount are required"})
		return
	}

	if _, err := h.handoff.Register(c.Request.Context(), req.SessionID, float64(*req.Amount)); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AppReady handles POST /app-ready/:sessionId.
func (h *Handler) AppReady(c *gin.Context) {
	_, err := h.handoff.MarkAppReady(c.Request.Context(), c.Param("sessionId"))
	if errors.Is(err, handoff.ErrSessionNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandoffComplete handles POST /handoff-complete/:sessionId.
func (h *Handler) HandoffComplete(c *gin.Context) {
	if _, err := h.handoff.MarkHandoffComplete(c.Request.Context(), c.Param("sessionId")); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetStatus handles GET /status/:sessionId. Unknown sessions report defaults.
func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.handoff.Status(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, status)
}

func (h *Handler) internalError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
