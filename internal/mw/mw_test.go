package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCache_ServesSecondRequestFromStore(t *testing.T) {
	calls := 0
	r := gin.New()
	r.GET("/doc", Cache(cache.New(time.Minute, time.Minute), time.Minute), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/doc", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"calls":1}`, w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		if i == 0 {
			assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
		} else {
			assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
		}
	}
	assert.Equal(t, 1, calls)
}

func TestCache_SkipsErrorsAndNonGet(t *testing.T) {
	calls := 0
	store := cache.New(time.Minute, time.Minute)
	r := gin.New()
	handler := func(c *gin.Context) {
		calls++
		c.Status(http.StatusInternalServerError)
	}
	r.GET("/fail", Cache(store, time.Minute), handler)
	r.POST("/fail", Cache(store, time.Minute), handler)

	for _, method := range []string{http.MethodGet, http.MethodGet, http.MethodPost} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/fail", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	}
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, store.ItemCount())
}

func TestCache_HonorsNoStore(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	r := gin.New()
	r.GET("/live", Cache(store, time.Minute), func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.String(http.StatusOK, "fresh")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, "fresh", w.Body.String())
	assert.Equal(t, 0, store.ItemCount())
}

func TestRateLimiter_RejectsBurstOverflow(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(0.001), 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestIPRateLimiter_SeparatesClients(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.001), 1)
	assert.True(t, l.GetLimiter("10.0.0.1").Allow())
	assert.False(t, l.GetLimiter("10.0.0.1").Allow())
	assert.True(t, l.GetLimiter("10.0.0.2").Allow())
	assert.Same(t, l.GetLimiter("10.0.0.1"), l.GetLimiter("10.0.0.1"))
}
