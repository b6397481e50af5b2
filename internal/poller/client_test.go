package poller

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-kiosk-demo/config"
	"pos-kiosk-demo/internal/api"
	"pos-kiosk-demo/internal/handoff"
	"pos-kiosk-demo/internal/notification"
	"pos-kiosk-demo/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	svc := handoff.NewService(store.NewMemoryStore(0), nil)
	router := api.NewRouter(cfg, api.NewHandler(svc, notification.NewRegistry(0), nil, cfg))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestClient_RoundTrip(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL+"/", time.Second)
	ctx := context.Background()

	status, err := client.Status(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, status.Scanned)
	assert.Nil(t, status.Amount)

	assert.Error(t, client.AppReady(ctx, "k1"), "app-ready before registration is a 404")

	require.NoError(t, client.Register(ctx, "k1", "12.34"))
	require.NoError(t, client.AppReady(ctx, "k1"))
	require.NoError(t, client.SimulateScan(ctx, "k1"))
	require.NoError(t, client.HandoffComplete(ctx, "k1"))

	status, err = client.Status(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, status.Scanned)
	assert.True(t, status.AppReady)
	assert.True(t, status.HandoffComplete)
	require.NotNil(t, status.Amount)
	assert.InDelta(t, 12.34, *status.Amount, 1e-9)
}

func TestClient_UnreachableServer(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.Status(context.Background(), "x")
	assert.Error(t, err)
}
