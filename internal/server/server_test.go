package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"productapi/internal/database"
	"productapi/internal/handlers"
	"productapi/internal/metrics"
	"productapi/internal/repositories"
	"productapi/internal/server"
	"productapi/internal/services"
	"productapi/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminApp_Health(t *testing.T) {
	healthy := database.PingFunc(func(context.Context) error { return nil })
	app := server.NewAdminApp(healthy, "memory", metrics.New())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, map[string]interface{}{"driver": "memory", "status": "connected"}, body["storage"])
}

func TestAdminApp_HealthStorageDown(t *testing.T) {
	down := database.PingFunc(func(context.Context) error { return errors.New("server selection timeout") })
	app := server.NewAdminApp(down, "mongo", metrics.New())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, map[string]interface{}{"driver": "mongo", "status": "server selection timeout"}, body["storage"])
}

func TestAdminApp_MetricsReflectProductTraffic(t *testing.T) {
	m := metrics.New()
	repo := repositories.NewMemoryProductRepository()
	service := services.NewProductService(repo, validation.New(), services.WithMetrics(m))
	api := server.NewApp(handlers.NewProductHandler(service, zerolog.Nop()), zerolog.Nop())
	admin := server.NewAdminApp(database.PingFunc(func(context.Context) error { return nil }), "memory", m)

	resp, err := api.Test(httptest.NewRequest(http.MethodGet, "/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = admin.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `productapi_product_operations_total{operation="list",outcome="success"} 1`)
}

func TestApp_UnknownRouteFallsThrough(t *testing.T) {
	service := services.NewProductService(repositories.NewMemoryProductRepository(), validation.New())
	api := server.NewApp(handlers.NewProductHandler(service, zerolog.Nop()), zerolog.Nop())

	resp, err := api.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
