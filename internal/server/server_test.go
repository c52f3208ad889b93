package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/internal/handler"
	"marketplace/internal/infra/memory"
	"marketplace/internal/metrics"
	"marketplace/internal/server"
	"marketplace/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, secret string) http.Handler {
	t.Helper()

	logger, _ := test.NewNullLogger()
	entry := log.NewEntry(logger)
	store := memory.NewStore()
	reg := prometheus.NewRegistry()

	h := server.Handlers{
		Customers: handler.NewCustomerHandler(usecase.NewCustomerUsecase(store.Customers(), entry)),
		Products:  handler.NewProductHandler(usecase.NewProductUsecase(store.Products(), entry)),
		Orders: handler.NewOrderHandler(usecase.NewOrderUsecase(
			memory.NewTxManager(store), store.Orders(), nil, metrics.NewOrderMetrics(reg), entry)),
	}
	return server.New(h, server.Options{JWTSecret: secret, Gatherer: reg, Logger: entry})
}

func serve(h http.Handler, method, path, body, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_OpenWithoutSecret(t *testing.T) {
	h := newServer(t, "")

	rec := serve(h, http.MethodPost, "/customers", `{"name":"A","email":"a@example.com"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_RequiresJWTWhenConfigured(t *testing.T) {
	const secret = "s3cret"
	h := newServer(t, secret)

	rec := serve(h, http.MethodPost, "/customers", `{"name":"A","email":"a@example.com"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ops"}).SignedString([]byte(secret))
	require.NoError(t, err)

	rec = serve(h, http.MethodPost, "/customers", `{"name":"A","email":"a@example.com"}`, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	//healthzとmetricsは認証なし
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/metrics", "", "").Code)
}

func TestServer_MetricsExposeOrderCounters(t *testing.T) {
	h := newServer(t, "")

	//注文者なし→失敗が1件記録される
	rec := serve(h, http.MethodPost, "/orders",
		`{"customer_id":"6f1c1c1e-1111-4a4a-9b9b-000000000001","products":[{"id":"6f1c1c1e-1111-4a4a-9b9b-000000000002","quantity":1}]}`, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `marketplace_order_failures_total{reason="customer_not_found"} 1`)
}
