package orders_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/infrastructure/orders"
)

func TestFetchOrderItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/order-1/items", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"line-1","product_id":"burger","quantity":2},
			{"id":"line-2","product_id":"soda","quantity":1}
		]`))
	}))
	defer server.Close()

	client := orders.NewClient(server.URL, time.Second)
	lines, err := client.FetchOrderItems(context.Background(), "order-1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "line-1", lines[0].ID)
	assert.Equal(t, "burger", lines[0].ProductID)
	assert.EqualValues(t, 2, lines[0].Quantity)
}

func TestFetchOrderItemsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := orders.NewClient(server.URL, time.Second)
	_, err := client.FetchOrderItems(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchOrderItemsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := orders.NewClient(server.URL, time.Second)
	_, err := client.FetchOrderItems(context.Background(), "order-1")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchOrderItemsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := orders.NewClient(server.URL, 50*time.Millisecond)
	_, err := client.FetchOrderItems(context.Background(), "order-1")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestFetchOrderItemsBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	client := orders.NewClient(server.URL, time.Second)
	_, err := client.FetchOrderItems(context.Background(), "order-1")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
