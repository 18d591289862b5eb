package courier_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolstore/internal/adapters/out/courier"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/core/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testShipmentRequest(t *testing.T) ports.ShipmentRequest {
	t.Helper()
	phone, err := kernel.NewPhone("+919876543210")
	require.NoError(t, err)

	return ports.ShipmentRequest{
		OrderID:           kernel.NewUUID(),
		BuyerPhone:        phone,
		DeliveryType:      order.DeliveryHome,
		Address:           "12 MG Road, Pune 411001",
		BilledWeightGrams: 500,
		PackageCount:      1,
	}
}

func TestCreateShipment_PlaceholderWhenUnconfigured(t *testing.T) {
	client := courier.NewClient("", "", discardLogger())

	first, err := client.CreateShipment(context.Background(), testShipmentRequest(t))
	require.NoError(t, err)
	second, err := client.CreateShipment(context.Background(), testShipmentRequest(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.TrackingID, "TEST-"))
	assert.Len(t, first.TrackingID, len("TEST-")+12)
	assert.Equal(t, "test-carrier", first.Carrier)
	assert.NotEqual(t, first.TrackingID, second.TrackingID)
}

func TestCreateShipment_PlaceholderWhenTokenMissing(t *testing.T) {
	client := courier.NewClient("https://courier.test", "", discardLogger())

	shipment, err := client.CreateShipment(context.Background(), testShipmentRequest(t))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(shipment.TrackingID, "TEST-"))
}

func TestCreateShipment_BooksWithAggregator(t *testing.T) {
	request := testShipmentRequest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/shipments", r.URL.Path)
		assert.Equal(t, "Token api-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, request.OrderID.String(), body["order_id"])
		assert.Equal(t, "home", body["delivery_type"])
		assert.Equal(t, "12 MG Road, Pune 411001", body["address"])
		assert.Equal(t, float64(500), body["weight_grams"])
		assert.Equal(t, float64(1), body["package_count"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"awb":     "AWB123",
			"carrier": "delhivery",
		})
	}))
	defer server.Close()

	client := courier.NewClient(server.URL, "api-token", discardLogger())
	shipment, err := client.CreateShipment(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, "AWB123", shipment.TrackingID)
	assert.Equal(t, "delhivery", shipment.Carrier)
}

func TestCreateShipment_AggregatorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"serviceability check failed"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := courier.NewClient(server.URL, "api-token", discardLogger())
	_, err := client.CreateShipment(context.Background(), testShipmentRequest(t))

	assert.ErrorContains(t, err, "status 422")
}

func TestCreateShipment_MissingAWB(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"carrier": "delhivery"})
	}))
	defer server.Close()

	client := courier.NewClient(server.URL, "api-token", discardLogger())
	_, err := client.CreateShipment(context.Background(), testShipmentRequest(t))

	assert.ErrorContains(t, err, "no AWB")
}
