package messenger_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolstore/internal/adapters/out/messenger"
	"schoolstore/internal/core/domain/model/kernel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPhone(t *testing.T) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone("+919876543210")
	require.NoError(t, err)
	return phone
}

func TestSendText_PostsMessage(t *testing.T) {
	var delivered bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		delivered = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "Bearer api-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+919876543210", body["to"])
		assert.Equal(t, "text", body["type"])
		assert.Equal(t, "Payment received for order", body["text"])

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := messenger.NewClient(server.URL, "api-token", discardLogger())
	err := client.SendText(context.Background(), testPhone(t), "Payment received for order")

	require.NoError(t, err)
	assert.True(t, delivered)
}

func TestSendText_UnconfiguredIsNoOp(t *testing.T) {
	client := messenger.NewClient("", "", discardLogger())

	assert.NoError(t, client.SendText(context.Background(), testPhone(t), "hello"))
}

func TestSendText_ChannelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"recipient opted out"}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := messenger.NewClient(server.URL, "api-token", discardLogger())
	err := client.SendText(context.Background(), testPhone(t), "hello")

	assert.ErrorContains(t, err, "status 403")
}
