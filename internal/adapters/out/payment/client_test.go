package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolstore/internal/adapters/out/payment"
	"schoolstore/internal/core/domain/model/kernel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature_Valid(t *testing.T) {
	client := payment.NewClient("https://pay.test", "key", "secret", "whsec_123", discardLogger())
	payload := []byte(`{"event":"payment.completed"}`)

	assert.NoError(t, client.VerifyWebhookSignature(payload, sign("whsec_123", payload)))
}

func TestVerifyWebhookSignature_TrimsWhitespace(t *testing.T) {
	client := payment.NewClient("https://pay.test", "key", "secret", "whsec_123", discardLogger())
	payload := []byte(`{"event":"payment.completed"}`)

	assert.NoError(t, client.VerifyWebhookSignature(payload, sign("whsec_123", payload)+"\n"))
}

func TestVerifyWebhookSignature_Mismatch(t *testing.T) {
	client := payment.NewClient("https://pay.test", "key", "secret", "whsec_123", discardLogger())
	payload := []byte(`{"event":"payment.completed"}`)

	assert.Error(t, client.VerifyWebhookSignature(payload, sign("wrong-secret", payload)))
	assert.Error(t, client.VerifyWebhookSignature(payload, "not-a-signature"))
	assert.Error(t, client.VerifyWebhookSignature(payload, ""))
}

func TestVerifyWebhookSignature_TamperedPayload(t *testing.T) {
	client := payment.NewClient("https://pay.test", "key", "secret", "whsec_123", discardLogger())
	signature := sign("whsec_123", []byte(`{"amount":50000}`))

	assert.Error(t, client.VerifyWebhookSignature([]byte(`{"amount":1}`), signature))
}

func TestVerifyWebhookSignature_NoSecretAcceptsEverything(t *testing.T) {
	client := payment.NewClient("https://pay.test", "key", "secret", "", discardLogger())

	assert.NoError(t, client.VerifyWebhookSignature([]byte(`{}`), "anything"))
	assert.NoError(t, client.VerifyWebhookSignature([]byte(`{}`), ""))
}

func TestCreatePaymentLink_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	phone, err := kernel.NewPhone("+919876543210")
	require.NoError(t, err)
	amount, err := kernel.NewMoney(50000)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_links", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(50000), body["amount"])
		assert.Equal(t, "INR", body["currency"])
		assert.Equal(t, orderID.String(), body["reference_id"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":        "plink_123",
			"short_url": "https://pay.test/plink_123",
		})
	}))
	defer server.Close()

	client := payment.NewClient(server.URL, "key_id", "key_secret", "whsec", discardLogger())
	link, err := client.CreatePaymentLink(context.Background(), orderID, amount, phone)

	require.NoError(t, err)
	assert.Equal(t, "plink_123", link.Ref)
	assert.Equal(t, "https://pay.test/plink_123", link.URL)
}

func TestCreatePaymentLink_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"auth failed"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	phone, err := kernel.NewPhone("+919876543210")
	require.NoError(t, err)
	amount, err := kernel.NewMoney(50000)
	require.NoError(t, err)

	client := payment.NewClient(server.URL, "key_id", "key_secret", "whsec", discardLogger())
	_, err = client.CreatePaymentLink(context.Background(), kernel.NewUUID(), amount, phone)

	assert.ErrorContains(t, err, "status 401")
}

func TestCreatePaymentLink_IncompleteResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "plink_123"})
	}))
	defer server.Close()

	phone, err := kernel.NewPhone("+919876543210")
	require.NoError(t, err)
	amount, err := kernel.NewMoney(50000)
	require.NoError(t, err)

	client := payment.NewClient(server.URL, "key_id", "key_secret", "whsec", discardLogger())
	_, err = client.CreatePaymentLink(context.Background(), kernel.NewUUID(), amount, phone)

	assert.ErrorContains(t, err, "incomplete response")
}
