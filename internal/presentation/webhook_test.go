package presentation

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kokostore/parcel-dashboard/internal/domain"
	"github.com/kokostore/parcel-dashboard/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type fakePublisher struct {
	published []domain.Order
	err       error
}

func (f *fakePublisher) PublishOrder(_ context.Context, o domain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, o)
	return nil
}

func sign(body, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

const webhookSecret = "shpss_test_secret"

func postWebhook(t *testing.T, h *WebhookHandler, body, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/shopify", strings.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Shopify-Hmac-Sha256", signature)
	}
	rec := httptest.NewRecorder()
	h.HandleShopifyOrder(rec, req)
	return rec
}

func TestWebhookAcceptsSignedOrder(t *testing.T) {
	pub := &fakePublisher{}
	h := NewWebhookHandler(webhookSecret, pub)

	body := `{"id":4821,"name":"#1042","total_price":"89.900"}`
	rec := postWebhook(t, h, body, sign(body, webhookSecret))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, pub.published, 1)
	assert.Equal(t, int64(4821), pub.published[0].ID)
	assert.Equal(t, "#1042", pub.published[0].Name)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	pub := &fakePublisher{}
	h := NewWebhookHandler(webhookSecret, pub)

	body := `{"id":4821}`
	rec := postWebhook(t, h, body, sign(body, "wrong-secret"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, pub.published)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	pub := &fakePublisher{}
	h := NewWebhookHandler(webhookSecret, pub)

	rec := postWebhook(t, h, `{"id":4821}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, pub.published)
}

func TestWebhookRejectsTamperedBody(t *testing.T) {
	pub := &fakePublisher{}
	h := NewWebhookHandler(webhookSecret, pub)

	signature := sign(`{"id":4821,"total_price":"89.900"}`, webhookSecret)
	rec := postWebhook(t, h, `{"id":4821,"total_price":"9999.000"}`, signature)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, pub.published)
}

func TestWebhookMissingSecretIsServerError(t *testing.T) {
	h := NewWebhookHandler("", &fakePublisher{})

	body := `{"id":4821}`
	rec := postWebhook(t, h, body, sign(body, webhookSecret))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWebhookRejectsPayloadWithoutID(t *testing.T) {
	pub := &fakePublisher{}
	h := NewWebhookHandler(webhookSecret, pub)

	body := `{"name":"#1042"}`
	rec := postWebhook(t, h, body, sign(body, webhookSecret))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, pub.published)
}

func TestWebhookPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	h := NewWebhookHandler(webhookSecret, pub)

	body := `{"id":4821}`
	rec := postWebhook(t, h, body, sign(body, webhookSecret))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"id":1}`)
	good := sign(string(body), webhookSecret)

	assert.True(t, VerifySignature(body, good, webhookSecret))
	assert.False(t, VerifySignature(body, good, "other"))
	assert.False(t, VerifySignature([]byte(`{"id":2}`), good, webhookSecret))
	assert.False(t, VerifySignature(body, "sha256=deadbeef", webhookSecret))
}
