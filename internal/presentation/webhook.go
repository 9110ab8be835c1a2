package presentation

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/kokostore/parcel-dashboard/internal/domain"
	"github.com/kokostore/parcel-dashboard/internal/logger"
	"github.com/kokostore/parcel-dashboard/internal/presentation/helpers"
)

// OrderPublisher hands a verified order to the ingestion pipeline.
type OrderPublisher interface {
	PublishOrder(ctx context.Context, o domain.Order) error
}

type WebhookHandler struct {
	secret    string
	publisher OrderPublisher
	validate  *validator.Validate
}

func NewWebhookHandler(secret string, publisher OrderPublisher) *WebhookHandler {
	return &WebhookHandler{
		secret:    secret,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// HandleShopifyOrder verifies the HMAC signature over the raw body, checks
// the payload shape and publishes the order. Mapping downstream assumes
// orders passed through here.
func (h *WebhookHandler) HandleShopifyOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	signature := r.Header.Get("X-Shopify-Hmac-Sha256")
	if signature == "" {
		helpers.HttpError(w, http.StatusUnauthorized, "missing webhook signature")
		return
	}
	if h.secret == "" {
		helpers.HttpError(w, http.StatusInternalServerError, "missing webhook secret")
		return
	}
	if !VerifySignature(body, signature, h.secret) {
		logger.Warn("webhook signature mismatch")
		helpers.HttpError(w, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	var order domain.Order
	if err := json.Unmarshal(body, &order); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := h.validate.Struct(&order); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid order payload: "+err.Error())
		return
	}

	if err := h.publisher.PublishOrder(r.Context(), order); err != nil {
		logger.Warn("webhook publish failed", "id", order.ID, "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "failed to queue order")
		return
	}

	logger.Info("webhook order accepted", "id", order.ID, "name", order.DisplayName())
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// VerifySignature recomputes the HMAC-SHA256 of the raw body and compares it
// to the header value in constant time.
func VerifySignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	computed := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(computed), []byte(signature))
}
