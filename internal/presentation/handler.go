package presentation

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kokostore/parcel-dashboard/internal/application"
	"github.com/kokostore/parcel-dashboard/internal/carrier/droppex"
	"github.com/kokostore/parcel-dashboard/internal/carrier/firstdelivery"
	"github.com/kokostore/parcel-dashboard/internal/logger"
	"github.com/kokostore/parcel-dashboard/internal/presentation/helpers"
	"github.com/kokostore/parcel-dashboard/internal/repository"
)

// DroppexProbe and FirstDeliveryProbe are the connectivity checks behind the
// carrier status endpoints.
type DroppexProbe interface {
	List(ctx context.Context) (*droppex.Response, error)
}

type FirstDeliveryProbe interface {
	Orders(ctx context.Context, pageNumber, limit int) (*firstdelivery.Response, error)
}

type OrdersHandler struct {
	orders     *application.OrdersService
	submission *application.SubmissionService
	dpxProbe   DroppexProbe
	fdProbe    FirstDeliveryProbe
}

func NewOrdersHandler(orders *application.OrdersService, submission *application.SubmissionService, dpx DroppexProbe, fd FirstDeliveryProbe) *OrdersHandler {
	return &OrdersHandler{orders: orders, submission: submission, dpxProbe: dpx, fdProbe: fd}
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Get("/orders", h.ListOrders)
	r.Get("/orders/{id}", h.GetOrder)
	r.Get("/orders/{id}/mapping", h.MapOrder)
	r.Get("/orders/{id}/quality", h.OrderQuality)
	r.Post("/orders/send", h.SendOrders)
	r.Post("/orders/revert", h.RevertOrder)
	r.Post("/orders/update", h.UpdateOrders)
	r.Post("/orders/delete", h.DeleteOrders)
	r.Get("/carriers/{carrier}/status", h.CarrierStatus)
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := 250
	if q := r.URL.Query().Get("limit"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}

	orders, err := h.orders.List(r.Context(), limit)
	if err != nil {
		logger.Warn("list orders failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			helpers.HttpError(w, http.StatusNotFound, "order not found")
			return
		}
		helpers.HttpError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, o)
}

// MapOrder previews the carrier payload with its errors and warnings, without
// submitting anything.
func (h *OrdersHandler) MapOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	carrier, err := application.ParseCarrier(r.URL.Query().Get("carrier"))
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.orders.MapOrder(r.Context(), id, carrier)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			helpers.HttpError(w, http.StatusNotFound, "order not found")
			return
		}
		helpers.HttpError(w, http.StatusInternalServerError, "failed to map order")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, result)
}

func (h *OrdersHandler) OrderQuality(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	q, err := h.orders.Quality(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			helpers.HttpError(w, http.StatusNotFound, "order not found")
			return
		}
		helpers.HttpError(w, http.StatusInternalServerError, "failed to score order")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, q)
}

type sendRequest struct {
	OrderIDs []int64 `json:"orderIds"`
	Carrier  string  `json:"carrier"`
}

func (h *OrdersHandler) SendOrders(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(req.OrderIDs) == 0 {
		helpers.HttpError(w, http.StatusBadRequest, "orderIds is required")
		return
	}
	carrier, err := application.ParseCarrier(req.Carrier)
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.submission.SubmitOrders(r.Context(), req.OrderIDs, carrier)
	if err != nil {
		logger.Warn("submission failed", "carrier", carrier, "err", err)
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": summary.Results,
		"summary": summary.Summary,
	})
}

type revertRequest struct {
	OrderID int64 `json:"orderId"`
}

func (h *OrdersHandler) RevertOrder(w http.ResponseWriter, r *http.Request) {
	var req revertRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.OrderID == 0 {
		helpers.HttpError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	if err := h.submission.RevertOrder(r.Context(), req.OrderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			helpers.HttpError(w, http.StatusNotFound, "order not found")
			return
		}
		if strings.Contains(err.Error(), "cannot revert") {
			helpers.HttpError(w, http.StatusConflict, err.Error())
			return
		}
		helpers.HttpError(w, http.StatusInternalServerError, "failed to revert order")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Order status reverted successfully",
	})
}

type updateRequest struct {
	Orders []application.ContactUpdate `json:"orders"`
}

func (h *OrdersHandler) UpdateOrders(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(req.Orders) == 0 {
		helpers.HttpError(w, http.StatusBadRequest, "orders is required")
		return
	}

	results := h.orders.UpdateContacts(r.Context(), req.Orders)
	success := 0
	for _, res := range results {
		if res.Success {
			success++
		}
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": results,
		"summary": map[string]int{
			"total":      len(results),
			"successful": success,
			"failed":     len(results) - success,
		},
	})
}

type deleteRequest struct {
	OrderIDs []int64 `json:"orderIds"`
}

func (h *OrdersHandler) DeleteOrders(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(req.OrderIDs) == 0 {
		helpers.HttpError(w, http.StatusBadRequest, "orderIds is required")
		return
	}

	deleted, err := h.orders.Delete(r.Context(), req.OrderIDs)
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to delete orders")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": deleted})
}

func (h *OrdersHandler) CarrierStatus(w http.ResponseWriter, r *http.Request) {
	carrier, err := application.ParseCarrier(chi.URLParam(r, "carrier"))
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}

	connected := false
	var probeErr string
	switch carrier {
	case application.CarrierDroppex:
		resp, err := h.dpxProbe.List(r.Context())
		connected = err == nil && resp.Success
		if err != nil {
			probeErr = err.Error()
		} else if !resp.Success {
			probeErr = resp.ErrorMessage
		}
	case application.CarrierFirstDelivery:
		resp, err := h.fdProbe.Orders(r.Context(), 1, 1)
		connected = err == nil && resp.Success
		if err != nil {
			probeErr = err.Error()
		} else if !resp.Success {
			probeErr = resp.ErrorMessage
		}
	}

	body := map[string]any{"carrier": string(carrier), "connected": connected}
	if probeErr != "" {
		body["error"] = probeErr
	}
	helpers.WriteJSON(w, http.StatusOK, body)
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		helpers.HttpError(w, http.StatusBadRequest, "invalid order id")
		return 0, false
	}
	return id, true
}
