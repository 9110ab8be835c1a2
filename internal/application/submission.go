package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kokostore/parcel-dashboard/internal/carrier/droppex"
	"github.com/kokostore/parcel-dashboard/internal/carrier/firstdelivery"
	"github.com/kokostore/parcel-dashboard/internal/domain"
	"github.com/kokostore/parcel-dashboard/internal/logger"
	"github.com/kokostore/parcel-dashboard/internal/mapping"
	"github.com/kokostore/parcel-dashboard/internal/repository"
)

// DroppexAPI is the slice of the Droppex client the orchestrator needs.
type DroppexAPI interface {
	Add(ctx context.Context, pkg droppex.Package) (*droppex.Response, error)
}

// FirstDeliveryAPI is the slice of the First Delivery client the orchestrator needs.
type FirstDeliveryAPI interface {
	Create(ctx context.Context, order firstdelivery.Order) (*firstdelivery.Response, error)
	BulkCreate(ctx context.Context, orders []firstdelivery.BulkOrder) (*firstdelivery.Response, error)
}

type OrderResult struct {
	OrderID        int64  `json:"orderId"`
	Success        bool   `json:"success"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	Error          string `json:"error,omitempty"`
}

type SummaryCounts struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type SubmissionSummary struct {
	Results []OrderResult `json:"results"`
	Summary SummaryCounts `json:"summary"`
}

func (s *SubmissionSummary) add(r OrderResult) {
	s.Results = append(s.Results, r)
	s.Summary.Total++
	if r.Success {
		s.Summary.Successful++
	} else {
		s.Summary.Failed++
	}
}

// SubmissionService turns a set of order ids into carrier calls and
// reconciles the responses back into per-order parcel status. Payloads are
// regenerated from the stored order on every attempt.
type SubmissionService struct {
	repo          repository.OrderRepo
	droppex       DroppexAPI
	firstDelivery FirstDeliveryAPI
	limiter       *RateLimiter
}

func NewSubmissionService(repo repository.OrderRepo, dpx DroppexAPI, fd FirstDeliveryAPI, limiter *RateLimiter) *SubmissionService {
	return &SubmissionService{
		repo:          repo,
		droppex:       dpx,
		firstDelivery: fd,
		limiter:       limiter,
	}
}

// SubmitOrders fetches exactly the requested orders, skips the ones whose
// status forbids a new attempt, and submits the rest: one call per order for
// Droppex, a single bulk call for First Delivery batches. Per-order outcomes
// land in the summary; only malformed requests return an error.
func (s *SubmissionService) SubmitOrders(ctx context.Context, orderIDs []int64, carrier Carrier) (*SubmissionSummary, error) {
	if len(orderIDs) == 0 {
		return nil, errors.New("no order ids provided")
	}

	orders, err := s.repo.GetOrdersByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	summary := &SubmissionSummary{Results: []OrderResult{}}
	var eligible []*domain.Order
	seen := make(map[int64]bool, len(orders))
	for _, o := range orders {
		seen[o.ID] = true
		if o.ParcelStatus.Eligible() {
			eligible = append(eligible, o)
			continue
		}
		summary.add(OrderResult{
			OrderID: o.ID,
			Success: false,
			Error:   fmt.Sprintf("Order already %s", strings.ToLower(string(o.ParcelStatus))),
		})
	}
	for _, id := range orderIDs {
		if !seen[id] {
			summary.add(OrderResult{OrderID: id, Success: false, Error: "Order not found"})
		}
	}

	if len(eligible) == 0 {
		return summary, nil
	}

	switch carrier {
	case CarrierDroppex:
		s.submitDroppex(ctx, eligible, summary)
	case CarrierFirstDelivery:
		if err := s.submitFirstDelivery(ctx, eligible, summary); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCarrier, carrier)
	}
	return summary, nil
}

// Droppex has no bulk endpoint; orders go out one blocking call at a time.
func (s *SubmissionService) submitDroppex(ctx context.Context, orders []*domain.Order, summary *SubmissionSummary) {
	for _, o := range orders {
		validation := mapping.DroppexValidator{}.Validate(o)
		if !validation.IsValid {
			summary.add(OrderResult{OrderID: o.ID, Success: false, Error: validationError(validation)})
			continue
		}
		pkg := validation.Payload.(droppex.Package)

		resp, err := s.droppex.Add(ctx, pkg)
		if err != nil {
			s.markFailed(ctx, o.ID, errorResponse(err))
			summary.add(OrderResult{OrderID: o.ID, Success: false, Error: err.Error()})
			continue
		}
		if !resp.Success {
			s.markFailed(ctx, o.ID, resp.RawBody)
			summary.add(OrderResult{OrderID: o.ID, Success: false, Error: resp.ErrorMessage})
			continue
		}

		tracking := resp.TrackingNumber
		if tracking == "" {
			tracking = strconv.FormatInt(o.ID, 10)
		}
		s.markSent(ctx, o.ID, resp.RawBody)
		summary.add(OrderResult{OrderID: o.ID, Success: true, TrackingNumber: tracking})
	}
}

// First Delivery: one order goes through /create, several through one
// /bulk-create call. The submitted slice order is the index contract for the
// carrier's per-index response and must not be reordered.
func (s *SubmissionService) submitFirstDelivery(ctx context.Context, orders []*domain.Order, summary *SubmissionSummary) error {
	var (
		valid    []*domain.Order
		payloads []firstdelivery.Order
	)
	for _, o := range orders {
		validation := mapping.FirstDeliveryValidator{}.Validate(o)
		if !validation.IsValid {
			summary.add(OrderResult{OrderID: o.ID, Success: false, Error: validationError(validation)})
			continue
		}
		valid = append(valid, o)
		payloads = append(payloads, validation.Payload.(firstdelivery.Order))
	}
	if len(valid) == 0 {
		return nil
	}

	if len(valid) == 1 {
		s.submitFirstDeliverySingle(ctx, valid[0], payloads[0], summary)
		return nil
	}
	return s.submitFirstDeliveryBulk(ctx, valid, payloads, summary)
}

func (s *SubmissionService) submitFirstDeliverySingle(ctx context.Context, o *domain.Order, payload firstdelivery.Order, summary *SubmissionSummary) {
	if err := s.limiter.Reserve("single"); err != nil {
		// refused before any network call; status stays untouched
		summary.add(OrderResult{OrderID: o.ID, Success: false, Error: err.Error()})
		return
	}

	resp, err := s.firstDelivery.Create(ctx, payload)
	if err != nil {
		s.markFailed(ctx, o.ID, errorResponse(err))
		summary.add(OrderResult{OrderID: o.ID, Success: false, Error: err.Error()})
		return
	}
	if !resp.Success {
		s.markFailed(ctx, o.ID, resp.RawBody)
		summary.add(OrderResult{OrderID: o.ID, Success: false, Error: resp.ErrorMessage})
		return
	}

	tracking := resp.TrackingNumber
	if tracking == "" {
		tracking = strconv.FormatInt(o.ID, 10)
	}
	s.markSent(ctx, o.ID, resp.RawBody)
	summary.add(OrderResult{OrderID: o.ID, Success: true, TrackingNumber: tracking})
}

func (s *SubmissionService) submitFirstDeliveryBulk(ctx context.Context, orders []*domain.Order, payloads []firstdelivery.Order, summary *SubmissionSummary) error {
	if len(orders) > firstdelivery.MaxBulkOrders {
		// never chunk silently; the caller has to split
		return fmt.Errorf("bulk submission of %d orders exceeds the carrier maximum of %d",
			len(orders), firstdelivery.MaxBulkOrders)
	}

	if err := s.limiter.Reserve("bulk"); err != nil {
		for _, o := range orders {
			summary.add(OrderResult{OrderID: o.ID, Success: false, Error: err.Error()})
		}
		return nil
	}

	bulk := make([]firstdelivery.BulkOrder, len(payloads))
	for i, p := range payloads {
		bulk[i] = mapping.ToBulk(p)
	}

	resp, err := s.firstDelivery.BulkCreate(ctx, bulk)
	if err != nil {
		for _, o := range orders {
			s.markFailed(ctx, o.ID, errorResponse(err))
			summary.add(OrderResult{OrderID: o.ID, Success: false, Error: err.Error()})
		}
		return nil
	}
	if !resp.Success {
		for _, o := range orders {
			s.markFailed(ctx, o.ID, resp.RawBody)
			summary.add(OrderResult{OrderID: o.ID, Success: false, Error: resp.ErrorMessage})
		}
		return nil
	}

	// The carrier reports per-index barcodes; an order is accepted only if its
	// own submission index got one (a 207 body accepts a subset).
	barcodes := resp.Barcodes()
	for i, o := range orders {
		if code, ok := barcodes[i]; ok {
			s.markSent(ctx, o.ID, resp.RawBody)
			summary.add(OrderResult{OrderID: o.ID, Success: true, TrackingNumber: code})
			continue
		}
		if len(barcodes) == 0 && resp.Status == 201 {
			// full-success body without a barcode array
			tracking := resp.TrackingNumber
			if tracking == "" {
				tracking = strconv.FormatInt(o.ID, 10)
			}
			s.markSent(ctx, o.ID, resp.RawBody)
			summary.add(OrderResult{OrderID: o.ID, Success: true, TrackingNumber: tracking})
			continue
		}
		s.markFailed(ctx, o.ID, resp.RawBody)
		summary.add(OrderResult{OrderID: o.ID, Success: false, Error: "not processed (partial batch failure)"})
	}
	return nil
}

// RevertOrder moves a sent order back to "Not sent" so it can be submitted
// again, clearing the Shopify-update flag with it.
func (s *SubmissionService) RevertOrder(ctx context.Context, id int64) error {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}
	if o.ParcelStatus != domain.StatusSentToCarrier {
		return fmt.Errorf("cannot revert order %d: status is %q", id, o.ParcelStatus)
	}
	if err := s.repo.UpdateParcelStatus(ctx, id, domain.StatusNotSent, nil); err != nil {
		return err
	}
	if err := s.repo.ClearUpdatedFlag(ctx, id); err != nil {
		logger.Warn("clear updated flag failed", "id", id, "err", err)
	}
	return nil
}

// markSent records the transition and clears the Shopify-update flag. Write
// failures are logged, never propagated: the carrier already accepted the
// parcel and sibling orders must not be affected.
func (s *SubmissionService) markSent(ctx context.Context, id int64, raw []byte) {
	if err := s.repo.UpdateParcelStatus(ctx, id, domain.StatusSentToCarrier, raw); err != nil {
		logger.Warn("status write failed", "id", id, "err", err)
		return
	}
	if err := s.repo.ClearUpdatedFlag(ctx, id); err != nil {
		logger.Warn("clear updated flag failed", "id", id, "err", err)
	}
}

func (s *SubmissionService) markFailed(ctx context.Context, id int64, raw []byte) {
	if err := s.repo.UpdateParcelStatus(ctx, id, domain.StatusFailed, raw); err != nil {
		logger.Warn("status write failed", "id", id, "err", err)
	}
}

func validationError(v *mapping.ValidationResult) string {
	return "validation failed: " + strings.Join(v.Errors, "; ")
}

func errorResponse(err error) []byte {
	raw, _ := json.Marshal(map[string]string{"error": err.Error()})
	return raw
}
