package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/kokostore/parcel-dashboard/internal/domain"
	"github.com/kokostore/parcel-dashboard/internal/logger"
	"github.com/kokostore/parcel-dashboard/internal/mapping"
	"github.com/kokostore/parcel-dashboard/internal/repository"
)

var ErrUnknownCarrier = errors.New("unknown carrier")

// Carrier selects which parcel service an operation targets.
type Carrier string

const (
	CarrierDroppex       Carrier = "droppex"
	CarrierFirstDelivery Carrier = "first-delivery"
)

func ParseCarrier(raw string) (Carrier, error) {
	switch Carrier(raw) {
	case CarrierDroppex, CarrierFirstDelivery:
		return Carrier(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCarrier, raw)
}

// OrdersService owns webhook ingestion and the dashboard's read/edit paths.
// Submission lives in SubmissionService.
type OrdersService struct {
	repo repository.OrderRepo
}

func NewOrdersService(r repository.OrderRepo) *OrdersService {
	return &OrdersService{repo: r}
}

// Ingest persists a verified webhook order. New orders start as "Not sent";
// re-delivered orders refresh their fields and keep the parcel status.
func (s *OrdersService) Ingest(ctx context.Context, order *domain.Order) error {
	if err := s.repo.UpsertOrder(ctx, order); err != nil {
		logger.Warn("ingest failed", "id", order.ID, "err", err)
		return err
	}
	logger.Info("order ingested", "id", order.ID, "name", order.DisplayName())
	return nil
}

func (s *OrdersService) List(ctx context.Context, limit int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 250
	}
	return s.repo.ListOrders(ctx, limit)
}

func (s *OrdersService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

// MapOrder previews the carrier payload for one order without submitting.
func (s *OrdersService) MapOrder(ctx context.Context, id int64, carrier Carrier) (*mapping.ValidationResult, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := validatorFor(carrier)
	if err != nil {
		return nil, err
	}
	return v.Validate(o), nil
}

// Quality returns the data-quality summary the dashboard shows per row.
func (s *OrdersService) Quality(ctx context.Context, id int64) (*mapping.DataQuality, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	q := mapping.OrderDataQuality(o)
	return &q, nil
}

type ContactUpdate struct {
	ID              int64                   `json:"id"`
	Customer        *domain.Customer        `json:"customer"`
	ShippingAddress *domain.ShippingAddress `json:"shipping_address"`
}

type UpdateResult struct {
	OrderID int64  `json:"orderId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// UpdateContacts applies operator edits to customer/shipping blocks. Failures
// are collected per order, never aborting the rest.
func (s *OrdersService) UpdateContacts(ctx context.Context, updates []ContactUpdate) []UpdateResult {
	results := make([]UpdateResult, 0, len(updates))
	for _, u := range updates {
		if err := s.repo.UpdateContact(ctx, u.ID, u.Customer, u.ShippingAddress); err != nil {
			results = append(results, UpdateResult{OrderID: u.ID, Success: false, Error: err.Error()})
			continue
		}
		results = append(results, UpdateResult{OrderID: u.ID, Success: true})
	}
	return results
}

func (s *OrdersService) Delete(ctx context.Context, ids []int64) (int64, error) {
	return s.repo.DeleteOrders(ctx, ids)
}

func validatorFor(carrier Carrier) (mapping.CarrierValidator, error) {
	switch carrier {
	case CarrierDroppex:
		return mapping.DroppexValidator{}, nil
	case CarrierFirstDelivery:
		return mapping.FirstDeliveryValidator{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCarrier, carrier)
}
