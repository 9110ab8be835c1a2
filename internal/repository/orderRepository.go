package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kokostore/parcel-dashboard/internal/domain"
	"github.com/kokostore/parcel-dashboard/internal/logger"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepo interface {
	UpsertOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	GetOrdersByIDs(ctx context.Context, ids []int64) ([]*domain.Order, error)
	ListOrders(ctx context.Context, limit int) ([]*domain.Order, error)
	UpdateParcelStatus(ctx context.Context, id int64, status domain.ParcelStatus, rawResponse []byte) error
	ClearUpdatedFlag(ctx context.Context, id int64) error
	UpdateContact(ctx context.Context, id int64, customer *domain.Customer, addr *domain.ShippingAddress) error
	DeleteOrders(ctx context.Context, ids []int64) (int64, error)
}

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(p *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: p}
}

const orderColumns = `id, name, email, created_at, total_price, line_items,
	shipping_address, customer, note, tags, fulfillment_status, financial_status,
	parcel_status, carrier_response, updated_in_shopify, created_at_db, updated_at`

// UpsertOrder inserts a webhook order or refreshes an existing one. A new row
// starts as "Not sent"; an update keeps the parcel status untouched and flags
// the row as updated in Shopify so the operator sees the change.
func (p *OrderRepository) UpsertOrder(ctx context.Context, o *domain.Order) error {
	lineItems, err := json.Marshal(o.LineItems)
	if err != nil {
		return err
	}
	shippingAddr, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return err
	}
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO orders
			(id, name, email, created_at, total_price, line_items, shipping_address,
			 customer, note, tags, fulfillment_status, financial_status,
			 parcel_status, updated_in_shopify, created_at_db)
		VALUES
			($1, $2, $3, $4, $5, $6, $7,
			 $8, $9, $10, $11, $12,
			 $13, false, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			total_price = EXCLUDED.total_price,
			line_items = EXCLUDED.line_items,
			shipping_address = EXCLUDED.shipping_address,
			customer = EXCLUDED.customer,
			note = EXCLUDED.note,
			tags = EXCLUDED.tags,
			fulfillment_status = EXCLUDED.fulfillment_status,
			financial_status = EXCLUDED.financial_status,
			updated_in_shopify = true,
			updated_at = now()
	`,
		o.ID,
		o.Name,
		o.Email,
		o.CreatedAt,
		o.TotalPrice,
		lineItems,
		shippingAddr,
		customer,
		o.Note,
		o.Tags,
		o.FulfillmentStatus,
		o.FinancialStatus,
		string(domain.StatusNotSent),
	)
	if err != nil {
		logger.Warn("upsert order failed", "id", o.ID, "err", err)
		return err
	}
	return nil
}

func (p *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// GetOrdersByIDs fetches exactly the requested rows; the submission path must
// never scan the whole table.
func (p *OrderRepository) GetOrdersByIDs(ctx context.Context, ids []int64) ([]*domain.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := p.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (p *OrderRepository) ListOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at_db DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// UpdateParcelStatus writes a status transition together with the raw carrier
// response for audit. Each order is written independently, never inside a
// cross-order transaction.
func (p *OrderRepository) UpdateParcelStatus(ctx context.Context, id int64, status domain.ParcelStatus, rawResponse []byte) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE orders SET parcel_status = $2, carrier_response = $3, updated_at = now()
		WHERE id = $1
	`, id, string(status), nullableJSON(rawResponse))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (p *OrderRepository) ClearUpdatedFlag(ctx context.Context, id int64) error {
	_, err := p.pool.Exec(ctx, `UPDATE orders SET updated_in_shopify = false WHERE id = $1`, id)
	return err
}

// UpdateContact replaces the operator-editable contact blocks.
func (p *OrderRepository) UpdateContact(ctx context.Context, id int64, customer *domain.Customer, addr *domain.ShippingAddress) error {
	customerJSON, err := json.Marshal(customer)
	if err != nil {
		return err
	}
	addrJSON, err := json.Marshal(addr)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx, `
		UPDATE orders SET customer = $2, shipping_address = $3, updated_at = now()
		WHERE id = $1
	`, id, customerJSON, addrJSON)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (p *OrderRepository) DeleteOrders(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := p.pool.Exec(ctx, `DELETE FROM orders WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o               domain.Order
		lineItems       []byte
		shippingAddr    []byte
		customer        []byte
		parcelStatus    string
		carrierResponse []byte
		updatedAt       *time.Time
	)
	err := row.Scan(
		&o.ID, &o.Name, &o.Email, &o.CreatedAt, &o.TotalPrice, &lineItems,
		&shippingAddr, &customer, &o.Note, &o.Tags, &o.FulfillmentStatus,
		&o.FinancialStatus, &parcelStatus, &carrierResponse,
		&o.UpdatedInShopify, &o.CreatedAtDB, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.ParcelStatus = domain.ParseParcelStatus(parcelStatus)
	o.CarrierResponse = carrierResponse
	o.UpdatedAt = updatedAt

	if len(lineItems) > 0 {
		if err := json.Unmarshal(lineItems, &o.LineItems); err != nil {
			logger.Warn("bad line_items payload", "id", o.ID, "err", err)
		}
	}
	if len(shippingAddr) > 0 {
		if err := json.Unmarshal(shippingAddr, &o.ShippingAddress); err != nil {
			logger.Warn("bad shipping_address payload", "id", o.ID, "err", err)
		}
	}
	if len(customer) > 0 {
		if err := json.Unmarshal(customer, &o.Customer); err != nil {
			logger.Warn("bad customer payload", "id", o.ID, "err", err)
		}
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]*domain.Order, error) {
	var out []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
