package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ParcelStatus is the carrier-facing lifecycle of an order. Transitions happen
// only through submission and revert, never directly from the dashboard.
type ParcelStatus string

const (
	StatusNotSent       ParcelStatus = "Not sent"
	StatusSentToCarrier ParcelStatus = "Sent to carrier"
	StatusFailed        ParcelStatus = "Failed"
)

// Eligible reports whether a new submission attempt is allowed from this status.
func (s ParcelStatus) Eligible() bool {
	return s == StatusNotSent || s == StatusFailed
}

// ParseParcelStatus maps stored values to a known status; anything
// unrecognized collapses to "Not sent".
func ParseParcelStatus(raw string) ParcelStatus {
	switch ParcelStatus(raw) {
	case StatusNotSent, StatusSentToCarrier, StatusFailed:
		return ParcelStatus(raw)
	}
	return StatusNotSent
}

type LineItem struct {
	Title        string `json:"title" validate:"required"`
	Quantity     int    `json:"quantity"`
	Price        string `json:"price"`
	VariantTitle string `json:"variant_title"`
	SKU          string `json:"sku"`
}

// ShippingAddress mirrors the Shopify shipping_address block. Phone is a
// pointer so a genuinely absent field is distinguishable from an empty string.
type ShippingAddress struct {
	Name     string  `json:"name"`
	Address1 string  `json:"address1"`
	Address2 string  `json:"address2"`
	City     string  `json:"city"`
	Province string  `json:"province"`
	Zip      string  `json:"zip"`
	Country  string  `json:"country"`
	Phone    *string `json:"phone"`
}

type Customer struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     string  `json:"email"`
}

type Order struct {
	ID         int64  `json:"id" validate:"required"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	CreatedAt  string `json:"created_at"`
	// Raw decimal string as Shopify sends it; parsed (and 2-decimal
	// formatted) only when a carrier payload is built.
	TotalPrice        string           `json:"total_price"`
	LineItems         []LineItem       `json:"line_items"`
	ShippingAddress   *ShippingAddress `json:"shipping_address"`
	Customer          *Customer        `json:"customer"`
	Note              string           `json:"note"`
	Tags              string           `json:"tags"`
	FulfillmentStatus string           `json:"fulfillment_status"`
	FinancialStatus   string           `json:"financial_status"`

	ParcelStatus     ParcelStatus    `json:"parcel_status"`
	CarrierResponse  json.RawMessage `json:"carrier_response,omitempty"`
	UpdatedInShopify bool            `json:"updated_in_shopify"`
	CreatedAtDB      time.Time       `json:"created_at_db,omitempty"`
	UpdatedAt        *time.Time      `json:"updated_at,omitempty"`
}

// DisplayName falls back to "Order #<id>" when Shopify gave no order name.
func (o *Order) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return fmt.Sprintf("Order #%d", o.ID)
}

// CustomerName prefers the shipping name, then first+last name. Empty string
// means no usable name anywhere.
func (o *Order) CustomerName() string {
	if o.ShippingAddress != nil && strings.TrimSpace(o.ShippingAddress.Name) != "" {
		return strings.TrimSpace(o.ShippingAddress.Name)
	}
	if o.Customer != nil {
		return strings.TrimSpace(strings.TrimSpace(o.Customer.FirstName) + " " + strings.TrimSpace(o.Customer.LastName))
	}
	return ""
}

// Phone returns the raw customer phone, shipping address first. The bool is
// false only when neither record carries a phone field at all.
func (o *Order) Phone() (string, bool) {
	if o.ShippingAddress != nil && o.ShippingAddress.Phone != nil {
		return *o.ShippingAddress.Phone, true
	}
	if o.Customer != nil && o.Customer.Phone != nil {
		return *o.Customer.Phone, true
	}
	return "", false
}
