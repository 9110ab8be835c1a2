package mapping

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kokostore/parcel-dashboard/internal/domain"
)

// ValidationResult is the outcome of mapping one order for one carrier.
// Errors block submission; warnings are operator-visible data-quality notes.
// Payload holds the carrier-specific record and is regenerated on every call,
// never persisted.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Payload  any      `json:"mappedData"`
}

func (r *ValidationResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// CarrierValidator maps an order into one carrier's payload shape. The two
// carriers disagree on field names, required-ness and batching, so each gets
// its own implementation instead of one parameterized mapper.
type CarrierValidator interface {
	Carrier() string
	Validate(o *domain.Order) *ValidationResult
}

var zipPattern = regexp.MustCompile(`^\d{4,5}$`)

// normalized is the carrier-neutral view of an order both validators build
// their payload from.
type normalized struct {
	customerName   string
	phone          string
	phoneDefaulted bool
	address        string
	city           string
	zip            string
	price          float64
	resolution     Resolution
	itemSummary    string
	itemCount      int
	totalQuantity  int
}

// prepare applies the rule set shared by both carriers and collects the
// normalized fields. Carrier-specific formatting happens in the validators.
func prepare(o *domain.Order, res *ValidationResult) *normalized {
	n := &normalized{}

	if o.ID == 0 {
		res.errorf("Order ID is required")
	}
	if strings.TrimSpace(o.Name) == "" {
		res.errorf("Order name is required")
	}

	n.customerName = o.CustomerName()
	if n.customerName == "" {
		res.errorf("Customer name is required")
	}

	rawPhone, present := o.Phone()
	if !present {
		res.errorf("Phone number is required")
	} else {
		n.phone = NormalizePhone(rawPhone)
		if n.phone == DefaultPhone {
			n.phoneDefaulted = true
			res.warnf("Using default phone number (%s)", DefaultPhone)
		}
	}

	if o.ShippingAddress != nil {
		n.address = ComposeAddress(o.ShippingAddress.Address1, o.ShippingAddress.Address2)
		n.city = strings.TrimSpace(o.ShippingAddress.City)
		n.zip = strings.TrimSpace(o.ShippingAddress.Zip)
	}
	if n.address == "" {
		res.errorf("Shipping address is required")
	}
	if n.city == "" {
		res.errorf("Shipping city is required")
	}

	if n.zip == "" {
		res.warnf("No postal code provided")
	} else if !zipPattern.MatchString(n.zip) {
		res.warnf("Postal code format may be invalid: %s", n.zip)
	}

	if strings.TrimSpace(o.Email) == "" && (o.Customer == nil || strings.TrimSpace(o.Customer.Email) == "") {
		res.warnf("No customer email provided")
	}

	if raw := strings.TrimSpace(o.TotalPrice); raw == "" {
		res.warnf("No total_price provided")
	} else if price, err := strconv.ParseFloat(raw, 64); err != nil || price < 0 {
		res.errorf("Invalid total_price format: %s", o.TotalPrice)
	} else {
		n.price = price
	}

	n.itemCount = len(o.LineItems)
	if n.itemCount == 0 {
		res.warnf("No line items found")
	}
	n.itemSummary = itemSummary(o.LineItems)
	n.totalQuantity = totalQuantity(o.LineItems)

	n.resolution = ResolveGovernorate(o.ShippingAddress)
	province := ""
	if o.ShippingAddress != nil {
		province = strings.TrimSpace(o.ShippingAddress.Province)
	}
	switch {
	case province == "":
		res.warnf("No province provided, detected %s (%s)", n.resolution.Governorate, n.resolution.Method)
	case foldKey(province) != foldKey(n.resolution.Governorate):
		res.warnf("Province %q does not match detected governorate %s (%s)",
			province, n.resolution.Governorate, n.resolution.Method)
	}

	return n
}

// itemSummary produces "Product A (Variant) x2, Product B x1".
func itemSummary(items []domain.LineItem) string {
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		label := strings.TrimSpace(it.Title)
		if v := strings.TrimSpace(it.VariantTitle); v != "" {
			label += " (" + v + ")"
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		parts = append(parts, fmt.Sprintf("%s x%d", label, qty))
	}
	return strings.Join(parts, ", ")
}

func totalQuantity(items []domain.LineItem) int {
	total := 0
	for _, it := range items {
		if it.Quantity < 1 {
			total++
			continue
		}
		total += it.Quantity
	}
	return total
}

// remark combines the operator note with the item summary, note first.
func remark(note, summary string) string {
	note = strings.TrimSpace(note)
	switch {
	case note != "" && summary != "":
		return note + " | " + summary
	case note != "":
		return note
	default:
		return summary
	}
}
