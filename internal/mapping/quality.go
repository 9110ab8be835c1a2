package mapping

import "github.com/kokostore/parcel-dashboard/internal/domain"

// DataQuality is the dashboard's per-order data health summary. Issues are
// fields that will block submission; warnings merely degrade the parcel.
type DataQuality struct {
	HasIssues   bool     `json:"hasIssues"`
	HasWarnings bool     `json:"hasWarnings"`
	Issues      []string `json:"issues"`
	Warnings    []string `json:"warnings"`
	Score       int      `json:"qualityScore"`
}

// OrderDataQuality scores an order 0-100: each issue costs 20 points, each
// warning 10.
func OrderDataQuality(o *domain.Order) DataQuality {
	var q DataQuality

	addr := o.ShippingAddress
	if addr == nil || addr.Address1 == "" {
		q.Issues = append(q.Issues, "Missing shipping address")
	}
	if addr == nil || addr.City == "" {
		q.Issues = append(q.Issues, "Missing shipping city")
	}
	if addr == nil || addr.Zip == "" {
		q.Warnings = append(q.Warnings, "Missing postal code")
	}
	if _, present := o.Phone(); !present {
		q.Warnings = append(q.Warnings, "Missing phone number")
	}
	if o.CustomerName() == "" {
		q.Warnings = append(q.Warnings, "Missing customer name")
	}
	if len(o.LineItems) == 0 {
		q.Warnings = append(q.Warnings, "No order items")
	}

	q.HasIssues = len(q.Issues) > 0
	q.HasWarnings = len(q.Warnings) > 0
	q.Score = 100 - len(q.Issues)*20 - len(q.Warnings)*10
	if q.Score < 0 {
		q.Score = 0
	}
	return q
}
