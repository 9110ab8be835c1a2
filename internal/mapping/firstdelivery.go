package mapping

import (
	"strings"

	"github.com/kokostore/parcel-dashboard/internal/carrier/firstdelivery"
	"github.com/kokostore/parcel-dashboard/internal/domain"
)

// FirstDeliveryValidator maps orders into the First Delivery JSON payload.
// It always produces the single-order shape; the bulk shape (same data minus
// nombreEchange) is derived from it by the orchestrator when batching.
type FirstDeliveryValidator struct{}

func (FirstDeliveryValidator) Carrier() string { return "first-delivery" }

func (FirstDeliveryValidator) Validate(o *domain.Order) *ValidationResult {
	res := &ValidationResult{}
	n := prepare(o, res)

	article := o.DisplayName()
	if len(o.LineItems) > 0 {
		first := o.LineItems[0]
		if sku := strings.TrimSpace(first.SKU); sku != "" {
			article = sku
		} else if title := strings.TrimSpace(first.Title); title != "" {
			article = title
		}
	}

	designation := n.itemSummary
	if designation == "" {
		designation = o.DisplayName()
	}

	qty := n.totalQuantity
	if qty == 0 {
		qty = 1
	}

	res.Payload = firstdelivery.Order{
		Client: firstdelivery.ClientInfo{
			Nom:         n.customerName,
			Gouvernerat: n.resolution.Governorate,
			Ville:       n.city,
			Adresse:     n.address,
			Telephone:   n.phone,
			Telephone2:  "",
		},
		Produit: firstdelivery.Product{
			Article:       article,
			Prix:          n.price,
			Designation:   designation,
			NombreArticle: qty,
			Commentaire:   remark(o.Note, n.itemSummary),
			NombreEchange: 0,
		},
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

// ToBulk strips the exchange-count field the bulk endpoint rejects.
func ToBulk(o firstdelivery.Order) firstdelivery.BulkOrder {
	return firstdelivery.BulkOrder{
		Client: o.Client,
		Produit: firstdelivery.BulkProduct{
			Article:       o.Produit.Article,
			Prix:          o.Produit.Prix,
			Designation:   o.Produit.Designation,
			NombreArticle: o.Produit.NombreArticle,
			Commentaire:   o.Produit.Commentaire,
		},
	}
}
