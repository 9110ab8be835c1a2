package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kokostore/parcel-dashboard/internal/carrier/droppex"
	"github.com/kokostore/parcel-dashboard/internal/carrier/firstdelivery"
	"github.com/kokostore/parcel-dashboard/internal/domain"
)

func strPtr(s string) *string { return &s }

func completeOrder() *domain.Order {
	return &domain.Order{
		ID:         4821,
		Name:       "#1042",
		Email:      "amal@example.com",
		TotalPrice: "89.900",
		LineItems: []domain.LineItem{
			{Title: "Robe longue", VariantTitle: "Noir / M", Quantity: 2, Price: "34.950", SKU: "RL-NM"},
			{Title: "Ceinture", Quantity: 1, Price: "20.000"},
		},
		ShippingAddress: &domain.ShippingAddress{
			Name:     "Amal Ben Salah",
			Address1: "12 Rue de Marseille",
			Address2: "Apt 3",
			City:     "Tunis",
			Province: "Tunis",
			Zip:      "1002",
			Phone:    strPtr("+216 22 458 624"),
		},
		Customer:     &domain.Customer{FirstName: "Amal", LastName: "Ben Salah"},
		Note:         "Call before delivery",
		ParcelStatus: domain.StatusNotSent,
	}
}

func TestDroppexValidatorCompleteOrder(t *testing.T) {
	res := DroppexValidator{}.Validate(completeOrder())

	require.Empty(t, res.Errors)
	assert.True(t, res.IsValid)

	pkg, ok := res.Payload.(droppex.Package)
	require.True(t, ok)
	assert.Equal(t, "22458624", pkg.TelL)
	assert.Equal(t, "Amal Ben Salah", pkg.NomClient)
	assert.Equal(t, "1", pkg.GovL) // Tunis
	assert.Equal(t, "1002", pkg.CpL)
	assert.Equal(t, "89.90", pkg.Cod)
	assert.Equal(t, "Robe longue (Noir / M) x2, Ceinture x1", pkg.Libelle)
	assert.Equal(t, "2", pkg.NbPiece)
	assert.Equal(t, "12 Rue de Marseille Apt 3", pkg.AdresseL)
	assert.Equal(t, "Call before delivery | Robe longue (Noir / M) x2, Ceinture x1", pkg.Remarque)
	assert.Equal(t, "Livraison", pkg.Service)
}

func TestDroppexValidatorHardErrors(t *testing.T) {
	o := &domain.Order{TotalPrice: "10.0"}
	res := DroppexValidator{}.Validate(o)

	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "Order ID is required")
	assert.Contains(t, res.Errors, "Order name is required")
	assert.Contains(t, res.Errors, "Customer name is required")
	assert.Contains(t, res.Errors, "Phone number is required")
	assert.Contains(t, res.Errors, "Shipping address is required")
	assert.Contains(t, res.Errors, "Shipping city is required")
}

func TestValidatorMalformedPrice(t *testing.T) {
	o := completeOrder()
	o.TotalPrice = "abc"
	res := DroppexValidator{}.Validate(o)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "Invalid total_price format: abc")
}

func TestValidatorEmptyPhoneWarnsButSubmits(t *testing.T) {
	o := completeOrder()
	o.ShippingAddress.Phone = strPtr("")
	o.Customer.Phone = nil
	res := DroppexValidator{}.Validate(o)

	assert.True(t, res.IsValid)
	assert.Contains(t, res.Warnings, "Using default phone number (00000000)")
	pkg := res.Payload.(droppex.Package)
	assert.Equal(t, DefaultPhone, pkg.TelL)
}

func TestValidatorAbsentPhoneIsHardError(t *testing.T) {
	o := completeOrder()
	o.ShippingAddress.Phone = nil
	o.Customer.Phone = nil
	res := DroppexValidator{}.Validate(o)

	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "Phone number is required")
}

func TestValidatorMissingPostalCodeDefaults(t *testing.T) {
	o := completeOrder()
	o.ShippingAddress.Zip = ""
	res := DroppexValidator{}.Validate(o)

	assert.True(t, res.IsValid)
	assert.Contains(t, res.Warnings, "No postal code provided")
	pkg := res.Payload.(droppex.Package)
	assert.Equal(t, "1000", pkg.CpL)
	// without a postal code the province name carries the resolution
	assert.Equal(t, "1", pkg.GovL)
}

func TestValidatorProvinceMismatchWarning(t *testing.T) {
	o := completeOrder()
	o.ShippingAddress.Province = "Sfax" // zip 1002 says Tunis
	res := DroppexValidator{}.Validate(o)

	assert.True(t, res.IsValid)
	assert.Contains(t, res.Warnings, `Province "Sfax" does not match detected governorate Tunis (postal_code)`)
}

func TestValidatorNoProvinceWarning(t *testing.T) {
	o := completeOrder()
	o.ShippingAddress.Province = ""
	res := DroppexValidator{}.Validate(o)

	assert.True(t, res.IsValid)
	assert.Contains(t, res.Warnings, "No province provided, detected Tunis (postal_code)")
}

func TestValidatorIdempotent(t *testing.T) {
	o := completeOrder()
	first := DroppexValidator{}.Validate(o)
	second := DroppexValidator{}.Validate(o)
	assert.Equal(t, first, second)

	fd1 := FirstDeliveryValidator{}.Validate(o)
	fd2 := FirstDeliveryValidator{}.Validate(o)
	assert.Equal(t, fd1, fd2)
}

func TestFirstDeliveryValidatorCompleteOrder(t *testing.T) {
	res := FirstDeliveryValidator{}.Validate(completeOrder())

	require.Empty(t, res.Errors)
	assert.True(t, res.IsValid)

	ord, ok := res.Payload.(firstdelivery.Order)
	require.True(t, ok)
	assert.Equal(t, "Amal Ben Salah", ord.Client.Nom)
	assert.Equal(t, "Tunis", ord.Client.Gouvernerat)
	assert.Equal(t, "Tunis", ord.Client.Ville)
	assert.Equal(t, "12 Rue de Marseille Apt 3", ord.Client.Adresse)
	assert.Equal(t, "22458624", ord.Client.Telephone)

	assert.Equal(t, "RL-NM", ord.Produit.Article) // first item's sku
	assert.InDelta(t, 89.9, ord.Produit.Prix, 1e-9)
	assert.Equal(t, "Robe longue (Noir / M) x2, Ceinture x1", ord.Produit.Designation)
	assert.Equal(t, 3, ord.Produit.NombreArticle) // total quantity across items
	assert.Equal(t, "Call before delivery | Robe longue (Noir / M) x2, Ceinture x1", ord.Produit.Commentaire)
	assert.Equal(t, 0, ord.Produit.NombreEchange)
}

func TestFirstDeliveryBulkShapeOmitsExchangeCount(t *testing.T) {
	res := FirstDeliveryValidator{}.Validate(completeOrder())
	single := res.Payload.(firstdelivery.Order)
	bulk := ToBulk(single)

	assert.Equal(t, single.Client, bulk.Client)
	assert.Equal(t, single.Produit.Article, bulk.Produit.Article)
	assert.Equal(t, single.Produit.NombreArticle, bulk.Produit.NombreArticle)
}

func TestFirstDeliveryValidatorNoItems(t *testing.T) {
	o := completeOrder()
	o.LineItems = nil
	res := FirstDeliveryValidator{}.Validate(o)

	assert.True(t, res.IsValid)
	assert.Contains(t, res.Warnings, "No line items found")
	ord := res.Payload.(firstdelivery.Order)
	assert.Equal(t, "#1042", ord.Produit.Article)
	assert.Equal(t, "#1042", ord.Produit.Designation)
	assert.Equal(t, 1, ord.Produit.NombreArticle)
}

func TestOrderDataQuality(t *testing.T) {
	q := OrderDataQuality(completeOrder())
	assert.False(t, q.HasIssues)
	assert.False(t, q.HasWarnings)
	assert.Equal(t, 100, q.Score)

	bare := &domain.Order{ID: 1, Name: "#1"}
	q = OrderDataQuality(bare)
	assert.True(t, q.HasIssues)
	assert.True(t, q.HasWarnings)
	// 2 issues (address, city) + 4 warnings (zip, phone, name, items)
	assert.Equal(t, 100-2*20-4*10, q.Score)
}
