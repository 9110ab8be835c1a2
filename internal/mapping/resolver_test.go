package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kokostore/parcel-dashboard/internal/domain"
)

func TestResolvePostalCodeWinsOverProvince(t *testing.T) {
	// valid postal code for Tunis, conflicting but valid province name
	addr := &domain.ShippingAddress{Zip: "1002", Province: "Sfax"}
	res := ResolveGovernorate(addr)
	assert.Equal(t, "Tunis", res.Governorate)
	assert.Equal(t, MethodPostalCode, res.Method)
}

func TestResolveProvince(t *testing.T) {
	res := ResolveGovernorate(&domain.ShippingAddress{Province: "Sfax"})
	assert.Equal(t, "Sfax", res.Governorate)
	assert.Equal(t, MethodProvince, res.Method)

	// accent-insensitive
	res = ResolveGovernorate(&domain.ShippingAddress{Province: "gabes"})
	assert.Equal(t, "Gabès", res.Governorate)
	assert.Equal(t, MethodProvince, res.Method)
}

func TestResolveCitySynonym(t *testing.T) {
	res := ResolveGovernorate(&domain.ShippingAddress{City: "Hammamet"})
	assert.Equal(t, "Nabeul", res.Governorate)
	assert.Equal(t, MethodCity, res.Method)

	res = ResolveGovernorate(&domain.ShippingAddress{City: "Gabès"})
	assert.Equal(t, "Gabès", res.Governorate)
	assert.Equal(t, MethodCity, res.Method)

	res = ResolveGovernorate(&domain.ShippingAddress{City: "GABES"})
	assert.Equal(t, "Gabès", res.Governorate)
	assert.Equal(t, MethodCity, res.Method)
}

func TestResolvePostalRange(t *testing.T) {
	// 1050 is not in the gazetteer but falls inside the Tunis block
	res := ResolveGovernorate(&domain.ShippingAddress{Zip: "1050"})
	assert.Equal(t, "Tunis", res.Governorate)
	assert.Equal(t, MethodPostalRange, res.Method)

	res = ResolveGovernorate(&domain.ShippingAddress{Zip: "4150"})
	assert.Equal(t, "Médenine", res.Governorate)
	assert.Equal(t, MethodPostalRange, res.Method)
}

func TestResolveAddressText(t *testing.T) {
	res := ResolveGovernorate(&domain.ShippingAddress{Address1: "km 4 route de tunis, zone industrielle"})
	assert.Equal(t, "Tunis", res.Governorate)
	assert.Equal(t, MethodAddressText, res.Method)
}

func TestResolveDefault(t *testing.T) {
	res := ResolveGovernorate(&domain.ShippingAddress{City: "Nowhere", Zip: "99999"})
	assert.Equal(t, "Tunis", res.Governorate)
	assert.Equal(t, MethodDefault, res.Method)

	res = ResolveGovernorate(nil)
	assert.Equal(t, "Tunis", res.Governorate)
	assert.Equal(t, MethodDefault, res.Method)
}

func TestResolveDeterministic(t *testing.T) {
	addr := &domain.ShippingAddress{City: "Sousse", Province: "sousse", Zip: "4000"}
	first := ResolveGovernorate(addr)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ResolveGovernorate(addr))
	}
}
