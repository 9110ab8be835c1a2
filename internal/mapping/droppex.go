package mapping

import (
	"fmt"
	"strconv"

	"github.com/kokostore/parcel-dashboard/internal/carrier/droppex"
	"github.com/kokostore/parcel-dashboard/internal/domain"
)

// Droppex routes by numeric governorate id, not by name.
var droppexGovernorateID = map[string]string{
	"Tunis":       "1",
	"Sousse":      "2",
	"Monastir":    "3",
	"Mahdia":      "4",
	"Sfax":        "5",
	"Gabès":       "6",
	"Médenine":    "7",
	"Gafsa":       "8",
	"Tozeur":      "9",
	"Kébili":      "10",
	"Kairouan":    "11",
	"Kasserine":   "12",
	"Sidi Bouzid": "13",
	"Zaghouan":    "14",
	"Nabeul":      "15",
	"Béja":        "16",
	"Jendouba":    "17",
	"Le Kef":      "18",
	"Siliana":     "19",
	"Bizerte":     "20",
	"Béni Arous":  "21",
	"Ariana":      "22",
	"Manouba":     "23",
	"Tataouine":   "24",
}

// DroppexValidator maps orders into the Droppex form payload.
type DroppexValidator struct{}

func (DroppexValidator) Carrier() string { return "droppex" }

func (DroppexValidator) Validate(o *domain.Order) *ValidationResult {
	res := &ValidationResult{}
	n := prepare(o, res)

	zip := n.zip
	if zip == "" {
		// Droppex rejects an empty cp_l; the capital's code is the agreed fallback.
		zip = "1000"
	}

	pieces := n.itemCount
	if pieces == 0 {
		pieces = 1
	}

	libelle := n.itemSummary
	if libelle == "" {
		libelle = o.DisplayName()
	}

	rem := remark(o.Note, n.itemSummary)
	if rem == "" {
		rem = "Standard delivery"
	}

	res.Payload = droppex.Package{
		TelL:      n.phone,
		NomClient: n.customerName,
		GovL:      governorateID(n.resolution.Governorate),
		CpL:       zip,
		Cod:       fmt.Sprintf("%.2f", n.price),
		Libelle:   libelle,
		NbPiece:   strconv.Itoa(pieces),
		AdresseL:  n.address,
		Remarque:  rem,
		Tel2L:     n.phone,
		Service:   "Livraison",
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

func governorateID(name string) string {
	if id, ok := droppexGovernorateID[name]; ok {
		return id
	}
	return "1"
}
