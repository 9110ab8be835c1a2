package mapping

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kokostore/parcel-dashboard/internal/domain"
	"github.com/kokostore/parcel-dashboard/internal/gazetteer"
)

// Method names how a governorate was inferred. It is surfaced to the operator
// as a trust signal next to the detected value.
type Method string

const (
	MethodPostalCode  Method = "postal_code"
	MethodProvince    Method = "province"
	MethodCity        Method = "city"
	MethodPostalRange Method = "postal_range"
	MethodAddressText Method = "address_text"
	MethodDefault     Method = "default"
)

type Resolution struct {
	Governorate string `json:"governorate"`
	Method      Method `json:"method"`
}

// DefaultGovernorate is used when every inference strategy fails.
const DefaultGovernorate = "Tunis"

// Governorates enumerates the 24 Tunisian governorates in their canonical
// accented spelling, the form both carriers accept.
var Governorates = []string{
	"Ariana", "Béja", "Béni Arous", "Bizerte", "Gabès", "Gafsa", "Jendouba",
	"Kairouan", "Kasserine", "Kébili", "Le Kef", "Mahdia", "Manouba",
	"Médenine", "Monastir", "Nabeul", "Sfax", "Sidi Bouzid", "Siliana",
	"Sousse", "Tataouine", "Tozeur", "Tunis", "Zaghouan",
}

// Coarse postal ranges, one per governorate's code block. Used only when the
// exact gazetteer lookup missed, so an unlisted but well-formed code still
// lands in the right region. First match wins.
var postalRanges = []struct {
	lo, hi      int
	governorate string
}{
	{1000, 1099, "Tunis"},
	{1100, 1199, "Zaghouan"},
	{1200, 1299, "Kasserine"},
	{2000, 2079, "Tunis"},
	{2080, 2099, "Ariana"},
	{2100, 2199, "Gafsa"},
	{2200, 2299, "Tozeur"},
	{3000, 3099, "Sfax"},
	{3100, 3199, "Kairouan"},
	{3200, 3299, "Tataouine"},
	{4000, 4099, "Sousse"},
	{4100, 4199, "Médenine"},
	{4200, 4299, "Kébili"},
	{5000, 5099, "Monastir"},
	{5100, 5199, "Mahdia"},
	{6000, 6099, "Gabès"},
	{6100, 6199, "Siliana"},
	{7000, 7099, "Bizerte"},
	{7100, 7199, "Le Kef"},
	{8000, 8099, "Nabeul"},
	{8100, 8199, "Jendouba"},
	{9000, 9099, "Béja"},
	{9100, 9199, "Sidi Bouzid"},
}

// City and suburb names (accent-folded) mapped to their governorate. Keys must
// be in folded form; lookups fold the input, so "Gabès" and "Gabes" both hit.
var citySynonyms = map[string]string{
	"tunis":        "Tunis",
	"le bardo":     "Tunis",
	"la marsa":     "Tunis",
	"carthage":     "Tunis",
	"la goulette":  "Tunis",
	"le kram":      "Tunis",
	"ariana":       "Ariana",
	"la soukra":    "Ariana",
	"raoued":       "Ariana",
	"ben arous":    "Béni Arous",
	"beni arous":   "Béni Arous",
	"rades":        "Béni Arous",
	"hammam lif":   "Béni Arous",
	"ezzahra":      "Béni Arous",
	"manouba":      "Manouba",
	"oued ellil":   "Manouba",
	"nabeul":       "Nabeul",
	"hammamet":     "Nabeul",
	"kelibia":      "Nabeul",
	"korba":        "Nabeul",
	"grombalia":    "Nabeul",
	"zaghouan":     "Zaghouan",
	"bizerte":      "Bizerte",
	"mateur":       "Bizerte",
	"menzel bourguiba": "Bizerte",
	"beja":         "Béja",
	"jendouba":     "Jendouba",
	"tabarka":      "Jendouba",
	"le kef":       "Le Kef",
	"kef":          "Le Kef",
	"siliana":      "Siliana",
	"makthar":      "Siliana",
	"sousse":       "Sousse",
	"msaken":       "Sousse",
	"hammam sousse": "Sousse",
	"enfidha":      "Sousse",
	"monastir":     "Monastir",
	"moknine":      "Monastir",
	"ksar hellal":  "Monastir",
	"jemmal":       "Monastir",
	"mahdia":       "Mahdia",
	"el jem":       "Mahdia",
	"chebba":       "Mahdia",
	"sfax":         "Sfax",
	"mahres":       "Sfax",
	"kerkennah":    "Sfax",
	"kairouan":     "Kairouan",
	"kasserine":    "Kasserine",
	"sbeitla":      "Kasserine",
	"sidi bouzid":  "Sidi Bouzid",
	"gabes":        "Gabès",
	"mareth":       "Gabès",
	"el hamma":     "Gabès",
	"matmata":      "Gabès",
	"medenine":     "Médenine",
	"zarzis":       "Médenine",
	"djerba":       "Médenine",
	"houmt souk":   "Médenine",
	"midoun":       "Médenine",
	"ben gardane":  "Médenine",
	"tataouine":    "Tataouine",
	"gafsa":        "Gafsa",
	"metlaoui":     "Gafsa",
	"tozeur":       "Tozeur",
	"nefta":        "Tozeur",
	"kebili":       "Kébili",
	"douz":         "Kébili",
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldKey lowercases and strips diacritics so spelling variants compare equal.
func foldKey(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ResolveGovernorate infers the governorate from whatever address data exists.
// The strategy order is the contract: postal code, province name, city name,
// postal range, free-text search, then the capital as a last resort. The same
// address always resolves the same way.
func ResolveGovernorate(addr *domain.ShippingAddress) Resolution {
	if addr == nil {
		return Resolution{Governorate: DefaultGovernorate, Method: MethodDefault}
	}

	if gov, ok := gazetteer.Governorate(addr.Zip); ok {
		return Resolution{Governorate: gov, Method: MethodPostalCode}
	}

	if province := foldKey(addr.Province); province != "" {
		for _, gov := range Governorates {
			if foldKey(gov) == province {
				return Resolution{Governorate: gov, Method: MethodProvince}
			}
		}
	}

	if gov, ok := citySynonyms[foldKey(addr.City)]; ok {
		return Resolution{Governorate: gov, Method: MethodCity}
	}

	if code, err := strconv.Atoi(strings.TrimSpace(addr.Zip)); err == nil {
		for _, r := range postalRanges {
			if code >= r.lo && code <= r.hi {
				return Resolution{Governorate: r.governorate, Method: MethodPostalRange}
			}
		}
	}

	haystack := foldKey(addr.Address1 + " " + addr.City + " " + addr.Province)
	if haystack != "" {
		for _, gov := range Governorates {
			if strings.Contains(haystack, foldKey(gov)) {
				return Resolution{Governorate: gov, Method: MethodAddressText}
			}
		}
	}

	return Resolution{Governorate: DefaultGovernorate, Method: MethodDefault}
}
