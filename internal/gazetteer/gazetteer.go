// Package gazetteer maps Tunisian postal codes to governorates and
// delegations. Lookups are exact string match only; fuzzy matching belongs to
// the resolver layer on top of it.
package gazetteer

import (
	"sort"
	"strings"
)

var (
	codeToGovernorate = map[string]string{}
	codeToDistrict    = map[string]string{}
)

func init() {
	for gov, districts := range postalTable {
		for district, codes := range districts {
			for _, code := range codes {
				codeToGovernorate[code] = gov
				codeToDistrict[code] = district
			}
		}
	}
}

// Governorate returns the canonical governorate name for a postal code.
func Governorate(postalCode string) (string, bool) {
	raw, ok := codeToGovernorate[strings.TrimSpace(postalCode)]
	if !ok {
		return "", false
	}
	if name, ok := canonicalName[raw]; ok {
		return name, true
	}
	return raw, true
}

// District returns the delegation a postal code belongs to.
func District(postalCode string) (string, bool) {
	d, ok := codeToDistrict[strings.TrimSpace(postalCode)]
	return d, ok
}

// IsValid reports whether the postal code exists in the table.
func IsValid(postalCode string) bool {
	_, ok := codeToGovernorate[strings.TrimSpace(postalCode)]
	return ok
}

// CodesFor lists all known postal codes of a governorate, sorted. The name may
// be canonical ("Gabès") or the bare registry key ("GABES").
func CodesFor(governorate string) []string {
	key := ""
	for raw, name := range canonicalName {
		if name == governorate || raw == strings.ToUpper(governorate) {
			key = raw
			break
		}
	}
	if key == "" {
		return nil
	}

	var codes []string
	for _, districtCodes := range postalTable[key] {
		codes = append(codes, districtCodes...)
	}
	sort.Strings(codes)
	return codes
}
