package mapping

import "strings"

const (
	countryCode      = "216"
	localPhoneLength = 8

	// DefaultPhone is the sentinel sent when no usable digits were supplied.
	DefaultPhone = "00000000"
)

// NormalizePhone reduces a raw phone string to the 8-digit local form the
// carriers expect. The steps run in a fixed order: strip a +216/00216 prefix,
// drop everything that is not a digit, strip a leading bare 216 when the
// number is still longer than 8 digits, then adjust the length (keep the last
// 8, or right-pad with zeros). Already-canonical numbers pass through
// unchanged, so the function is idempotent.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DefaultPhone
	}

	for _, prefix := range []string{"+" + countryCode, "00" + countryCode} {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) > localPhoneLength && strings.HasPrefix(digits, countryCode) {
		digits = digits[len(countryCode):]
	}

	switch {
	case len(digits) == localPhoneLength:
		return digits
	case len(digits) > localPhoneLength:
		return digits[len(digits)-localPhoneLength:]
	default:
		return digits + strings.Repeat("0", localPhoneLength-len(digits))
	}
}

// ComposeAddress joins the two Shopify address lines into the single street
// address field both carriers use.
func ComposeAddress(address1, address2 string) string {
	return strings.TrimSpace(strings.TrimSpace(address1) + " " + strings.TrimSpace(address2))
}
