// Package validate holds the pure input-validation helpers shared by the
// registration, login and contact flows. Everything here is total: no I/O,
// no errors, just shape checks and reformatting.
package validate

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	// Two phone shapes are in use and they are intentionally distinct:
	// the login/profile forms accept only the bare national form, the
	// registration form also accepts the +1 country-code prefix.
	phoneStrictRe      = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	phoneCountryCodeRe = regexp.MustCompile(`^(\+1-)?\d{3}-\d{3}-\d{4}$`)

	websiteRe = regexp.MustCompile(`^https?://.+`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	nonDigit  = regexp.MustCompile(`\D`)
)

// Email reports whether s looks like local@domain.tld.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// PhoneStrict accepts only NNN-NNN-NNNN.
func PhoneStrict(s string) bool {
	return phoneStrictRe.MatchString(s)
}

// PhoneWithCountryCode accepts NNN-NNN-NNNN or +1-NNN-NNN-NNNN.
func PhoneWithCountryCode(s string) bool {
	return phoneCountryCodeRe.MatchString(s)
}

// FormatPhone strips non-digits and regroups as NNN-NNN-NNNN, inserting
// separators progressively as digits accumulate. Digits past the tenth are
// dropped. Reformatting already-formatted input is a no-op.
func FormatPhone(s string) string {
	digits := nonDigit.ReplaceAllString(s, "")
	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 6:
		return digits[:3] + "-" + digits[3:]
	default:
		end := len(digits)
		if end > 10 {
			end = 10
		}
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:end]
	}
}

// FormatPhoneIntl behaves like FormatPhone for up to ten digits; beyond
// that it strips a leading country-code 1 and renders the first ten
// remaining digits with a +1 prefix.
func FormatPhoneIntl(s string) string {
	digits := nonDigit.ReplaceAllString(s, "")
	if len(digits) <= 10 {
		return FormatPhone(s)
	}
	if digits[0] == '1' {
		digits = digits[1:]
	}
	return "+1-" + digits[:3] + "-" + digits[3:6] + "-" + digits[6:10]
}

// Website accepts the empty string (optional field) or anything starting
// with http:// or https://.
func Website(s string) bool {
	if s == "" {
		return true
	}
	return websiteRe.MatchString(s)
}

// SanitizeInput strips HTML tags, then entity-escapes the remainder.
// The ampersand is escaped first so entities introduced by later
// replacements are not double-escaped.
func SanitizeInput(s string) string {
	sanitized := tagRe.ReplaceAllString(s, "")
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
	return replacer.Replace(sanitized)
}
