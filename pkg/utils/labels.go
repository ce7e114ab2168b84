package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	TermNew     = 1
	TermRenewal = 2
	TermUpgrade = 3
)

// subscriptionTypeTerms maps the subscriptionType filter onto the stored
// term classifier. "trial" and "new" share a code.
var subscriptionTypeTerms = map[string]int{
	"new":     TermNew,
	"trial":   TermNew,
	"renewal": TermRenewal,
	"upgrade": TermUpgrade,
}

var termLabels = map[int]string{
	TermNew:     "New",
	TermRenewal: "Renewal",
	TermUpgrade: "Upgrade",
}

var termValues = map[int]string{
	TermNew:     "new",
	TermRenewal: "renewal",
	TermUpgrade: "upgrade",
}

// TermForSubscriptionType resolves a filter value case-insensitively.
func TermForSubscriptionType(value string) (int, bool) {
	term, ok := subscriptionTypeTerms[strings.ToLower(strings.TrimSpace(value))]
	return term, ok
}

// TermLabel returns the display label for a classifier code, or "" when the
// code is not one of the known terms.
func TermLabel(term int) string {
	return termLabels[term]
}

func TermValue(term int) string {
	return termValues[term]
}

var specialLabels = map[string]string{
	"ios":           "iOS",
	"android":       "Android",
	"web":           "Web",
	"paypal":        "PayPal",
	"stripe":        "Stripe",
	"razorpay":      "Razorpay",
	"ccavenue":      "CCAvenue",
	"ebanx":         "Ebanx",
	"InApp-iOS":     "In-App (iOS)",
	"InApp-Android": "In-App (Android)",
	"app":           "App",
	"Manual":        "Manual",
	"manually":      "Manual",
}

var periodLabels = map[string]string{
	"monthly":     "Monthly",
	"yearly":      "Yearly",
	"oneTime":     "One Time",
	"lifetime":    "Lifetime",
	"quarterly":   "Quarterly",
	"half-yearly": "Half Yearly",
	"weekly":      "Weekly",
}

// FormatLabel renders payment modes and sources for filter dropdowns.
func FormatLabel(value string) string {
	if value == "" {
		return ""
	}
	if label, ok := specialLabels[value]; ok {
		return label
	}
	return upperFirst(value)
}

func FormatPeriodLabel(value string) string {
	if value == "" {
		return ""
	}
	if label, ok := periodLabels[value]; ok {
		return label
	}
	return upperFirst(value)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

var countryNames = map[string]string{
	"ae": "United Arab Emirates", "ar": "Argentina", "at": "Austria", "au": "Australia",
	"as": "American Samoa", "be": "Belgium", "br": "Brazil", "ca": "Canada", "ch": "Switzerland",
	"cl": "Chile", "cn": "China", "co": "Colombia", "de": "Germany", "dk": "Denmark",
	"es": "Spain", "fi": "Finland", "fr": "France", "gb": "United Kingdom", "gr": "Greece",
	"hk": "Hong Kong", "id": "Indonesia", "ie": "Ireland", "il": "Israel", "in": "India",
	"it": "Italy", "jp": "Japan", "kr": "South Korea", "mx": "Mexico", "my": "Malaysia",
	"nl": "Netherlands", "no": "Norway", "nz": "New Zealand", "pe": "Peru", "ph": "Philippines",
	"pk": "Pakistan", "pl": "Poland", "pt": "Portugal", "ro": "Romania", "ru": "Russia",
	"sa": "Saudi Arabia", "se": "Sweden", "sg": "Singapore", "th": "Thailand", "tr": "Turkey",
	"tw": "Taiwan", "ua": "Ukraine", "us": "United States", "vn": "Vietnam", "za": "South Africa",
}

// CountryName resolves a two-letter country code; unknown codes are
// returned upper-cased.
func CountryName(code string) string {
	if name, ok := countryNames[strings.ToLower(code)]; ok {
		return name
	}
	return strings.ToUpper(code)
}
