package services

import (
	"strings"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/internal/models/response_models"
	"checkoutdash/pkg/utils"
)

// usedLanguages labels the country codes seen in payment logs, attaching
// currency details from the country table when the code is known there.
func usedLanguages(codes []string, countries []db_models.Country) []response_models.LanguageOption {
	byCode := make(map[string]db_models.Country, len(countries))
	for _, c := range countries {
		byCode[strings.ToLower(c.Country)] = c
	}

	out := make([]response_models.LanguageOption, 0, len(codes))
	for _, code := range codes {
		opt := response_models.LanguageOption{Value: code, Label: utils.CountryName(code)}
		if c, ok := byCode[strings.ToLower(code)]; ok && c.CurrencyCode != "" {
			opt.Label += " (" + c.CurrencyCode + ")"
			opt.CurrencyCode = c.CurrencyCode
			opt.CurrencySign = c.CurrencySign
		}
		out = append(out, opt)
	}
	return out
}

// currencies returns each currency once, in country order, with the sign of
// the first country that uses it.
func currencies(countries []db_models.Country) []response_models.CurrencyOption {
	seen := map[string]bool{}
	out := []response_models.CurrencyOption{}
	for _, c := range countries {
		if seen[c.CurrencyCode] {
			continue
		}
		seen[c.CurrencyCode] = true
		out = append(out, response_models.CurrencyOption{Code: c.CurrencyCode, Sign: c.CurrencySign})
	}
	return out
}
