package response_models

// Option is a value/label pair for a filter dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type LanguageOption struct {
	Value        string `json:"value"`
	Label        string `json:"label"`
	CurrencyCode string `json:"currencyCode"`
	CurrencySign string `json:"currencySign"`
}

type CurrencyOption struct {
	Code string `json:"code"`
	Sign string `json:"sign"`
}

type FilterOptions struct {
	Products            []ProductOption  `json:"products"`
	Plans               []PlanOption     `json:"plans"`
	Addons              []PlanOption     `json:"addons"`
	SubscriptionTypes   []Option         `json:"subscriptionTypes"`
	PaymentModes        []Option         `json:"paymentModes"`
	PaymentSources      []Option         `json:"paymentSources"`
	SubscriptionPeriods []Option         `json:"subscriptionPeriods"`
	Languages           []LanguageOption `json:"languages"`
	ClaimedUsers        []Option         `json:"claimedUsers"`
	Currencies          []CurrencyOption `json:"currencies"`
}
