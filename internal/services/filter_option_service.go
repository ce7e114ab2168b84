package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"checkoutdash/internal/models/response_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/pkg/logger"
	mem "checkoutdash/pkg/memcache"
	"checkoutdash/pkg/metrics"
	"checkoutdash/pkg/utils"
)

const filterOptionsCacheKey = "filter-options:all"

type FilterOptionServiceInterface interface {
	All(ctx context.Context) (*response_models.FilterOptions, error)
	Products(ctx context.Context) ([]response_models.ProductOption, error)
	Addons(ctx context.Context) ([]response_models.PlanOption, error)
	SubscriptionTypes(ctx context.Context) ([]response_models.Option, error)
	PaymentModes(ctx context.Context) ([]response_models.Option, error)
	PaymentSources(ctx context.Context) ([]response_models.Option, error)
	SubscriptionPeriods(ctx context.Context) ([]response_models.Option, error)
	Languages(ctx context.Context) ([]response_models.LanguageOption, error)
	ClaimedUsers(ctx context.Context) ([]response_models.Option, error)
}

type FilterOptionService struct {
	paymentLogs repositories.PaymentLogRepository
	catalog     repositories.CatalogRepository
	cache       mem.Store
	ttl         time.Duration
	metrics     *metrics.Metrics
}

func NewFilterOptionService(
	paymentLogs repositories.PaymentLogRepository,
	catalog repositories.CatalogRepository,
	cache mem.Store,
	ttl time.Duration,
	m *metrics.Metrics,
) FilterOptionServiceInterface {
	return &FilterOptionService{
		paymentLogs: paymentLogs,
		catalog:     catalog,
		cache:       cache,
		ttl:         ttl,
		metrics:     m,
	}
}

// All returns every dropdown list. The aggregate is cached; any cache
// failure falls through to the database.
func (s *FilterOptionService) All(ctx context.Context) (*response_models.FilterOptions, error) {
	log := logger.FromContext(ctx)

	if s.cache != nil && s.ttl > 0 {
		raw, ok, err := s.cache.Get(ctx, filterOptionsCacheKey)
		switch {
		case err != nil:
			s.metrics.CacheLookup("error")
			log.Warn("filter option cache read failed", zap.Error(err))
		case ok:
			var cached response_models.FilterOptions
			if err := json.Unmarshal(raw, &cached); err == nil {
				s.metrics.CacheLookup("hit")
				return &cached, nil
			}
			s.metrics.CacheLookup("error")
		default:
			s.metrics.CacheLookup("miss")
		}
	}

	opts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		if raw, err := json.Marshal(opts); err == nil {
			if err := s.cache.Set(ctx, filterOptionsCacheKey, raw, s.ttl); err != nil {
				log.Warn("filter option cache write failed", zap.Error(err))
			}
		}
	}
	return opts, nil
}

func (s *FilterOptionService) load(ctx context.Context) (*response_models.FilterOptions, error) {
	var (
		opts response_models.FilterOptions
		err  error
	)
	if opts.Products, err = s.Products(ctx); err != nil {
		return nil, err
	}
	if opts.Plans, err = s.plans(ctx); err != nil {
		return nil, err
	}
	if opts.Addons, err = s.addons(ctx, true); err != nil {
		return nil, err
	}
	if opts.SubscriptionTypes, err = s.SubscriptionTypes(ctx); err != nil {
		return nil, err
	}
	if opts.PaymentModes, err = s.PaymentModes(ctx); err != nil {
		return nil, err
	}
	if opts.PaymentSources, err = s.PaymentSources(ctx); err != nil {
		return nil, err
	}
	if opts.SubscriptionPeriods, err = s.SubscriptionPeriods(ctx); err != nil {
		return nil, err
	}
	if opts.ClaimedUsers, err = s.ClaimedUsers(ctx); err != nil {
		return nil, err
	}

	countries, err := s.catalog.ActiveCountries(ctx)
	if err != nil {
		return nil, err
	}
	used, err := s.paymentLogs.DistinctValues(ctx, "payment_country")
	if err != nil {
		return nil, err
	}
	opts.Languages = usedLanguages(used, countries)
	opts.Currencies = currencies(countries)

	return &opts, nil
}

func (s *FilterOptionService) Products(ctx context.Context) ([]response_models.ProductOption, error) {
	products, err := s.catalog.ActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]response_models.ProductOption, 0, len(products))
	for _, p := range products {
		out = append(out, response_models.ProductOption{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

func (s *FilterOptionService) plans(ctx context.Context) ([]response_models.PlanOption, error) {
	plans, err := s.catalog.ActivePlans(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]response_models.PlanOption, 0, len(plans))
	for _, p := range plans {
		out = append(out, response_models.PlanOption{ID: p.ID, Name: p.PlanName, Identifier: p.Identifier, ProductName: p.ProductName})
	}
	return out, nil
}

func (s *FilterOptionService) Addons(ctx context.Context) ([]response_models.PlanOption, error) {
	return s.addons(ctx, false)
}

// addons lists the addon plans, falling back to the addon types seen in
// payment logs when the addon table is empty.
func (s *FilterOptionService) addons(ctx context.Context, detailed bool) ([]response_models.PlanOption, error) {
	plans, err := s.catalog.ActiveAddonPlans(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]response_models.PlanOption, 0, len(plans))
	for _, p := range plans {
		opt := response_models.PlanOption{ID: p.ID, Name: p.PlanName}
		if detailed {
			opt.Identifier, opt.ProductName = p.Identifier, p.ProductName
		}
		out = append(out, opt)
	}
	if len(out) > 0 {
		return out, nil
	}

	types, err := s.paymentLogs.DistinctValues(ctx, "addon_type")
	if err != nil {
		return nil, err
	}
	for i, t := range types {
		out = append(out, response_models.PlanOption{ID: uint(i + 1), Name: t})
	}
	return out, nil
}

func (s *FilterOptionService) SubscriptionTypes(ctx context.Context) ([]response_models.Option, error) {
	terms, err := s.paymentLogs.DistinctTerms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]response_models.Option, 0, len(terms))
	for _, term := range terms {
		value, label := utils.TermValue(term), utils.TermLabel(term)
		if value == "" {
			value = strconv.Itoa(term)
		}
		if label == "" {
			label = "Type " + strconv.Itoa(term)
		}
		out = append(out, response_models.Option{Value: value, Label: label})
	}
	return out, nil
}

func (s *FilterOptionService) PaymentModes(ctx context.Context) ([]response_models.Option, error) {
	return s.labelled(ctx, "payment_method", utils.FormatLabel)
}

func (s *FilterOptionService) PaymentSources(ctx context.Context) ([]response_models.Option, error) {
	return s.labelled(ctx, "payment_source", utils.FormatLabel)
}

func (s *FilterOptionService) SubscriptionPeriods(ctx context.Context) ([]response_models.Option, error) {
	periods, err := s.catalog.ActivePricingPeriods(ctx)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return s.labelled(ctx, "subscription_period", utils.FormatPeriodLabel)
	}
	return toOptions(periods, utils.FormatPeriodLabel), nil
}

func (s *FilterOptionService) ClaimedUsers(ctx context.Context) ([]response_models.Option, error) {
	users, err := s.paymentLogs.DistinctValues(ctx, "claim_user")
	if err != nil {
		return nil, err
	}
	out := []response_models.Option{
		{Value: "claimed", Label: "All Claimed"},
		{Value: "unclaimed", Label: "Unclaimed"},
	}
	for _, u := range users {
		out = append(out, response_models.Option{Value: u, Label: u})
	}
	return out, nil
}

// Languages lists every active country with its currency.
func (s *FilterOptionService) Languages(ctx context.Context) ([]response_models.LanguageOption, error) {
	countries, err := s.catalog.ActiveCountries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]response_models.LanguageOption, 0, len(countries))
	for _, c := range countries {
		out = append(out, response_models.LanguageOption{
			Value:        c.Country,
			Label:        utils.CountryName(c.Country) + " (" + c.CurrencyCode + ")",
			CurrencyCode: c.CurrencyCode,
			CurrencySign: c.CurrencySign,
		})
	}
	return out, nil
}

func (s *FilterOptionService) labelled(ctx context.Context, column string, label func(string) string) ([]response_models.Option, error) {
	values, err := s.paymentLogs.DistinctValues(ctx, column)
	if err != nil {
		return nil, err
	}
	return toOptions(values, label), nil
}

func toOptions(values []string, label func(string) string) []response_models.Option {
	out := make([]response_models.Option, 0, len(values))
	for _, v := range values {
		out = append(out, response_models.Option{Value: v, Label: label(v)})
	}
	return out
}
