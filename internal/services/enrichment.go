package services

import (
	"context"

	"go.uber.org/zap"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/internal/models/response_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/pkg/logger"
)

// Enricher attaches billing contact details to payment-log rows.
type Enricher struct {
	billing repositories.BillingAddressRepository
	domain  string
}

func NewEnricher(billing repositories.BillingAddressRepository, placeholderDomain string) *Enricher {
	return &Enricher{billing: billing, domain: placeholderDomain}
}

func (e *Enricher) PlaceholderEmail(userID string) string {
	return "user" + userID + "@" + e.domain
}

type billingKey struct {
	userID    string
	productID string
}

// Enrich sets email and customer_name on every row. Lookup failures are
// logged and the rows keep placeholder values.
func (e *Enricher) Enrich(ctx context.Context, rows []response_models.PaymentLogRow) {
	seen := make(map[string]struct{}, len(rows))
	userIDs := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		userIDs = append(userIDs, r.UserID)
	}

	byKey := map[billingKey]db_models.BillingAddress{}
	if len(userIDs) > 0 {
		addrs, err := e.billing.FindByUserIDs(ctx, userIDs)
		if err != nil {
			logger.FromContext(ctx).Warn("billing address lookup failed, using placeholders",
				zap.Int("users", len(userIDs)), zap.Error(err))
		}
		for _, a := range addrs {
			k := billingKey{a.UserID, a.ProductID}
			if _, ok := byKey[k]; !ok {
				byKey[k] = a
			}
		}
	}

	for i := range rows {
		addr, ok := byKey[billingKey{rows[i].UserID, rows[i].AppID}]
		rows[i].Email, rows[i].CustomerName = e.contact(rows[i].UserID, addr, ok)
	}
}

// Lookup resolves the contact for a single user and product.
func (e *Enricher) Lookup(ctx context.Context, userID, productID string) (string, *string) {
	addr, err := e.billing.FindOne(ctx, userID, productID)
	if err != nil {
		logger.FromContext(ctx).Warn("billing address lookup failed, using placeholder",
			zap.String("user_id", userID), zap.Error(err))
	}
	if addr == nil {
		return e.contact(userID, db_models.BillingAddress{}, false)
	}
	return e.contact(userID, *addr, true)
}

func (e *Enricher) contact(userID string, addr db_models.BillingAddress, found bool) (string, *string) {
	email := e.PlaceholderEmail(userID)
	if !found {
		return email, nil
	}
	if addr.Email != "" {
		email = addr.Email
	}
	if name, ok := addr.FullName(); ok {
		return email, &name
	}
	return email, nil
}
