package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/internal/models/request_models"
	"checkoutdash/internal/models/response_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/pkg/billingapi"
	"checkoutdash/pkg/clock"
	"checkoutdash/pkg/logger"
	"checkoutdash/pkg/metrics"
	"checkoutdash/pkg/utils"
)

// BillingGateway is the outbound billing API. *billingapi.Client
// satisfies it.
type BillingGateway interface {
	ChargeRenewal(ctx context.Context, req billingapi.RenewalChargeRequest) (*billingapi.Result, error)
	CancelSubscription(ctx context.Context, req billingapi.CancelRequest) (*billingapi.Result, error)
}

type LifecycleServiceInterface interface {
	Cancel(ctx context.Context, admin string, req request_models.CancelSubscriptionRequest) (*response_models.LifecycleResult, error)
	RenewalCharge(ctx context.Context, admin string, req request_models.RenewalChargeRequest) (*response_models.LifecycleResult, error)
	UpdateEndDate(ctx context.Context, admin string, req request_models.UpdateEndDateRequest) (*response_models.LifecycleResult, error)
}

type LifecycleOptions struct {
	DefaultAdmin  string
	CancelEnabled bool
}

type LifecycleService struct {
	comments      repositories.PaymentCommentRepository
	subscriptions repositories.SubscriptionRepository
	// billing is nil when no billing endpoint is configured.
	billing BillingGateway
	opts    LifecycleOptions
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewLifecycleService(
	comments repositories.PaymentCommentRepository,
	subscriptions repositories.SubscriptionRepository,
	billing BillingGateway,
	opts LifecycleOptions,
	clk clock.Clock,
	m *metrics.Metrics,
) LifecycleServiceInterface {
	if opts.DefaultAdmin == "" {
		opts.DefaultAdmin = "admin"
	}
	return &LifecycleService{
		comments:      comments,
		subscriptions: subscriptions,
		billing:       billing,
		opts:          opts,
		clock:         clk,
		metrics:       m,
	}
}

func (s *LifecycleService) Cancel(ctx context.Context, admin string, req request_models.CancelSubscriptionRequest) (*response_models.LifecycleResult, error) {
	if err := requireIdentifiers(req.SubscriptionID, req.ProductID, req.UserID); err != nil {
		return nil, err
	}
	if err := s.record(ctx, admin, req.ProductID, req.Comment, db_models.WorkTypeCancel); err != nil {
		return nil, err
	}

	if s.opts.CancelEnabled && s.billing != nil {
		_, err := s.billing.CancelSubscription(ctx, billingapi.CancelRequest{
			ProductID:     req.ProductID,
			UserID:        req.UserID,
			ProductName:   req.ProductName,
			CancelReason:  req.Comment,
			CancelledType: req.CancelledType,
		})
		if err != nil {
			logger.FromContext(ctx).Warn("billing cancel call failed",
				zap.Uint("subscription_id", req.SubscriptionID),
				zap.String("product_id", req.ProductID),
				zap.Error(err))
		}
	}

	s.metrics.LifecycleAction(string(db_models.WorkTypeCancel), "success")
	return &response_models.LifecycleResult{Message: "Subscription cancelled successfully"}, nil
}

// RenewalCharge records the audit comment and then asks the billing API to
// charge. A failed charge leaves the comment in place.
func (s *LifecycleService) RenewalCharge(ctx context.Context, admin string, req request_models.RenewalChargeRequest) (*response_models.LifecycleResult, error) {
	if err := requireIdentifiers(req.SubscriptionID, req.ProductID, req.UserID); err != nil {
		return nil, err
	}
	if err := s.record(ctx, admin, req.ProductID, req.Comment, db_models.WorkTypeRenewal); err != nil {
		return nil, err
	}

	if s.billing == nil {
		s.metrics.LifecycleAction(string(db_models.WorkTypeRenewal), "error")
		return nil, fmt.Errorf("%w: billing API is not configured", utils.ErrExternalServiceFailure)
	}
	res, err := s.billing.ChargeRenewal(ctx, billingapi.RenewalChargeRequest{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
	})
	if err != nil {
		s.metrics.LifecycleAction(string(db_models.WorkTypeRenewal), "error")
		return nil, err
	}

	s.metrics.LifecycleAction(string(db_models.WorkTypeRenewal), "success")
	return &response_models.LifecycleResult{Status: res.Status, Message: res.Message}, nil
}

func (s *LifecycleService) UpdateEndDate(ctx context.Context, admin string, req request_models.UpdateEndDateRequest) (*response_models.LifecycleResult, error) {
	if req.SubscriptionID == 0 {
		return nil, utils.NewFieldError("subscriptionId", "is required")
	}
	if strings.TrimSpace(req.NewEndDate) == "" {
		return nil, utils.NewFieldError("newEndDate", "is required")
	}
	newEnd, err := time.Parse(utils.DateLayout, strings.TrimSpace(req.NewEndDate))
	if err != nil {
		return nil, utils.NewFieldError("newEndDate", "must be a date in YYYY-MM-DD format")
	}

	sub, err := s.subscriptions.FindByID(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionNotFound
	}
	if sub.SubscriptionEndDate != nil && newEnd.Before(civilDate(*sub.SubscriptionEndDate)) {
		return nil, utils.NewFieldError("newEndDate", "must not be before the current end date")
	}

	productID := req.ProductID
	if productID == "" {
		productID = sub.ProductID
	}
	if err := s.record(ctx, admin, productID, req.Comment, db_models.WorkTypeUpdateEndDate); err != nil {
		return nil, err
	}
	if err := s.subscriptions.UpdateEndDate(ctx, req.SubscriptionID, newEnd); err != nil {
		s.metrics.LifecycleAction(string(db_models.WorkTypeUpdateEndDate), "error")
		return nil, err
	}

	s.metrics.LifecycleAction(string(db_models.WorkTypeUpdateEndDate), "success")
	return &response_models.LifecycleResult{Message: "Subscription end date updated successfully"}, nil
}

func (s *LifecycleService) record(ctx context.Context, admin, productID, comment string, workType db_models.WorkType) error {
	if admin == "" {
		admin = s.opts.DefaultAdmin
	}
	err := s.comments.Insert(ctx, &db_models.PaymentComment{
		ProductID: productID,
		Comment:   comment,
		AddedOn:   s.clock.Now().Unix(),
		AdminUser: admin,
		WorkType:  workType,
	})
	if err != nil {
		s.metrics.LifecycleAction(string(workType), "error")
	}
	return err
}

func requireIdentifiers(subscriptionID uint, productID, userID string) error {
	switch {
	case subscriptionID == 0:
		return utils.NewFieldError("subscriptionId", "is required")
	case strings.TrimSpace(productID) == "":
		return utils.NewFieldError("productId", "is required")
	case strings.TrimSpace(userID) == "":
		return utils.NewFieldError("userId", "is required")
	}
	return nil
}
