package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/memberhub/memberhub/internal/app/service/affiliate"
	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
	"github.com/memberhub/memberhub/pkg/apperr"
	"github.com/memberhub/memberhub/pkg/logctx"
	"github.com/memberhub/memberhub/pkg/types"
)

// Service implements the subscription lifecycle. The billing period is
// descriptive only: nothing here expires a subscription when the period
// lapses, and GetActive matches on status alone.
type Service struct {
	subs       contract.SubscriptionRepository
	users      contract.UserRepository
	levels     contract.MembershipLevelRepository
	affiliates *affiliate.Service
	log        *zap.SugaredLogger
	now        func() time.Time
}

func NewService(
	subs contract.SubscriptionRepository,
	users contract.UserRepository,
	levels contract.MembershipLevelRepository,
	affiliates *affiliate.Service,
	log *zap.SugaredLogger,
) *Service {
	return &Service{
		subs:       subs,
		users:      users,
		levels:     levels,
		affiliates: affiliates,
		log:        log,
		now:        time.Now,
	}
}

type CreateRequest struct {
	UserID                 uint            `json:"user_id"`
	MembershipLevelID      uint            `json:"membership_level_id"`
	ProviderSubscriptionID *string         `json:"provider_subscription_id"`
	Amount                 decimal.Decimal `json:"amount"`
	Currency               string          `json:"currency"`
	AffiliateID            *uint           `json:"affiliate_id"`
}

// Create opens an active subscription whose first period runs from now for the
// level's duration. The subscription is priced at the caller-supplied amount,
// persisted exactly; a zero amount means "charge the list price" and falls
// back to the level's current price. Precondition order: user, then level,
// then the affiliate when one is supplied.
//
// When an affiliate is attributed, a pending referral is recorded with
// commission = amount x the affiliate's rate, rounded to cents. The
// subscription insert and the referral insert are separate writes; a crash in
// between leaves a subscription with no referral, which the reconciliation
// job in the billing provider is expected to repair.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*models.Subscription, error) {
	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	level, err := s.levels.FindByID(ctx, req.MembershipLevelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load membership level: %w", err)
	}
	if level == nil {
		return nil, apperr.NotFound("membership level")
	}
	var attributed *models.Affiliate
	if req.AffiliateID != nil {
		attributed, err = s.affiliates.RequireAffiliate(ctx, *req.AffiliateID)
		if err != nil {
			return nil, err
		}
	}

	amount := req.Amount
	if amount.IsNegative() {
		return nil, apperr.Validation("amount must not be negative")
	}
	if amount.IsZero() {
		amount = level.Price
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	start := s.now()
	sub := &models.Subscription{
		UserID:                 req.UserID,
		MembershipLevelID:      req.MembershipLevelID,
		ProviderSubscriptionID: req.ProviderSubscriptionID,
		Status:                 types.SubscriptionStatusActive,
		CurrentPeriodStart:     start,
		CurrentPeriodEnd:       start.AddDate(0, 0, level.DurationDays),
		Amount:                 amount,
		Currency:               currency,
		AffiliateID:            req.AffiliateID,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if attributed != nil {
		commission := sub.Amount.Mul(attributed.CommissionRate).Round(2)
		if _, err := s.affiliates.CreateReferral(ctx, &affiliate.CreateReferralRequest{
			AffiliateID:      attributed.ID,
			ReferredUserID:   req.UserID,
			SubscriptionID:   &sub.ID,
			CommissionAmount: commission,
		}); err != nil {
			return nil, fmt.Errorf("failed to record referral: %w", err)
		}
	}
	logctx.FromCtx(ctx, s.log).Infow("subscription_created",
		"subscription_id", sub.ID, "user_id", req.UserID, "level_id", req.MembershipLevelID,
		"amount", sub.Amount.String(), "affiliate_id", req.AffiliateID)
	return sub, nil
}

func (s *Service) RequireSubscription(ctx context.Context, id uint) (*models.Subscription, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil {
		return nil, apperr.NotFound("subscription")
	}
	return sub, nil
}

func (s *Service) GetSubscription(ctx context.Context, id uint) (*models.Subscription, error) {
	return s.RequireSubscription(ctx, id)
}

// Cancel marks the subscription cancelled. The period dates are left as they
// are, so access granted through a separate membership window is unaffected.
// Cancelling an already-cancelled subscription is a no-op that succeeds.
func (s *Service) Cancel(ctx context.Context, id uint) (*models.Subscription, error) {
	sub, err := s.RequireSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.Status = types.SubscriptionStatusCancelled
	sub.UpdatedAt = s.now()
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("subscription_cancelled", "subscription_id", id)
	return sub, nil
}

// UpdateStatus overwrites the status unconditionally. Billing webhooks may
// replay or arrive out of order, so no transition matrix is enforced.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status types.SubscriptionStatus) (*models.Subscription, error) {
	if !status.Valid() {
		return nil, apperr.Validation("invalid subscription status")
	}
	sub, err := s.RequireSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.Status = status
	sub.UpdatedAt = s.now()
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to update subscription status: %w", err)
	}
	return sub, nil
}

// Renew starts a fresh period from now using the level's current duration and
// forces the status back to active, whatever it was. The amount is not
// repriced; the subscription keeps what it was sold at.
func (s *Service) Renew(ctx context.Context, id uint) (*models.Subscription, error) {
	sub, err := s.RequireSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	level, err := s.levels.FindByID(ctx, sub.MembershipLevelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load membership level: %w", err)
	}
	if level == nil {
		return nil, apperr.NotFound("membership level")
	}
	start := s.now()
	sub.CurrentPeriodStart = start
	sub.CurrentPeriodEnd = start.AddDate(0, 0, level.DurationDays)
	sub.Status = types.SubscriptionStatusActive
	sub.UpdatedAt = start
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to renew subscription: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("subscription_renewed", "subscription_id", id, "period_end", sub.CurrentPeriodEnd)
	return sub, nil
}

// GetActive returns the user's active-status subscription or nil. Status is
// the sole criterion: renewal webhooks can land late, and cutting access on
// the period boundary would punish the customer for provider lag.
func (s *Service) GetActive(ctx context.Context, userID uint) (*models.Subscription, error) {
	sub, err := s.subs.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active subscription: %w", err)
	}
	return sub, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uint) ([]*models.Subscription, error) {
	return s.subs.ListByUser(ctx, userID)
}

// List serves the admin listing with filters and pagination.
func (s *Service) List(ctx context.Context, req *contract.ListSubscriptionsRequest) ([]*models.Subscription, int64, error) {
	return s.subs.List(ctx, req)
}
