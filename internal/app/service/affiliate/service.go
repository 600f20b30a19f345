package affiliate

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
	"github.com/memberhub/memberhub/pkg/apperr"
	"github.com/memberhub/memberhub/pkg/logctx"
	"github.com/memberhub/memberhub/pkg/tool"
	"github.com/memberhub/memberhub/pkg/types"
)

// Service implements the affiliate program rules: enrollment, referral
// workflow, commission aggregation and the payout state machine.
//
// Precondition reads and the writes that follow them are not wrapped in a
// transaction; a conflicting write in between is an accepted race.
type Service struct {
	affiliates contract.AffiliateRepository
	referrals  contract.ReferralRepository
	payouts    contract.PayoutRepository
	users      contract.UserRepository
	subs       contract.SubscriptionRepository
	log        *zap.SugaredLogger
	now        func() time.Time
}

func NewService(
	affiliates contract.AffiliateRepository,
	referrals contract.ReferralRepository,
	payouts contract.PayoutRepository,
	users contract.UserRepository,
	subs contract.SubscriptionRepository,
	log *zap.SugaredLogger,
) *Service {
	return &Service{
		affiliates: affiliates,
		referrals:  referrals,
		payouts:    payouts,
		users:      users,
		subs:       subs,
		log:        log,
		now:        time.Now,
	}
}

type CreateAffiliateRequest struct {
	UserID         uint            `json:"user_id"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	IsActive       bool            `json:"is_active"`
}

// CreateAffiliate enrolls a user. Nothing prevents enrolling the same user
// twice; each call issues a fresh tracking code.
func (s *Service) CreateAffiliate(ctx context.Context, req *CreateAffiliateRequest) (*models.Affiliate, error) {
	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	if req.CommissionRate.IsNegative() || req.CommissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, apperr.Validation("commission rate must be between 0 and 1")
	}

	a := &models.Affiliate{
		UserID:         req.UserID,
		Code:           tool.GenerateTrackingCode(req.UserID, s.now()),
		CommissionRate: req.CommissionRate,
		TotalEarnings:  decimal.Zero,
		TotalReferrals: 0,
		IsActive:       req.IsActive,
	}
	if err := s.affiliates.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create affiliate: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("affiliate_created", "affiliate_id", a.ID, "user_id", req.UserID, "code", a.Code)
	return a, nil
}

func (s *Service) RequireAffiliate(ctx context.Context, id uint) (*models.Affiliate, error) {
	a, err := s.affiliates.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load affiliate: %w", err)
	}
	if a == nil {
		return nil, apperr.NotFound("affiliate")
	}
	return a, nil
}

func (s *Service) GetAffiliate(ctx context.Context, id uint) (*models.Affiliate, error) {
	return s.RequireAffiliate(ctx, id)
}

func (s *Service) GetAffiliateByCode(ctx context.Context, code string) (*models.Affiliate, error) {
	a, err := s.affiliates.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load affiliate: %w", err)
	}
	if a == nil {
		return nil, apperr.NotFound("affiliate")
	}
	return a, nil
}

func (s *Service) ListAffiliates(ctx context.Context) ([]*models.Affiliate, error) {
	return s.affiliates.List(ctx)
}

type CreateReferralRequest struct {
	AffiliateID      uint            `json:"affiliate_id"`
	ReferredUserID   uint            `json:"referred_user_id"`
	SubscriptionID   *uint           `json:"subscription_id"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
}

// CreateReferral records a referred user's action. Precondition order:
// affiliate, referred user, then the subscription when supplied; each failure
// carries its own entity name.
func (s *Service) CreateReferral(ctx context.Context, req *CreateReferralRequest) (*models.AffiliateReferral, error) {
	affiliate, err := s.RequireAffiliate(ctx, req.AffiliateID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, req.ReferredUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load referred user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("referred user")
	}
	if req.SubscriptionID != nil {
		sub, err := s.subs.FindByID(ctx, *req.SubscriptionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load subscription: %w", err)
		}
		if sub == nil {
			return nil, apperr.NotFound("subscription")
		}
	}

	r := &models.AffiliateReferral{
		AffiliateID:      req.AffiliateID,
		ReferredUserID:   req.ReferredUserID,
		SubscriptionID:   req.SubscriptionID,
		CommissionAmount: req.CommissionAmount,
		Status:           types.ReferralStatusPending,
	}
	if err := s.referrals.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}

	affiliate.TotalReferrals++
	affiliate.UpdatedAt = s.now()
	if err := s.affiliates.Update(ctx, affiliate); err != nil {
		return nil, fmt.Errorf("failed to update affiliate referral count: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("referral_created", "referral_id", r.ID, "affiliate_id", req.AffiliateID)
	return r, nil
}

// UpdateReferralStatus overwrites the status unconditionally; illegal
// transitions are allowed for webhook-driven correction.
func (s *Service) UpdateReferralStatus(ctx context.Context, id uint, status types.ReferralStatus) (*models.AffiliateReferral, error) {
	if !status.Valid() {
		return nil, apperr.Validation("invalid referral status")
	}
	r, err := s.referrals.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load referral: %w", err)
	}
	if r == nil {
		return nil, apperr.NotFound("referral")
	}
	r.Status = status
	r.UpdatedAt = s.now()
	if err := s.referrals.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update referral: %w", err)
	}
	return r, nil
}

// ApproveReferral moves a referral from pending to approved and credits the
// commission to the affiliate's cumulative earnings. A referral in any other
// status fails the same way as a missing one, so approving twice fails the
// second time.
func (s *Service) ApproveReferral(ctx context.Context, id uint) (*models.AffiliateReferral, error) {
	r, err := s.referrals.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load referral: %w", err)
	}
	if r == nil || r.Status != types.ReferralStatusPending {
		return nil, apperr.NotFound("pending referral")
	}
	r.Status = types.ReferralStatusApproved
	r.UpdatedAt = s.now()
	if err := s.referrals.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to approve referral: %w", err)
	}

	affiliate, err := s.affiliates.FindByID(ctx, r.AffiliateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load affiliate: %w", err)
	}
	if affiliate != nil {
		affiliate.TotalEarnings = affiliate.TotalEarnings.Add(r.CommissionAmount)
		affiliate.UpdatedAt = s.now()
		if err := s.affiliates.Update(ctx, affiliate); err != nil {
			return nil, fmt.Errorf("failed to update affiliate earnings: %w", err)
		}
	}
	logctx.FromCtx(ctx, s.log).Infow("referral_approved", "referral_id", id, "affiliate_id", r.AffiliateID)
	return r, nil
}

func (s *Service) ListReferrals(ctx context.Context, affiliateID uint) ([]*models.AffiliateReferral, error) {
	return s.referrals.ListByAffiliate(ctx, affiliateID)
}

// CalculateEarnings sums commission over approved referrals. A nonexistent
// affiliate id yields zero rather than an error.
func (s *Service) CalculateEarnings(ctx context.Context, affiliateID uint) (decimal.Decimal, error) {
	total, err := s.referrals.SumCommissionByStatus(ctx, affiliateID, types.ReferralStatusApproved)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved commissions: %w", err)
	}
	return total, nil
}

type CreatePayoutRequest struct {
	AffiliateID uint            `json:"affiliate_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Details     *string         `json:"details"`
}

func (s *Service) CreatePayout(ctx context.Context, req *CreatePayoutRequest) (*models.AffiliatePayout, error) {
	if _, err := s.RequireAffiliate(ctx, req.AffiliateID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperr.Validation("payout amount must be positive")
	}
	p := &models.AffiliatePayout{
		AffiliateID: req.AffiliateID,
		Amount:      req.Amount,
		Status:      types.PayoutStatusPending,
		Method:      req.Method,
		Details:     req.Details,
	}
	if err := s.payouts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create payout: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("payout_created", "payout_id", p.ID, "affiliate_id", req.AffiliateID)
	return p, nil
}

// ProcessPayout unconditionally moves the payout to processing and stamps
// processed_at.
func (s *Service) ProcessPayout(ctx context.Context, id uint) (*models.AffiliatePayout, error) {
	p, err := s.payouts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payout: %w", err)
	}
	if p == nil {
		return nil, apperr.NotFound("payout")
	}
	p.Status = types.PayoutStatusProcessing
	now := s.now()
	p.ProcessedAt = &now
	if err := s.payouts.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to process payout: %w", err)
	}
	return p, nil
}

// UpdatePayoutStatus accepts any target status. processed_at is stamped only
// when moving to completed or failed through this path; pending/processing
// transitions leave it untouched, unlike ProcessPayout. The stamp is never
// unset.
func (s *Service) UpdatePayoutStatus(ctx context.Context, id uint, status types.PayoutStatus) (*models.AffiliatePayout, error) {
	if !status.Valid() {
		return nil, apperr.Validation("invalid payout status")
	}
	p, err := s.payouts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payout: %w", err)
	}
	if p == nil {
		return nil, apperr.NotFound("payout")
	}
	p.Status = status
	if status.Final() {
		now := s.now()
		p.ProcessedAt = &now
	}
	if err := s.payouts.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update payout: %w", err)
	}
	return p, nil
}

func (s *Service) ListPayouts(ctx context.Context, affiliateID *uint) ([]*models.AffiliatePayout, error) {
	return s.payouts.List(ctx, affiliateID)
}
