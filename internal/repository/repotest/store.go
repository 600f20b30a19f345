// Package repotest provides in-memory repository implementations for
// service-level tests. A single Store backs every contract so cross-entity
// scenarios (referrals touching affiliates, analytics over subscriptions)
// see one consistent dataset.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
	"github.com/memberhub/memberhub/pkg/types"
)

type Store struct {
	mu sync.Mutex

	users         map[uint]models.User
	levels        map[uint]models.MembershipLevel
	memberships   map[uint]models.UserMembership
	content       map[uint]models.Content
	subscriptions map[uint]models.Subscription
	affiliates    map[uint]models.Affiliate
	referrals     map[uint]models.AffiliateReferral
	payouts       map[uint]models.AffiliatePayout

	nextID uint

	// Now anchors CreatedAt stamps; tests may freeze it.
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:         map[uint]models.User{},
		levels:        map[uint]models.MembershipLevel{},
		memberships:   map[uint]models.UserMembership{},
		content:       map[uint]models.Content{},
		subscriptions: map[uint]models.Subscription{},
		affiliates:    map[uint]models.Affiliate{},
		referrals:     map[uint]models.AffiliateReferral{},
		payouts:       map[uint]models.AffiliatePayout{},
		Now:           time.Now,
	}
}

func (s *Store) nextid() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) Users() contract.UserRepository                 { return userRepo{s} }
func (s *Store) Levels() contract.MembershipLevelRepository     { return levelRepo{s} }
func (s *Store) Memberships() contract.UserMembershipRepository { return membershipRepo{s} }
func (s *Store) Content() contract.ContentRepository            { return contentRepo{s} }
func (s *Store) Subscriptions() contract.SubscriptionRepository { return subscriptionRepo{s} }
func (s *Store) Affiliates() contract.AffiliateRepository       { return affiliateRepo{s} }
func (s *Store) Referrals() contract.ReferralRepository         { return referralRepo{s} }
func (s *Store) Payouts() contract.PayoutRepository             { return payoutRepo{s} }
func (s *Store) Analytics() contract.AnalyticsRepository        { return analyticsRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.s.nextid()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.s.Now()
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) Update(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) List(_ context.Context) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type levelRepo struct{ s *Store }

func (r levelRepo) Create(_ context.Context, l *models.MembershipLevel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == 0 {
		l.ID = r.s.nextid()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = r.s.Now()
	}
	r.s.levels[l.ID] = *l
	return nil
}

func (r levelRepo) Update(_ context.Context, l *models.MembershipLevel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.levels[l.ID] = *l
	return nil
}

func (r levelRepo) FindByID(_ context.Context, id uint) (*models.MembershipLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.levels[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r levelRepo) List(_ context.Context, activeOnly bool) ([]*models.MembershipLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.MembershipLevel, 0, len(r.s.levels))
	for _, l := range r.s.levels {
		if activeOnly && !l.IsActive {
			continue
		}
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type membershipRepo struct{ s *Store }

func (r membershipRepo) Create(_ context.Context, m *models.UserMembership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == 0 {
		m.ID = r.s.nextid()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.s.Now()
	}
	r.s.memberships[m.ID] = *m
	return nil
}

func (r membershipRepo) Update(_ context.Context, m *models.UserMembership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.memberships[m.ID] = *m
	return nil
}

func (r membershipRepo) FindByID(_ context.Context, id uint) (*models.UserMembership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.memberships[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r membershipRepo) FindActiveByUser(_ context.Context, userID uint, at time.Time) ([]*models.UserMembership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.UserMembership
	for _, m := range r.s.memberships {
		if m.UserID != userID {
			continue
		}
		m := m
		if m.ActiveAt(at) {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r membershipRepo) ListByUser(_ context.Context, userID uint) ([]*models.UserMembership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.UserMembership
	for _, m := range r.s.memberships {
		if m.UserID == userID {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type contentRepo struct{ s *Store }

func (r contentRepo) Create(_ context.Context, c *models.Content) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.s.nextid()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.s.Now()
	}
	r.s.content[c.ID] = *c
	return nil
}

func (r contentRepo) Update(_ context.Context, c *models.Content) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.content[c.ID] = *c
	return nil
}

func (r contentRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.content, id)
	return nil
}

func (r contentRepo) FindByID(_ context.Context, id uint) (*models.Content, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.content[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r contentRepo) ListVisible(_ context.Context, activeLevelID *uint) ([]*models.Content, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Content
	for _, c := range r.s.content {
		c := c
		if c.VisibleTo(activeLevelID) {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r contentRepo) ListAll(_ context.Context) ([]*models.Content, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Content, 0, len(r.s.content))
	for _, c := range r.s.content {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type subscriptionRepo struct{ s *Store }

func (r subscriptionRepo) Create(_ context.Context, sub *models.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sub.ID == 0 {
		sub.ID = r.s.nextid()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = r.s.Now()
	}
	r.s.subscriptions[sub.ID] = *sub
	return nil
}

func (r subscriptionRepo) Update(_ context.Context, sub *models.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.subscriptions[sub.ID] = *sub
	return nil
}

func (r subscriptionRepo) FindByID(_ context.Context, id uint) (*models.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sub, ok := r.s.subscriptions[id]; ok {
		return &sub, nil
	}
	return nil, nil
}

func (r subscriptionRepo) FindActiveByUser(_ context.Context, userID uint) (*models.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var best *models.Subscription
	for _, sub := range r.s.subscriptions {
		if sub.UserID != userID || sub.Status != types.SubscriptionStatusActive {
			continue
		}
		sub := sub
		if best == nil || sub.ID > best.ID {
			best = &sub
		}
	}
	return best, nil
}

func (r subscriptionRepo) ListByUser(_ context.Context, userID uint) ([]*models.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Subscription
	for _, sub := range r.s.subscriptions {
		if sub.UserID == userID {
			sub := sub
			out = append(out, &sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r subscriptionRepo) List(_ context.Context, req *contract.ListSubscriptionsRequest) ([]*models.Subscription, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Subscription, 0, len(r.s.subscriptions))
	for _, sub := range r.s.subscriptions {
		sub := sub
		out = append(out, &sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if req.From >= len(out) {
		return nil, total, nil
	}
	out = out[req.From:]
	if req.Size > 0 && req.Size < len(out) {
		out = out[:req.Size]
	}
	return out, total, nil
}

type affiliateRepo struct{ s *Store }

func (r affiliateRepo) Create(_ context.Context, a *models.Affiliate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == 0 {
		a.ID = r.s.nextid()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.s.Now()
	}
	r.s.affiliates[a.ID] = *a
	return nil
}

func (r affiliateRepo) Update(_ context.Context, a *models.Affiliate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.affiliates[a.ID] = *a
	return nil
}

func (r affiliateRepo) FindByID(_ context.Context, id uint) (*models.Affiliate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.affiliates[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r affiliateRepo) FindByCode(_ context.Context, code string) (*models.Affiliate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.affiliates {
		if a.Code == code {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r affiliateRepo) List(_ context.Context) ([]*models.Affiliate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Affiliate, 0, len(r.s.affiliates))
	for _, a := range r.s.affiliates {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type referralRepo struct{ s *Store }

func (r referralRepo) Create(_ context.Context, ref *models.AffiliateReferral) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ref.ID == 0 {
		ref.ID = r.s.nextid()
	}
	if ref.CreatedAt.IsZero() {
		ref.CreatedAt = r.s.Now()
	}
	r.s.referrals[ref.ID] = *ref
	return nil
}

func (r referralRepo) Update(_ context.Context, ref *models.AffiliateReferral) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.referrals[ref.ID] = *ref
	return nil
}

func (r referralRepo) FindByID(_ context.Context, id uint) (*models.AffiliateReferral, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ref, ok := r.s.referrals[id]; ok {
		return &ref, nil
	}
	return nil, nil
}

func (r referralRepo) ListByAffiliate(_ context.Context, affiliateID uint) ([]*models.AffiliateReferral, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.AffiliateReferral
	for _, ref := range r.s.referrals {
		if ref.AffiliateID == affiliateID {
			ref := ref
			out = append(out, &ref)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r referralRepo) SumCommissionByStatus(_ context.Context, affiliateID uint, status types.ReferralStatus) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, ref := range r.s.referrals {
		if ref.AffiliateID == affiliateID && ref.Status == status {
			total = total.Add(ref.CommissionAmount)
		}
	}
	return total, nil
}

func (r referralRepo) SumCommissionByStatusBetween(_ context.Context, affiliateID uint, status types.ReferralStatus, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, ref := range r.s.referrals {
		if ref.AffiliateID == affiliateID && ref.Status == status &&
			!ref.CreatedAt.Before(from) && ref.CreatedAt.Before(to) {
			total = total.Add(ref.CommissionAmount)
		}
	}
	return total, nil
}

func (r referralRepo) CountByAffiliate(_ context.Context, affiliateID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, ref := range r.s.referrals {
		if ref.AffiliateID == affiliateID {
			n++
		}
	}
	return n, nil
}

func (r referralRepo) CountWithSubscriptionByAffiliate(_ context.Context, affiliateID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, ref := range r.s.referrals {
		if ref.AffiliateID == affiliateID && ref.SubscriptionID != nil {
			n++
		}
	}
	return n, nil
}

type payoutRepo struct{ s *Store }

func (r payoutRepo) Create(_ context.Context, p *models.AffiliatePayout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.s.nextid()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.Now()
	}
	r.s.payouts[p.ID] = *p
	return nil
}

func (r payoutRepo) Update(_ context.Context, p *models.AffiliatePayout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payouts[p.ID] = *p
	return nil
}

func (r payoutRepo) FindByID(_ context.Context, id uint) (*models.AffiliatePayout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.payouts[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r payoutRepo) List(_ context.Context, affiliateID *uint) ([]*models.AffiliatePayout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.AffiliatePayout
	for _, p := range r.s.payouts {
		if affiliateID != nil && p.AffiliateID != *affiliateID {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type analyticsRepo struct{ s *Store }

func (r analyticsRepo) CountUsers(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

func (r analyticsRepo) CountAffiliates(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.affiliates)), nil
}

func (r analyticsRepo) CountSubscriptions(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.subscriptions)), nil
}

func (r analyticsRepo) CountSubscriptionsByStatus(_ context.Context, status types.SubscriptionStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, sub := range r.s.subscriptions {
		if sub.Status == status {
			n++
		}
	}
	return n, nil
}

func (r analyticsRepo) SumSubscriptionAmounts(_ context.Context) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, sub := range r.s.subscriptions {
		total = total.Add(sub.Amount)
	}
	return total, nil
}

func (r analyticsRepo) SumSubscriptionAmountsBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, sub := range r.s.subscriptions {
		if !sub.CreatedAt.Before(from) && sub.CreatedAt.Before(to) {
			total = total.Add(sub.Amount)
		}
	}
	return total, nil
}

func (r analyticsRepo) SumPayoutAmountsByStatus(_ context.Context, status types.PayoutStatus) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.s.payouts {
		if p.Status == status {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (r analyticsRepo) MonthlyRevenue(_ context.Context, from time.Time) ([]*contract.MonthlyRevenuePoint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byMonth := map[string]decimal.Decimal{}
	for _, sub := range r.s.subscriptions {
		if sub.CreatedAt.Before(from) {
			continue
		}
		key := sub.CreatedAt.UTC().Format("2006-01")
		byMonth[key] = byMonth[key].Add(sub.Amount)
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	out := make([]*contract.MonthlyRevenuePoint, 0, len(months))
	for _, m := range months {
		out = append(out, &contract.MonthlyRevenuePoint{Month: m, Revenue: byMonth[m]})
	}
	return out, nil
}

func (r analyticsRepo) Leaderboard(_ context.Context, limit int) ([]*contract.LeaderboardEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*contract.LeaderboardEntry
	for _, a := range r.s.affiliates {
		if !a.IsActive {
			continue
		}
		u := r.s.users[a.UserID]
		out = append(out, &contract.LeaderboardEntry{
			AffiliateID:   a.ID,
			Code:          a.Code,
			DisplayName:   u.DisplayName(),
			TotalEarnings: a.TotalEarnings,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalEarnings.GreaterThan(out[j].TotalEarnings) })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
