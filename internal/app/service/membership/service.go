package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
	"github.com/memberhub/memberhub/pkg/apperr"
	"github.com/memberhub/memberhub/pkg/logctx"
)

// Service governs membership levels and per-user membership windows.
type Service struct {
	levels      contract.MembershipLevelRepository
	memberships contract.UserMembershipRepository
	users       contract.UserRepository
	log         *zap.SugaredLogger
	now         func() time.Time
}

func NewService(levels contract.MembershipLevelRepository, memberships contract.UserMembershipRepository, users contract.UserRepository, log *zap.SugaredLogger) *Service {
	return &Service{levels: levels, memberships: memberships, users: users, log: log, now: time.Now}
}

type CreateLevelRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days"`
	Features     []string        `json:"features"`
	IsActive     bool            `json:"is_active"`
}

func (s *Service) CreateLevel(ctx context.Context, req *CreateLevelRequest) (*models.MembershipLevel, error) {
	if req.DurationDays <= 0 {
		return nil, apperr.Validation("duration_days must be positive")
	}
	if req.Price.IsNegative() {
		return nil, apperr.Validation("price must not be negative")
	}
	level := &models.MembershipLevel{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Features:     datatypes.NewJSONSlice(req.Features),
		IsActive:     req.IsActive,
	}
	if err := s.levels.Create(ctx, level); err != nil {
		return nil, fmt.Errorf("failed to create membership level: %w", err)
	}
	return level, nil
}

// LevelUpdate carries optional fields; only non-nil ones are applied.
type LevelUpdate struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	DurationDays *int             `json:"duration_days"`
	Features     *[]string        `json:"features"`
	IsActive     *bool            `json:"is_active"`
}

func (s *Service) UpdateLevel(ctx context.Context, id uint, update *LevelUpdate) (*models.MembershipLevel, error) {
	level, err := s.RequireLevel(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		level.Name = *update.Name
	}
	if update.Description != nil {
		level.Description = *update.Description
	}
	if update.Price != nil {
		if update.Price.IsNegative() {
			return nil, apperr.Validation("price must not be negative")
		}
		level.Price = *update.Price
	}
	if update.DurationDays != nil {
		if *update.DurationDays <= 0 {
			return nil, apperr.Validation("duration_days must be positive")
		}
		level.DurationDays = *update.DurationDays
	}
	if update.Features != nil {
		level.Features = datatypes.NewJSONSlice(*update.Features)
	}
	if update.IsActive != nil {
		level.IsActive = *update.IsActive
	}
	if err := s.levels.Update(ctx, level); err != nil {
		return nil, fmt.Errorf("failed to update membership level: %w", err)
	}
	return level, nil
}

func (s *Service) RequireLevel(ctx context.Context, id uint) (*models.MembershipLevel, error) {
	level, err := s.levels.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load membership level: %w", err)
	}
	if level == nil {
		return nil, apperr.NotFound("membership level")
	}
	return level, nil
}

func (s *Service) GetLevel(ctx context.Context, id uint) (*models.MembershipLevel, error) {
	return s.RequireLevel(ctx, id)
}

func (s *Service) ListLevels(ctx context.Context, activeOnly bool) ([]*models.MembershipLevel, error) {
	return s.levels.List(ctx, activeOnly)
}

type GrantMembershipRequest struct {
	UserID            uint       `json:"user_id"`
	MembershipLevelID uint       `json:"membership_level_id"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
}

// GrantMembership creates a user-membership window. Precondition order: user,
// then level. The read-then-write pair is not transactional; a concurrent
// delete between the checks and the insert is an accepted race.
func (s *Service) GrantMembership(ctx context.Context, req *GrantMembershipRequest) (*models.UserMembership, error) {
	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	level, err := s.RequireLevel(ctx, req.MembershipLevelID)
	if err != nil {
		return nil, err
	}

	start := s.now()
	if req.StartDate != nil {
		start = *req.StartDate
	}
	end := start.AddDate(0, 0, level.DurationDays)
	if req.EndDate != nil {
		end = *req.EndDate
	}

	m := &models.UserMembership{
		UserID:            req.UserID,
		MembershipLevelID: req.MembershipLevelID,
		StartDate:         start,
		EndDate:           end,
		IsActive:          true,
	}
	if err := s.memberships.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create user membership: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("membership_granted", "user_id", req.UserID, "level_id", req.MembershipLevelID)
	return m, nil
}

// ExpireMembership clears the active flag and snaps the end date to now.
// Rows are never deleted.
func (s *Service) ExpireMembership(ctx context.Context, id uint) (*models.UserMembership, error) {
	m, err := s.memberships.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user membership: %w", err)
	}
	if m == nil {
		return nil, apperr.NotFound("membership")
	}
	m.IsActive = false
	m.EndDate = s.now()
	if err := s.memberships.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to expire user membership: %w", err)
	}
	return m, nil
}

// ResolveActiveMembership returns the membership governing content access, or
// nil when the user has none. More than one membership can be active at once
// (the store does not enforce at most one); the latest-started row wins.
// Whether concurrent actives should be possible at all is an open product
// question.
func (s *Service) ResolveActiveMembership(ctx context.Context, userID uint) (*models.UserMembership, error) {
	rows, err := s.memberships.FindActiveByUser(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve active membership: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (s *Service) ListByUser(ctx context.Context, userID uint) ([]*models.UserMembership, error) {
	return s.memberships.ListByUser(ctx, userID)
}
