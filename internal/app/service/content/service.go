package content

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/memberhub/memberhub/internal/app/service/membership"
	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
	"github.com/memberhub/memberhub/pkg/apperr"
	"github.com/memberhub/memberhub/pkg/logctx"
	"github.com/memberhub/memberhub/pkg/types"
)

// Service applies the content gating rules: unpublished content is invisible
// to everyone, level-gated content only to holders of a currently-active
// membership at exactly that level.
type Service struct {
	content     contract.ContentRepository
	levels      contract.MembershipLevelRepository
	memberships *membership.Service
	log         *zap.SugaredLogger
	now         func() time.Time
}

func NewService(content contract.ContentRepository, levels contract.MembershipLevelRepository, memberships *membership.Service, log *zap.SugaredLogger) *Service {
	return &Service{content: content, levels: levels, memberships: memberships, log: log, now: time.Now}
}

// activeLevelFor resolves the caller's governing level id, or nil for
// anonymous callers and callers without an active membership.
func (s *Service) activeLevelFor(ctx context.Context, callerUserID *uint) (*uint, error) {
	if callerUserID == nil {
		return nil, nil
	}
	m, err := s.memberships.ResolveActiveMembership(ctx, *callerUserID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return &m.MembershipLevelID, nil
}

// ListVisible returns published content the caller may see, newest first.
func (s *Service) ListVisible(ctx context.Context, callerUserID *uint) ([]*models.Content, error) {
	levelID, err := s.activeLevelFor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	return s.content.ListVisible(ctx, levelID)
}

// GetVisible returns nil without error both when the row does not exist and
// when it exists but is not visible to the caller; the two cases are
// indistinguishable on purpose, so content ids cannot be enumerated.
func (s *Service) GetVisible(ctx context.Context, id uint, callerUserID *uint) (*models.Content, error) {
	c, err := s.content.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	if c == nil {
		return nil, nil
	}
	levelID, err := s.activeLevelFor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	if !c.VisibleTo(levelID) {
		return nil, nil
	}
	return c, nil
}

type CreateRequest struct {
	Title                     string            `json:"title"`
	Description               *string           `json:"description"`
	ContentType               types.ContentType `json:"content_type"`
	URL                       *string           `json:"url"`
	Body                      *string           `json:"body"`
	RequiredMembershipLevelID *uint             `json:"required_membership_level_id"`
	IsPublished               bool              `json:"is_published"`
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*models.Content, error) {
	if !req.ContentType.Valid() {
		return nil, apperr.Validation("invalid content type")
	}
	if err := s.checkRequiredLevel(ctx, req.RequiredMembershipLevelID); err != nil {
		return nil, err
	}
	c := &models.Content{
		Title:                     req.Title,
		Description:               req.Description,
		ContentType:               req.ContentType,
		URL:                       req.URL,
		Body:                      req.Body,
		RequiredMembershipLevelID: req.RequiredMembershipLevelID,
		IsPublished:               req.IsPublished,
	}
	if err := s.content.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}
	return c, nil
}

// Update carries optional fields; only non-nil ones are applied.
// ClearRequiredMembershipLevel nulls the gate, making the content free.
type Update struct {
	Title                        *string            `json:"title"`
	Description                  *string            `json:"description"`
	ContentType                  *types.ContentType `json:"content_type"`
	URL                          *string            `json:"url"`
	Body                         *string            `json:"body"`
	RequiredMembershipLevelID    *uint              `json:"required_membership_level_id"`
	ClearRequiredMembershipLevel bool               `json:"clear_required_membership_level"`
	IsPublished                  *bool              `json:"is_published"`
}

func (s *Service) UpdateContent(ctx context.Context, id uint, update *Update) (*models.Content, error) {
	c, err := s.content.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	if c == nil {
		return nil, apperr.NotFound("content")
	}
	if update.Title != nil {
		c.Title = *update.Title
	}
	if update.Description != nil {
		c.Description = update.Description
	}
	if update.ContentType != nil {
		if !update.ContentType.Valid() {
			return nil, apperr.Validation("invalid content type")
		}
		c.ContentType = *update.ContentType
	}
	if update.URL != nil {
		c.URL = update.URL
	}
	if update.Body != nil {
		c.Body = update.Body
	}
	if update.ClearRequiredMembershipLevel {
		c.RequiredMembershipLevelID = nil
	} else if update.RequiredMembershipLevelID != nil {
		if err := s.checkRequiredLevel(ctx, update.RequiredMembershipLevelID); err != nil {
			return nil, err
		}
		c.RequiredMembershipLevelID = update.RequiredMembershipLevelID
	}
	if update.IsPublished != nil {
		c.IsPublished = *update.IsPublished
	}
	if err := s.content.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update content: %w", err)
	}
	return c, nil
}

// Delete permanently removes the row. Content is the only entity with a hard
// delete.
func (s *Service) Delete(ctx context.Context, id uint) error {
	c, err := s.content.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	if c == nil {
		return apperr.NotFound("content")
	}
	if err := s.content.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("content_deleted", "content_id", id)
	return nil
}

func (s *Service) ListAll(ctx context.Context) ([]*models.Content, error) {
	return s.content.ListAll(ctx)
}

func (s *Service) checkRequiredLevel(ctx context.Context, levelID *uint) error {
	if levelID == nil {
		return nil
	}
	level, err := s.levels.FindByID(ctx, *levelID)
	if err != nil {
		return fmt.Errorf("failed to load membership level: %w", err)
	}
	if level == nil {
		return apperr.Validation("required membership level does not exist")
	}
	return nil
}
