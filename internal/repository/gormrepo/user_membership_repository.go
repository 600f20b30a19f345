package gormrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
)

type userMembershipRepository struct {
	db *gorm.DB
}

func NewUserMembershipRepository(db *gorm.DB) contract.UserMembershipRepository {
	return &userMembershipRepository{db: db}
}

func (r *userMembershipRepository) Create(ctx context.Context, membership *models.UserMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *userMembershipRepository) Update(ctx context.Context, membership *models.UserMembership) error {
	return r.db.WithContext(ctx).Save(membership).Error
}

func (r *userMembershipRepository) FindByID(ctx context.Context, id uint) (*models.UserMembership, error) {
	var m models.UserMembership
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *userMembershipRepository) FindActiveByUser(ctx context.Context, userID uint, at time.Time) ([]*models.UserMembership, error) {
	var rows []*models.UserMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND start_date <= ? AND end_date >= ?", userID, true, at, at).
		Order("start_date desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userMembershipRepository) ListByUser(ctx context.Context, userID uint) ([]*models.UserMembership, error) {
	var rows []*models.UserMembership
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("start_date desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
