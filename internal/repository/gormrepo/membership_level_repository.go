package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
)

type membershipLevelRepository struct {
	db *gorm.DB
}

func NewMembershipLevelRepository(db *gorm.DB) contract.MembershipLevelRepository {
	return &membershipLevelRepository{db: db}
}

func (r *membershipLevelRepository) Create(ctx context.Context, level *models.MembershipLevel) error {
	return r.db.WithContext(ctx).Create(level).Error
}

func (r *membershipLevelRepository) Update(ctx context.Context, level *models.MembershipLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

func (r *membershipLevelRepository) FindByID(ctx context.Context, id uint) (*models.MembershipLevel, error) {
	var m models.MembershipLevel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *membershipLevelRepository) List(ctx context.Context, activeOnly bool) ([]*models.MembershipLevel, error) {
	q := r.db.WithContext(ctx).Order("created_at desc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []*models.MembershipLevel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
