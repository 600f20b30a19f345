package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
)

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) contract.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepository) Update(ctx context.Context, content *models.Content) error {
	return r.db.WithContext(ctx).Save(content).Error
}

func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Content{}, id).Error
}

func (r *contentRepository) FindByID(ctx context.Context, id uint) (*models.Content, error) {
	var m models.Content
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *contentRepository) ListVisible(ctx context.Context, activeLevelID *uint) ([]*models.Content, error) {
	q := r.db.WithContext(ctx).Where("is_published = ?", true)
	if activeLevelID == nil {
		q = q.Where("required_membership_level_id IS NULL")
	} else {
		q = q.Where("required_membership_level_id IS NULL OR required_membership_level_id = ?", *activeLevelID)
	}
	var rows []*models.Content
	if err := q.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contentRepository) ListAll(ctx context.Context) ([]*models.Content, error) {
	var rows []*models.Content
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
