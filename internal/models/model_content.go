package models

import (
	"time"

	"github.com/memberhub/memberhub/pkg/types"
)

// Content is a gated publication. RequiredMembershipLevelID nil means free.
// Unlike the other entities, delete is a hard delete.
type Content struct {
	ID                        uint              `gorm:"column:id;primaryKey" json:"id"`
	Title                     string            `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description               *string           `gorm:"column:description;type:text" json:"description,omitempty"`
	ContentType               types.ContentType `gorm:"column:content_type;type:varchar(32);not null" json:"content_type"`
	URL                       *string           `gorm:"column:url;type:varchar(2048)" json:"url,omitempty"`
	Body                      *string           `gorm:"column:body;type:text" json:"body,omitempty"`
	RequiredMembershipLevelID *uint             `gorm:"column:required_membership_level_id;index" json:"required_membership_level_id,omitempty"`
	IsPublished               bool              `gorm:"column:is_published;not null;default:false;index" json:"is_published"`
	CreatedAt                 time.Time         `json:"created_at"`
	UpdatedAt                 time.Time         `json:"updated_at"`
}

func (Content) TableName() string {
	return "content"
}

// VisibleTo applies the gating predicate: published, and either free or
// requiring exactly the caller's active level (no tier hierarchy).
func (c *Content) VisibleTo(activeLevelID *uint) bool {
	if c == nil || !c.IsPublished {
		return false
	}
	if c.RequiredMembershipLevelID == nil {
		return true
	}
	return activeLevelID != nil && *activeLevelID == *c.RequiredMembershipLevelID
}
