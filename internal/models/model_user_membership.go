package models

import "time"

// UserMembership pairs a user with a membership level for a date window.
// Rows are never deleted; expiry flips IsActive and snaps EndDate to now.
type UserMembership struct {
	ID                uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID            uint      `gorm:"column:user_id;not null;index:idx_membership_user_active,priority:1" json:"user_id"`
	MembershipLevelID uint      `gorm:"column:membership_level_id;not null" json:"membership_level_id"`
	StartDate         time.Time `gorm:"column:start_date;not null" json:"start_date"`
	EndDate           time.Time `gorm:"column:end_date;not null" json:"end_date"`
	IsActive          bool      `gorm:"column:is_active;not null;default:true;index:idx_membership_user_active,priority:2" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (UserMembership) TableName() string {
	return "user_memberships"
}

// ActiveAt reports whether the membership governs access at the given instant:
// the flag is set and the instant falls within [StartDate, EndDate].
func (m *UserMembership) ActiveAt(at time.Time) bool {
	return m != nil && m.IsActive && !at.Before(m.StartDate) && !at.After(m.EndDate)
}
