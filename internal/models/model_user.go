package models

import "time"

// User is a member account. Accounts are never physically removed; deactivation
// flips IsActive and keeps the row.
type User struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"column:first_name;type:varchar(128)" json:"first_name"`
	LastName     string    `gorm:"column:last_name;type:varchar(128)" json:"last_name"`
	Phone        string    `gorm:"column:phone;type:varchar(64)" json:"phone"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsAdmin      bool      `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}
