package models

import "time"

// Role controls which parts of the API a user can reach.
type Role string

const (
	RoleUser       Role = "user"
	RoleSubscriber Role = "subscriber"
	RoleAdmin      Role = "admin"
)

// User represents the user model in the database
type User struct {
	Base
	Name                string     `gorm:"not null" json:"name"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	Role                Role       `gorm:"not null;default:user" json:"role"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	Investments     []Investment     `gorm:"foreignKey:UserID" json:"investments,omitempty"`
	TrackingFilters []TrackingFilter `gorm:"foreignKey:SubscriberID" json:"tracking_filters,omitempty"`
}
