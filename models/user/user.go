package user

import (
	"time"
)

// User mirrors the marketplace account record managed by the hosting
// platform's auth service. Rows are created by that service; this backend
// reads them to resolve roles and profile attributes.
type User struct {
	UserID string  `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	Role   string  `gorm:"type:varchar(20);not null;index" json:"role"`
	Name   string  `gorm:"type:varchar(255);not null" json:"name"`
	Email  string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	Phone  *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	City   *string `gorm:"type:varchar(255)" json:"city,omitempty"`

	// Client-specific
	CompanyName *string `gorm:"type:varchar(255)" json:"company_name,omitempty"`

	// Driver-specific
	Specialization *string  `gorm:"type:varchar(255)" json:"specialization,omitempty"`
	AverageRating  *float64 `gorm:"type:double precision" json:"average_rating,omitempty"`
	Availability   *string  `gorm:"type:varchar(20)" json:"availability,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsDriver reports whether the account can bid on and haul loads.
func (u *User) IsDriver() bool {
	return u.Role == "DRIVER"
}

// IsClient reports whether the account can post loads and accept bids.
func (u *User) IsClient() bool {
	return u.Role == "CLIENT"
}

// DisplayName prefers the company name for clients.
func (u *User) DisplayName() string {
	if u.CompanyName != nil && *u.CompanyName != "" {
		return *u.CompanyName
	}
	return u.Name
}
