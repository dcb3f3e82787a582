package notification

import (
	"time"
)

// Notification is a best-effort message for a user (new job offer, bid
// accepted). Writes never abort the surrounding operation.
type Notification struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"type:varchar(64);not null;index" json:"user_id"`

	Title string `gorm:"type:varchar(255);not null" json:"title"`
	Body  string `gorm:"type:text;not null" json:"body"`
	Type  string `gorm:"type:varchar(50);not null" json:"type"`
	Read  bool   `gorm:"not null;default:false" json:"read"`

	// Identifier of the job or bid this notification refers to.
	ReferenceID *string `gorm:"type:varchar(64)" json:"reference_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
