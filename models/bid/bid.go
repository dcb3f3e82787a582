package bid

import (
	"time"

	loadModel "takura-freight/models/load"
	userModel "takura-freight/models/user"
)

// Bid is a driver's proposed price for a load. At most one bid exists per
// (load, driver) pair, enforced by a composite unique index. A bid is
// immutable once it leaves Pending.
type Bid struct {
	BidID string `gorm:"type:varchar(64);primaryKey" json:"bid_id"`

	LoadID string         `gorm:"type:varchar(64);not null;uniqueIndex:uq_bids_load_driver" json:"load_id"`
	Load   loadModel.Load `gorm:"foreignKey:LoadID" json:"load,omitempty"`

	DriverID string         `gorm:"type:varchar(64);not null;uniqueIndex:uq_bids_load_driver" json:"driver_id"`
	Driver   userModel.User `gorm:"foreignKey:DriverID" json:"driver,omitempty"`

	AmountUsd float64 `gorm:"not null" json:"amount_usd"`
	Message   *string `gorm:"type:text" json:"message,omitempty"`

	Status Status `gorm:"type:varchar(20);not null;index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
