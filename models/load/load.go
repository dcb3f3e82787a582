package load

import (
	"time"

	userModel "takura-freight/models/user"
)

// Load represents a shipment posted by a client seeking a driver.
// Loads are never deleted; the row carries its full lifecycle from
// "In Bidding" through "Completed".
type Load struct {
	LoadID string `gorm:"type:varchar(64);primaryKey" json:"load_id"`

	// Foreign key for the owning client
	ClientID string         `gorm:"type:varchar(64);not null;index" json:"client_id"`
	Client   userModel.User `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Title           string  `gorm:"type:varchar(255);not null" json:"title"`
	CargoType       string  `gorm:"type:varchar(100);not null" json:"cargo_type"`
	WeightTons      float64 `gorm:"not null" json:"weight_tons"`
	OriginCity      string  `gorm:"type:varchar(255);not null" json:"origin_city"`
	DestinationCity string  `gorm:"type:varchar(255);not null" json:"destination_city"`
	DistanceKm      float64 `gorm:"not null;default:300" json:"distance_km"`
	BudgetUsd       float64 `gorm:"not null" json:"budget_usd"`
	PickupDate      time.Time `gorm:"not null" json:"pickup_date"`
	DeliveryDate    time.Time `gorm:"not null" json:"delivery_date"`
	TripType        string    `gorm:"type:varchar(50);not null;default:'One Way'" json:"trip_type"`
	Urgency         string    `gorm:"type:varchar(50);not null;default:'Standard'" json:"urgency"`
	Description     *string   `gorm:"type:text" json:"description,omitempty"`
	Requirements    *string   `gorm:"type:text" json:"requirements,omitempty"`

	Status Status `gorm:"type:varchar(20);not null;index" json:"status"`

	// Non-null iff status is Assigned, In Transit or Completed.
	AssignedDriverID *string `gorm:"type:varchar(64);index" json:"assigned_driver_id,omitempty"`

	// Denormalized count maintained by the bid ledger.
	BidsCount int `gorm:"not null;default:0" json:"bids_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
