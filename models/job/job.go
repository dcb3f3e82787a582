package job

import (
	"time"

	loadModel "takura-freight/models/load"
	userModel "takura-freight/models/user"
)

// Job is the durable engagement between a driver and a load, created when a
// bid is accepted or a direct offer is made. Exactly one job may exist per
// (load, driver) pair, enforced by a composite unique index.
type Job struct {
	// Human-readable sequential identifier, e.g. JOB001.
	JobID string `gorm:"type:varchar(64);primaryKey" json:"job_id"`

	LoadID string         `gorm:"type:varchar(64);not null;uniqueIndex:uq_jobs_load_driver" json:"load_id"`
	Load   loadModel.Load `gorm:"foreignKey:LoadID" json:"load,omitempty"`

	DriverID string         `gorm:"type:varchar(64);not null;uniqueIndex:uq_jobs_load_driver" json:"driver_id"`
	Driver   userModel.User `gorm:"foreignKey:DriverID" json:"driver,omitempty"`

	ClientID string         `gorm:"type:varchar(64);not null;index" json:"client_id"`
	Client   userModel.User `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	RateUsd float64 `gorm:"not null" json:"rate_usd"`

	Status      Status `gorm:"type:varchar(20);not null;index" json:"status"`
	ProgressPct int    `gorm:"not null;default:0" json:"progress_pct"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
