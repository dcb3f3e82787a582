package notification

import (
	"fmt"

	"takura-freight/logger"
	notificationModel "takura-freight/models/notification"

	"gorm.io/gorm"
)

// Notifier writes fire-and-forget notifications. It is always called after
// the owning transaction has committed; failures are logged and swallowed so
// a broken sink can never undo a settled bid or job.
type Notifier struct {
	DB *gorm.DB
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{DB: db}
}

// Notify inserts a notification row for the user. Best effort only.
func (n *Notifier) Notify(userID, title, body, notifType, referenceID string) {
	row := notificationModel.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   notifType,
	}
	if referenceID != "" {
		row.ReferenceID = &referenceID
	}

	if err := n.DB.Create(&row).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to notify user %s", userID), err)
	}
}

// JobOffer tells a driver a client sent them a direct offer.
func (n *Notifier) JobOffer(driverID, clientName, loadTitle string, rateUsd float64, jobID string) {
	n.Notify(driverID,
		"New Job Offer",
		fmt.Sprintf("%s sent you a job offer for %q at $%.2f", clientName, loadTitle, rateUsd),
		"job", jobID)
}

// BidAccepted tells a driver their bid won the load.
func (n *Notifier) BidAccepted(driverID, loadTitle, jobID string) {
	n.Notify(driverID,
		"Bid Accepted",
		fmt.Sprintf("Your bid on %q was accepted", loadTitle),
		"bid", jobID)
}
