package utils

import (
	"errors"
	"time"

	"takura-freight/database"
	userModel "takura-freight/models/user"
	"takura-freight/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// GetUserByID looks up an account synced from the auth platform.
func GetUserByID(userID string) (*userModel.User, error) {
	var u userModel.User
	err := database.DB.First(&u, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &u, nil
}

// PickupDateUsable reports whether a pickup date is today or later. Posting
// windows compare whole days, not instants.
func PickupDateUsable(pickup time.Time) bool {
	return !pickup.Before(now.BeginningOfDay())
}

// SameCalendarDay reports whether two timestamps fall on the same day.
func SameCalendarDay(a, b time.Time) bool {
	return now.With(a).BeginningOfDay().Equal(now.With(b).BeginningOfDay())
}

// CreateSanitizedLogEntry builds a log entry from the request context,
// dropping the Authorization header.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	headers := ""
	for key, values := range c.GetReqHeaders() {
		if key == "Authorization" || key == "Cookie" {
			continue
		}
		for _, v := range values {
			headers += key + ": " + v + "\n"
		}
	}

	return types.LogEntry{
		Method:         c.Method(),
		URL:            c.OriginalURL(),
		RequestBody:    string(c.Body()),
		RequestHeaders: headers,
		ResponseBody:   string(c.Response().Body()),
		StatusCode:     c.Response().StatusCode(),
		CreatedAt:      time.Now(),
	}
}
