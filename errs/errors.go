package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors for the bid lifecycle. Services return these (possibly
// wrapped with context via fmt.Errorf and %w); controllers map them to HTTP
// status codes with StatusCode.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrLoadNotBiddable   = errors.New("load is no longer available")
	ErrDuplicateBid      = errors.New("a bid already exists for this driver on this load")
	ErrDuplicateJob      = errors.New("a job already exists for this driver on this load")
	ErrInvalidTransition = errors.New("illegal status transition")
)

// StatusCode maps a domain error to its HTTP status. Conflict losers get 409
// so callers can tell "someone else won" from "system broken".
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrLoadNotBiddable):
		return fiber.StatusConflict
	case errors.Is(err, ErrDuplicateBid):
		return fiber.StatusConflict
	case errors.Is(err, ErrDuplicateJob):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
