package load

import (
	"fmt"

	"takura-freight/errs"
	"takura-freight/logger"
	"takura-freight/middleware"
	loadModel "takura-freight/models/load"
	loadService "takura-freight/services/load"
	"takura-freight/types"
	loadTypes "takura-freight/types/load"
	"takura-freight/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LoadController handles load-related HTTP requests
type LoadController struct {
	DB      *gorm.DB
	Service *loadService.Service
	Logger  *logger.AsyncLogger
}

// NewLoadController creates a new load controller
func NewLoadController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *LoadController {
	return &LoadController{
		DB:      db,
		Service: loadService.NewService(db),
		Logger:  asyncLogger,
	}
}

func (lc *LoadController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	lc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

func (lc *LoadController) sendError(c *fiber.Ctx, err error) error {
	status := errs.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Load operation failed", err)
		return lc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: "Internal server error",
		})
	}
	return lc.sendResponseWithLog(c, status, types.ApiResponse{
		Status:  status,
		Message: err.Error(),
	})
}

// Store creates a new load posted by the acting client
func (lc *LoadController) Store(c *fiber.Ctx) error {
	var req loadTypes.LoadCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return lc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	clientID, _, ok := middleware.ActingUser(c)
	if !ok {
		return lc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	if !req.PickupDate.IsZero() && !utils.PickupDateUsable(req.PickupDate) {
		return lc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "pickup_date is in the past",
		})
	}

	l, err := lc.Service.Create(clientID, req)
	if err != nil {
		return lc.sendError(c, err)
	}

	logger.Success(fmt.Sprintf("Load %s posted by client %s", l.LoadID, clientID))
	return lc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Load created successfully",
		Data:    l,
	})
}

// Show returns a single load by id
func (lc *LoadController) Show(c *fiber.Ctx) error {
	l, err := lc.Service.Get(c.Params("loadId"))
	if err != nil {
		return lc.sendError(c, err)
	}
	return lc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Load fetched successfully",
		Data:    l,
	})
}

// Available lists loads still open for bidding
func (lc *LoadController) Available(c *fiber.Ctx) error {
	loads, err := lc.Service.Available()
	if err != nil {
		return lc.sendError(c, err)
	}
	return lc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Available loads fetched successfully",
		Data:    loads,
	})
}

// My lists the acting client's own loads
func (lc *LoadController) My(c *fiber.Ctx) error {
	clientID, _, ok := middleware.ActingUser(c)
	if !ok {
		return lc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	loads, err := lc.Service.ByClient(clientID)
	if err != nil {
		return lc.sendError(c, err)
	}
	return lc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Loads fetched successfully",
		Data:    loads,
	})
}

// Transition moves a load one step along its lifecycle
func (lc *LoadController) Transition(c *fiber.Ctx) error {
	var req loadTypes.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return lc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return lc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	l, err := lc.Service.TransitionStatus(c.Params("loadId"), loadModel.Status(req.Status))
	if err != nil {
		return lc.sendError(c, err)
	}

	logger.Success(fmt.Sprintf("Load %s moved to %s", l.LoadID, l.Status))
	return lc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Load status updated successfully",
		Data:    l,
	})
}
