package bid

import (
	"fmt"

	"takura-freight/errs"
	"takura-freight/logger"
	"takura-freight/middleware"
	loadModel "takura-freight/models/load"
	biddingService "takura-freight/services/bidding"
	notificationService "takura-freight/services/notification"
	"takura-freight/types"
	bidTypes "takura-freight/types/bid"
	"takura-freight/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BidController handles bid-related HTTP requests
type BidController struct {
	DB       *gorm.DB
	Service  *biddingService.Service
	Notifier *notificationService.Notifier
	Logger   *logger.AsyncLogger
}

// NewBidController creates a new bid controller
func NewBidController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BidController {
	return &BidController{
		DB:       db,
		Service:  biddingService.NewService(db),
		Notifier: notificationService.NewNotifier(db),
		Logger:   asyncLogger,
	}
}

func (bc *BidController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

func (bc *BidController) sendError(c *fiber.Ctx, err error) error {
	status := errs.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Bid operation failed", err)
		return bc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: "Internal server error",
		})
	}
	return bc.sendResponseWithLog(c, status, types.ApiResponse{
		Status:  status,
		Message: err.Error(),
	})
}

// Store submits a bid from the acting driver
func (bc *BidController) Store(c *fiber.Ctx) error {
	var req bidTypes.BidCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	driverID, _, ok := middleware.ActingUser(c)
	if !ok {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	b, err := bc.Service.Submit(req.LoadID, driverID, req.AmountUsd, req.Message)
	if err != nil {
		return bc.sendError(c, err)
	}

	logger.Success(fmt.Sprintf("Bid %s submitted on load %s", b.BidID, b.LoadID))
	return bc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Bid submitted successfully",
		Data:    b,
	})
}

// Accept settles the bidding round in favour of one bid
func (bc *BidController) Accept(c *fiber.Ctx) error {
	clientID, _, ok := middleware.ActingUser(c)
	if !ok {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	result, err := bc.Service.Accept(c.Params("bidId"), clientID)
	if err != nil {
		return bc.sendError(c, err)
	}

	// Best effort after commit; the settled round stands regardless.
	go bc.notifyAccepted(result)

	logger.Success(fmt.Sprintf("Bid %s accepted; job %s created", result.Bid.BidID, result.Job.JobID))
	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bid accepted successfully",
		Data:    result,
	})
}

func (bc *BidController) notifyAccepted(result *biddingService.AcceptResult) {
	title := result.Job.LoadID
	var l loadModel.Load
	if err := bc.DB.First(&l, "load_id = ?", result.Job.LoadID).Error; err == nil {
		title = l.Title
	}
	bc.Notifier.BidAccepted(result.Bid.DriverID, title, result.Job.JobID)
}

// ForLoad lists the bids on one of the acting client's loads
func (bc *BidController) ForLoad(c *fiber.Ctx) error {
	clientID, _, ok := middleware.ActingUser(c)
	if !ok {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	bids, err := bc.Service.ForLoad(c.Params("loadId"), clientID)
	if err != nil {
		return bc.sendError(c, err)
	}
	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bids fetched successfully",
		Data:    bids,
	})
}

// My lists the acting driver's bids
func (bc *BidController) My(c *fiber.Ctx) error {
	driverID, _, ok := middleware.ActingUser(c)
	if !ok {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	bids, err := bc.Service.ByDriver(driverID)
	if err != nil {
		return bc.sendError(c, err)
	}
	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bids fetched successfully",
		Data:    bids,
	})
}
