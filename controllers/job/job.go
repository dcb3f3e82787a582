package job

import (
	"fmt"

	"takura-freight/errs"
	"takura-freight/logger"
	"takura-freight/middleware"
	loadModel "takura-freight/models/load"
	jobService "takura-freight/services/job"
	notificationService "takura-freight/services/notification"
	"takura-freight/types"
	jobTypes "takura-freight/types/job"
	"takura-freight/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// JobController handles job-related HTTP requests
type JobController struct {
	DB       *gorm.DB
	Service  *jobService.Service
	Notifier *notificationService.Notifier
	Logger   *logger.AsyncLogger
}

// NewJobController creates a new job controller
func NewJobController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *JobController {
	return &JobController{
		DB:       db,
		Service:  jobService.NewService(db),
		Notifier: notificationService.NewNotifier(db),
		Logger:   asyncLogger,
	}
}

func (jc *JobController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	jc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

func (jc *JobController) sendError(c *fiber.Ctx, err error) error {
	status := errs.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Job operation failed", err)
		return jc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: "Internal server error",
		})
	}
	return jc.sendResponseWithLog(c, status, types.ApiResponse{
		Status:  status,
		Message: err.Error(),
	})
}

// Offer creates a job directly for a driver the acting client picked
func (jc *JobController) Offer(c *fiber.Ctx) error {
	var req jobTypes.DirectOfferRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return jc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return jc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	clientID, _, ok := middleware.ActingUser(c)
	if !ok {
		return jc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	j, err := jc.Service.SpawnFromDirectOffer(clientID, req.DriverID, req.LoadID, req.RateUsd)
	if err != nil {
		return jc.sendError(c, err)
	}

	// Best effort after commit.
	go jc.notifyOffer(clientID, j.DriverID, j.LoadID, j.RateUsd, j.JobID)

	logger.Success(fmt.Sprintf("Job %s offered to driver %s for load %s", j.JobID, j.DriverID, j.LoadID))
	return jc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Job offer created successfully",
		Data:    j,
	})
}

func (jc *JobController) notifyOffer(clientID, driverID, loadID string, rateUsd float64, jobID string) {
	clientName := clientID
	if client, err := utils.GetUserByID(clientID); err == nil {
		clientName = client.DisplayName()
	}
	loadTitle := loadID
	var l loadModel.Load
	if err := jc.DB.First(&l, "load_id = ?", loadID).Error; err == nil {
		loadTitle = l.Title
	}
	jc.Notifier.JobOffer(driverID, clientName, loadTitle, rateUsd, jobID)
}

// Accept is the driver confirming a pending offer
func (jc *JobController) Accept(c *fiber.Ctx) error {
	driverID, _, ok := middleware.ActingUser(c)
	if !ok {
		return jc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	j, err := jc.Service.Accept(c.Params("jobId"), driverID)
	if err != nil {
		return jc.sendError(c, err)
	}

	logger.Success(fmt.Sprintf("Job %s accepted by driver %s", j.JobID, driverID))
	return jc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Job accepted successfully",
		Data:    j,
	})
}

// My lists the acting driver's jobs
func (jc *JobController) My(c *fiber.Ctx) error {
	driverID, _, ok := middleware.ActingUser(c)
	if !ok {
		return jc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	jobs, err := jc.Service.ByDriver(driverID)
	if err != nil {
		return jc.sendError(c, err)
	}
	return jc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Jobs fetched successfully",
		Data:    jobs,
	})
}
