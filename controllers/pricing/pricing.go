package pricing

import (
	"math"

	pricingClient "takura-freight/httpServices/pricing"
	"takura-freight/logger"
	"takura-freight/types"
	pricingTypes "takura-freight/types/pricing"
	"takura-freight/utils"

	"github.com/gofiber/fiber/v2"
)

// PricingController proxies price suggestions from the external ML service.
// The estimator is advisory only: when it is unreachable the response simply
// carries no estimate instead of an error.
type PricingController struct {
	Client *pricingClient.Client
	Logger *logger.AsyncLogger
}

// NewPricingController creates a new pricing controller
func NewPricingController(client *pricingClient.Client, asyncLogger *logger.AsyncLogger) *PricingController {
	return &PricingController{
		Client: client,
		Logger: asyncLogger,
	}
}

func (pc *PricingController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Estimate returns a suggested price for a trip
func (pc *PricingController) Estimate(c *fiber.Ctx) error {
	var req pricingTypes.EstimateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	estimate, err := pc.Client.RequestEstimate(req.DistanceKm, req.PickupDatetime, req.Temperature, req.Precipitation)
	if err != nil {
		logger.Warning("Pricing estimator unavailable: " + err.Error())
		return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Price estimate unavailable",
			Data:    pricingTypes.EstimateResponse{Available: false},
		})
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Price estimate generated successfully",
		Data: pricingTypes.EstimateResponse{
			Available:    true,
			EstimateUsd:  estimate.EstimateUsd,
			SuggestedBid: math.Round(estimate.EstimateUsd*100) / 100,
			Confidence:   estimate.Confidence,
			Breakdown:    estimate.Breakdown,
			Range:        estimate.Range,
			ModelVersion: estimate.ModelVersion,
		},
	})
}
