package routes

import (
	"os"

	"takura-freight/constants"
	bidController "takura-freight/controllers/bid"
	jobController "takura-freight/controllers/job"
	loadController "takura-freight/controllers/load"
	pricingController "takura-freight/controllers/pricing"
	pricingClient "takura-freight/httpServices/pricing"
	"takura-freight/logger"
	"takura-freight/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	estimator := pricingClient.NewClient(os.Getenv("PRICING_API_URL"))

	loads := loadController.NewLoadController(db, asyncLogger)
	bids := bidController.NewBidController(db, asyncLogger)
	jobs := jobController.NewJobController(db, asyncLogger)
	pricing := pricingController.NewPricingController(estimator, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	api := app.Group("/api")

	/*=============================================================================
	| Load Routes
	===============================================================================*/
	loadGroup := api.Group("/loads")
	loadGroup.Post("/", middleware.RequireRoles(constants.RoleClient), loads.Store)
	loadGroup.Get("/available", middleware.RequireAuthentication(), loads.Available)
	loadGroup.Get("/my", middleware.RequireRoles(constants.RoleClient), loads.My)
	loadGroup.Get("/:loadId", middleware.RequireAuthentication(), loads.Show)
	loadGroup.Patch("/:loadId/status", middleware.RequireRoles(constants.RoleClient, constants.RoleDriver), loads.Transition)

	/*=============================================================================
	| Bid Routes
	===============================================================================*/
	bidGroup := api.Group("/bids")
	bidGroup.Post("/", middleware.RequireRoles(constants.RoleDriver), bids.Store)
	bidGroup.Post("/:bidId/accept", middleware.RequireRoles(constants.RoleClient), bids.Accept)
	bidGroup.Get("/load/:loadId", middleware.RequireRoles(constants.RoleClient), bids.ForLoad)
	bidGroup.Get("/my", middleware.RequireRoles(constants.RoleDriver), bids.My)

	/*=============================================================================
	| Job Routes
	===============================================================================*/
	jobGroup := api.Group("/jobs")
	jobGroup.Post("/offers", middleware.RequireRoles(constants.RoleClient), jobs.Offer)
	jobGroup.Post("/:jobId/accept", middleware.RequireRoles(constants.RoleDriver), jobs.Accept)
	jobGroup.Get("/my", middleware.RequireRoles(constants.RoleDriver), jobs.My)

	/*=============================================================================
	| Pricing Routes
	===============================================================================*/
	api.Post("/pricing/estimate", middleware.RequireAuthentication(), pricing.Estimate)
}
