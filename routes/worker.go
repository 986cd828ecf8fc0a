package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workerbuddy/workerbuddy-api/controllers/customer"
	"github.com/workerbuddy/workerbuddy-api/controllers/worker"
	"github.com/workerbuddy/workerbuddy-api/middleware"
	"github.com/workerbuddy/workerbuddy-api/models"
)

// SetupWorkerRoutes configures the worker-facing routes plus the public
// worker detail endpoint. The detail route is registered last so that the
// named routes win over the :id parameter.
func SetupWorkerRoutes(app *fiber.App, db *gorm.DB) {
	profileController := worker.NewProfileController(db)
	bookingController := worker.NewBookingController(db)
	reviewController := worker.NewReviewController(db)
	directoryController := customer.NewDirectoryController(db)

	workerGroup := app.Group("/worker", middleware.Protected())

	workerGroup.Get("/profile", middleware.RequireUserType(models.TypeWorker), profileController.GetWorkerProfile)
	workerGroup.Patch("/profile", middleware.RequireUserType(models.TypeWorker), profileController.UpdateWorkerProfile)

	workerGroup.Get("/bookings", middleware.RequireUserType(models.TypeWorker), bookingController.GetBookings)
	workerGroup.Patch("/bookings/:id", middleware.RequireUserType(models.TypeWorker), bookingController.UpdateBookingStatus)

	workerGroup.Get("/reviews", middleware.RequireUserType(models.TypeWorker), reviewController.GetReviews)

	workerGroup.Get("/:id", directoryController.GetWorkerDetails)
}
