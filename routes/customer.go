package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workerbuddy/workerbuddy-api/controllers/customer"
	"github.com/workerbuddy/workerbuddy-api/middleware"
	"github.com/workerbuddy/workerbuddy-api/models"
)

// SetupCustomerRoutes configures the customer-facing routes: bookings,
// reviews, the user profile and the worker directory.
func SetupCustomerRoutes(app *fiber.App, db *gorm.DB) {
	bookingController := customer.NewBookingController(db)
	reviewController := customer.NewReviewController(db)
	profileController := customer.NewProfileController(db)
	directoryController := customer.NewDirectoryController(db)

	bookings := app.Group("/bookings", middleware.Protected(), middleware.RequireUserType(models.TypeUser))
	bookings.Post("/", bookingController.CreateBooking)
	bookings.Get("/", bookingController.GetBookings)
	bookings.Patch("/", bookingController.UpdateBooking)

	reviews := app.Group("/reviews", middleware.Protected())
	reviews.Get("/", reviewController.GetReviews)
	reviews.Post("/", middleware.RequireUserType(models.TypeUser), reviewController.CreateReview)
	reviews.Put("/", middleware.RequireUserType(models.TypeUser), reviewController.UpdateReview)

	profile := app.Group("/profile", middleware.Protected())
	profile.Get("/", profileController.GetProfile)
	profile.Patch("/", profileController.UpdateProfile)

	app.Get("/workers", middleware.Protected(), directoryController.ListWorkers)
}
