package customer

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workerbuddy/workerbuddy-api/models"
	"github.com/workerbuddy/workerbuddy-api/utils"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

type ReviewInput struct {
	BookingID uint   `json:"bookingId"`
	WorkerID  uint   `json:"workerId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	JobType   string `json:"jobType"`
}

// CreateReview adds a review for a completed, paid booking and refreshes
// the worker's aggregate rating.
func (rc *ReviewController) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid review data",
		})
	}

	if input.BookingID == 0 || input.WorkerID == 0 || input.Rating == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields: bookingId, workerId, rating",
		})
	}

	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Rating must be between 1 and 5",
		})
	}

	var booking models.Booking
	if err := rc.DB.First(&booking, input.BookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Booking not found",
		})
	}

	if booking.CustomerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied",
		})
	}

	if booking.Status != models.StatusCompleted || booking.PaymentStatus != models.PaymentPaid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Reviews can only be added for completed and paid bookings",
		})
	}

	var worker models.Worker
	if err := rc.DB.First(&worker, input.WorkerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Worker not found",
		})
	}

	review := models.Review{
		WorkerID:   worker.ID,
		CustomerID: userID,
		BookingID:  booking.ID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		JobType:    input.JobType,
	}
	if review.JobType == "" {
		review.JobType = booking.ServiceType
	}

	hasExisting, err := review.HasExistingReview(rc.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check existing reviews",
			Error:   err.Error(),
		})
	}
	if hasExisting {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Review already exists for this booking",
		})
	}

	// Insert, rating recompute and the hasReview flag move together.
	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		if err := worker.RecomputeRating(tx); err != nil {
			return err
		}
		return tx.Model(&booking).Update("has_review", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create review",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":          "Review added successfully",
		"review":           review,
		"newAverageRating": worker.Rating,
		"success":          true,
	})
}

// UpdateReview edits the caller's existing review for a booking and
// recomputes the mean exactly as on insert.
func (rc *ReviewController) UpdateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid review data",
		})
	}

	if input.BookingID == 0 || input.WorkerID == 0 || input.Rating == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields: bookingId, workerId, rating",
		})
	}

	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Rating must be between 1 and 5",
		})
	}

	var worker models.Worker
	if err := rc.DB.First(&worker, input.WorkerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Worker not found",
		})
	}

	var review models.Review
	if err := rc.DB.Where("worker_id = ? AND customer_id = ? AND booking_id = ?",
		worker.ID, userID, input.BookingID).First(&review).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Review not found",
		})
	}

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&review).Updates(map[string]interface{}{
			"rating":  input.Rating,
			"comment": input.Comment,
		}).Error; err != nil {
			return err
		}
		return worker.RecomputeRating(tx)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update review",
			Error:   err.Error(),
		})
	}

	review.Rating = input.Rating
	review.Comment = input.Comment

	return c.JSON(fiber.Map{
		"message":          "Review updated successfully",
		"review":           review,
		"newAverageRating": worker.Rating,
		"success":          true,
	})
}

// GetReviews lists a worker's reviews and aggregate rating. When a booking
// id is supplied it also reports whether that booking already has a review,
// which drives the add-vs-edit branching on the client.
func (rc *ReviewController) GetReviews(c *fiber.Ctx) error {
	workerID := c.Query("workerId")
	bookingID := c.QueryInt("bookingId")

	if workerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Worker ID is required",
		})
	}

	var worker models.Worker
	if err := rc.DB.First(&worker, workerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Worker not found",
		})
	}

	var reviews []models.Review
	if err := rc.DB.Preload("Customer", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name")
	}).Where("worker_id = ?", worker.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}

	formatted := make([]fiber.Map, 0, len(reviews))
	var bookingReview fiber.Map
	for _, review := range reviews {
		userName := review.Customer.Name
		if userName == "" {
			userName = "Anonymous"
		}
		row := fiber.Map{
			"id":        review.ID,
			"userName":  userName,
			"comment":   review.Comment,
			"rating":    review.Rating,
			"jobType":   review.JobType,
			"createdAt": review.CreatedAt,
			"bookingId": review.BookingID,
		}
		formatted = append(formatted, row)
		if bookingID > 0 && review.BookingID == uint(bookingID) {
			bookingReview = row
		}
	}

	if bookingID > 0 {
		return c.JSON(fiber.Map{
			"hasReview":     bookingReview != nil,
			"review":        bookingReview,
			"reviews":       formatted,
			"averageRating": worker.Rating,
		})
	}

	return c.JSON(fiber.Map{
		"reviews":       formatted,
		"averageRating": worker.Rating,
	})
}
