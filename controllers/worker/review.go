package worker

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

// GetReviews returns the authenticated worker's reviews together with
// aggregate stats and a per-star breakdown.
func (rc *ReviewController) GetReviews(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var worker models.Worker
	if err := rc.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Worker profile not found",
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

	breakdown := map[int]int{5: 0, 4: 0, 3: 0, 2: 0, 1: 0}
	formatted := make([]fiber.Map, 0, len(reviews))
	for _, review := range reviews {
		customerName := review.Customer.Name
		if customerName == "" {
			customerName = "Anonymous Customer"
		}
		formatted = append(formatted, fiber.Map{
			"rating":       review.Rating,
			"comment":      review.Comment,
			"customerName": customerName,
			"jobType":      review.JobType,
			"createdAt":    review.CreatedAt,
		})
		if review.Rating >= 1 && review.Rating <= 5 {
			breakdown[review.Rating]++
		}
	}

	return c.JSON(fiber.Map{
		"reviews": formatted,
		"stats": fiber.Map{
			"totalReviews":    len(reviews),
			"averageRating":   worker.Rating,
			"ratingBreakdown": breakdown,
		},
	})
}
