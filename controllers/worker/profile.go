package worker

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workerbuddy/workerbuddy-api/models"
	"github.com/workerbuddy/workerbuddy-api/utils"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// GetWorkerProfile returns the authenticated worker's combined user and
// worker record, creating a default worker profile on first access.
func (pc *ProfileController) GetWorkerProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	worker, err := pc.findOrCreateWorker(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch profile",
			Error:   err.Error(),
		})
	}

	return c.JSON(workerProfileResponse("", &user, worker))
}

type UpdateWorkerProfileInput struct {
	Name         *string              `json:"name"`
	Phone        *string              `json:"phone"`
	Pincode      *string              `json:"pincode"`
	Address      *string              `json:"address"`
	Skills       *models.StringList   `json:"skills"`
	Availability *bool                `json:"availability"`
	TimeSlots    *models.WeekSchedule `json:"timeSlots"`
	PricePerHour *float64             `json:"pricePerHour"`
}

// UpdateWorkerProfile updates the worker's skills, availability and
// schedule together with the linked user's contact fields.
func (pc *ProfileController) UpdateWorkerProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(UpdateWorkerProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Pincode != nil {
		user.Pincode = *input.Pincode
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if err := pc.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}

	worker, err := pc.findOrCreateWorker(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}

	if input.Skills != nil {
		worker.Skills = *input.Skills
	}
	if input.Availability != nil {
		worker.Availability = *input.Availability
	}
	if input.TimeSlots != nil {
		worker.TimeSlots = *input.TimeSlots
	}
	if input.PricePerHour != nil {
		worker.PricePerHour = *input.PricePerHour
	}
	if err := pc.DB.Save(worker).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}

	return c.JSON(workerProfileResponse("Profile updated successfully", &user, worker))
}

// findOrCreateWorker lazily creates the default worker profile on first
// worker-profile access, matching registration's behavior for accounts that
// predate it.
func (pc *ProfileController) findOrCreateWorker(userID uint) (*models.Worker, error) {
	var worker models.Worker
	err := pc.DB.Where("user_id = ?", userID).First(&worker).Error
	if err == nil {
		return &worker, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	worker = models.NewDefaultWorker(userID)
	if err := pc.DB.Create(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

func workerProfileResponse(message string, user *models.User, worker *models.Worker) fiber.Map {
	response := fiber.Map{
		"user": fiber.Map{
			"name":    user.Name,
			"email":   user.Email,
			"phone":   user.Phone,
			"pincode": user.Pincode,
			"address": user.Address,
		},
		"worker": fiber.Map{
			"skills":        worker.Skills,
			"availability":  worker.Availability,
			"timeSlots":     worker.TimeSlots,
			"rating":        worker.Rating,
			"verified":      worker.Verified,
			"completedJobs": worker.CompletedJobs,
			"workHistory":   worker.WorkHistory,
			"pricePerHour":  worker.PricePerHour,
		},
	}
	if message != "" {
		response["message"] = message
	}
	return response
}
