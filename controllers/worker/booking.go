package worker

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workerbuddy/workerbuddy-api/models"
	"github.com/workerbuddy/workerbuddy-api/utils"
)

type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

// GetBookings lists bookings assigned to the authenticated worker.
func (bc *BookingController) GetBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var worker models.Worker
	if err := bc.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Worker profile not found",
		})
	}

	var bookings []models.Booking
	if err := bc.DB.Preload("Customer", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, phone")
	}).Where("worker_id = ?", worker.ID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	formatted := make([]fiber.Map, 0, len(bookings))
	for _, booking := range bookings {
		formatted = append(formatted, fiber.Map{
			"id":             booking.ID,
			"customerName":   booking.Customer.Name,
			"customerEmail":  booking.Customer.Email,
			"customerPhone":  booking.Customer.Phone,
			"serviceType":    booking.ServiceType,
			"status":         booking.Status,
			"paymentStatus":  booking.PaymentStatus,
			"urgency":        booking.Urgency,
			"scheduledTime":  booking.ScheduledTime,
			"jobDescription": booking.JobDescription,
			"createdAt":      booking.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"bookings": formatted,
	})
}

type UpdateBookingStatusInput struct {
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

// UpdateBookingStatus applies worker-side transitions: accept or reject a
// pending booking, or mark a completed booking as paid. Completion itself
// is attested by the customer, never the worker.
func (bc *BookingController) UpdateBookingStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var worker models.Worker
	if err := bc.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Worker profile not found",
		})
	}

	input := new(UpdateBookingStatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	bookingID := c.Params("id")
	var booking models.Booking
	if err := bc.DB.Where("id = ? AND worker_id = ?", bookingID, worker.ID).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Booking not found",
		})
	}

	if input.PaymentStatus != "" {
		if input.PaymentStatus != models.PaymentPaid {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid payment status. Only paid can be set",
			})
		}
		if err := booking.MarkPaid(bc.DB); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Payment status can only be updated for completed bookings",
			})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Booking status updated successfully",
			"booking": fiber.Map{
				"id":            booking.ID,
				"status":        booking.Status,
				"paymentStatus": booking.PaymentStatus,
			},
		})
	}

	if !models.ValidBookingStatus(input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status",
		})
	}

	if input.Status != models.StatusAccepted && input.Status != models.StatusRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Workers can only accept or reject bookings",
		})
	}

	if err := booking.UpdateStatus(bc.DB, input.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	bc.notifyStatusChange(&booking)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Booking status updated successfully",
		"booking": fiber.Map{
			"id":     booking.ID,
			"status": booking.Status,
		},
	})
}

func (bc *BookingController) notifyStatusChange(booking *models.Booking) {
	var customer models.User
	if err := bc.DB.First(&customer, booking.CustomerID).Error; err != nil {
		return
	}

	subject := "Booking Accepted"
	line := "Your booking has been accepted. The worker will arrive at the scheduled time."
	if booking.Status == models.StatusRejected {
		subject = "Booking Rejected"
		line = "Unfortunately your booking was rejected. You can book another worker from the directory."
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Scheduled Time:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The WorkerBuddy Team</p>
	`, customer.Name, line, booking.ServiceType,
		booking.ScheduledTime.Format("2006-01-02 15:04:05"))

	utils.SendEmailAsync(customer.Email, subject, body)
}
