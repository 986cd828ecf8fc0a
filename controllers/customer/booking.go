package customer

import (
	"fmt"
	"time"

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

type CreateBookingInput struct {
	WorkerID       uint                 `json:"workerId"`
	ScheduledTime  time.Time            `json:"scheduledTime"`
	JobDescription string               `json:"jobDescription"`
	ServiceType    string               `json:"serviceType"`
	Urgency        models.Urgency       `json:"urgency"`
	PaymentMethod  models.PaymentMethod `json:"paymentMethod"`
}

// CreateBooking creates a pending booking for the authenticated customer.
func (bc *BookingController) CreateBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(CreateBookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.WorkerID == 0 || input.ScheduledTime.IsZero() || input.JobDescription == "" || input.ServiceType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields: workerId, scheduledTime, jobDescription, serviceType",
		})
	}

	if input.Urgency == "" {
		input.Urgency = models.UrgencyNormal
	}
	if !models.ValidUrgency(input.Urgency) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid urgency level. Must be: normal, urgent, or emergency",
		})
	}

	if input.PaymentMethod == "" {
		input.PaymentMethod = models.PaymentCash
	}
	if !models.ValidPaymentMethod(input.PaymentMethod) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid payment method. Must be: cash, card, upi, or bank_transfer",
		})
	}

	var worker models.Worker
	if err := bc.DB.Preload("User").First(&worker, input.WorkerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Worker not found",
		})
	}

	booking := models.Booking{
		CustomerID:     userID,
		WorkerID:       worker.ID,
		ScheduledTime:  input.ScheduledTime,
		JobDescription: input.JobDescription,
		ServiceType:    input.ServiceType,
		Urgency:        input.Urgency,
		PaymentMethod:  input.PaymentMethod,
		Status:         models.StatusPending,
		PaymentStatus:  models.PaymentPending,
	}

	if err := bc.DB.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create booking",
			Error:   err.Error(),
		})
	}

	var customer models.User
	if err := bc.DB.First(&customer, userID).Error; err == nil {
		notifyBookingCreated(&booking, &customer, &worker)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking created successfully",
		"booking": booking,
		"success": true,
	})
}

// GetBookings lists the authenticated customer's bookings, newest first.
func (bc *BookingController) GetBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	query := bc.DB.
		Preload("Worker").
		Preload("Worker.User").
		Where("customer_id = ?", userID).
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	formatted := make([]fiber.Map, 0, len(bookings))
	for _, booking := range bookings {
		category := ""
		if len(booking.Worker.Skills) > 0 {
			category = booking.Worker.Skills[0]
		}
		serviceType := booking.ServiceType
		if serviceType == "" {
			serviceType = category
		}
		location := booking.Worker.User.Pincode
		if location == "" {
			location = "Unknown"
		}

		formatted = append(formatted, fiber.Map{
			"id":             booking.ID,
			"workerId":       booking.WorkerID,
			"workerName":     booking.Worker.User.Name,
			"workerEmail":    booking.Worker.User.Email,
			"workerPhone":    booking.Worker.User.Phone,
			"category":       category,
			"serviceType":    serviceType,
			"location":       location,
			"status":         booking.Status,
			"paymentStatus":  booking.PaymentStatus,
			"urgency":        booking.Urgency,
			"jobDescription": booking.JobDescription,
			"hasReview":      booking.HasReview,
			"scheduledTime":  booking.ScheduledTime,
			"createdAt":      booking.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"bookings": formatted,
	})
}

type UpdateBookingInput struct {
	BookingID     uint                 `json:"bookingId"`
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

// UpdateBooking applies the customer-side transitions: cancel, complete, and
// mark a completed booking as paid.
func (bc *BookingController) UpdateBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(UpdateBookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.BookingID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Booking ID is required",
		})
	}

	var booking models.Booking
	if err := bc.DB.First(&booking, input.BookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Booking not found",
		})
	}

	if booking.CustomerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied",
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
			"message": "Booking updated successfully",
			"booking": booking,
			"success": true,
		})
	}

	switch input.Status {
	case models.StatusCancelled:
		// The record is kept with a terminal cancelled status so the
		// booking history survives cancellation.
		if booking.Status != models.StatusPending && booking.Status != models.StatusAccepted {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Only pending or accepted bookings can be cancelled",
			})
		}
		if err := booking.UpdateStatus(bc.DB, models.StatusCancelled); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to cancel booking",
				Error:   err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message": "Booking cancelled successfully",
			"booking": booking,
			"success": true,
		})

	case models.StatusCompleted:
		if booking.Status != models.StatusAccepted {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Only accepted bookings can be marked as completed",
			})
		}

		// Status change, counter increment and work-history append must land
		// together, so they share one transaction.
		err := bc.DB.Transaction(func(tx *gorm.DB) error {
			if err := booking.UpdateStatus(tx, models.StatusCompleted); err != nil {
				return err
			}

			var worker models.Worker
			if err := tx.First(&worker, booking.WorkerID).Error; err != nil {
				return fmt.Errorf("worker not found: %w", err)
			}
			return worker.RecordCompletedJob(tx, booking.ID)
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to complete booking",
				Error:   err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"message": "Booking updated successfully",
			"booking": booking,
			"success": true,
		})

	case "":
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Nothing to update: provide status or paymentStatus",
		})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Customers can only cancel or complete bookings",
		})
	}
}

func notifyBookingCreated(booking *models.Booking, customer *models.User, worker *models.Worker) {
	details := fmt.Sprintf(`
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Scheduled Time:</strong> %s</li>
			<li><strong>Urgency:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
	`, booking.ServiceType, booking.ScheduledTime.Format("2006-01-02 15:04:05"),
		booking.Urgency, booking.Status)

	customerBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking has been created and is waiting for the worker to accept it.</p>
		%s
		<p>Best regards,</p>
		<p>The WorkerBuddy Team</p>
	`, customer.Name, details)
	utils.SendEmailAsync(customer.Email, "Booking Created", customerBody)

	if worker.User.Email != "" {
		workerBody := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>You have a new booking request from %s.</p>
			%s
			<p>Best regards,</p>
			<p>The WorkerBuddy Team</p>
		`, worker.User.Name, customer.Name, details)
		utils.SendEmailAsync(worker.User.Email, "New Booking Request", workerBody)
	}
}
