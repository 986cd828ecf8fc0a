package worker

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workerbuddy/workerbuddy-api/models"
)

func TestWorkerAcceptAndRejectBookings(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db)

	customer := createUser(t, db, "Alice", "alice@example.com", models.TypeUser)
	workerUser := createUser(t, db, "Bob", "bob@example.com", models.TypeWorker)
	worker := createWorkerProfile(t, db, workerUser.ID)
	token := signToken(t, workerUser)

	for _, status := range []models.BookingStatus{models.StatusAccepted, models.StatusRejected} {
		booking := models.Booking{
			CustomerID:     customer.ID,
			WorkerID:       worker.ID,
			ServiceType:    "Plumbing",
			JobDescription: "Fix sink",
			ScheduledTime:  time.Now().Add(24 * time.Hour),
		}
		require.NoError(t, db.Create(&booking).Error)

		resp := doRequest(t, app, fiber.MethodPatch, fmt.Sprintf("/worker/bookings/%d", booking.ID), token, fiber.Map{
			"status": status,
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var stored models.Booking
		require.NoError(t, db.First(&stored, booking.ID).Error)
		assert.Equal(t, status, stored.Status)
	}
}

func TestWorkerCannotCompleteOrCancel(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db)

	customer := createUser(t, db, "Alice", "alice@example.com", models.TypeUser)
	workerUser := createUser(t, db, "Bob", "bob@example.com", models.TypeWorker)
	worker := createWorkerProfile(t, db, workerUser.ID)
	token := signToken(t, workerUser)

	booking := models.Booking{
		CustomerID:     customer.ID,
		WorkerID:       worker.ID,
		ServiceType:    "Plumbing",
		JobDescription: "Fix sink",
		ScheduledTime:  time.Now(),
		Status:         models.StatusAccepted,
	}
	require.NoError(t, db.Create(&booking).Error)

	for _, status := range []string{"completed", "cancelled"} {
		resp := doRequest(t, app, fiber.MethodPatch, fmt.Sprintf("/worker/bookings/%d", booking.ID), token, fiber.Map{
			"status": status,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Workers can only accept or reject bookings", decodeBody(t, resp)["message"])
	}

	resp := doRequest(t, app, fiber.MethodPatch, fmt.Sprintf("/worker/bookings/%d", booking.ID), token, fiber.Map{
		"status": "archived",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid status", decodeBody(t, resp)["message"])
}

func TestWorkerCannotTouchOthersBookings(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db)

	customer := createUser(t, db, "Alice", "alice@example.com", models.TypeUser)
	ownerUser := createUser(t, db, "Bob", "bob@example.com", models.TypeWorker)
	owner := createWorkerProfile(t, db, ownerUser.ID)
	otherUser := createUser(t, db, "Charlie", "charlie@example.com", models.TypeWorker)
	createWorkerProfile(t, db, otherUser.ID)

	booking := models.Booking{
		CustomerID:     customer.ID,
		WorkerID:       owner.ID,
		ServiceType:    "Plumbing",
		JobDescription: "Fix sink",
		ScheduledTime:  time.Now(),
	}
	require.NoError(t, db.Create(&booking).Error)

	resp := doRequest(t, app, fiber.MethodPatch, fmt.Sprintf("/worker/bookings/%d", booking.ID), signToken(t, otherUser), fiber.Map{
		"status": "accepted",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Booking not found", decodeBody(t, resp)["message"])

	var stored models.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestWorkerRejectedTransitionSurfacesError(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db)

	customer := createUser(t, db, "Alice", "alice@example.com", models.TypeUser)
	workerUser := createUser(t, db, "Bob", "bob@example.com", models.TypeWorker)
	worker := createWorkerProfile(t, db, workerUser.ID)
	token := signToken(t, workerUser)

	booking := models.Booking{
		CustomerID:     customer.ID,
		WorkerID:       worker.ID,
		ServiceType:    "Plumbing",
		JobDescription: "Fix sink",
		ScheduledTime:  time.Now(),
		Status:         models.StatusRejected,
	}
	require.NoError(t, db.Create(&booking).Error)

	resp := doRequest(t, app, fiber.MethodPatch, fmt.Sprintf("/worker/bookings/%d", booking.ID), token, fiber.Map{
		"status": "accepted",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWorkerMarksCompletedBookingPaid(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db)

	customer := createUser(t, db, "Alice", "alice@example.com", models.TypeUser)
	workerUser := createUser(t, db, "Bob", "bob@example.com", models.TypeWorker)
	worker := createWorkerProfile(t, db, workerUser.ID)
	token := signToken(t, workerUser)

	booking := models.Booking{
		CustomerID:     customer.ID,
		WorkerID:       worker.ID,
		ServiceType:    "Plumbing",
		JobDescription: "Fix sink",
		ScheduledTime:  time.Now(),
		Status:         models.StatusAccepted,
	}
	require.NoError(t, db.Create(&booking).Error)

	resp := doRequest(t, app, fiber.MethodPatch, fmt.Sprintf("/worker/bookings/%d", booking.ID), token, fiber.Map{
		"paymentStatus": "paid",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Payment status can only be updated for completed bookings", decodeBody(t, resp)["message"])

	require.NoError(t, db.Model(&booking).Update("status", models.StatusCompleted).Error)
	booking.Status = models.StatusCompleted

	resp = doRequest(t, app, fiber.MethodPatch, fmt.Sprintf("/worker/bookings/%d", booking.ID), token, fiber.Map{
		"paymentStatus": "paid",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
}

func TestWorkerGetBookings(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db)

	customer := createUser(t, db, "Alice", "alice@example.com", models.TypeUser)
	workerUser := createUser(t, db, "Bob", "bob@example.com", models.TypeWorker)
	worker := createWorkerProfile(t, db, workerUser.ID)
	token := signToken(t, workerUser)

	booking := models.Booking{
		CustomerID:     customer.ID,
		WorkerID:       worker.ID,
		ServiceType:    "Plumbing",
		JobDescription: "Fix sink",
		ScheduledTime:  time.Now().Add(24 * time.Hour),
		Urgency:        models.UrgencyEmergency,
	}
	require.NoError(t, db.Create(&booking).Error)

	resp := doRequest(t, app, fiber.MethodGet, "/worker/bookings", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	bookings := body["bookings"].([]interface{})
	require.Len(t, bookings, 1)

	row := bookings[0].(map[string]interface{})
	assert.Equal(t, "Alice", row["customerName"])
	assert.Equal(t, "alice@example.com", row["customerEmail"])
	assert.Equal(t, "emergency", row["urgency"])
}

func TestWorkerBookingsRequireProfile(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db)

	workerUser := createUser(t, db, "Bob", "bob@example.com", models.TypeWorker)
	token := signToken(t, workerUser)

	resp := doRequest(t, app, fiber.MethodGet, "/worker/bookings", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Worker profile not found", decodeBody(t, resp)["message"])
}

func TestWorkerRoutesRejectCustomers(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db)

	customer := createUser(t, db, "Alice", "alice@example.com", models.TypeUser)
	token := signToken(t, customer)

	resp := doRequest(t, app, fiber.MethodGet, "/worker/bookings", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied", decodeBody(t, resp)["message"])
}
