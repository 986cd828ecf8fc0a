package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&User{}, &Worker{}, &Booking{}, &Review{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestBookingDefaults(t *testing.T) {
	db := setupTestDB(t)

	booking := Booking{
		CustomerID:     1,
		WorkerID:       1,
		ServiceType:    "Electrical",
		JobDescription: "Fix the wiring",
		ScheduledTime:  time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&booking).Error)

	assert.Equal(t, StatusPending, booking.Status)
	assert.Equal(t, PaymentPending, booking.PaymentStatus)
	assert.Equal(t, UrgencyNormal, booking.Urgency)
	assert.Equal(t, PaymentCash, booking.PaymentMethod)
	assert.False(t, booking.HasReview)
}

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		wantErr bool
	}{
		{"pending to accepted", StatusPending, StatusAccepted, false},
		{"pending to rejected", StatusPending, StatusRejected, false},
		{"pending to cancelled", StatusPending, StatusCancelled, false},
		{"pending to completed", StatusPending, StatusCompleted, true},
		{"accepted to completed", StatusAccepted, StatusCompleted, false},
		{"accepted to cancelled", StatusAccepted, StatusCancelled, false},
		{"accepted to rejected", StatusAccepted, StatusRejected, true},
		{"rejected is terminal", StatusRejected, StatusAccepted, true},
		{"completed is terminal", StatusCompleted, StatusCancelled, true},
		{"cancelled is terminal", StatusCancelled, StatusAccepted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			booking := Booking{
				CustomerID:     1,
				WorkerID:       1,
				ServiceType:    "Plumbing",
				JobDescription: "Leaking tap",
				ScheduledTime:  time.Now(),
				Status:         tt.from,
			}
			require.NoError(t, db.Create(&booking).Error)

			err := booking.UpdateStatus(db, tt.to)
			if tt.wantErr {
				assert.Error(t, err)
				var stored Booking
				require.NoError(t, db.First(&stored, booking.ID).Error)
				assert.Equal(t, tt.from, stored.Status, "status must not change on rejected transition")
			} else {
				assert.NoError(t, err)
				var stored Booking
				require.NoError(t, db.First(&stored, booking.ID).Error)
				assert.Equal(t, tt.to, stored.Status)
			}
		})
	}
}

func TestMarkPaidRequiresCompleted(t *testing.T) {
	db := setupTestDB(t)

	booking := Booking{
		CustomerID:     1,
		WorkerID:       1,
		ServiceType:    "Repair",
		JobDescription: "Broken door",
		ScheduledTime:  time.Now(),
		Status:         StatusAccepted,
	}
	require.NoError(t, db.Create(&booking).Error)

	assert.Error(t, booking.MarkPaid(db), "payment must be rejected before completion")

	require.NoError(t, booking.UpdateStatus(db, StatusCompleted))
	require.NoError(t, booking.MarkPaid(db))

	var stored Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, PaymentPaid, stored.PaymentStatus)
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidUrgency(UrgencyNormal))
	assert.True(t, ValidUrgency(UrgencyEmergency))
	assert.False(t, ValidUrgency("asap"))

	assert.True(t, ValidPaymentMethod(PaymentUPI))
	assert.False(t, ValidPaymentMethod("cheque"))

	assert.True(t, ValidBookingStatus(StatusCancelled))
	assert.False(t, ValidBookingStatus("archived"))
}
