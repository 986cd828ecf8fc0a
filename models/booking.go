package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentUPI          PaymentMethod = "upi"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// ValidUrgency reports whether the value is one of the accepted urgency levels.
func ValidUrgency(u Urgency) bool {
	return u == UrgencyNormal || u == UrgencyUrgent || u == UrgencyEmergency
}

// ValidPaymentMethod reports whether the value is one of the accepted payment methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentUPI || m == PaymentBankTransfer
}

// ValidBookingStatus reports whether the value is a known booking status.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	gorm.Model
	CustomerID     uint          `json:"customer_id"`
	Customer       User          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	WorkerID       uint          `json:"worker_id"`
	Worker         Worker        `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	ServiceType    string        `json:"serviceType"`
	JobDescription string        `json:"jobDescription"`
	ScheduledTime  time.Time     `json:"scheduledTime"`
	Urgency        Urgency       `json:"urgency" gorm:"default:normal"`
	PaymentMethod  PaymentMethod `json:"paymentMethod" gorm:"default:cash"`
	PaymentStatus  PaymentStatus `json:"paymentStatus" gorm:"default:pending"`
	Status         BookingStatus `json:"status" gorm:"default:pending"`
	HasReview      bool          `json:"hasReview" gorm:"default:false"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = PaymentPending
	}
	if b.Urgency == "" {
		b.Urgency = UrgencyNormal
	}
	if b.PaymentMethod == "" {
		b.PaymentMethod = PaymentCash
	}
	return nil
}

// UpdateStatus validates the requested transition against the booking
// lifecycle and persists the new status. Role gating (who may request which
// transition) is checked by the caller before this runs.
func (b *Booking) UpdateStatus(tx *gorm.DB, newStatus BookingStatus) error {
	switch b.Status {
	case StatusPending:
		if newStatus != StatusAccepted && newStatus != StatusRejected && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusAccepted:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from accepted to %s", newStatus)
		}
	default:
		return fmt.Errorf("no transitions allowed from %s", b.Status)
	}

	b.Status = newStatus
	return tx.Save(b).Error
}

// MarkPaid moves the payment status to paid. Only completed bookings can be
// paid, and there is no way back to pending.
func (b *Booking) MarkPaid(tx *gorm.DB) error {
	if b.Status != StatusCompleted {
		return fmt.Errorf("payment status can only be updated for completed bookings")
	}

	b.PaymentStatus = PaymentPaid
	return tx.Model(b).Update("payment_status", PaymentPaid).Error
}
