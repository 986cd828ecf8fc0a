package models

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	WorkerID   uint   `json:"worker_id"`
	CustomerID uint   `json:"customer_id"`
	Customer   User   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	BookingID  uint   `json:"booking_id"`
	Rating     int    `json:"rating" gorm:"not null"`
	Comment    string `json:"comment"`
	JobType    string `json:"jobType"`
}

// HasExistingReview checks whether this customer already reviewed the
// booking. Uniqueness is enforced by this lookup before insert, not by a
// database constraint.
func (r *Review) HasExistingReview(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&Review{}).
		Where("customer_id = ? AND booking_id = ? AND deleted_at IS NULL",
			r.CustomerID, r.BookingID).
		Count(&count).Error

	return count > 0, err
}
