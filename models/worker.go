package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringList is a list of strings stored as JSON in a text column.
type StringList []string

// Value implements the driver.Valuer interface
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal StringList: unsupported type %T", value)
	}

	return json.Unmarshal(data, s)
}

// BookingIDList is a list of booking IDs stored as JSON in a text column.
type BookingIDList []uint

// Value implements the driver.Valuer interface
func (l BookingIDList) Value() (driver.Value, error) {
	if l == nil {
		l = BookingIDList{}
	}
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *BookingIDList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal BookingIDList: unsupported type %T", value)
	}

	return json.Unmarshal(data, l)
}

// Contains reports whether a booking ID is already present.
func (l BookingIDList) Contains(bookingID uint) bool {
	for _, id := range l {
		if id == bookingID {
			return true
		}
	}
	return false
}

type Worker struct {
	gorm.Model
	UserID        uint          `json:"user_id" gorm:"uniqueIndex"`
	User          User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Skills        StringList    `json:"skills" gorm:"type:text"`
	Availability  bool          `json:"availability" gorm:"default:true"`
	PricePerHour  float64       `json:"pricePerHour"`
	TimeSlots     WeekSchedule  `json:"timeSlots" gorm:"type:text"`
	Rating        float64       `json:"rating"`
	Reviews       []Review      `json:"reviews,omitempty" gorm:"foreignKey:WorkerID"`
	Verified      bool          `json:"verified" gorm:"default:false"`
	CompletedJobs uint          `json:"completedJobs"`
	WorkHistory   BookingIDList `json:"workHistory" gorm:"type:text"`
}

func (w *Worker) BeforeCreate(tx *gorm.DB) error {
	if w.TimeSlots == nil {
		w.TimeSlots = DefaultWeekSchedule()
	}
	if w.Skills == nil {
		w.Skills = StringList{}
	}
	if w.WorkHistory == nil {
		w.WorkHistory = BookingIDList{}
	}
	return nil
}

// NewDefaultWorker builds the worker profile created lazily for a Worker
// user that has none yet.
func NewDefaultWorker(userID uint) Worker {
	return Worker{
		UserID:       userID,
		Skills:       StringList{},
		Availability: true,
		TimeSlots:    DefaultWeekSchedule(),
		Rating:       0,
		Verified:     false,
		WorkHistory:  BookingIDList{},
	}
}

// RecomputeRating reloads every review for the worker and sets Rating to
// the arithmetic mean of their ratings, 0 when there are none. The full
// list is recomputed on each call rather than kept as a running average.
func (w *Worker) RecomputeRating(tx *gorm.DB) error {
	var reviews []Review
	if err := tx.Where("worker_id = ?", w.ID).Find(&reviews).Error; err != nil {
		return err
	}

	var sum float64
	for _, review := range reviews {
		sum += float64(review.Rating)
	}

	rating := 0.0
	if len(reviews) > 0 {
		rating = sum / float64(len(reviews))
	}

	w.Rating = rating
	return tx.Model(w).Update("rating", rating).Error
}

// RecordCompletedJob increments the completed-job counter and appends the
// booking to the work history. Safe to call twice with the same booking.
func (w *Worker) RecordCompletedJob(tx *gorm.DB, bookingID uint) error {
	if w.WorkHistory.Contains(bookingID) {
		return nil
	}

	w.CompletedJobs++
	w.WorkHistory = append(w.WorkHistory, bookingID)
	return tx.Model(w).Updates(map[string]interface{}{
		"completed_jobs": w.CompletedJobs,
		"work_history":   w.WorkHistory,
	}).Error
}

// AvailableToday reports whether the worker can take jobs on the given day.
// Both the general availability flag and that weekday's schedule entry must
// allow it.
func (w *Worker) AvailableToday(now time.Time) bool {
	if !w.Availability {
		return false
	}
	day, ok := w.TimeSlots[WeekdayKey(now)]
	return ok && day.Available
}

// ExperienceYears derives a display experience value from stored fields:
// one year per ten completed jobs (at least one), plus a bonus for workers
// rated above 4.5, capped at fifteen.
func (w *Worker) ExperienceYears() int {
	years := int(w.CompletedJobs) / 10
	if years < 1 {
		years = 1
	}
	if w.Rating > 4.5 {
		years += 2
	}
	if years > 15 {
		years = 15
	}
	return years
}
