package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/workerbuddy/workerbuddy-api/models"
	"github.com/workerbuddy/workerbuddy-api/utils"
)

// StartCronJobs initializes and starts the scheduler for booking reminders.
func StartCronJobs(db *gorm.DB) {
	c := cron.New()
	// Run every minute to check for bookings in the next hour
	_, err := c.AddFunc("* * * * *", func() {
		sendBookingReminders(db)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders emails customers whose accepted bookings are
// scheduled to start in roughly one hour.
func sendBookingReminders(db *gorm.DB) {
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var bookings []models.Booking
	err := db.Preload("Customer").Preload("Worker").Preload("Worker.User").
		Where("status = ? AND scheduled_time BETWEEN ? AND ?", models.StatusAccepted, startWindow, endWindow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		if err := sendReminderEmail(&booking); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.Customer.Email)
	}
}

func sendReminderEmail(booking *models.Booking) error {
	subject := fmt.Sprintf("Reminder: Upcoming Booking - %s", booking.ServiceType)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your booking scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Worker:</strong> %s</li>
			<li><strong>Scheduled Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>If you need to reschedule or cancel, do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>The WorkerBuddy Team</p>
	`, booking.Customer.Name, booking.ServiceType, booking.Worker.User.Name,
		booking.ScheduledTime.Format("2006-01-02 15:04:05"),
		booking.Status)

	return utils.SendEmail(booking.Customer.Email, subject, body)
}
