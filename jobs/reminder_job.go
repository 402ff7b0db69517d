package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
	"github.com/nattapon-dev/learnhub_backend/notifications"
)

func SendScheduleReminders() {
	log.Println("Running job: SendScheduleReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingBookings []models.Booking

	err := database.DB.
		Preload("User").
		Preload("Schedule").
		Joins("JOIN schedules on bookings.schedule_id = schedules.id").
		Where("bookings.status = ? AND schedules.start_time BETWEEN ? AND ?",
			models.BookingConfirmed, lowerBound, upperBound).
		Find(&upcomingBookings).Error

	if err != nil {
		log.Printf("Error checking for upcoming schedules: %v", err)
		return
	}

	if len(upcomingBookings) == 0 {
		return
	}

	for _, booking := range upcomingBookings {
		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		location := "online"
		if booking.Schedule.RoomLocation != nil {
			location = *booking.Schedule.RoomLocation
		}

		emailSubject := "Reminder: Your Class Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Class Reminder</h1><p>Hi there,</p><p>Your class starts at %s (%s).</p>",
			booking.Schedule.StartTime.Format(time.Kitchen),
			location,
		)

		go notifications.SendEmail("", booking.User.Email, emailSubject, emailBody)
	}
}
