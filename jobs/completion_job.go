package jobs

import (
	"log"
	"time"

	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
)

// CompleteFinishedBookings flips confirmed bookings of schedules that ended
// a few minutes ago to COMPLETED, the state machine's CONFIRMED→COMPLETED
// edge.
func CompleteFinishedBookings() {
	log.Println("Running job: CompleteFinishedBookings...")

	now := time.Now()
	upperBound := now.Add(-5 * time.Minute)
	lowerBound := now.Add(-15 * time.Minute)

	var finishedBookings []models.Booking

	err := database.DB.
		Joins("JOIN schedules on bookings.schedule_id = schedules.id").
		Where("bookings.status = ? AND schedules.end_time BETWEEN ? AND ?",
			models.BookingConfirmed, lowerBound, upperBound).
		Find(&finishedBookings).Error

	if err != nil {
		log.Printf("Error checking for finished schedules: %v", err)
		return
	}

	if len(finishedBookings) == 0 {
		return
	}

	for _, booking := range finishedBookings {
		booking.Status = models.BookingCompleted
		database.DB.Save(&booking)
	}

	log.Printf("Marked %d booking(s) as completed.", len(finishedBookings))
}
