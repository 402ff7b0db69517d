package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
	"github.com/nattapon-dev/learnhub_backend/notifications"
	ws "github.com/nattapon-dev/learnhub_backend/websocket"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errUserNotFound      = errors.New("user not found")
	errScheduleNotFound  = errors.New("schedule not found")
	errAlreadyBooked     = errors.New("user already booked this schedule")
	errNoAvailableSeats  = errors.New("no available seats for onsite booking")
	errIllegalTransition = errors.New("illegal booking status transition")
)

type CreateBookingRequest struct {
	UserID       string  `json:"user_id" validate:"required,uuid"`
	ScheduleID   string  `json:"schedule_id" validate:"required,uuid"`
	LearningMode string  `json:"learning_mode" validate:"required,oneof=ONLINE ONSITE HYBRID"`
	Notes        *string `json:"notes"`
}

func CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID, _ := uuid.Parse(req.UserID)
	scheduleID, _ := uuid.Parse(req.ScheduleID)

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ? AND is_active = ?", userID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}

		// The schedule row lock serializes concurrent admissions for the
		// same schedule: duplicate check, seat count and insert all happen
		// before any competing request can read the same state.
		var schedule models.Schedule
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&schedule, "id = ?", scheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errScheduleNotFound
			}
			return err
		}

		var existing models.Booking
		err := tx.Where("user_id = ? AND schedule_id = ?", userID, scheduleID).
			Take(&existing).Error
		if err == nil {
			return errAlreadyBooked
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if req.LearningMode == models.LearningModeOnsite && schedule.MaxOnsiteSeats != nil {
			var confirmedOnsite int64
			if err := tx.Model(&models.Booking{}).
				Where("schedule_id = ? AND learning_mode = ? AND status = ?",
					scheduleID, models.LearningModeOnsite, models.BookingConfirmed).
				Count(&confirmedOnsite).Error; err != nil {
				return err
			}
			if confirmedOnsite >= int64(*schedule.MaxOnsiteSeats) {
				return errNoAvailableSeats
			}
		}

		now := time.Now()
		booking = models.Booking{
			UserID:       userID,
			ScheduleID:   scheduleID,
			LearningMode: req.LearningMode,
			Status:       models.BookingPending,
			BookingDate:  &now,
			Notes:        req.Notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			// Unique index on (user_id, schedule_id) backstops the
			// duplicate check against writers outside this code path.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyBooked
			}
			return err
		}
		return nil
	})

	if err != nil {
		return bookingErrorResponse(c, err)
	}

	ws.PublishBookingEvent(&booking)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":            booking.ID,
		"status":        booking.Status,
		"learning_mode": booking.LearningMode,
		"message":       "Booking created successfully",
	})
}

func GetBooking(c *fiber.Ctx) error {
	bookingID := c.Params("id")
	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	return c.JSON(booking)
}

func GetBookingsByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var bookings []models.Booking
	database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&bookings)

	return c.JSON(fiber.Map{
		"data":    bookings,
		"total":   len(bookings),
		"user_id": userID,
	})
}

func GetBookingsBySchedule(c *fiber.Ctx) error {
	scheduleID := c.Params("scheduleId")

	var schedule models.Schedule
	if err := database.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}

	var bookings []models.Booking
	database.DB.Where("schedule_id = ?", scheduleID).Order("created_at desc").Find(&bookings)

	return c.JSON(fiber.Map{
		"data":        bookings,
		"total":       len(bookings),
		"schedule_id": scheduleID,
	})
}

// legalTransitions is the booking status state machine. Anything not listed
// here is rejected with a conflict.
var legalTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func transitionBooking(c *fiber.Ctx, target, message string) error {
	bookingID := c.Params("id")

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return err
		}

		if !transitionAllowed(booking.Status, target) {
			return errIllegalTransition
		}

		// Confirming an onsite booking consumes a seat, so the capacity
		// check has to run again here under the schedule lock. Admission
		// only counts CONFIRMED bookings and any number of PENDING onsite
		// requests may be waiting.
		if target == models.BookingConfirmed && booking.LearningMode == models.LearningModeOnsite {
			var schedule models.Schedule
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&schedule, "id = ?", booking.ScheduleID).Error; err != nil {
				return err
			}
			if schedule.MaxOnsiteSeats != nil {
				var confirmedOnsite int64
				if err := tx.Model(&models.Booking{}).
					Where("schedule_id = ? AND learning_mode = ? AND status = ?",
						booking.ScheduleID, models.LearningModeOnsite, models.BookingConfirmed).
					Count(&confirmedOnsite).Error; err != nil {
					return err
				}
				if confirmedOnsite >= int64(*schedule.MaxOnsiteSeats) {
					return errNoAvailableSeats
				}
			}
		}

		booking.Status = target
		return tx.Save(&booking).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	ws.PublishBookingEvent(&booking)

	if target == models.BookingConfirmed {
		var user models.User
		if err := database.DB.First(&user, "id = ?", booking.UserID).Error; err == nil {
			go notifications.SendEmail("", user.Email, "Your Booking is Confirmed!",
				"<h1>Booking Confirmed</h1><p>Your seat has been confirmed. See you in class.</p>")
		}
	}

	return c.JSON(fiber.Map{
		"id":      booking.ID,
		"status":  booking.Status,
		"message": message,
	})
}

func ConfirmBooking(c *fiber.Ctx) error {
	return transitionBooking(c, models.BookingConfirmed, "Booking confirmed")
}

func CancelBooking(c *fiber.Ctx) error {
	return transitionBooking(c, models.BookingCancelled, "Booking cancelled")
}

func CompleteBooking(c *fiber.Ctx) error {
	return transitionBooking(c, models.BookingCompleted, "Booking completed")
}

func GetBookingStats(c *fiber.Ctx) error {
	scheduleID := c.Params("scheduleId")

	var schedule models.Schedule
	if err := database.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}

	countWhere := func(query string, args ...interface{}) int64 {
		var n int64
		database.DB.Model(&models.Booking{}).
			Where("schedule_id = ?", scheduleID).
			Where(query, args...).
			Count(&n)
		return n
	}

	var total int64
	database.DB.Model(&models.Booking{}).Where("schedule_id = ?", scheduleID).Count(&total)
	confirmed := countWhere("status = ?", models.BookingConfirmed)
	pending := countWhere("status = ?", models.BookingPending)
	onsite := countWhere("learning_mode = ?", models.LearningModeOnsite)
	online := countWhere("learning_mode = ?", models.LearningModeOnline)

	var availableSeats *int64
	if schedule.MaxOnsiteSeats != nil {
		seats := int64(*schedule.MaxOnsiteSeats) - onsite
		if seats < 0 {
			seats = 0
		}
		availableSeats = &seats
	}

	return c.JSON(fiber.Map{
		"total":           total,
		"confirmed":       confirmed,
		"pending":         pending,
		"onsite":          onsite,
		"online":          online,
		"available_seats": availableSeats,
	})
}

func bookingErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, errScheduleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	case errors.Is(err, errAlreadyBooked):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User already booked this schedule"})
	case errors.Is(err, errNoAvailableSeats):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "No available seats for onsite booking"})
	case errors.Is(err, errIllegalTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Booking status transition not allowed"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process booking"})
	}
}
