package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
)

// requestCode issues a request without touching testing.T, so it is safe to
// call from worker goroutines.
func requestCode(app *fiber.App, method, path string, body []byte) int {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		return 0
	}
	return resp.StatusCode
}

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingConfirmed, models.BookingCompleted, true},
		{models.BookingConfirmed, models.BookingCancelled, true},
		{models.BookingConfirmed, models.BookingConfirmed, false},
		{models.BookingCancelled, models.BookingConfirmed, false},
		{models.BookingCancelled, models.BookingCompleted, false},
		{models.BookingCompleted, models.BookingCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, transitionAllowed(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCreateBookingUserNotFound(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Go Basics")
	schedule := createTestSchedule(t, course.ID, nil)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(uuid.New(), schedule.ID, models.LearningModeOnline))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateBookingScheduleNotFound(t *testing.T) {
	app := setupTestApp(t)

	user := createTestUser(t, uniqueEmail("alice"))

	resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(user.ID, uuid.New(), models.LearningModeOnline))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateBookingDuplicatePair(t *testing.T) {
	app := setupTestApp(t)

	user := createTestUser(t, uniqueEmail("bob"))
	course := createTestCourse(t, "Go Basics")
	schedule := createTestSchedule(t, course.ID, nil)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(user.ID, schedule.ID, models.LearningModeOnline))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(user.ID, schedule.ID, models.LearningModeOnsite))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateBookingInvalidLearningMode(t *testing.T) {
	app := setupTestApp(t)

	user := createTestUser(t, uniqueEmail("carol"))
	course := createTestCourse(t, "Go Basics")
	schedule := createTestSchedule(t, course.ID, nil)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(user.ID, schedule.ID, "REMOTE"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Book and confirm one onsite seat, returning the booking id.
func bookAndConfirm(t *testing.T, app *fiber.App, userID, scheduleID uuid.UUID) string {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(userID, scheduleID, models.LearningModeOnsite))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeBody(t, resp)["id"].(string)

	resp = doRequest(t, app, http.MethodPut, "/api/v1/bookings/"+id+"/confirm", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return id
}

func TestOnsiteSeatCapacity(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Workshop")
	maxSeats := 2
	schedule := createTestSchedule(t, course.ID, &maxSeats)

	a := createTestUser(t, uniqueEmail("seat-a"))
	b := createTestUser(t, uniqueEmail("seat-b"))
	c := createTestUser(t, uniqueEmail("seat-c"))

	bookAndConfirm(t, app, a.ID, schedule.ID)
	bookAndConfirm(t, app, b.ID, schedule.ID)

	// Both seats are taken by confirmed bookings; the third onsite request
	// is refused at admission.
	resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(c.ID, schedule.ID, models.LearningModeOnsite))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// An online booking for the same schedule is not seat-limited.
	resp = doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(c.ID, schedule.ID, models.LearningModeOnline))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/api/v1/bookings/schedule/%s/stats", schedule.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeBody(t, resp)
	assert.EqualValues(t, 3, stats["total"])
	assert.EqualValues(t, 2, stats["confirmed"])
	assert.EqualValues(t, 1, stats["pending"])
	assert.EqualValues(t, 2, stats["onsite"])
	assert.EqualValues(t, 1, stats["online"])
	assert.EqualValues(t, 0, stats["available_seats"])
}

func TestConfirmRechecksCapacity(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Workshop")
	maxSeats := 1
	schedule := createTestSchedule(t, course.ID, &maxSeats)

	a := createTestUser(t, uniqueEmail("over-a"))
	b := createTestUser(t, uniqueEmail("over-b"))

	// Both pending requests are admitted while no seat is consumed yet.
	resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(a.ID, schedule.ID, models.LearningModeOnsite))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	idA := decodeBody(t, resp)["id"].(string)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(b.ID, schedule.ID, models.LearningModeOnsite))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	idB := decodeBody(t, resp)["id"].(string)

	resp = doRequest(t, app, http.MethodPut, "/api/v1/bookings/"+idA+"/confirm", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPut, "/api/v1/bookings/"+idB+"/confirm", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestConcurrentDuplicateBookings(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Workshop")
	schedule := createTestSchedule(t, course.ID, nil)
	user := createTestUser(t, uniqueEmail("race-dup"))

	payload, err := json.Marshal(createBookingRequest(user.ID, schedule.ID, models.LearningModeOnline))
	require.NoError(t, err)

	const workers = 8
	codes := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- requestCode(app, http.MethodPost, "/api/v1/bookings", payload)
		}()
	}
	wg.Wait()
	close(codes)

	created, conflicted := 0, 0
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicted)

	var count int64
	require.NoError(t, database.DB.Model(&models.Booking{}).
		Where("user_id = ? AND schedule_id = ?", user.ID, schedule.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestConcurrentOnsiteConfirms(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Workshop")
	maxSeats := 1
	schedule := createTestSchedule(t, course.ID, &maxSeats)

	// Admission lets any number of PENDING onsite requests in; only confirm
	// consumes the seat.
	const workers = 4
	ids := make([]string, 0, workers)
	for i := 0; i < workers; i++ {
		user := createTestUser(t, uniqueEmail(fmt.Sprintf("race-seat-%d", i)))
		resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
			createBookingRequest(user.ID, schedule.ID, models.LearningModeOnsite))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, decodeBody(t, resp)["id"].(string))
	}

	codes := make(chan int, workers)
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			codes <- requestCode(app, http.MethodPut, "/api/v1/bookings/"+id+"/confirm", nil)
		}(id)
	}
	wg.Wait()
	close(codes)

	confirmed := 0
	for code := range codes {
		switch code {
		case http.StatusOK:
			confirmed++
		case http.StatusConflict:
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, confirmed)

	var confirmedOnsite int64
	require.NoError(t, database.DB.Model(&models.Booking{}).
		Where("schedule_id = ? AND learning_mode = ? AND status = ?",
			schedule.ID, models.LearningModeOnsite, models.BookingConfirmed).
		Count(&confirmedOnsite).Error)
	assert.EqualValues(t, 1, confirmedOnsite)
}

func TestBookingStatusTransitions(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Go Basics")
	schedule := createTestSchedule(t, course.ID, nil)

	newBooking := func(email string) string {
		user := createTestUser(t, uniqueEmail(email))
		resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
			createBookingRequest(user.ID, schedule.ID, models.LearningModeOnline))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		return decodeBody(t, resp)["id"].(string)
	}

	transition := func(id, action string) int {
		resp := doRequest(t, app, http.MethodPut, "/api/v1/bookings/"+id+"/"+action, nil)
		return resp.StatusCode
	}

	// PENDING cannot go straight to COMPLETED.
	id := newBooking("fsm-complete")
	assert.Equal(t, http.StatusConflict, transition(id, "complete"))

	// CANCELLED is terminal.
	id = newBooking("fsm-cancel")
	assert.Equal(t, http.StatusOK, transition(id, "cancel"))
	assert.Equal(t, http.StatusConflict, transition(id, "confirm"))
	assert.Equal(t, http.StatusConflict, transition(id, "complete"))

	// PENDING -> CONFIRMED -> COMPLETED is the happy path, and COMPLETED
	// is terminal.
	id = newBooking("fsm-happy")
	assert.Equal(t, http.StatusOK, transition(id, "confirm"))
	assert.Equal(t, http.StatusConflict, transition(id, "confirm"))
	assert.Equal(t, http.StatusOK, transition(id, "complete"))
	assert.Equal(t, http.StatusConflict, transition(id, "cancel"))
}

func TestTransitionBookingNotFound(t *testing.T) {
	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodPut,
		"/api/v1/bookings/"+uuid.NewString()+"/confirm", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBookingStatsNoSeatLimit(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Lecture")
	schedule := createTestSchedule(t, course.ID, nil)

	user := createTestUser(t, uniqueEmail("nolimit"))
	resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
		createBookingRequest(user.ID, schedule.ID, models.LearningModeOnsite))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/api/v1/bookings/schedule/%s/stats", schedule.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeBody(t, resp)
	assert.EqualValues(t, 1, stats["total"])
	assert.Nil(t, stats["available_seats"])
}

func TestGetBookingsByUser(t *testing.T) {
	app := setupTestApp(t)

	course := createTestCourse(t, "Go Basics")
	s1 := createTestSchedule(t, course.ID, nil)
	s2 := createTestSchedule(t, course.ID, nil)

	user := createTestUser(t, uniqueEmail("lister"))
	for _, s := range []uuid.UUID{s1.ID, s2.ID} {
		resp := doRequest(t, app, http.MethodPost, "/api/v1/bookings",
			createBookingRequest(user.ID, s, models.LearningModeOnline))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/v1/bookings/user/"+user.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 2, body["total"])

	resp = doRequest(t, app, http.MethodGet, "/api/v1/bookings/user/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetBookingNotFound(t *testing.T) {
	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/bookings/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
