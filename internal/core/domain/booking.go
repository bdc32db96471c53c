package domain

import (
	"strconv"

	"github.com/estaraht/admin-dashboard/internal/core/json_types"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}

func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// The status dropdown allows any value at any time.
var bookingTransitions = anyToAny(BookingStatuses)

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	return allowed(bookingTransitions, s, to)
}

type BookingDoctor struct {
	DoctorID       string  `json:"doctor_id"`
	FullName       *string `json:"full_name"`
	Email          *string `json:"email"`
	Specialization *string `json:"specialization"`
	ProfileImgURL  *string `json:"profile_img_url"`
}

type BookingPatient struct {
	ID            string  `json:"id"`
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	ProfileImgURL *string `json:"profile_img_url"`
}

type Booking struct {
	ID          int64                `json:"id"`
	CreatedAt   json_types.Timestamp `json:"created_at"`
	DoctorID    string               `json:"doctor_id"`
	PatientID   string               `json:"patient_id"`
	BookingDate string               `json:"booking_date"`
	BookingTime string               `json:"booking_time"`
	Status      BookingStatus        `json:"status"`
	Doctor      *BookingDoctor       `json:"doctor,omitempty"`
	Patient     *BookingPatient      `json:"patient,omitempty"`
}

func (b Booking) Key() string {
	return strconv.FormatInt(b.ID, 10)
}

func (b Booking) DoctorName() string {
	if b.Doctor == nil {
		return ""
	}
	return deref(b.Doctor.FullName)
}

func (b Booking) PatientName() string {
	if b.Patient == nil {
		return ""
	}
	return deref(b.Patient.Name)
}

// SearchText is the bookings-list searchable string.
func (b Booking) SearchText() string {
	return SearchText(b.DoctorName(), b.PatientName(), b.BookingDate)
}

// DoctorScopedSearchText is used on a doctor's profile, where the doctor is fixed.
func (b Booking) DoctorScopedSearchText() string {
	return SearchText(b.PatientName(), b.BookingDate, b.BookingTime)
}

// PatientScopedSearchText is used on a patient's profile.
func (b Booking) PatientScopedSearchText() string {
	return SearchText(b.DoctorName(), b.BookingDate, b.BookingTime)
}

// BookingStatusCounts counts by literal status string. Unknown values
// land in Other so the four named counters plus Other equal the total.
type BookingStatusCounts struct {
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Other     int `json:"other"`
	Total     int `json:"total"`
}

func CountBookings(bookings []Booking) BookingStatusCounts {
	var c BookingStatusCounts
	for _, b := range bookings {
		switch b.Status {
		case BookingPending:
			c.Pending++
		case BookingConfirmed:
			c.Confirmed++
		case BookingCompleted:
			c.Completed++
		case BookingCancelled:
			c.Cancelled++
		default:
			c.Other++
		}
	}
	c.Total = len(bookings)
	return c
}

type BookingDraft struct {
	DoctorID    string `json:"doctor_id"`
	PatientID   string `json:"patient_id"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
}

type BookingPayload struct {
	DoctorID    string        `json:"doctor_id"`
	PatientID   string        `json:"patient_id"`
	BookingDate string        `json:"booking_date"`
	BookingTime string        `json:"booking_time"`
	Status      BookingStatus `json:"status"`
}

// Payload always creates a pending booking.
func (d BookingDraft) Payload() BookingPayload {
	return BookingPayload{
		DoctorID:    d.DoctorID,
		PatientID:   d.PatientID,
		BookingDate: d.BookingDate,
		BookingTime: d.BookingTime,
		Status:      BookingPending,
	}
}

type Availability struct {
	ID          string               `json:"id"`
	DoctorID    string               `json:"doctor_id"`
	DayNumber   int                  `json:"day_number"`
	TimeSlots   []string             `json:"time_slots"`
	IsAvailable *bool                `json:"is_available,omitempty"`
	CreatedAt   json_types.Timestamp `json:"created_at"`
}
