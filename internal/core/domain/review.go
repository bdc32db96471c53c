package domain

import (
	"fmt"

	"github.com/estaraht/admin-dashboard/internal/core/json_types"
)

type ReviewPatient struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

type ReviewDoctor struct {
	DoctorID string  `json:"doctor_id"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

type Review struct {
	ID        string               `json:"id"`
	BookingID string               `json:"booking_id"`
	PatientID string               `json:"patient_id"`
	DoctorID  string               `json:"doctor_id"`
	Rating    string               `json:"rating"`
	Comment   string               `json:"comment"`
	CreatedAt json_types.Timestamp `json:"created_at"`
	Patient   *ReviewPatient       `json:"patients,omitempty"`
	Doctor    *ReviewDoctor        `json:"doctors,omitempty"`
}

// RatingValue decodes the string-encoded rating; garbage counts as 0.
func (r Review) RatingValue() int {
	return parseIntOrZero(r.Rating)
}

func (r Review) SearchText() string {
	return SearchText(r.Comment, r.Rating, r.BookingID, r.PatientID, r.DoctorID)
}

type ReviewStats struct {
	Total         int    `json:"total"`
	AverageRating string `json:"averageRating"`
}

func SummarizeReviews(reviews []Review) ReviewStats {
	if len(reviews) == 0 {
		return ReviewStats{AverageRating: "0.00"}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.RatingValue()
	}
	return ReviewStats{
		Total:         len(reviews),
		AverageRating: fmt.Sprintf("%.2f", float64(sum)/float64(len(reviews))),
	}
}
