package domain

import "time"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type TutorProfile struct {
	ID                 int64              `json:"id"`
	UserID             int64              `json:"user_id" validate:"required"`
	FullName           string             `json:"full_name"`
	Bio                string             `json:"bio,omitempty" gorm:"type:text"`
	YearsExperience    int                `json:"years_experience"`
	HourlyRate         int64              `json:"hourly_rate" validate:"gte=0"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	RatingAvg          float64            `json:"rating_avg"`
	RatingCount        int                `json:"rating_count"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// TutorService is a bookable offering: one tutor teaching one subject at a
// fixed rate. Bookings reference it by service_id; the rate is read from here
// at creation time, never from the request.
type TutorService struct {
	ID         int64     `json:"id"`
	TutorID    int64     `json:"tutor_id" validate:"required"`
	SubjectID  int64     `json:"subject_id" validate:"required"`
	HourlyRate int64     `json:"hourly_rate" validate:"gte=0"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
