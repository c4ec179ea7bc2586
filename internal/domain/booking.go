package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCanceled   BookingStatus = "canceled"
	BookingRefunded   BookingStatus = "refunded"
)

// bookingTransitions is the full transition graph. Status changes happen only
// along these edges, including admin edits.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCanceled},
	BookingConfirmed:  {BookingInProgress, BookingCompleted, BookingCanceled},
	BookingInProgress: {BookingCompleted, BookingCanceled},
	BookingCompleted:  {BookingRefunded},
	BookingCanceled:   {},
	BookingRefunded:   {},
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// Terminal reports whether no further transition is defined from s.
func (s BookingStatus) Terminal() bool {
	return s.Valid() && len(bookingTransitions[s]) == 0
}

func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

var bookingStatusOrder = []BookingStatus{
	BookingPending,
	BookingConfirmed,
	BookingInProgress,
	BookingCompleted,
	BookingCanceled,
	BookingRefunded,
}

// TransitionSources returns every state from which `to` is reachable, in a
// fixed order. The repository puts these into the WHERE clause of the status
// update so the transition check and the write are a single compare-and-set.
func TransitionSources(to BookingStatus) []BookingStatus {
	var out []BookingStatus
	for _, from := range bookingStatusOrder {
		for _, t := range bookingTransitions[from] {
			if t == to {
				out = append(out, from)
			}
		}
	}
	return out
}

type Booking struct {
	ID          int64         `json:"id"`
	StudentID   int64         `json:"student_id" validate:"required"`
	TutorID     int64         `json:"tutor_id" validate:"required"`
	ServiceID   int64         `json:"service_id" validate:"required"`
	SubjectID   int64         `json:"subject_id" validate:"required"`
	StartAt     time.Time     `json:"start_at" validate:"required"`
	EndAt       time.Time     `json:"end_at" validate:"required"`
	Hours       float64       `json:"hours"`
	TotalAmount int64         `json:"total_amount" validate:"gte=0"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CanceledAt  *time.Time    `json:"canceled_at,omitempty"`

	Student *User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Tutor   *User    `json:"tutor,omitempty" gorm:"foreignKey:TutorID"`
	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

// IsParticipant reports whether the user is the student or the tutor on the
// booking.
func (b *Booking) IsParticipant(userID int64) bool {
	return b.StudentID == userID || b.TutorID == userID
}
