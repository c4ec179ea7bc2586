package domain

import "time"

type NotificationKind string

const (
	NotifyBookingCreated   NotificationKind = "booking_created"
	NotifyBookingConfirmed NotificationKind = "booking_confirmed"
	NotifyBookingStarted   NotificationKind = "booking_started"
	NotifyBookingCanceled  NotificationKind = "booking_canceled"
	NotifyBookingCompleted NotificationKind = "booking_completed"
	NotifyBookingRefunded  NotificationKind = "booking_refunded"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	BookingID int64            `json:"booking_id,omitempty"`
	Body      string           `json:"body" gorm:"type:text"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
