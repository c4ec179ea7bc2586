package domain

import "time"

type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id" validate:"required"`
	RecipientID int64     `json:"recipient_id" validate:"required"`
	Body        string    `json:"body" validate:"required" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}
