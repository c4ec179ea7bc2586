package repository

import (
	"context"
	"time"

	"tutormarket/internal/domain"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

type messageModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	SenderID    int64     `gorm:"column:sender_id;index"`
	RecipientID int64     `gorm:"column:recipient_id;index"`
	Body        string    `gorm:"column:body"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (messageModel) TableName() string { return "messages" }

func toDomainMessage(m messageModel) *domain.Message {
	return &domain.Message{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	msg.CreatedAt = time.Now().UTC()

	m := messageModel{
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Body:        msg.Body,
		CreatedAt:   msg.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*msg = *toDomainMessage(m)
	return nil
}

// ListConversation returns the messages exchanged between two users, newest
// first.
func (r *MessageRepository) ListConversation(ctx context.Context, userID, peerID int64, limit, offset int) ([]domain.Message, int, error) {
	q := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where(
			"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, peerID, peerID, userID,
		)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []messageModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Message, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainMessage(m))
	}
	return out, int(total), nil
}
