package chat

import (
	"context"
	"errors"
	"strings"

	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"

	"gorm.io/gorm"
)

type Service struct {
	messages MessageRepository
	users    UserFinder
	hub      *Hub
}

func NewService(messages MessageRepository, users UserFinder, hub *Hub) *Service {
	return &Service{
		messages: messages,
		users:    users,
		hub:      hub,
	}
}

// Send persists a direct message and pushes it to both participants if they
// are connected.
func (s *Service) Send(ctx context.Context, actor domain.Actor, req SendMessageRequest) (*domain.Message, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ErrValidation
	}
	if req.RecipientID == actor.UserID {
		return nil, ErrSelfMessage
	}

	if _, err := s.users.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientUnknown
		}
		return nil, err
	}

	msg := &domain.Message{
		SenderID:    actor.UserID,
		RecipientID: req.RecipientID,
		Body:        body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	event := messageEvent(msg)
	s.hub.Push(msg.SenderID, event)
	s.hub.Push(msg.RecipientID, event)

	return msg, nil
}

// History returns the conversation between the caller and a peer, newest
// first.
func (s *Service) History(ctx context.Context, actor domain.Actor, q ListMessagesQuery) (*MessageList, error) {
	if q.PeerID <= 0 {
		return nil, ErrValidation
	}

	page, perPage := pagination.Clamp(q.Page, q.PerPage)
	items, total, err := s.messages.ListConversation(ctx, actor.UserID, q.PeerID, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, err
	}

	return &MessageList{
		Messages: items,
		Page:     pagination.NewPage(total, page, perPage),
	}, nil
}
