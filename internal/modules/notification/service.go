package notification

import (
	"context"
	"fmt"
	"time"

	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"

	"go.uber.org/zap"
)

type Service struct {
	repo   NotificationRepository
	pusher Pusher
	log    *zap.Logger
}

func NewService(repo NotificationRepository, pusher Pusher, log *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		pusher: pusher,
		log:    log,
	}
}

// NotifyBookingEvent stores a notification for the user and pushes it over
// the websocket hub when they are connected. Delivery failures are logged,
// never propagated; a lost notification must not fail a booking transition.
func (s *Service) NotifyBookingEvent(ctx context.Context, userID int64, kind domain.NotificationKind, b *domain.Booking) error {
	n := &domain.Notification{
		UserID:    userID,
		Kind:      kind,
		BookingID: b.ID,
		Body:      bodyFor(kind, b),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.log.Warn("failed to store notification",
			zap.Int64("user_id", userID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil
	}

	s.pusher.Push(userID, struct {
		Type    string               `json:"type"`
		At      time.Time            `json:"at"`
		Payload *domain.Notification `json:"payload"`
	}{Type: "notification", At: time.Now().UTC(), Payload: n})

	return nil
}

func (s *Service) List(ctx context.Context, actor domain.Actor, q ListNotificationsQuery) (*NotificationList, error) {
	page, perPage := pagination.Clamp(q.Page, q.PerPage)
	items, total, err := s.repo.ListByUser(ctx, actor.UserID, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, err
	}

	return &NotificationList{
		Notifications: items,
		Page:          pagination.NewPage(total, page, perPage),
	}, nil
}

func (s *Service) MarkRead(ctx context.Context, actor domain.Actor, id int64) error {
	ok, err := s.repo.MarkRead(ctx, id, actor.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func bodyFor(kind domain.NotificationKind, b *domain.Booking) string {
	when := b.StartAt.Format("Jan 2 15:04")
	switch kind {
	case domain.NotifyBookingCreated:
		return fmt.Sprintf("New booking request for %s", when)
	case domain.NotifyBookingConfirmed:
		return fmt.Sprintf("Your booking for %s was confirmed", when)
	case domain.NotifyBookingStarted:
		return fmt.Sprintf("Your session for %s has started", when)
	case domain.NotifyBookingCanceled:
		return fmt.Sprintf("Booking for %s was canceled", when)
	case domain.NotifyBookingCompleted:
		return fmt.Sprintf("Session for %s is completed", when)
	case domain.NotifyBookingRefunded:
		return fmt.Sprintf("Booking for %s was refunded", when)
	}
	return "Booking update"
}
